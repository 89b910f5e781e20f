package subject

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type both struct {
	adds, inserts int
}

func (b *both) Add(int)           { b.adds++ }
func (b *both) Contains(int) bool { return true }
func (b *both) Insert(int)        { b.inserts++ }
func (b *both) Lookup(int) bool   { return true }

type insertOnly struct {
	keys []int
	hits int
}

func (s *insertOnly) Insert(k int) { s.keys = append(s.keys, k) }

func (s *insertOnly) Lookup(k int) bool {
	for _, v := range s.keys {
		if v == k {
			s.hits++
			return true
		}
	}
	return false
}

func TestProbePrefersAdder(t *testing.T) {
	b := &both{}
	op, err := Probe(b)
	require.NoError(t, err)

	op(1)
	op(2)

	assert.Equal(t, 2, b.adds)
	assert.Zero(t, b.inserts)
}

func TestProbeFallsBackToInserter(t *testing.T) {
	s := &insertOnly{}
	op, err := Probe(s)
	require.NoError(t, err)

	op(7)

	assert.Equal(t, []int{7}, s.keys)
	assert.Equal(t, 1, s.hits)
}

func TestProbeUnsupported(t *testing.T) {
	_, err := Probe(struct{}{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestRegistry(t *testing.T) {
	names := Names()
	require.NotEmpty(t, names)
	assert.IsIncreasing(t, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			f, err := Lookup(name)
			require.NoError(t, err)

			op, err := Probe(f())
			require.NoError(t, err, "registered subject must probe")

			for k := 0; k < 100; k++ {
				op(k)
			}
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("nope")
	require.ErrorIs(t, err, ErrUnknownSubject)
}

func TestSubjectsFindWhatTheyStore(t *testing.T) {
	const n = 5000

	type pair struct {
		add      func(int)
		contains func(int) bool
	}

	set := NewSet[int]()
	oa := NewOpenAddr(0)
	sm := &SyncMap{}
	hm := NewHaxMap()
	lr := NewLRU(8 * n)
	bt := NewBTree()

	subjects := map[string]pair{
		"map":      {set.Add, set.Contains},
		"openaddr": {oa.Add, oa.Contains},
		"syncmap":  {sm.Insert, sm.Lookup},
		"haxmap":   {hm.Insert, hm.Lookup},
		"lru":      {lr.Insert, lr.Lookup},
		"btree":    {bt.Insert, bt.Lookup},
	}

	for name, s := range subjects {
		t.Run(name, func(t *testing.T) {
			for k := 0; k < n; k++ {
				s.add(k * 3)
			}
			for k := 0; k < n; k++ {
				assert.True(t, s.contains(k*3), "key %d", k*3)
				assert.False(t, s.contains(k*3+1), "key %d", k*3+1)
			}
		})
	}
}

func TestOpenAddrGrowKeepsKeys(t *testing.T) {
	s := NewOpenAddr(4)
	for k := -500; k < 500; k++ {
		s.Add(k)
		s.Add(k)
	}

	assert.Equal(t, 1000, s.Len())
	assert.LessOrEqual(t, s.Len()*2, len(s.keys))

	for k := -500; k < 500; k++ {
		require.True(t, s.Contains(k), "key %d", k)
	}
	assert.False(t, s.Contains(500))
}

func TestLRUEvicts(t *testing.T) {
	l := NewLRU(64)
	for k := 0; k < 200000; k++ {
		l.Insert(k)
	}

	assert.True(t, l.Lookup(199999))
	assert.False(t, l.Lookup(0))
}
