package harness

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiihann/hashbench/subject"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type countingSet struct {
	adds, contains int
}

func (c *countingSet) Add(int) { c.adds++ }

func (c *countingSet) Contains(int) bool {
	c.contains++
	return true
}

func TestTrials(t *testing.T) {
	tests := []struct {
		exp  int
		want int
	}{
		{2, 50000},
		{6, 3125},
		{10, 195},
		{17, 1},
		{18, 1},
		{25, 1},
	}

	for _, tt := range tests {
		got := Trials(DefaultBudget, tt.exp)
		if got != tt.want {
			t.Errorf("Trials(%d) = %d, want %d", tt.exp, got, tt.want)
		}
	}
}

func TestThunkCallsOpPerKey(t *testing.T) {
	var seen []int
	thunk := Thunk(func(k int) { seen = append(seen, k) }, []int{3, 1, 2})

	thunk()
	thunk()

	assert.Equal(t, []int{3, 1, 2, 3, 1, 2}, seen)
}

func TestTimeRunsTrials(t *testing.T) {
	calls := 0
	elapsed := Time(func() { calls++ }, 5)

	assert.Equal(t, 5, calls)
	assert.GreaterOrEqual(t, elapsed, time.Duration(0))
}

func TestAvgMicros(t *testing.T) {
	// 2ms over 1000 elements and 2 trials is 1µs per pair.
	assert.InDelta(t, 1.0, avgMicros(2*time.Millisecond, 1000, 2), 1e-9)
	assert.Zero(t, avgMicros(time.Second, 0, 1))
}

func TestRunSweep(t *testing.T) {
	set := &countingSet{}
	runner := NewRunner("counting", func() any { return set }, discardLogger())

	result, err := runner.Run(context.Background(), RunConfig{
		MinExp: 2,
		MaxExp: 5,
		Budget: 64,
	})
	require.NoError(t, err)

	assert.Equal(t, "counting", result.Subject)
	assert.Equal(t, "sequential", result.Order)
	require.Len(t, result.Points, 4)

	wantOps := 0
	for i, p := range result.Points {
		exp := 2 + i
		assert.Equal(t, 1<<exp, p.Elements)
		assert.Equal(t, Trials(64, exp), p.Trials)
		assert.GreaterOrEqual(t, p.ElapsedNs, int64(0))
		assert.GreaterOrEqual(t, p.AvgMicros, 0.0)
		wantOps += p.Elements * p.Trials
	}

	assert.Equal(t, wantOps, set.adds)
	assert.Equal(t, wantOps, set.contains)
}

func TestRunFreshBuildsPerSize(t *testing.T) {
	built := 0
	factory := func() any {
		built++
		return subject.NewSet[int]()
	}

	runner := NewRunner("map", factory, discardLogger())
	_, err := runner.Run(context.Background(), RunConfig{
		MinExp: 3,
		MaxExp: 6,
		Budget: 8,
		Fresh:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, built)
}

func TestRunReusesSubject(t *testing.T) {
	built := 0
	factory := func() any {
		built++
		return subject.NewOpenAddr(0)
	}

	runner := NewRunner("openaddr", factory, discardLogger())
	_, err := runner.Run(context.Background(), RunConfig{
		MinExp: 3,
		MaxExp: 6,
		Budget: 8,
		Order:  "shuffled",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, built)
}

func TestRunInvalidConfig(t *testing.T) {
	runner := NewRunner("map", func() any { return subject.NewSet[int]() }, discardLogger())

	tests := []struct {
		name string
		cfg  RunConfig
	}{
		{"negative min", RunConfig{MinExp: -1, MaxExp: 3, Budget: 1}},
		{"max below min", RunConfig{MinExp: 5, MaxExp: 3, Budget: 1}},
		{"max too large", RunConfig{MinExp: 0, MaxExp: MaxExp + 1, Budget: 1}},
		{"zero budget", RunConfig{MinExp: 0, MaxExp: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runner.Run(context.Background(), tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestRunUnsupportedSubject(t *testing.T) {
	runner := NewRunner("bogus", func() any { return 42 }, discardLogger())

	_, err := runner.Run(context.Background(), DefaultRunConfig())
	require.ErrorIs(t, err, subject.ErrUnsupported)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner("map", func() any { return subject.NewSet[int]() }, discardLogger())

	_, err := runner.Run(ctx, DefaultRunConfig())
	require.ErrorIs(t, err, context.Canceled)
}
