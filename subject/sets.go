package subject

import (
	"encoding/binary"
	"sync"

	"github.com/alphadose/haxmap"
	"github.com/cespare/xxhash/v2"
	"github.com/google/btree"
	"github.com/phuslu/lru"
)

// Set is a hash set backed by a Go map.
type Set[T comparable] struct {
	values map[T]struct{}
}

func NewSet[T comparable]() *Set[T] {
	return &Set[T]{values: make(map[T]struct{})}
}

func (s *Set[T]) Add(v T) {
	s.values[v] = struct{}{}
}

func (s *Set[T]) Contains(v T) bool {
	_, ok := s.values[v]
	return ok
}

func (s *Set[T]) Len() int {
	return len(s.values)
}

// SyncMap adapts sync.Map to the Insert/Lookup pair.
type SyncMap struct {
	m sync.Map
}

func (s *SyncMap) Insert(k int) {
	s.m.Store(k, struct{}{})
}

func (s *SyncMap) Lookup(k int) bool {
	_, ok := s.m.Load(k)
	return ok
}

// OpenAddr is a linear-probing set of ints hashed with xxhash. The table
// is kept at most half full so every probe sequence reaches an empty slot.
type OpenAddr struct {
	keys []int
	used []bool
	n    int
	mask uint64
}

// NewOpenAddr sizes the table to hold hint keys without growing.
func NewOpenAddr(hint int) *OpenAddr {
	size := 8
	for size < hint*2 {
		size <<= 1
	}

	return &OpenAddr{
		keys: make([]int, size),
		used: make([]bool, size),
		mask: uint64(size - 1),
	}
}

func hashInt(k int) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(k))

	return xxhash.Sum64(buf[:])
}

func (s *OpenAddr) slot(k int) (uint64, bool) {
	i := hashInt(k) & s.mask
	for s.used[i] {
		if s.keys[i] == k {
			return i, true
		}
		i = (i + 1) & s.mask
	}

	return i, false
}

func (s *OpenAddr) Add(k int) {
	if (s.n+1)*2 > len(s.keys) {
		s.grow()
	}

	i, found := s.slot(k)
	if found {
		return
	}

	s.keys[i] = k
	s.used[i] = true
	s.n++
}

func (s *OpenAddr) Contains(k int) bool {
	_, found := s.slot(k)
	return found
}

func (s *OpenAddr) Len() int {
	return s.n
}

func (s *OpenAddr) grow() {
	keys, used := s.keys, s.used
	size := len(keys) * 2

	s.keys = make([]int, size)
	s.used = make([]bool, size)
	s.mask = uint64(size - 1)

	for i, u := range used {
		if !u {
			continue
		}
		j, _ := s.slot(keys[i])
		s.keys[j] = keys[i]
		s.used[j] = true
	}
}

// HaxMap adapts a lock-free haxmap to the Insert/Lookup pair.
type HaxMap struct {
	m *haxmap.Map[int, struct{}]
}

func NewHaxMap() *HaxMap {
	return &HaxMap{m: haxmap.New[int, struct{}]()}
}

func (h *HaxMap) Insert(k int) {
	h.m.Set(k, struct{}{})
}

func (h *HaxMap) Lookup(k int) bool {
	_, ok := h.m.Get(k)
	return ok
}

// LRU adapts a bounded phuslu/lru cache. Keys past capacity evict the
// least recently used ones, so Lookup of an old key may miss.
type LRU struct {
	c *lru.LRUCache[int, struct{}]
}

func NewLRU(capacity int) *LRU {
	return &LRU{c: lru.NewLRUCache[int, struct{}](capacity)}
}

func (l *LRU) Insert(k int) {
	l.c.Set(k, struct{}{})
}

func (l *LRU) Lookup(k int) bool {
	_, ok := l.c.Get(k)
	return ok
}

// BTree is an ordered baseline to compare the hash subjects against.
type BTree struct {
	t *btree.BTreeG[int]
}

const btreeDegree = 32

func NewBTree() *BTree {
	return &BTree{t: btree.NewOrderedG[int](btreeDegree)}
}

func (b *BTree) Insert(k int) {
	b.t.ReplaceOrInsert(k)
}

func (b *BTree) Lookup(k int) bool {
	return b.t.Has(k)
}
