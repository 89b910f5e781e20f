package subject

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrUnknownSubject is returned by Lookup for unregistered names.
var ErrUnknownSubject = errors.New("unknown subject")

// Factory builds a fresh, empty subject.
type Factory func() any

// lruCapacity bounds the lru subject. Large sweeps evict, which is part of
// what that subject measures.
const lruCapacity = 1 << 16

var registry = map[string]Factory{
	"map":      func() any { return NewSet[int]() },
	"syncmap":  func() any { return &SyncMap{} },
	"openaddr": func() any { return NewOpenAddr(0) },
	"haxmap":   func() any { return NewHaxMap() },
	"lru":      func() any { return NewLRU(lruCapacity) },
	"btree":    func() any { return NewBTree() },
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %v)", ErrUnknownSubject, name, Names())
	}

	return f, nil
}

// Names returns the registered subject names in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}
