// Package subject defines the structures a sweep can time. A subject is any
// value exposing either an Add/Contains or an Insert/Lookup pair over int
// keys; Probe picks the pair at run time.
package subject

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned by Probe for values exposing neither pair.
var ErrUnsupported = errors.New("subject exposes neither Add/Contains nor Insert/Lookup")

// Inserter is a structure with an Insert/Lookup pair.
type Inserter interface {
	Insert(k int)
	Lookup(k int) bool
}

// Adder is a structure with an Add/Contains pair.
type Adder interface {
	Add(k int)
	Contains(k int) bool
}

// Op performs one insert followed by one lookup of the same key.
type Op func(k int)

// Probe returns the Op for v. Adder wins when v implements both.
func Probe(v any) (Op, error) {
	switch s := v.(type) {
	case Adder:
		return func(k int) {
			s.Add(k)
			s.Contains(k)
		}, nil
	case Inserter:
		return func(k int) {
			s.Insert(k)
			s.Lookup(k)
		}, nil
	}

	return nil, fmt.Errorf("probe %T: %w", v, ErrUnsupported)
}
