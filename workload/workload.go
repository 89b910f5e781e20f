// Package workload generates deterministic key sequences for the
// insert+lookup sweep. Each sweep size draws count keys in one of a few
// orders from a seeded source.
package workload

import (
	mrand "math/rand"
)

// Key orders.
const (
	Sequential = "sequential"
	Shuffled   = "shuffled"
	Random     = "random"
)

// Orders returns the supported key orders.
func Orders() []string {
	return []string{Sequential, Shuffled, Random}
}

// Config controls key generation.
type Config struct {
	Order string
	Seed  int64
}

// Generator produces deterministic key sequences from a Config.
type Generator struct {
	cfg Config
	rng *mrand.Rand
}

// NewGenerator creates a Generator from the given Config.
func NewGenerator(cfg Config) *Generator {
	return &Generator{
		cfg: cfg,
		rng: mrand.New(mrand.NewSource(cfg.Seed)),
	}
}

// Order returns the order keys are generated in after fallback.
func (g *Generator) Order() string {
	switch g.cfg.Order {
	case Shuffled, Random:
		return g.cfg.Order
	default:
		return Sequential
	}
}

// Keys returns count keys. Sequential yields 0..count-1, shuffled a
// permutation of the same range, random count draws that may repeat.
func (g *Generator) Keys(count int) []int {
	if count <= 0 {
		return nil
	}

	keys := make([]int, count)

	switch g.Order() {
	case Shuffled:
		for i := range keys {
			keys[i] = i
		}
		g.rng.Shuffle(count, func(i, j int) {
			keys[i], keys[j] = keys[j], keys[i]
		})

	case Random:
		for i := range keys {
			keys[i] = g.rng.Int()
		}

	default:
		for i := range keys {
			keys[i] = i
		}
	}

	return keys
}
