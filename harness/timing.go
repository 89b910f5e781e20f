package harness

import (
	"math"
	"time"

	"github.com/loov/hrtime"

	"github.com/weiihann/hashbench/subject"
)

// DefaultBudget is the trial budget a sweep spends per size: 50000 trials
// at 4 elements, halving each time the size doubles.
const DefaultBudget = 50000.0

// Thunk returns a function performing one insert+lookup per key.
func Thunk(op subject.Op, keys []int) func() {
	return func() {
		for _, k := range keys {
			op(k)
		}
	}
}

// Trials returns how many times to repeat a sweep of 2^exp elements so
// that every size costs roughly the same wall-clock time. Never below 1.
func Trials(budget float64, exp int) int {
	trials := int(budget / math.Ldexp(1, exp-2))
	if trials < 1 {
		return 1
	}

	return trials
}

// Time runs fn trials times and returns the total elapsed time.
func Time(fn func(), trials int) time.Duration {
	start := hrtime.Now()
	for i := 0; i < trials; i++ {
		fn()
	}

	return hrtime.Since(start)
}

// avgMicros converts the elapsed time of trials sweeps over count elements
// into microseconds per insert+lookup pair.
func avgMicros(elapsed time.Duration, count, trials int) float64 {
	if count <= 0 || trials <= 0 {
		return 0
	}

	return elapsed.Seconds() / float64(count) / float64(trials) * 1e6
}
