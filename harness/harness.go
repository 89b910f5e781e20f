package harness

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/weiihann/hashbench/subject"
	"github.com/weiihann/hashbench/workload"
)

// MaxExp caps the largest sweep size at 2^30 elements.
const MaxExp = 30

// RunConfig holds parameters for a single sweep.
type RunConfig struct {
	MinExp int
	MaxExp int
	Budget float64
	Order  string
	Seed   int64
	// Fresh builds a new subject for every size instead of reusing one
	// across the whole sweep.
	Fresh bool
}

// DefaultRunConfig sweeps 2^6 through 2^17 elements.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		MinExp: 6,
		MaxExp: 17,
		Budget: DefaultBudget,
		Order:  workload.Sequential,
	}
}

func (c RunConfig) validate() error {
	switch {
	case c.MinExp < 0:
		return fmt.Errorf("min exponent %d is negative", c.MinExp)
	case c.MaxExp < c.MinExp:
		return fmt.Errorf("max exponent %d below min exponent %d",
			c.MaxExp, c.MinExp)
	case c.MaxExp > MaxExp:
		return fmt.Errorf("max exponent %d above limit %d", c.MaxExp, MaxExp)
	case c.Budget <= 0:
		return fmt.Errorf("trial budget %g must be positive", c.Budget)
	}

	return nil
}

// Runner sweeps a single subject.
type Runner struct {
	Name    string
	Factory subject.Factory
	Logger  *slog.Logger
}

// NewRunner creates a Runner for the named subject.
func NewRunner(name string, factory subject.Factory, logger *slog.Logger) *Runner {
	return &Runner{
		Name:    name,
		Factory: factory,
		Logger:  logger.With(slog.String("subject", name)),
	}
}

// Run times count insert+lookup pairs for every count = 2^exp with exp in
// [cfg.MinExp, cfg.MaxExp]. Cancellation is checked between sizes.
func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("sweep %s: %w", r.Name, err)
	}

	op, err := subject.Probe(r.Factory())
	if err != nil {
		return nil, fmt.Errorf("sweep %s: %w", r.Name, err)
	}

	gen := workload.NewGenerator(workload.Config{
		Order: cfg.Order,
		Seed:  cfg.Seed,
	})

	result := &Result{
		Subject: r.Name,
		Order:   gen.Order(),
		Fresh:   cfg.Fresh,
		Points:  make([]Point, 0, cfg.MaxExp-cfg.MinExp+1),
	}

	r.Logger.InfoContext(ctx, "starting sweep",
		slog.Int("min_exp", cfg.MinExp),
		slog.Int("max_exp", cfg.MaxExp),
		slog.String("order", result.Order),
		slog.Bool("fresh", cfg.Fresh),
	)

	for exp := cfg.MinExp; exp <= cfg.MaxExp; exp++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("sweep %s: %w", r.Name, err)
		}

		if cfg.Fresh && exp > cfg.MinExp {
			if op, err = subject.Probe(r.Factory()); err != nil {
				return nil, fmt.Errorf("sweep %s: %w", r.Name, err)
			}
		}

		count := 1 << exp
		trials := Trials(cfg.Budget, exp)
		elapsed := Time(Thunk(op, gen.Keys(count)), trials)

		point := Point{
			Elements:  count,
			Trials:    trials,
			ElapsedNs: elapsed.Nanoseconds(),
			AvgMicros: avgMicros(elapsed, count, trials),
		}
		result.Points = append(result.Points, point)

		r.Logger.DebugContext(ctx, "size measured",
			slog.Int("elements", count),
			slog.Int("trials", trials),
			slog.Duration("elapsed", elapsed),
			slog.Float64("avg_us", point.AvgMicros),
		)
	}

	r.Logger.InfoContext(ctx, "sweep finished",
		slog.Int("sizes", len(result.Points)),
	)

	return result, nil
}
