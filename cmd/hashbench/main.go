// Package main provides the CLI entry point for hashbench, which times
// insert+lookup pairs on hash-based structures across exponentially
// growing sizes and charts the average cost per pair.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/weiihann/hashbench/config"
	"github.com/weiihann/hashbench/harness"
	"github.com/weiihann/hashbench/report"
	"github.com/weiihann/hashbench/subject"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd(logger)
	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error("hashbench failed", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "hashbench",
		Short: "Insert/lookup micro-benchmark for hash-based structures",
		Long: `Hashbench times insert+lookup pairs on one or more hash-based
structures at sizes 2^min-exp through 2^max-exp, spending fewer trials on
larger sizes, and renders the average time per pair as an interactive
log-scale chart.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(logger))
	root.AddCommand(newListCmd())

	return root
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the structures hashbench can time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range subject.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}

			return nil
		},
	}
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var (
		configPath string
		cfg        = config.Default()
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Sweep subjects and report average insert+lookup time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := resolveConfig(cmd, configPath, cfg)
			if err != nil {
				return err
			}

			return runBenchmark(cmd.Context(), logger, cmd.OutOrStdout(), resolved)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "",
		"Path to a YAML config file (flags override it)")
	flags.StringSliceVar(&cfg.Subjects, "subjects", cfg.Subjects,
		"Structures to time (see 'hashbench list')")
	flags.IntVar(&cfg.MinExp, "min-exp", cfg.MinExp,
		"Smallest size as a power of two")
	flags.IntVar(&cfg.MaxExp, "max-exp", cfg.MaxExp,
		"Largest size as a power of two")
	flags.Float64Var(&cfg.Budget, "budget", cfg.Budget,
		"Trial budget; trials = budget / 2^(exp-2)")
	flags.StringVar(&cfg.Order, "order", cfg.Order,
		"Key order: sequential, shuffled, random")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed,
		"Random seed for shuffled and random orders")
	flags.BoolVar(&cfg.Fresh, "fresh", cfg.Fresh,
		"Build a new structure for every size")
	flags.StringVar(&cfg.Format, "format", cfg.Format,
		"Output format: chart, markdown, json")
	flags.StringVar(&cfg.Output, "out", cfg.Output,
		"Output file (default: stdout, or hashbench.html for charts on a terminal)")

	return cmd
}

// resolveConfig layers explicitly set flags over the config file.
func resolveConfig(
	cmd *cobra.Command,
	path string,
	fromFlags config.Config,
) (config.Config, error) {
	if path == "" {
		return fromFlags, fromFlags.Validate()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("subjects") {
		cfg.Subjects = fromFlags.Subjects
	}
	if flags.Changed("min-exp") {
		cfg.MinExp = fromFlags.MinExp
	}
	if flags.Changed("max-exp") {
		cfg.MaxExp = fromFlags.MaxExp
	}
	if flags.Changed("budget") {
		cfg.Budget = fromFlags.Budget
	}
	if flags.Changed("order") {
		cfg.Order = fromFlags.Order
	}
	if flags.Changed("seed") {
		cfg.Seed = fromFlags.Seed
	}
	if flags.Changed("fresh") {
		cfg.Fresh = fromFlags.Fresh
	}
	if flags.Changed("format") {
		cfg.Format = fromFlags.Format
	}
	if flags.Changed("out") {
		cfg.Output = fromFlags.Output
	}

	return cfg, cfg.Validate()
}

func runBenchmark(
	ctx context.Context,
	logger *slog.Logger,
	stdout io.Writer,
	cfg config.Config,
) error {
	logger.InfoContext(ctx, "starting benchmark",
		slog.Any("subjects", cfg.Subjects),
		slog.Int("min_exp", cfg.MinExp),
		slog.Int("max_exp", cfg.MaxExp),
		slog.Float64("budget", cfg.Budget),
		slog.String("order", cfg.Order),
		slog.Int64("seed", cfg.Seed),
	)

	// Step 1: Sweep each subject sequentially.
	results := make([]harness.Result, 0, len(cfg.Subjects))

	for _, name := range cfg.Subjects {
		factory, err := subject.Lookup(name)
		if err != nil {
			return err
		}

		runner := harness.NewRunner(name, factory, logger)
		result, err := runner.Run(ctx, cfg.RunConfig())
		if err != nil {
			return fmt.Errorf("run %s: %w", name, err)
		}

		results = append(results, *result)
	}

	// Step 2: Render.
	if err := render(ctx, logger, stdout, cfg, results); err != nil {
		return err
	}

	logger.InfoContext(ctx, "benchmark complete")

	return nil
}

func render(
	ctx context.Context,
	logger *slog.Logger,
	stdout io.Writer,
	cfg config.Config,
	results []harness.Result,
) error {
	if cfg.Format == config.FormatChart {
		w, path, err := report.Activate(stdout, cfg.Output)
		if err != nil {
			return err
		}

		if err := report.Chart(w, results, report.DefaultChartOptions()); err != nil {
			w.Close()
			return fmt.Errorf("generate chart: %w", err)
		}

		if err := w.Close(); err != nil {
			return fmt.Errorf("close chart: %w", err)
		}

		if path != "" {
			logger.InfoContext(ctx, "chart written", slog.String("path", path))
		}

		return nil
	}

	out := stdout
	if cfg.Output != "" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()

		out = f
	}

	if cfg.Format == config.FormatJSON {
		if err := report.GenerateJSON(out, results); err != nil {
			return fmt.Errorf("generate JSON report: %w", err)
		}

		return nil
	}

	if err := report.Generate(out, results); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	return nil
}
