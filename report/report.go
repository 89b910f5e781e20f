// Package report formats sweep results into comparison tables and charts.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/klauspost/cpuid"

	"github.com/weiihann/hashbench/harness"
)

// Generate writes markdown comparison tables for the given results.
func Generate(w io.Writer, results []harness.Result) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to report")
	}

	sizes := collectSizes(results)
	means := meanTimes(results)
	fastest := findFastest(means)

	// Header.
	fmt.Fprintln(w, "## Benchmark Results")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Host: %s\n", hostLine())
	fmt.Fprintf(w, "Key order: %s\n", results[0].Order)
	fmt.Fprintln(w)

	// Per-size table, one column per subject.
	header := []string{"Elements", "Trials"}
	for _, r := range results {
		header = append(header, r.Subject)
	}

	fmt.Fprintln(w, "| "+strings.Join(header, " | ")+" |")
	fmt.Fprintln(w, "|"+strings.Repeat("---|", len(header)))

	for _, size := range sizes {
		row := []string{fmt.Sprintf("%d", size), "-"}

		for _, r := range results {
			p, ok := pointAt(r, size)
			if !ok {
				row = append(row, "-")
				continue
			}

			row[1] = fmt.Sprintf("%d", p.Trials)
			row = append(row, formatMicros(p.AvgMicros))
		}

		fmt.Fprintln(w, "| "+strings.Join(row, " | ")+" |")
	}

	fmt.Fprintln(w)

	// Summary rows.
	fmt.Fprintln(w, "| Subject | Mean | Slowdown |")
	fmt.Fprintln(w, "|---------|------|----------|")

	for i, r := range results {
		slowdown := 1.0
		if fastest > 0 && means[i] > 0 {
			slowdown = means[i] / fastest
		}

		fmt.Fprintf(w, "| %s | %s | %.2fx |\n",
			r.Subject,
			formatMicros(means[i]),
			slowdown,
		)
	}

	return nil
}

// GenerateJSON writes results as JSON to w.
func GenerateJSON(w io.Writer, results []harness.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(results)
}

func hostLine() string {
	brand := cpuid.CPU.BrandName
	if brand == "" {
		brand = "unknown CPU"
	}

	return fmt.Sprintf("%s, %d cores / %d threads",
		brand, cpuid.CPU.PhysicalCores, cpuid.CPU.LogicalCores)
}

func collectSizes(results []harness.Result) []int {
	var sizes []int
	for _, r := range results {
		for _, p := range r.Points {
			sizes = append(sizes, p.Elements)
		}
	}

	slices.Sort(sizes)

	return slices.Compact(sizes)
}

func pointAt(r harness.Result, elements int) (harness.Point, bool) {
	for _, p := range r.Points {
		if p.Elements == elements {
			return p, true
		}
	}

	return harness.Point{}, false
}

func meanTimes(results []harness.Result) []float64 {
	means := make([]float64, len(results))
	for i, r := range results {
		if len(r.Points) == 0 {
			continue
		}

		var sum float64
		for _, p := range r.Points {
			sum += p.AvgMicros
		}
		means[i] = sum / float64(len(r.Points))
	}

	return means
}

func findFastest(means []float64) float64 {
	fastest := math.Inf(1)
	for _, m := range means {
		if m > 0 && m < fastest {
			fastest = m
		}
	}

	if math.IsInf(fastest, 1) {
		return 0
	}

	return fastest
}

func formatMicros(us float64) string {
	switch {
	case us < 1:
		return fmt.Sprintf("%.1fns", us*1000)
	case us < 1000:
		return fmt.Sprintf("%.2fµs", us)
	default:
		return fmt.Sprintf("%.2fms", us/1000)
	}
}
