package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/weiihann/hashbench/harness"
)

// ChartOptions controls the rendered chart.
type ChartOptions struct {
	Title  string
	Width  string
	Height string
}

// DefaultChartOptions returns the options used by the CLI.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Title:  "insert+lookup average time",
		Width:  "1000px",
		Height: "600px",
	}
}

// Chart writes an interactive HTML line chart of average time per
// insert+lookup pair against element count, one series per subject.
// Sweep sizes are powers of two, so laying them out as evenly spaced
// categories gives a base-2 log scale on the element axis.
func Chart(w io.Writer, results []harness.Result, o ChartOptions) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to chart")
	}

	sizes := collectSizes(results)
	labels := make([]string, len(sizes))
	for i, size := range sizes {
		labels[i] = strconv.Itoa(size)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "hashbench",
			Width:     o.Width,
			Height:    o.Height,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    o.Title,
			Subtitle: hostLine(),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "bottom",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "elements (log2)",
			Type: "category",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "avgtime (µs)",
			Type: "value",
		}),
		charts.WithDataZoomOpts(
			opts.DataZoom{Type: "inside"},
			opts.DataZoom{Type: "slider"},
		),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: opts.Bool(true),
			Feature: &opts.ToolBoxFeature{
				DataZoom:    &opts.ToolBoxFeatureDataZoom{Show: opts.Bool(true)},
				Restore:     &opts.ToolBoxFeatureRestore{Show: opts.Bool(true)},
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{Show: opts.Bool(true)},
			},
		}),
	)

	line.SetXAxis(labels)

	for _, r := range results {
		line.AddSeries(r.Subject, seriesData(r, sizes))
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	return nil
}

func seriesData(r harness.Result, sizes []int) []opts.LineData {
	data := make([]opts.LineData, len(sizes))
	for i, size := range sizes {
		p, ok := pointAt(r, size)
		if !ok {
			data[i] = opts.LineData{Value: "-"}
			continue
		}
		data[i] = opts.LineData{Value: p.AvgMicros}
	}

	return data
}
