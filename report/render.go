package report

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// DefaultChartPath is where a chart goes when stdout is a terminal and no
// path was given.
const DefaultChartPath = "hashbench.html"

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Activate picks the destination the chart renderer writes to. An
// explicit path always wins. Otherwise HTML is streamed to out unless out
// is a terminal, in which case DefaultChartPath is created instead. The
// returned path is empty when streaming to out.
func Activate(out io.Writer, path string) (io.WriteCloser, string, error) {
	if path == "" && isTerminal(out) {
		path = DefaultChartPath
	}

	if path == "" {
		return nopCloser{out}, "", nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("create chart file: %w", err)
	}

	return f, path, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
