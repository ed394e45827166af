package stats

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlotAccuracyFixedScale(t *testing.T) {
	var buf bytes.Buffer
	err := PlotAccuracy(&buf, "Accuracy", []float64{0, 50, 100, 75}, 20, 4)
	if err != nil {
		t.Fatalf("plot: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Accuracy") {
		t.Fatalf("missing title: %q", out)
	}
	if !strings.Contains(out, "100%") || !strings.Contains(out, "0%") {
		t.Fatalf("missing axis labels: %q", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Title + 4 plot rows + trailing blank line collapse.
	if len(lines) < 5 {
		t.Fatalf("expected at least 5 lines, got %d", len(lines))
	}
}

func TestPlotAccuracyEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotAccuracy(&buf, "x", nil, 20, 4); err != nil {
		t.Fatalf("plot: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("empty series should render nothing, got %q", buf.String())
	}
}

func TestStretchSeries(t *testing.T) {
	out := stretchSeries([]float64{0, 100}, 5)
	if len(out) != 5 {
		t.Fatalf("expected 5 values, got %d", len(out))
	}
	if out[0] != 0 || out[4] != 100 {
		t.Fatalf("endpoints should be preserved: %v", out)
	}
	down := stretchSeries([]float64{0, 10, 20, 30}, 2)
	if len(down) != 2 {
		t.Fatalf("expected 2 values, got %d", len(down))
	}
	if down[0] != 5 || down[1] != 25 {
		t.Fatalf("downsample should average: %v", down)
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("zero width should fall back to minimum, got %d", got)
	}
	if got := PlotWidthFor(80); got <= minPlotWidth {
		t.Fatalf("expected usable width for 80 columns, got %d", got)
	}
}
