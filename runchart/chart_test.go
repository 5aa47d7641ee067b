package runchart

import (
	"os"
	"testing"

	"gonum.org/v1/plot/vg"

	"github.com/mcorch/stateplot/runcsv"
	"github.com/mcorch/stateplot/runstat"
)

func sampleRuns() []runcsv.RunResult {
	var rs []runcsv.RunResult
	for _, con := range []string{"causal", "synchronous"} {
		base := 100
		if con == "synchronous" {
			base = 10
		}
		for i := 1; i <= 4; i++ {
			rs = append(rs, runcsv.RunResult{
				Function: "deployment", Consistency: con, Controllers: 2, DepthLimit: 10,
				DurationMS: float64(i * 50), TotalStates: base * i, UniqueStates: base * i,
				MaxDepth: i,
			})
		}
	}
	return rs
}

func checkFile(t *testing.T, path string, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("chart failed: %v", err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("chart file missing: %v", err)
	}
	if fi.Size() == 0 {
		t.Fatalf("chart file %s is empty", path)
	}
}

func TestCharts(t *testing.T) {
	for _, format := range []string{"svg", "png"} {
		o := &Options{Dir: t.TempDir(), Format: format, Width: 9 * vg.Centimeter, Height: 6 * vg.Centimeter, DPI: 72}
		tab := runstat.RunTable(sampleRuns())

		path, err := o.Lines(tab, "all-states", "total_states", "total states")
		checkFile(t, path, err)

		path, err = o.Box(tab, "states-box", "total_states", "total states")
		checkFile(t, path, err)

		path, err = o.Strip(tab, "states-strip", "total_states", "total states")
		checkFile(t, path, err)

		path, err = o.ECDF(tab, "states-ecdf", "total_states", "total states")
		checkFile(t, path, err)
	}
}

func TestScatterChart(t *testing.T) {
	o := &Options{Dir: t.TempDir(), Width: 9 * vg.Centimeter, Height: 6 * vg.Centimeter}
	ds := []runcsv.DepthResult{
		{Consistency: "causal", Controllers: 2, DepthLimit: 10, Depth: 1, Count: 5},
		{Consistency: "causal", Controllers: 2, DepthLimit: 10, Depth: 2, Count: 25},
		{Consistency: "synchronous", Controllers: 2, DepthLimit: 10, Depth: 1, Count: 2},
	}
	path, err := o.Scatter(runstat.DepthTable(ds), "depths-all", "depth", "depth", "count", "states at depth")
	checkFile(t, path, err)
}

func TestECDFFacets(t *testing.T) {
	o := &Options{Dir: t.TempDir(), Width: 12 * vg.Centimeter, Height: 8 * vg.Centimeter}
	rs := sampleRuns()
	// A second configuration forces the facet grid.
	for _, con := range []string{"causal", "synchronous"} {
		rs = append(rs, runcsv.RunResult{
			Function: "deployment", Consistency: con, Controllers: 4, DepthLimit: 10,
			DurationMS: 10, TotalStates: 1000, UniqueStates: 1000, MaxDepth: 5,
		})
	}
	path, err := o.ECDF(runstat.RunTable(rs), "states-ecdf", "total_states", "total states")
	checkFile(t, path, err)
}

func TestBadFormat(t *testing.T) {
	o := &Options{Dir: t.TempDir(), Format: "gif"}
	if _, err := o.Lines(runstat.RunTable(sampleRuns()), "x", "total_states", "y"); err == nil {
		t.Error("got success for unknown format, want error")
	}
}

func TestChartName(t *testing.T) {
	tests := []struct{ prefix, path, want string }{
		{"states", "testout/deployment-causal.csv", "states-deployment-causal"},
		{"depths", "a-depths.csv", "depths-a-depths"},
		{"states", "testout/run.csv#1", "states-run.csv-1"},
	}
	for _, test := range tests {
		if got := ChartName(test.prefix, test.path); got != test.want {
			t.Errorf("ChartName(%q, %q) = %q, want %q", test.prefix, test.path, got, test.want)
		}
	}
}

func TestScaleCount(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{950, "950"},
		{1500, "1.50k"},
		{25000, "25.0k"},
		{1500000, "1.50M"},
		{123000000, "123M"},
		{2e12, "2.00T"},
	}
	for _, test := range tests {
		if got := scaleCount(test.v); got != test.want {
			t.Errorf("scaleCount(%v) = %q, want %q", test.v, got, test.want)
		}
	}
}
