// Package report generates a chart report from a directory of
// exploration result CSVs.
//
// Generate runs a single linear pass: classify the input files by
// name, load and concatenate each class, sanity-check the consistency
// labels, reduce to one row per run configuration, and render the
// fixed chart set plus an HTML index. Any failure aborts the whole
// run; the tool is meant to be re-run from scratch on corrected
// input.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aclements/go-gg/table"

	"github.com/mcorch/stateplot/resultdb"
	"github.com/mcorch/stateplot/runchart"
	"github.com/mcorch/stateplot/runcsv"
	"github.com/mcorch/stateplot/runstat"
)

// Config configures a report. The zero value reads the harness's
// default output directory and writes SVG charts into "plots".
type Config struct {
	// InputDir is the directory of result CSVs. Defaults to
	// "testout", the harness's output directory.
	InputDir string

	// OutDir is the directory chart files and index.html are
	// written into. It is created if missing. Defaults to "plots".
	OutDir string

	// Format is the chart image format, "svg" (default) or "png".
	Format string

	// ExpectedConsistencies is the number of distinct consistency
	// labels the run dataset must contain. Zero means the full
	// known set; a negative value disables the check.
	ExpectedConsistencies int

	// DB, if non-empty, is a database to archive the loaded
	// records into, as a driver-specific data source name.
	// DBDriver selects the SQL driver and defaults to "sqlite3".
	DB       string
	DBDriver string
}

func (c *Config) inputDir() string {
	if c.InputDir == "" {
		return "testout"
	}
	return c.InputDir
}

func (c *Config) outDir() string {
	if c.OutDir == "" {
		return "plots"
	}
	return c.OutDir
}

func (c *Config) wantConsistencies() int {
	if c.ExpectedConsistencies == 0 {
		return len(runcsv.Consistencies)
	}
	return c.ExpectedConsistencies
}

// Generate reads every result file in cfg.InputDir and writes the
// chart set and index.html into cfg.OutDir.
func Generate(cfg Config) error {
	runPaths, depthPaths, err := runcsv.List(cfg.inputDir())
	if err != nil {
		return err
	}

	runs, _, err := runcsv.ReadFiles(runPaths)
	if err != nil {
		return fmt.Errorf("loading run files: %v", err)
	}
	_, depths, err := runcsv.ReadFiles(depthPaths)
	if err != nil {
		return fmt.Errorf("loading depth files: %v", err)
	}

	runTab := runstat.RunTable(runs)
	if want := cfg.wantConsistencies(); want >= 0 {
		if err := runstat.CheckConsistencies(runTab, want); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(cfg.outDir(), 0777); err != nil {
		return err
	}
	o := &runchart.Options{Dir: cfg.outDir(), Format: cfg.Format}

	var charts []string
	add := func(path string, err error) error {
		if err != nil {
			return err
		}
		charts = append(charts, filepath.Base(path))
		return nil
	}

	// Per-run charts, one pair per input file.
	for _, label := range distinctStrings(runTab, "file") {
		sub := table.Flatten(table.FilterEq(runTab, "file", label))
		if err := add(o.Lines(sub, runchart.ChartName("states", label), "total_states", "total states")); err != nil {
			return err
		}
		if err := add(o.Lines(sub, runchart.ChartName("depth", label), "max_depth_reached", "max depth")); err != nil {
			return err
		}
	}

	depthTab := runstat.DepthTable(depths)
	for _, label := range distinctStrings(depthTab, "file") {
		sub := table.Flatten(table.FilterEq(depthTab, "file", label))
		if err := add(o.Scatter(sub, runchart.ChartName("depths", label), "depth", "depth", "count", "states at depth")); err != nil {
			return err
		}
	}

	// Combined charts over the concatenated datasets.
	var summary []runstat.Summary
	if runTab.Len() > 0 {
		if err := add(o.Lines(runTab, "all-states", "total_states", "total states")); err != nil {
			return err
		}

		agg := runstat.MaxStates(runTab)
		if err := add(o.ECDF(agg, "states-ecdf", "total_states", "total states")); err != nil {
			return err
		}
		if err := add(o.Box(agg, "states-box", "total_states", "total states")); err != nil {
			return err
		}
		if err := add(o.Strip(agg, "states-strip", "total_states", "total states")); err != nil {
			return err
		}
		summary = runstat.Summarize(agg, "total_states")
	}

	if depthTab.Len() > 0 {
		if err := add(o.Scatter(depthTab, "depths-all", "depth", "depth", "count", "states at depth")); err != nil {
			return err
		}
		aggDepth := runstat.MaxDepthCounts(depthTab)
		if err := add(o.Box(aggDepth, "depth-counts-box", "count", "states at depth")); err != nil {
			return err
		}
		if err := add(o.Strip(aggDepth, "depth-counts-strip", "count", "states at depth")); err != nil {
			return err
		}
	}

	if err := writeIndex(cfg.outDir(), charts, summary); err != nil {
		return fmt.Errorf("writing index: %v", err)
	}

	if cfg.DB != "" {
		if err := archive(cfg, runs, depths); err != nil {
			return fmt.Errorf("archiving records: %v", err)
		}
	}
	return nil
}

// archive stores the loaded records as one new report in the
// configured database.
func archive(cfg Config, runs []runcsv.RunResult, depths []runcsv.DepthResult) error {
	driver := cfg.DBDriver
	if driver == "" {
		driver = "sqlite3"
	}
	db, err := resultdb.OpenSQL(driver, cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	rep, err := db.NewReport(ctx)
	if err != nil {
		return err
	}
	for i := range runs {
		if err := rep.InsertRun(ctx, &runs[i]); err != nil {
			return err
		}
	}
	for i := range depths {
		if err := rep.InsertDepth(ctx, &depths[i]); err != nil {
			return err
		}
	}
	return nil
}

// distinctStrings returns the distinct values of a string column in
// first-appearance order, so per-file charts follow input order.
func distinctStrings(t *table.Table, col string) []string {
	if t.Len() == 0 {
		return nil
	}
	seen := make(map[string]bool)
	var vs []string
	for _, v := range t.MustColumn(col).([]string) {
		if !seen[v] {
			seen[v] = true
			vs = append(vs, v)
		}
	}
	return vs
}
