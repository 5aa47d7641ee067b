// Package runstat builds column-oriented tables from result records
// and computes the aggregations the charts are drawn from.
//
// Tables use the go-gg table package, with columns named after the
// CSV headers. Grouping keys ("function", "consistency",
// "controllers", "max_depth", "file") keep their natural types;
// measure columns are float64 so they can flow directly into
// ggstat transforms and plotters.
package runstat

import (
	"github.com/aclements/go-gg/table"

	"github.com/mcorch/stateplot/runcsv"
)

// RunTable builds a table from run records, one row per record.
func RunTable(rs []runcsv.RunResult) *table.Table {
	var (
		files  = make([]string, len(rs))
		fns    = make([]string, len(rs))
		cons   = make([]string, len(rs))
		ctrls  = make([]int, len(rs))
		limits = make([]int, len(rs))
		durs   = make([]float64, len(rs))
		states = make([]float64, len(rs))
		uniq   = make([]float64, len(rs))
		depths = make([]float64, len(rs))
	)
	for i, r := range rs {
		files[i] = r.File
		fns[i] = r.Function
		cons[i] = r.Consistency
		ctrls[i] = r.Controllers
		limits[i] = r.DepthLimit
		durs[i] = r.DurationMS
		states[i] = float64(r.TotalStates)
		uniq[i] = float64(r.UniqueStates)
		depths[i] = float64(r.MaxDepth)
	}
	return new(table.Builder).
		Add("file", files).
		Add("function", fns).
		Add("consistency", cons).
		Add("controllers", ctrls).
		Add("max_depth", limits).
		Add("duration_ms", durs).
		Add("total_states", states).
		Add("unique_states", uniq).
		Add("max_depth_reached", depths).
		Done()
}

// DepthTable builds a table from depth-distribution records, one row
// per histogram bucket.
func DepthTable(ds []runcsv.DepthResult) *table.Table {
	var (
		files  = make([]string, len(ds))
		cons   = make([]string, len(ds))
		ctrls  = make([]int, len(ds))
		limits = make([]int, len(ds))
		depths = make([]float64, len(ds))
		counts = make([]float64, len(ds))
	)
	for i, d := range ds {
		files[i] = d.File
		cons[i] = d.Consistency
		ctrls[i] = d.Controllers
		limits[i] = d.DepthLimit
		depths[i] = float64(d.Depth)
		counts[i] = float64(d.Count)
	}
	return new(table.Builder).
		Add("file", files).
		Add("consistency", cons).
		Add("controllers", ctrls).
		Add("max_depth", limits).
		Add("depth", depths).
		Add("count", counts).
		Done()
}
