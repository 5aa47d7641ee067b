package runstat

import (
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
)

// runKeys are the columns that identify one run configuration.
var runKeys = []string{"function", "consistency", "controllers", "max_depth"}

// MaxStates reduces a run table to one row per distinct run
// configuration, holding the maximum total_states observed for that
// configuration. The harness reports counts that only grow within a
// run, so the maximum is the final count.
//
// The result has the runKeys columns plus "total_states" (and any
// input column that is constant within every group). Applying
// MaxStates to its own output is a no-op.
func MaxStates(t table.Grouping) *table.Table {
	g := ggstat.Agg(runKeys...)(ggstat.AggMax("total_states")).F(t)
	// Agg keeps the input column when it is constant within every
	// group, which it is whenever the input was already reduced.
	// Drop it so the rename below never collides.
	for _, col := range g.Columns() {
		if col == "total_states" {
			g = table.Remove(g, col)
		}
	}
	g = table.Rename(g, "max total_states", "total_states")
	return table.Flatten(table.Ungroup(g))
}

// MaxDepthCounts reduces a depth table to one row per (consistency,
// controllers, max_depth, depth), holding the maximum count observed
// per bucket. Repeated runs of the same configuration re-report
// growing bucket counts, mirroring total_states.
func MaxDepthCounts(t table.Grouping) *table.Table {
	g := ggstat.Agg("consistency", "controllers", "max_depth", "depth")(ggstat.AggMax("count")).F(t)
	for _, col := range g.Columns() {
		if col == "count" {
			g = table.Remove(g, col)
		}
	}
	g = table.Rename(g, "max count", "count")
	return table.Flatten(table.Ungroup(g))
}

// ECDF computes the empirical CDF of col for each consistency model.
// The result is grouped by consistency; each group has column col (a
// subset of the samples, ascending) and "cumulative density".
func ECDF(t table.Grouping, col string) table.Grouping {
	g := table.GroupBy(t, "consistency")
	return ggstat.ECDF{X: col}.F(g)
}
