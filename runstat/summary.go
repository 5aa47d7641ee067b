package runstat

import (
	"sort"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
)

// A Summary holds descriptive statistics of one measure column for
// all rows of a single consistency model.
type Summary struct {
	Consistency string
	N           int
	Min         float64
	Q1          float64
	Median      float64
	Q3          float64
	Max         float64
	Mean        float64
}

// Summarize computes per-consistency summaries of the measure column
// col, ordered by consistency label. It is used for the report's
// summary table and for box-plot construction.
func Summarize(t table.Grouping, col string) []Summary {
	g := table.GroupBy(t, "consistency")
	sums := make([]Summary, 0, len(g.Tables()))
	for _, gid := range g.Tables() {
		gt := g.Table(gid)
		var xs []float64
		slice.Convert(&xs, gt.MustColumn(col))
		s := stats.Sample{Xs: xs}
		min, max := stats.Bounds(xs)
		sums = append(sums, Summary{
			Consistency: gid.Label().(string),
			N:           len(xs),
			Min:         min,
			Q1:          s.Quantile(0.25),
			Median:      s.Quantile(0.5),
			Q3:          s.Quantile(0.75),
			Max:         max,
			Mean:        stats.Mean(xs),
		})
	}
	sort.Slice(sums, func(i, j int) bool { return sums[i].Consistency < sums[j].Consistency })
	return sums
}
