package runchart

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/aclements/go-gg/table"

	"github.com/mcorch/stateplot/runstat"
)

// ECDF writes an empirical-CDF chart of col: one step line per
// consistency model, cumulative density on the y axis. When t spans
// multiple (controllers, max_depth) configurations the chart becomes
// a facet grid with one panel per configuration, controllers varying
// down the rows and max_depth along the columns.
func (o *Options) ECDF(t *table.Table, name, col, xlabel string) (string, error) {
	labels := runstat.Consistencies(t)
	ctrls := distinctInts(t, "controllers")
	limits := distinctInts(t, "max_depth")

	if len(ctrls) <= 1 && len(limits) <= 1 {
		p, err := ecdfPanel(t, labels, col, xlabel, name, true)
		if err != nil {
			return "", err
		}
		return o.save(p, name)
	}

	plots := make([][]*plot.Plot, len(ctrls))
	for r, nc := range ctrls {
		plots[r] = make([]*plot.Plot, len(limits))
		for c, limit := range limits {
			sub := table.Flatten(table.FilterEq(table.FilterEq(t, "controllers", nc), "max_depth", limit))
			if sub.Len() == 0 {
				continue
			}
			title := fmt.Sprintf("c=%d d=%d", nc, limit)
			p, err := ecdfPanel(sub, labels, col, xlabel, title, r == 0 && c == 0)
			if err != nil {
				return "", err
			}
			plots[r][c] = p
		}
	}

	can, err := o.canvas()
	if err != nil {
		return "", err
	}
	tiles := draw.Tiles{
		Rows: len(ctrls),
		Cols: len(limits),
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, draw.New(can))
	for r := range plots {
		for c := range plots[r] {
			if plots[r][c] != nil {
				plots[r][c].Draw(canvases[r][c])
			}
		}
	}
	return o.write(can, name)
}

// ecdfPanel builds one ECDF panel. labels fixes the palette across
// panels; legend is drawn only where requested so a facet grid
// carries a single legend.
func ecdfPanel(t *table.Table, labels []string, col, xlabel, title string, legend bool) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.X.Tick.Marker = countTicks{}
	p.Y.Label.Text = "cumulative density"
	p.Y.Min, p.Y.Max = 0, 1

	g := runstat.ECDF(t, col)
	for _, gid := range g.Tables() {
		gt := g.Table(gid)
		label := gid.Label().(string)
		xs := floatCol(gt, col)
		ds := floatCol(gt, "cumulative density")
		xys := make(plotter.XYs, len(xs))
		for i := range xs {
			xys[i].X, xys[i].Y = xs[i], ds[i]
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		line.StepStyle = plotter.PostStep
		line.Color = colorFor(labels, label)
		line.Width = vg.Points(1.5)
		p.Add(line)
		if legend {
			p.Legend.Add(label, line)
		}
	}
	if legend {
		p.Legend.Top = true
		p.Legend.Left = true
	}
	return p, nil
}

// distinctInts returns the sorted distinct values of an int column.
func distinctInts(t *table.Table, col string) []int {
	seen := make(map[int]bool)
	for _, v := range t.MustColumn(col).([]int) {
		seen[v] = true
	}
	vs := make([]int, 0, len(seen))
	for v := range seen {
		vs = append(vs, v)
	}
	sort.Ints(vs)
	return vs
}
