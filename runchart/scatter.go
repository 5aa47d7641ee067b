package runchart

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/aclements/go-gg/table"
)

// Scatter draws ycol against xcol as points per consistency model
// and writes the chart as name. It is used for the depth-histogram
// charts (depth on x, state count on y).
func (o *Options) Scatter(t table.Grouping, name, xcol, xlabel, ycol, ylabel string) (string, error) {
	p := plot.New()
	p.Title.Text = name
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Y.Tick.Marker = countTicks{}

	labels, tabs := byConsistency(t)
	for i, gt := range tabs {
		xs := floatCol(gt, xcol)
		ys := floatCol(gt, ycol)
		xys := make(plotter.XYs, len(xs))
		for j := range xs {
			xys[j].X, xys[j].Y = xs[j], ys[j]
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return "", err
		}
		s.GlyphStyle.Color = colorFor(labels, labels[i])
		s.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(s)
		if len(labels) > 1 {
			p.Legend.Add(labels[i], s)
		}
	}
	if len(labels) > 1 {
		p.Legend.Top = true
	}

	return o.save(p, name)
}
