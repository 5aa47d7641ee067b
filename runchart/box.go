package runchart

import (
	"math/rand"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/aclements/go-gg/table"
)

// Box writes a box plot of col with one box per consistency model.
func (o *Options) Box(t table.Grouping, name, col, ylabel string) (string, error) {
	p := plot.New()
	p.Title.Text = name
	p.Y.Label.Text = ylabel
	p.Y.Tick.Marker = countTicks{}

	labels, tabs := byConsistency(t)
	for i, gt := range tabs {
		b, err := plotter.NewBoxPlot(vg.Points(20), float64(i), plotter.Values(floatCol(gt, col)))
		if err != nil {
			return "", err
		}
		b.FillColor = colorFor(labels, labels[i])
		p.Add(b)
	}
	p.NominalX(labels...)

	return o.save(p, name)
}

// Strip writes a strip plot of col: every sample as a point, one
// column of points per consistency model. Points are jittered
// horizontally with a fixed seed so output files are reproducible.
func (o *Options) Strip(t table.Grouping, name, col, ylabel string) (string, error) {
	p := plot.New()
	p.Title.Text = name
	p.Y.Label.Text = ylabel
	p.Y.Tick.Marker = countTicks{}

	rnd := rand.New(rand.NewSource(1))
	labels, tabs := byConsistency(t)
	for i, gt := range tabs {
		ys := floatCol(gt, col)
		xys := make(plotter.XYs, len(ys))
		for j, y := range ys {
			xys[j].X = float64(i) + (rnd.Float64()-0.5)*0.4
			xys[j].Y = y
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return "", err
		}
		s.GlyphStyle.Color = colorFor(labels, labels[i])
		s.GlyphStyle.Radius = vg.Points(2)
		p.Add(s)
	}
	p.NominalX(labels...)

	return o.save(p, name)
}
