package runchart

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/aclements/go-gg/table"
)

// Lines draws ycol against duration_ms as a line per consistency
// model and writes the chart as name. With a single model (the
// per-run charts) this degenerates to one unlabeled line.
func (o *Options) Lines(t table.Grouping, name, ycol, ylabel string) (string, error) {
	p := plot.New()
	p.Title.Text = name
	p.X.Label.Text = "duration (ms)"
	p.Y.Label.Text = ylabel
	p.Y.Tick.Marker = countTicks{}

	t = table.SortBy(t, "duration_ms")
	labels, tabs := byConsistency(t)
	for i, gt := range tabs {
		xs := floatCol(gt, "duration_ms")
		ys := floatCol(gt, ycol)
		xys := make(plotter.XYs, len(xs))
		for j := range xs {
			xys[j].X, xys[j].Y = xs[j], ys[j]
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return "", err
		}
		line.Color = colorFor(labels, labels[i])
		line.Width = vg.Points(1.5)
		p.Add(line)
		if len(labels) > 1 {
			p.Legend.Add(labels[i], line)
		}
	}
	if len(labels) > 1 {
		p.Legend.Top = true
	}

	return o.save(p, name)
}
