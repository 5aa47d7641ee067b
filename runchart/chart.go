// Package runchart renders exploration result tables as chart image
// files using gonum/plot.
//
// Every chart function writes one deterministically named file into
// the output directory and returns its path. The output format (SVG
// or PNG) is a configuration knob, not a code path: all charts are
// drawn the same way and only the canvas differs.
package runchart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// Options configures chart rendering.
type Options struct {
	// Dir is the directory chart files are written into. It must
	// exist.
	Dir string

	// Format is the image format, "svg" (the default) or "png".
	Format string

	// Width and Height are the canvas size. Zero means the
	// default 18cm x 12cm.
	Width, Height vg.Length

	// DPI is the raster resolution for PNG output. Zero means 300.
	DPI int
}

func (o *Options) format() string {
	if o.Format == "" {
		return "svg"
	}
	return o.Format
}

func (o *Options) size() (w, h vg.Length) {
	w, h = o.Width, o.Height
	if w == 0 {
		w = 18 * vg.Centimeter
	}
	if h == 0 {
		h = 12 * vg.Centimeter
	}
	return
}

func (o *Options) dpi() int {
	if o.DPI == 0 {
		return 300
	}
	return o.DPI
}

// canvas returns a fresh canvas of the configured size and format.
func (o *Options) canvas() (vg.CanvasWriterTo, error) {
	w, h := o.size()
	switch o.format() {
	case "svg":
		return vgsvg.New(w, h), nil
	case "png":
		return vgimg.PngCanvas{Canvas: vgimg.NewWith(
			vgimg.UseWH(w, h),
			vgimg.UseDPI(o.dpi()),
			vgimg.UseBackgroundColor(color.White),
		)}, nil
	default:
		return nil, fmt.Errorf("unknown chart format %q", o.Format)
	}
}

// save draws p onto a fresh canvas and writes it to <Dir>/<name>.<ext>.
func (o *Options) save(p *plot.Plot, name string) (string, error) {
	can, err := o.canvas()
	if err != nil {
		return "", err
	}
	p.Draw(draw.New(can))
	return o.write(can, name)
}

// write writes an already-drawn canvas to <Dir>/<name>.<ext>.
func (o *Options) write(can vg.CanvasWriterTo, name string) (string, error) {
	file := filepath.Join(o.Dir, name+"."+o.format())
	f, err := os.Create(file)
	if err != nil {
		return "", err
	}
	if _, err := can.WriteTo(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return file, nil
}

// ChartName derives a deterministic chart name from a prefix and an
// input file path: the path's base name with its extension and any
// path separators stripped.
func ChartName(prefix, path string) string {
	base := filepath.Base(path)
	// Keep "#N" disambiguation labels intact; stripping the
	// extension from "run.csv#1" would collapse it with "run.csv#0".
	if ext := filepath.Ext(base); !strings.Contains(ext, "#") {
		base = strings.TrimSuffix(base, ext)
	}
	base = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '#':
			return '-'
		}
		return r
	}, base)
	return prefix + "-" + base
}

// colorFor assigns palette colors by position in the sorted label
// set, so a model keeps its color across every chart of a report.
func colorFor(labels []string, label string) color.Color {
	for i, l := range labels {
		if l == label {
			return plotutil.Color(i)
		}
	}
	return color.Black
}

// byConsistency splits t into per-consistency sub-tables in sorted
// label order.
func byConsistency(t table.Grouping) (labels []string, tabs []*table.Table) {
	g := table.GroupBy(t, "consistency")
	gids := g.Tables()
	order := make(map[string]table.GroupID, len(gids))
	for _, gid := range gids {
		label := gid.Label().(string)
		order[label] = gid
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		tabs = append(tabs, g.Table(order[label]))
	}
	return labels, tabs
}

// floatCol extracts a column as float64s.
func floatCol(t *table.Table, col string) []float64 {
	var xs []float64
	slice.Convert(&xs, t.MustColumn(col))
	return xs
}
