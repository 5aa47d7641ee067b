package runchart

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// countTicks is a plot.Ticker that formats tick values as scaled
// state counts, so 1500000 renders as "1.5M" instead of a wall of
// digits.
type countTicks struct{}

func (countTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i, t := range ticks {
		if t.Label != "" {
			ticks[i].Label = scaleCount(t.Value)
		}
	}
	return ticks
}

var countFactors = []struct {
	factor float64
	prefix string
}{
	{1e12, "T"},
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "k"},
}

// scaleCount formats a count with an SI prefix. The thresholds
// mirror how printing rounds, so 999996 is "1.0M", not "1000.0k".
func scaleCount(v float64) string {
	abs := math.Abs(v)
	for _, f := range countFactors {
		if abs >= 0.99995*f.factor {
			x := v / f.factor
			prec := 2
			if math.Abs(x) >= 99.995 {
				prec = 0
			} else if math.Abs(x) >= 9.9995 {
				prec = 1
			}
			return strconv.FormatFloat(x, 'f', prec, 64) + f.prefix
		}
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
