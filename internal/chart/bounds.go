package chart

import (
	"github.com/montanaflynn/stats"
)

// YBounds returns [min(values)-pad, max(values)+pad]. A flat series with no
// padding still gets a unit-high range so the axis can be drawn.
func YBounds(values []float64, pad float64) (lo, hi float64, err error) {
	if len(values) == 0 {
		return 0, 0, ErrEmptySeries
	}
	lo, err = stats.Min(values)
	if err != nil {
		return 0, 0, err
	}
	hi, err = stats.Max(values)
	if err != nil {
		return 0, 0, err
	}
	lo, hi = lo-pad, hi+pad
	if hi <= lo {
		lo, hi = lo-0.5, hi+0.5
	}
	return lo, hi, nil
}
