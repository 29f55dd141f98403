package chartconv

import (
	"math"

	"github.com/goliatone/go-djmpl/pkg/figure"
)

// Range is a closed numeric interval.
type Range struct {
	Min float64
	Max float64
}

// widen makes the range drawable: go-chart rejects zero-width ranges and
// NaN bounds.
func (r Range) widen() Range {
	if math.IsNaN(r.Min) || math.IsInf(r.Min, 0) || math.IsNaN(r.Max) || math.IsInf(r.Max, 0) {
		return Range{Min: 0, Max: 1}
	}
	if r.Min > r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	if r.Max-r.Min == 0 {
		pad := math.Abs(r.Min) * 0.05
		if pad == 0 {
			pad = 0.5
		}
		r.Min -= pad
		r.Max += pad
	}
	return r
}

func dataRanges(series []figure.Series) (Range, Range) {
	xr := Range{Min: math.Inf(1), Max: math.Inf(-1)}
	yr := Range{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, s := range series {
		xs := s.X
		if len(xs) == 0 && len(s.Y) > 0 {
			// bars sit at their index
			xs = []float64{0, float64(len(s.Y) - 1)}
		}
		for _, v := range xs {
			xr.Min, xr.Max = math.Min(xr.Min, v), math.Max(xr.Max, v)
		}
		for _, v := range s.Y {
			if math.IsNaN(v) {
				continue
			}
			yr.Min, yr.Max = math.Min(yr.Min, v), math.Max(yr.Max, v)
		}
	}
	if math.IsInf(xr.Min, 1) {
		xr = Range{Min: 0, Max: 1}
	}
	if math.IsInf(yr.Min, 1) {
		yr = Range{Min: 0, Max: 1}
	}
	return xr, yr
}
