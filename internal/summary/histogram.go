package summary

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Bin is one fixed-width histogram bin. The interval is [Lo, Hi), except
// for the final bin which also includes Hi so the maximum value is
// always counted.
type Bin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// Histogram bins the R² draws into the requested number of fixed-width
// bins spanning
// [min, max]. When all values are equal the single spanning bin holds
// every draw.
//
// The bin layout is determined entirely by the data, so downstream
// renderers need no extra configuration to draw it.
func Histogram(r2 []float64, bins int) ([]Bin, error) {
	if len(r2) == 0 {
		return nil, fmt.Errorf("cannot bin an empty R² sequence")
	}
	if bins < 1 {
		return nil, fmt.Errorf("bin count %d must be at least 1", bins)
	}

	lo := floats.Min(r2)
	hi := floats.Max(r2)

	if lo == hi {
		return []Bin{{Lo: lo, Hi: hi, Count: len(r2)}}, nil
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Lo = lo + float64(i)*width
		out[i].Hi = lo + float64(i+1)*width
	}
	// Pin the last edge to the true maximum to avoid rounding drift.
	out[bins-1].Hi = hi

	for _, v := range r2 {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}

	return out, nil
}
