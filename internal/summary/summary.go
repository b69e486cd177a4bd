// Package summary provides order-independent reductions over a Bayesian
// R² sequence: point summaries, quantiles, and histogram bins for
// downstream reporting and visualization.
//
// Every function is a pure transform. Inputs are never mutated; sorting
// happens on private copies.
package summary

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary holds point summaries of a posterior R² sequence.
type Summary struct {
	// N is the number of draws summarized.
	N int `json:"n"`

	// Mean is the posterior mean of R².
	Mean float64 `json:"mean"`

	// SD is the posterior standard deviation of R² (N−1 denominator).
	// Zero when N == 1.
	SD float64 `json:"sd"`

	// Median is the posterior median (0.5 quantile).
	Median float64 `json:"median"`

	// Q25 and Q75 bound the central 50% interval.
	Q25 float64 `json:"q25"`
	Q75 float64 `json:"q75"`
}

// Describe computes point summaries over the R² draws.
// Returns an error for an empty sequence.
func Describe(r2 []float64) (Summary, error) {
	if len(r2) == 0 {
		return Summary{}, fmt.Errorf("cannot summarize an empty R² sequence")
	}

	sorted := sortedCopy(r2)

	s := Summary{
		N:      len(r2),
		Mean:   stat.Mean(r2, nil),
		Median: stat.Quantile(0.5, stat.LinInterp, sorted, nil),
		Q25:    stat.Quantile(0.25, stat.LinInterp, sorted, nil),
		Q75:    stat.Quantile(0.75, stat.LinInterp, sorted, nil),
	}
	if len(r2) > 1 {
		s.SD = stat.StdDev(r2, nil)
	}
	return s, nil
}

// Quantile returns the p-quantile of the R² draws using linear
// interpolation between order statistics. p must lie in [0,1].
func Quantile(r2 []float64, p float64) (float64, error) {
	if len(r2) == 0 {
		return 0, fmt.Errorf("cannot take a quantile of an empty R² sequence")
	}
	if p < 0 || p > 1 {
		return 0, fmt.Errorf("quantile probability %v outside [0,1]", p)
	}
	return stat.Quantile(p, stat.LinInterp, sortedCopy(r2), nil), nil
}

// sortedCopy returns the values in ascending order without touching the
// caller's slice.
func sortedCopy(v []float64) []float64 {
	c := make([]float64, len(v))
	copy(c, v)
	sort.Float64s(c)
	return c
}
