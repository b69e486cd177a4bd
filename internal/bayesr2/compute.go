package bayesr2

import (
	"gonum.org/v1/gonum/stat"

	"github.com/statpost/bayesr2/internal/draws"
)

// Compute produces one Bayesian R² value per posterior draw.
//
// The result has exactly d.NumDraws() elements in input draw order.
// Compute is a pure function: calling it twice on identical input yields
// identical output, and the input is never mutated.
//
// All validation happens before any result is returned. Violations
// surface as *draws.InvalidInputError; see that type for the code
// taxonomy.
func Compute(d *draws.Draws) ([]float64, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	r2 := make([]float64, d.NumDraws())
	for i, row := range d.Fitted {
		varMu := stat.Variance(row, nil)

		var varRes float64
		switch d.Family {
		case draws.FamilyGaussian:
			varRes = d.ResidualVariance(i)
		case draws.FamilyBinomial:
			varRes = bernoulliResidualVariance(row)
		}

		if varMu == 0 && varRes == 0 {
			return nil, &draws.InvalidInputError{
				Code:    draws.ErrCodeDegenerateVariance,
				Message: "fitted values have zero variance and residual variance is zero (0/0)",
				Draw:    i,
				Obs:     -1,
			}
		}

		r2[i] = varMu / (varMu + varRes)
	}

	return r2, nil
}
