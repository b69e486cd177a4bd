package draws

import (
	"fmt"
	"math"
)

// Family identifies the outcome family of a fitted regression model.
type Family string

const (
	// FamilyGaussian marks a continuous outcome. Fitted values are linear
	// predictor values; residual variance is an explicit model parameter,
	// one draw per posterior draw.
	FamilyGaussian Family = "gaussian"

	// FamilyBinomial marks a binary (Bernoulli) outcome. Fitted values
	// are predicted probabilities in [0,1]; residual variance is implied
	// by the probabilities as mean(p·(1−p)).
	FamilyBinomial Family = "binomial"
)

// ParseFamily converts a string to a Family.
func ParseFamily(s string) (Family, error) {
	switch Family(s) {
	case FamilyGaussian:
		return FamilyGaussian, nil
	case FamilyBinomial:
		return FamilyBinomial, nil
	default:
		return "", fmt.Errorf("unknown outcome family %q (want %q or %q)",
			s, FamilyGaussian, FamilyBinomial)
	}
}

// ResidualScale identifies how residual draws are expressed.
//
// Samplers conventionally emit the error scale sigma (a standard
// deviation); recording the scale here means sigma is squared exactly
// once, at the point of use.
type ResidualScale string

const (
	// ScaleSD marks residual draws expressed as standard deviations.
	ScaleSD ResidualScale = "sd"

	// ScaleVariance marks residual draws expressed as variances.
	ScaleVariance ResidualScale = "variance"
)

// ParseResidualScale converts a string to a ResidualScale.
func ParseResidualScale(s string) (ResidualScale, error) {
	switch ResidualScale(s) {
	case ScaleSD:
		return ScaleSD, nil
	case ScaleVariance:
		return ScaleVariance, nil
	default:
		return "", fmt.Errorf("unknown residual scale %q (want %q or %q)",
			s, ScaleSD, ScaleVariance)
	}
}

// Draws holds posterior predictive output for one fitted model: a matrix
// of per-draw fitted values plus, for gaussian outcomes, per-draw
// residual-scale draws.
//
// Draws values are produced once per model fit and consumed exactly once;
// nothing in this package or its consumers mutates them.
type Draws struct {
	// Family is the outcome family.
	Family Family

	// Fitted is the S×N fitted-value matrix: Fitted[s][n] is the modeled
	// mean for observation n under posterior draw s. Rows keep the
	// sampler's draw order.
	Fitted [][]float64

	// Residual holds one residual-scale draw per posterior draw.
	// Required for gaussian outcomes; must be empty for binomial
	// outcomes, whose residual variance is implied by the probabilities.
	Residual []float64

	// ResidualScale says whether Residual values are standard deviations
	// or variances. Ignored when Residual is empty.
	ResidualScale ResidualScale
}

// NumDraws returns S, the number of posterior draws.
func (d *Draws) NumDraws() int {
	return len(d.Fitted)
}

// NumObs returns N, the number of observations per draw.
// Returns 0 for an empty matrix.
func (d *Draws) NumObs() int {
	if len(d.Fitted) == 0 {
		return 0
	}
	return len(d.Fitted[0])
}

// ResidualVariance returns the residual variance for draw s, squaring
// standard-deviation draws. Call only after Validate has passed and only
// for gaussian draws.
func (d *Draws) ResidualVariance(s int) float64 {
	v := d.Residual[s]
	if d.ResidualScale == ScaleSD {
		return v * v
	}
	return v
}

// Validate performs the eager shape and domain checks on the draws.
//
// Checks, in order:
//  1. Family is known.
//  2. The matrix is non-empty and rectangular, with at least two
//     observations per draw (the sample variance needs N ≥ 2).
//  3. Every fitted value is finite; binomial fitted values lie in [0,1].
//  4. Gaussian: residual draws present, length S, each finite and
//     strictly positive after conversion to variance.
//  5. Binomial: no residual draws supplied.
//
// Returns the first violation as an *InvalidInputError. The degenerate
// 0/0 variance check needs the computed variances and lives with the
// calculator.
func (d *Draws) Validate() error {
	if d.Family != FamilyGaussian && d.Family != FamilyBinomial {
		return newInvalidInput(ErrCodeDomainViolation, "unknown outcome family %q", d.Family)
	}

	s := d.NumDraws()
	if s == 0 {
		return newInvalidInput(ErrCodeShapeMismatch, "no posterior draws")
	}
	n := d.NumObs()
	if n < 2 {
		return newInvalidInput(ErrCodeShapeMismatch,
			"need at least 2 observations per draw for a sample variance, got %d", n)
	}

	for i, row := range d.Fitted {
		if len(row) != n {
			return &InvalidInputError{
				Code:    ErrCodeShapeMismatch,
				Message: fmt.Sprintf("ragged fitted-value matrix: draw has %d observations, want %d", len(row), n),
				Draw:    i,
				Obs:     -1,
			}
		}
		for j, mu := range row {
			if math.IsNaN(mu) || math.IsInf(mu, 0) {
				return &InvalidInputError{
					Code:    ErrCodeDomainViolation,
					Message: fmt.Sprintf("non-finite fitted value %v", mu),
					Draw:    i,
					Obs:     j,
				}
			}
			if d.Family == FamilyBinomial && (mu < 0 || mu > 1) {
				return &InvalidInputError{
					Code:    ErrCodeDomainViolation,
					Message: fmt.Sprintf("predicted probability %v outside [0,1]", mu),
					Draw:    i,
					Obs:     j,
				}
			}
		}
	}

	switch d.Family {
	case FamilyGaussian:
		if len(d.Residual) == 0 {
			return newInvalidInput(ErrCodeShapeMismatch,
				"gaussian outcome requires residual draws, none supplied")
		}
		if len(d.Residual) != s {
			return newInvalidInput(ErrCodeShapeMismatch,
				"residual draw count %d does not match posterior draw count %d", len(d.Residual), s)
		}
		if d.ResidualScale != ScaleSD && d.ResidualScale != ScaleVariance {
			return newInvalidInput(ErrCodeDomainViolation,
				"unknown residual scale %q", d.ResidualScale)
		}
		for i, r := range d.Residual {
			if math.IsNaN(r) || math.IsInf(r, 0) {
				return &InvalidInputError{
					Code:    ErrCodeDomainViolation,
					Message: fmt.Sprintf("non-finite residual draw %v", r),
					Draw:    i,
					Obs:     -1,
				}
			}
			if r <= 0 {
				return &InvalidInputError{
					Code:    ErrCodeDomainViolation,
					Message: fmt.Sprintf("residual draw %v is not strictly positive", r),
					Draw:    i,
					Obs:     -1,
				}
			}
		}
	case FamilyBinomial:
		if len(d.Residual) != 0 {
			return newInvalidInput(ErrCodeShapeMismatch,
				"binomial outcome implies its residual variance; residual draws must not be supplied")
		}
	}

	return nil
}
