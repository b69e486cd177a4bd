package draws

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFamily(t *testing.T) {
	f, err := ParseFamily("gaussian")
	require.NoError(t, err)
	assert.Equal(t, FamilyGaussian, f)

	f, err = ParseFamily("binomial")
	require.NoError(t, err)
	assert.Equal(t, FamilyBinomial, f)

	_, err = ParseFamily("poisson")
	assert.Error(t, err)
}

func TestParseResidualScale(t *testing.T) {
	s, err := ParseResidualScale("sd")
	require.NoError(t, err)
	assert.Equal(t, ScaleSD, s)

	s, err = ParseResidualScale("variance")
	require.NoError(t, err)
	assert.Equal(t, ScaleVariance, s)

	_, err = ParseResidualScale("precision")
	assert.Error(t, err)
}

func TestValidate_GaussianWellFormed(t *testing.T) {
	d := &Draws{
		Family: FamilyGaussian,
		Fitted: [][]float64{
			{1.2, 3.4, 2.2},
			{1.0, 3.0, 2.5},
		},
		Residual:      []float64{1.5, 2.0},
		ResidualScale: ScaleVariance,
	}

	assert.NoError(t, d.Validate())
	assert.Equal(t, 2, d.NumDraws())
	assert.Equal(t, 3, d.NumObs())
}

func TestValidate_BinomialWellFormed(t *testing.T) {
	d := &Draws{
		Family: FamilyBinomial,
		Fitted: [][]float64{
			{0.1, 0.9, 0.1, 0.9},
		},
	}

	assert.NoError(t, d.Validate())
}

func TestValidate_EmptyMatrix(t *testing.T) {
	d := &Draws{Family: FamilyGaussian}

	err := d.Validate()
	require.Error(t, err)
	assert.Equal(t, ErrCodeShapeMismatch, CodeOf(err))
}

func TestValidate_SingleObservation(t *testing.T) {
	// A sample variance with N-1 denominator needs at least two values.
	d := &Draws{
		Family:        FamilyGaussian,
		Fitted:        [][]float64{{1.0}},
		Residual:      []float64{1.0},
		ResidualScale: ScaleVariance,
	}

	err := d.Validate()
	require.Error(t, err)
	assert.Equal(t, ErrCodeShapeMismatch, CodeOf(err))
}

func TestValidate_RaggedRows(t *testing.T) {
	d := &Draws{
		Family: FamilyBinomial,
		Fitted: [][]float64{
			{0.1, 0.9, 0.5},
			{0.1, 0.9},
		},
	}

	err := d.Validate()
	require.Error(t, err)
	assert.Equal(t, ErrCodeShapeMismatch, CodeOf(err))

	var ie *InvalidInputError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 1, ie.Draw)
}

func TestValidate_ResidualCountMismatch(t *testing.T) {
	d := &Draws{
		Family: FamilyGaussian,
		Fitted: [][]float64{
			{1.2, 3.4},
			{1.0, 3.0},
		},
		Residual:      []float64{1.5},
		ResidualScale: ScaleVariance,
	}

	err := d.Validate()
	require.Error(t, err)
	assert.Equal(t, ErrCodeShapeMismatch, CodeOf(err))
}

func TestValidate_MissingResidual(t *testing.T) {
	d := &Draws{
		Family: FamilyGaussian,
		Fitted: [][]float64{{1.2, 3.4}},
	}

	err := d.Validate()
	require.Error(t, err)
	assert.Equal(t, ErrCodeShapeMismatch, CodeOf(err))
}

func TestValidate_BinomialWithResidual(t *testing.T) {
	d := &Draws{
		Family:        FamilyBinomial,
		Fitted:        [][]float64{{0.1, 0.9}},
		Residual:      []float64{1.0},
		ResidualScale: ScaleVariance,
	}

	err := d.Validate()
	require.Error(t, err)
	assert.Equal(t, ErrCodeShapeMismatch, CodeOf(err))
}

func TestValidate_ProbabilityOutOfRange(t *testing.T) {
	d := &Draws{
		Family: FamilyBinomial,
		Fitted: [][]float64{
			{0.1, 0.9},
			{0.5, 1.3},
		},
	}

	err := d.Validate()
	require.Error(t, err)
	assert.Equal(t, ErrCodeDomainViolation, CodeOf(err))

	var ie *InvalidInputError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 1, ie.Draw)
	assert.Equal(t, 1, ie.Obs)
}

func TestValidate_ProbabilityEndpointsAllowed(t *testing.T) {
	// 0 and 1 are valid probabilities; only values outside [0,1] fail.
	d := &Draws{
		Family: FamilyBinomial,
		Fitted: [][]float64{{0.0, 1.0, 0.5}},
	}

	assert.NoError(t, d.Validate())
}

func TestValidate_NonPositiveResidual(t *testing.T) {
	for _, bad := range []float64{0, -1.5} {
		d := &Draws{
			Family:        FamilyGaussian,
			Fitted:        [][]float64{{1.2, 3.4}},
			Residual:      []float64{bad},
			ResidualScale: ScaleVariance,
		}

		err := d.Validate()
		require.Error(t, err)
		assert.Equal(t, ErrCodeDomainViolation, CodeOf(err))
	}
}

func TestValidate_NonFiniteValues(t *testing.T) {
	d := &Draws{
		Family:        FamilyGaussian,
		Fitted:        [][]float64{{1.2, math.NaN()}},
		Residual:      []float64{1.0},
		ResidualScale: ScaleVariance,
	}
	err := d.Validate()
	require.Error(t, err)
	assert.Equal(t, ErrCodeDomainViolation, CodeOf(err))

	d = &Draws{
		Family:        FamilyGaussian,
		Fitted:        [][]float64{{1.2, 3.4}},
		Residual:      []float64{math.Inf(1)},
		ResidualScale: ScaleVariance,
	}
	err = d.Validate()
	require.Error(t, err)
	assert.Equal(t, ErrCodeDomainViolation, CodeOf(err))
}

func TestResidualVariance_SquaresSDOnce(t *testing.T) {
	d := &Draws{
		Family:        FamilyGaussian,
		Fitted:        [][]float64{{1.2, 3.4}},
		Residual:      []float64{2.0},
		ResidualScale: ScaleSD,
	}

	assert.InDelta(t, 4.0, d.ResidualVariance(0), 1e-15)

	d.ResidualScale = ScaleVariance
	assert.InDelta(t, 2.0, d.ResidualVariance(0), 1e-15)
}
