package draws

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sample() *Draws {
	return &Draws{
		Family: FamilyGaussian,
		Fitted: [][]float64{
			{1.2, 3.4, 2.2},
			{1.0, 3.0, 2.5},
		},
		Residual:      []float64{1.5, 2.0},
		ResidualScale: ScaleVariance,
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	a := sample().Fingerprint()
	b := sample().Fingerprint()

	assert.Equal(t, a, b, "identical draws must fingerprint identically")
	assert.Len(t, a, 64, "hex-encoded SHA-256")
}

func TestFingerprint_SensitiveToValues(t *testing.T) {
	base := sample().Fingerprint()

	d := sample()
	d.Fitted[1][2] = 2.5000001
	assert.NotEqual(t, base, d.Fingerprint(), "value change must change fingerprint")

	d = sample()
	d.Residual[0] = 1.6
	assert.NotEqual(t, base, d.Fingerprint(), "residual change must change fingerprint")
}

func TestFingerprint_SensitiveToFamilyAndScale(t *testing.T) {
	d := sample()
	base := d.Fingerprint()

	d.ResidualScale = ScaleSD
	withSD := d.Fingerprint()
	assert.NotEqual(t, base, withSD, "scale is part of identity")
}

func TestFingerprint_SensitiveToShape(t *testing.T) {
	// A 2x3 matrix and a 3x2 matrix with the same values in row-major
	// order must not collide: dimensions are hashed explicitly.
	a := &Draws{
		Family: FamilyBinomial,
		Fitted: [][]float64{{0.1, 0.2, 0.3}, {0.4, 0.5, 0.6}},
	}
	b := &Draws{
		Family: FamilyBinomial,
		Fitted: [][]float64{{0.1, 0.2}, {0.3, 0.4}, {0.5, 0.6}},
	}

	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
