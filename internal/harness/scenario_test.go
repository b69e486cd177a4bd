package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statpost/bayesr2/internal/draws"
)

func writeScenario(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	path := writeScenario(t, `
name: valid
family: binomial
draws:
  - [0.1, 0.9]
expect:
  r2: [0.5]
`)

	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "valid", sc.Name)
	assert.Equal(t, [][]float64{{0.1, 0.9}}, sc.Draws)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadScenario_UnknownField(t *testing.T) {
	// Strict decoding catches typos.
	path := writeScenario(t, `
name: typo
family: binomial
draws:
  - [0.1, 0.9]
expectation:
  r2: [0.5]
`)

	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestLoadScenario_MissingName(t *testing.T) {
	path := writeScenario(t, `
family: binomial
draws:
  - [0.1, 0.9]
expect:
  r2: [0.5]
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing name")
}

func TestLoadScenario_BadFamily(t *testing.T) {
	path := writeScenario(t, `
name: bad
family: poisson
draws:
  - [0.1, 0.9]
expect:
  r2: [0.5]
`)

	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestLoadScenario_ExpectsNothing(t *testing.T) {
	path := writeScenario(t, `
name: vacuous
family: binomial
draws:
  - [0.1, 0.9]
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expects nothing")
}

func TestLoadScenario_BadAssertion(t *testing.T) {
	path := writeScenario(t, `
name: bad-assert
family: binomial
draws:
  - [0.1, 0.9]
assertions:
  - type: summary
    stat: mode
    value: 0.5
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown stat")
}

func TestToDraws_DefaultsScale(t *testing.T) {
	sc := &Scenario{
		Name:     "defaults",
		Family:   "gaussian",
		Draws:    [][]float64{{1, 2}},
		Residual: []float64{1.5},
	}

	d := sc.toDraws()
	assert.Equal(t, draws.ScaleVariance, d.ResidualScale)
	assert.Equal(t, draws.FamilyGaussian, d.Family)
}
