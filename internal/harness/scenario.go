package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/statpost/bayesr2/internal/draws"
)

// Scenario defines one conformance scenario: an inline draws input plus
// the expected calculator output.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden
	// file when the scenario is run with RunWithGolden.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Family is the outcome family: "gaussian" or "binomial".
	Family string `yaml:"family"`

	// Draws is the fitted-value matrix, one row per posterior draw.
	Draws [][]float64 `yaml:"draws"`

	// Residual holds per-draw residual draws for gaussian scenarios.
	Residual []float64 `yaml:"residual,omitempty"`

	// ResidualScale is "sd" or "variance". Defaults to "variance".
	ResidualScale string `yaml:"residual_scale,omitempty"`

	// Expect describes the expected outcome.
	Expect Expect `yaml:"expect"`

	// Assertions validate summaries of the computed sequence.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Expect specifies the expected calculator outcome.
type Expect struct {
	// R2 lists the expected per-draw values, in draw order.
	// Ignored when Error is set.
	R2 []float64 `yaml:"r2,omitempty"`

	// Tolerance is the absolute tolerance for R2 comparisons.
	// Defaults to 1e-9.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Error is the expected invalid-input code (e.g. "SHAPE_MISMATCH").
	// Empty means the computation must succeed.
	Error string `yaml:"error,omitempty"`
}

// Assertion validates a summary of the computed R² sequence.
type Assertion struct {
	// Type specifies the assertion type:
	// - "summary": compare a summary statistic against Value
	// - "count": check the result length
	Type string `yaml:"type"`

	// Stat names the statistic for summary assertions:
	// "mean", "median", "sd", or "quantile".
	Stat string `yaml:"stat,omitempty"`

	// P is the probability for quantile assertions.
	P float64 `yaml:"p,omitempty"`

	// Value is the expected statistic value (summary assertions).
	Value float64 `yaml:"value,omitempty"`

	// Tolerance is the absolute tolerance. Defaults to 1e-9.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Count is the expected result length (count assertions).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertSummary = "summary"
	AssertCount   = "count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks required fields and enum values.
func validateScenario(sc *Scenario) error {
	if sc.Name == "" {
		return fmt.Errorf("missing name")
	}
	if _, err := draws.ParseFamily(sc.Family); err != nil {
		return err
	}
	if len(sc.Draws) == 0 {
		return fmt.Errorf("scenario %q: no draws", sc.Name)
	}
	if sc.ResidualScale != "" {
		if _, err := draws.ParseResidualScale(sc.ResidualScale); err != nil {
			return fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
	}
	if sc.Expect.Error == "" && len(sc.Expect.R2) == 0 && len(sc.Assertions) == 0 {
		return fmt.Errorf("scenario %q: expects nothing (no r2, no error, no assertions)", sc.Name)
	}
	for i, a := range sc.Assertions {
		switch a.Type {
		case AssertSummary:
			switch a.Stat {
			case "mean", "median", "sd", "quantile":
			default:
				return fmt.Errorf("scenario %q: assertion %d: unknown stat %q", sc.Name, i, a.Stat)
			}
		case AssertCount:
		default:
			return fmt.Errorf("scenario %q: assertion %d: unknown type %q", sc.Name, i, a.Type)
		}
	}
	return nil
}

// toDraws assembles the calculator input declared by the scenario.
func (sc *Scenario) toDraws() *draws.Draws {
	scale := draws.ScaleVariance
	if sc.ResidualScale != "" {
		scale = draws.ResidualScale(sc.ResidualScale)
	}
	return &draws.Draws{
		Family:        draws.Family(sc.Family),
		Fitted:        sc.Draws,
		Residual:      sc.Residual,
		ResidualScale: scale,
	}
}
