package harness

import (
	"fmt"
	"math"
	"strings"

	"github.com/statpost/bayesr2/internal/summary"
)

// AssertionError is returned when an assertion fails.
// It includes expected and actual values to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// evalAssertion evaluates one assertion against the computed sequence.
func evalAssertion(a *Assertion, r2 []float64) error {
	switch a.Type {
	case AssertCount:
		if len(r2) != a.Count {
			return &AssertionError{
				Type:     AssertCount,
				Expected: fmt.Sprintf("%d values", a.Count),
				Actual:   fmt.Sprintf("%d values", len(r2)),
			}
		}
		return nil
	case AssertSummary:
		return evalSummary(a, r2)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// evalSummary computes the requested statistic and compares it.
func evalSummary(a *Assertion, r2 []float64) error {
	var got float64

	switch a.Stat {
	case "quantile":
		q, err := summary.Quantile(r2, a.P)
		if err != nil {
			return err
		}
		got = q
	default:
		s, err := summary.Describe(r2)
		if err != nil {
			return err
		}
		switch a.Stat {
		case "mean":
			got = s.Mean
		case "median":
			got = s.Median
		case "sd":
			got = s.SD
		default:
			return fmt.Errorf("unknown summary stat %q", a.Stat)
		}
	}

	tol := a.Tolerance
	if tol == 0 {
		tol = defaultTolerance
	}
	if math.Abs(got-a.Value) > tol {
		name := a.Stat
		if a.Stat == "quantile" {
			name = fmt.Sprintf("quantile(p=%g)", a.P)
		}
		return &AssertionError{
			Type:     AssertSummary,
			Expected: fmt.Sprintf("%s within %g of %g", name, tol, a.Value),
			Actual:   fmt.Sprintf("%g", got),
		}
	}
	return nil
}
