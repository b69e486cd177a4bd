package harness

import (
	"fmt"
	"math"

	"github.com/statpost/bayesr2/internal/bayesr2"
	"github.com/statpost/bayesr2/internal/draws"
)

// defaultTolerance is the absolute tolerance used when a scenario does
// not declare one.
const defaultTolerance = 1e-9

// Result holds the outcome of running one scenario.
type Result struct {
	// Scenario is the scenario that ran.
	Scenario *Scenario

	// R2 is the computed sequence. Nil when the computation errored.
	R2 []float64

	// ComputeErr is the calculator error, if any. A scenario expecting
	// an error code passes when this matches.
	ComputeErr error

	// Failures lists every expectation or assertion that did not hold.
	// Empty means the scenario passed.
	Failures []error
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// Run executes a scenario against the real calculator and evaluates all
// of its expectations. Failures accumulate; Run never stops at the
// first.
func Run(sc *Scenario) *Result {
	res := &Result{Scenario: sc}

	r2, err := bayesr2.Compute(sc.toDraws())
	res.R2 = r2
	res.ComputeErr = err

	if sc.Expect.Error != "" {
		checkExpectedError(res, sc, err)
		return res
	}

	if err != nil {
		res.Failures = append(res.Failures, fmt.Errorf("computation failed: %w", err))
		return res
	}

	checkExpectedR2(res, sc, r2)
	for i := range sc.Assertions {
		if err := evalAssertion(&sc.Assertions[i], r2); err != nil {
			res.Failures = append(res.Failures, err)
		}
	}

	return res
}

// checkExpectedError validates the expected invalid-input code.
func checkExpectedError(res *Result, sc *Scenario, err error) {
	want := draws.ErrorCode(sc.Expect.Error)
	if err == nil {
		res.Failures = append(res.Failures, &AssertionError{
			Type:     "error",
			Expected: fmt.Sprintf("invalid input with code %s", want),
			Actual:   "computation succeeded",
		})
		return
	}
	if got := draws.CodeOf(err); got != want {
		res.Failures = append(res.Failures, &AssertionError{
			Type:     "error",
			Expected: fmt.Sprintf("invalid input with code %s", want),
			Actual:   err.Error(),
		})
	}
}

// checkExpectedR2 compares the computed sequence against the declared one.
func checkExpectedR2(res *Result, sc *Scenario, r2 []float64) {
	if len(sc.Expect.R2) == 0 {
		return
	}

	if len(sc.Expect.R2) != len(r2) {
		res.Failures = append(res.Failures, &AssertionError{
			Type:     "r2",
			Expected: fmt.Sprintf("%d values", len(sc.Expect.R2)),
			Actual:   fmt.Sprintf("%d values", len(r2)),
		})
		return
	}

	tol := sc.Expect.Tolerance
	if tol == 0 {
		tol = defaultTolerance
	}
	for i, want := range sc.Expect.R2 {
		if math.Abs(r2[i]-want) > tol {
			res.Failures = append(res.Failures, &AssertionError{
				Type:     "r2",
				Expected: fmt.Sprintf("draw %d within %g of %g", i, tol, want),
				Actual:   fmt.Sprintf("%g", r2[i]),
			})
		}
	}
}
