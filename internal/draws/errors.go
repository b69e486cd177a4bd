package draws

import (
	"errors"
	"fmt"
)

// InvalidInputError represents a caller contract violation detected while
// validating posterior draws.
//
// Invalid input covers:
//   - Shape mismatches: wrong residual draw count, ragged rows, empty input
//   - Domain violations: probabilities outside [0,1], non-positive residual
//     variance, NaN or Inf values
//   - Degenerate variance: a draw where both the fitted-value variance and
//     the residual variance are zero (0/0)
//   - Grouped binomial: multi-trial binomial outcomes, which are not
//     supported and are rejected rather than silently mishandled
//
// None of these are retried: they indicate malformed input, not a
// transient condition.
type InvalidInputError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Draw is the offending draw index, or -1 when not draw-specific.
	Draw int

	// Obs is the offending observation index, or -1 when not
	// observation-specific.
	Obs int
}

// ErrorCode categorizes invalid-input errors.
type ErrorCode string

const (
	// ErrCodeShapeMismatch indicates inconsistent dimensions: an empty
	// matrix, ragged rows, or residual draws whose length differs from
	// the number of posterior draws.
	ErrCodeShapeMismatch ErrorCode = "SHAPE_MISMATCH"

	// ErrCodeDomainViolation indicates a value outside its domain: a
	// predicted probability outside [0,1], a non-positive residual
	// variance, or a NaN/Inf anywhere in the input.
	ErrCodeDomainViolation ErrorCode = "DOMAIN_VIOLATION"

	// ErrCodeDegenerateVariance indicates a draw whose fitted-value
	// variance and residual variance are both zero, making the R² ratio
	// 0/0.
	ErrCodeDegenerateVariance ErrorCode = "DEGENERATE_VARIANCE"

	// ErrCodeGroupedBinomial indicates a binomial outcome with more than
	// one trial per observation. Grouped binomial outcomes are rejected
	// explicitly.
	ErrCodeGroupedBinomial ErrorCode = "GROUPED_BINOMIAL"
)

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	switch {
	case e.Draw >= 0 && e.Obs >= 0:
		return fmt.Sprintf("%s: %s (draw=%d, obs=%d)", e.Code, e.Message, e.Draw, e.Obs)
	case e.Draw >= 0:
		return fmt.Sprintf("%s: %s (draw=%d)", e.Code, e.Message, e.Draw)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// newInvalidInput builds an InvalidInputError without positional context.
func newInvalidInput(code ErrorCode, format string, args ...any) *InvalidInputError {
	return &InvalidInputError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Draw:    -1,
		Obs:     -1,
	}
}

// IsInvalidInput returns true if the error is an InvalidInputError.
// Uses errors.As to handle wrapped errors.
func IsInvalidInput(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}

// CodeOf extracts the error code from an InvalidInputError.
// Returns the empty code if the error is not an InvalidInputError.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var ie *InvalidInputError
	if errors.As(err, &ie) {
		return ie.Code
	}
	return ""
}
