package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/statpost/bayesr2/internal/draws"
)

// Validate cross-checks every analysis in the manifest and returns all
// problems found. An empty slice means the manifest is well-formed.
//
// Rules:
//  1. Gaussian analyses must declare a residual column; binomial
//     analyses must not.
//  2. Binomial trials, when declared, must equal 1. Grouped binomial
//     outcomes (trials > 1, or aggregated multi-column outcomes) are
//     rejected explicitly rather than silently treated as Bernoulli.
//  3. Each draws file must exist.
//
// Rule 2 violations surface as *draws.InvalidInputError with code
// GROUPED_BINOMIAL so callers can distinguish them programmatically.
func Validate(m *Manifest) []error {
	var errs []error
	for i := range m.Analyses {
		errs = append(errs, validateAnalysis(m.Dir, &m.Analyses[i])...)
	}
	return errs
}

// validateAnalysis checks one analysis, collecting every violation.
func validateAnalysis(dir string, a *Analysis) []error {
	var errs []error

	switch a.Family {
	case draws.FamilyGaussian:
		if a.Residual == nil {
			errs = append(errs, fmt.Errorf(
				"analysis %q: gaussian outcome requires a residual declaration", a.Name))
		}
		if a.Trials != 0 {
			errs = append(errs, fmt.Errorf(
				"analysis %q: trials only applies to binomial outcomes", a.Name))
		}
	case draws.FamilyBinomial:
		if a.Residual != nil {
			errs = append(errs, fmt.Errorf(
				"analysis %q: binomial outcome implies its residual variance; residual must not be declared", a.Name))
		}
		if a.Trials != 0 && a.Trials != 1 {
			errs = append(errs, fmt.Errorf("analysis %q: %w", a.Name, &draws.InvalidInputError{
				Code:    draws.ErrCodeGroupedBinomial,
				Message: fmt.Sprintf("grouped binomial outcomes (trials=%d) are not supported", a.Trials),
				Draw:    -1,
				Obs:     -1,
			}))
		}
	}

	if a.Draws != "" {
		path := filepath.Join(dir, a.Draws)
		if _, err := os.Stat(path); err != nil {
			errs = append(errs, fmt.Errorf("analysis %q: draws file %s: %w", a.Name, path, err))
		}
	}

	return errs
}
