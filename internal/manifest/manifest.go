package manifest

import (
	"fmt"
	"path/filepath"

	"cuelang.org/go/cue/token"

	"github.com/statpost/bayesr2/internal/dataset"
	"github.com/statpost/bayesr2/internal/draws"
)

// Analysis is one declared analysis: a draws file plus enough model
// context to compute R² from it.
type Analysis struct {
	// Name is the analysis label from the manifest.
	Name string

	// Family is the outcome family.
	Family draws.Family

	// Draws is the draws CSV path, relative to the manifest directory.
	Draws string

	// Residual describes the residual column for gaussian outcomes.
	// Nil for binomial outcomes.
	Residual *Residual

	// Trials is the declared binomial trial count. Zero means
	// undeclared, which defaults to 1 (Bernoulli). Any other value than
	// 1 is rejected during validation: grouped binomial outcomes are
	// unsupported.
	Trials int
}

// Residual names the residual column of a draws file and the scale its
// values are expressed on.
type Residual struct {
	Column string
	Scale  draws.ResidualScale
}

// Manifest is the set of analyses loaded from one manifest directory.
type Manifest struct {
	// Dir is the directory the manifest was loaded from; draws paths
	// resolve relative to it.
	Dir string

	// Analyses is sorted by name for deterministic iteration.
	Analyses []Analysis
}

// Lookup returns the named analysis, or nil.
func (m *Manifest) Lookup(name string) *Analysis {
	for i := range m.Analyses {
		if m.Analyses[i].Name == name {
			return &m.Analyses[i]
		}
	}
	return nil
}

// LoadDraws reads the analysis's draws file and assembles a draws.Draws
// ready for the calculator. Paths resolve relative to dir.
func (a *Analysis) LoadDraws(dir string) (*draws.Draws, error) {
	residualColumn := ""
	if a.Residual != nil {
		residualColumn = a.Residual.Column
	}

	f, err := dataset.Read(filepath.Join(dir, a.Draws), residualColumn)
	if err != nil {
		return nil, fmt.Errorf("analysis %q: %w", a.Name, err)
	}

	d := &draws.Draws{
		Family: a.Family,
		Fitted: f.Fitted,
	}
	if a.Residual != nil {
		d.Residual = f.Residual
		d.ResidualScale = a.Residual.Scale
	}
	return d, nil
}

// LoadError represents an error that occurred during manifest loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeBadAnalysis = "E007" // Analysis declaration invalid
)
