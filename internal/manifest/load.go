package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/statpost/bayesr2/internal/draws"
)

// LoadMode controls how errors are handled during manifest loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// rawAnalysis is the decode target for one CUE analysis value.
type rawAnalysis struct {
	Family   string `json:"family"`
	Draws    string `json:"draws"`
	Residual *struct {
		Column string `json:"column"`
		Scale  string `json:"scale"`
	} `json:"residual"`
	Trials *int `json:"trials"`
}

// Load reads and decodes CUE manifests from a directory.
// If mode is LoadModeFailFast, returns on first error.
// If mode is LoadModeCollectAll, collects all errors.
func Load(dir string, mode LoadMode) (*Manifest, []error) {
	var errs []error

	// Verify directory exists
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("manifest directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing manifest directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	// Find CUE files
	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	// Load CUE instances
	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}

	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	result := &Manifest{Dir: dir}

	analysesVal := value.LookupPath(cue.ParsePath("analysis"))
	if !analysesVal.Exists() {
		return result, []error{&LoadError{Code: ErrCodeGeneric, Message: "no analyses found in manifest (want a top-level \"analysis\" struct)"}}
	}

	iter, iterErr := analysesVal.Fields()
	if iterErr != nil {
		return result, []error{&LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating analyses: %v", iterErr)}}
	}
	for iter.Next() {
		a, decodeErr := decodeAnalysis(iter.Label(), iter.Value())
		if decodeErr != nil {
			errs = append(errs, decodeErr)
			if mode == LoadModeFailFast {
				return result, errs
			}
			continue
		}
		result.Analyses = append(result.Analyses, *a)
	}

	if len(result.Analyses) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: "manifest declares no analyses"})
	}

	// CUE field order is declaration order; sort by name so every
	// consumer iterates deterministically regardless of file layout.
	sort.Slice(result.Analyses, func(i, j int) bool {
		return result.Analyses[i].Name < result.Analyses[j].Name
	})

	return result, errs
}

// decodeAnalysis decodes one analysis value and parses its enums.
func decodeAnalysis(label string, v cue.Value) (*Analysis, *LoadError) {
	var raw rawAnalysis
	if err := v.Decode(&raw); err != nil {
		return nil, &LoadError{
			Code:    ErrCodeBadAnalysis,
			Message: fmt.Sprintf("analysis %q: %v", label, err),
			Pos:     v.Pos(),
		}
	}

	family, err := draws.ParseFamily(raw.Family)
	if err != nil {
		return nil, &LoadError{
			Code:    ErrCodeBadAnalysis,
			Message: fmt.Sprintf("analysis %q: %v", label, err),
			Pos:     v.Pos(),
		}
	}
	if raw.Draws == "" {
		return nil, &LoadError{
			Code:    ErrCodeBadAnalysis,
			Message: fmt.Sprintf("analysis %q: missing draws file", label),
			Pos:     v.Pos(),
		}
	}

	a := &Analysis{
		Name:   label,
		Family: family,
		Draws:  raw.Draws,
	}
	if raw.Residual != nil {
		scale, err := draws.ParseResidualScale(raw.Residual.Scale)
		if err != nil {
			return nil, &LoadError{
				Code:    ErrCodeBadAnalysis,
				Message: fmt.Sprintf("analysis %q: %v", label, err),
				Pos:     v.Pos(),
			}
		}
		if raw.Residual.Column == "" {
			return nil, &LoadError{
				Code:    ErrCodeBadAnalysis,
				Message: fmt.Sprintf("analysis %q: residual column must be named", label),
				Pos:     v.Pos(),
			}
		}
		a.Residual = &Residual{Column: raw.Residual.Column, Scale: scale}
	}
	if raw.Trials != nil {
		a.Trials = *raw.Trials
	}

	return a, nil
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
