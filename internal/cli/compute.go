package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/statpost/bayesr2/internal/bayesr2"
	"github.com/statpost/bayesr2/internal/manifest"
	"github.com/statpost/bayesr2/internal/store"
	"github.com/statpost/bayesr2/internal/summary"
)

// ComputeOptions holds flags for the compute command.
type ComputeOptions struct {
	*RootOptions
	DB       string // results database path; empty means don't record
	Analysis string // restrict to one analysis by name
}

// AnalysisResult is the computed output for one analysis.
type AnalysisResult struct {
	Name        string          `json:"name"`
	Family      string          `json:"family"`
	NumDraws    int             `json:"n_draws"`
	NumObs      int             `json:"n_obs"`
	Fingerprint string          `json:"fingerprint"`
	R2          []float64       `json:"r2"`
	Summary     summary.Summary `json:"summary"`
	RunID       string          `json:"run_id,omitempty"`
}

// NewComputeCommand creates the compute command.
func NewComputeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ComputeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compute <manifest-dir>",
		Short: "Compute Bayesian R² for every analysis in a manifest",
		Long: `Compute the per-draw Bayesian R² sequence for each analysis declared
in the manifest directory, along with posterior summaries.

With --db, each computation is recorded as a run in the results store;
the printed run id can be fed to "bayesr2 summary" later.

Exit codes:
  0 - All analyses computed
  1 - Validation or computation failure
  2 - Command error (directory missing, database unavailable, etc.)

Examples:
  bayesr2 compute ./analyses
  bayesr2 compute ./analyses --analysis kidscore
  bayesr2 compute ./analyses --db results.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "record runs in this SQLite results database")
	cmd.Flags().StringVar(&opts.Analysis, "analysis", "", "compute only the named analysis")

	return cmd
}

func runCompute(opts *ComputeOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	m, loadErrs := manifest.Load(dir, manifest.LoadModeFailFast)
	if len(loadErrs) > 0 {
		var loadErr *manifest.LoadError
		if errors.As(loadErrs[0], &loadErr) {
			formatter.Error(loadErr.Code, loadErr.Message, nil)
		} else {
			formatter.Error(manifest.ErrCodeGeneric, loadErrs[0].Error(), nil)
		}
		return NewExitError(ExitCommandError, "manifest could not be loaded")
	}

	if problems := manifest.Validate(m); len(problems) > 0 {
		for _, p := range problems {
			formatter.Error(manifest.ErrCodeBadAnalysis, p.Error(), nil)
		}
		return NewExitError(ExitFailure, "manifest validation failed")
	}

	analyses := m.Analyses
	if opts.Analysis != "" {
		a := m.Lookup(opts.Analysis)
		if a == nil {
			return NewExitError(ExitCommandError, fmt.Sprintf("analysis %q not found in manifest", opts.Analysis))
		}
		analyses = []manifest.Analysis{*a}
	}

	var st *store.Store
	if opts.DB != "" {
		var err error
		st, err = store.Open(opts.DB)
		if err != nil {
			return WrapExitError(ExitCommandError, "opening results database", err)
		}
		defer st.Close()
	}

	ctx := context.Background()
	results := make([]AnalysisResult, 0, len(analyses))
	for i := range analyses {
		res, err := computeAnalysis(ctx, &analyses[i], m.Dir, st, formatter)
		if err != nil {
			formatter.Error(manifest.ErrCodeBadAnalysis, err.Error(), nil)
			return NewExitError(ExitFailure, fmt.Sprintf("analysis %q failed", analyses[i].Name))
		}
		results = append(results, *res)
	}

	if opts.Format == "json" {
		return formatter.Success(results)
	}
	for _, res := range results {
		printAnalysisResult(formatter, &res)
	}
	return nil
}

// computeAnalysis loads one analysis's draws, computes R², and records
// the run when a store is open.
func computeAnalysis(ctx context.Context, a *manifest.Analysis, dir string, st *store.Store, formatter *OutputFormatter) (*AnalysisResult, error) {
	d, err := a.LoadDraws(dir)
	if err != nil {
		return nil, err
	}
	formatter.VerboseLog("analysis %q: %d draws x %d observations", a.Name, d.NumDraws(), d.NumObs())

	r2, err := bayesr2.Compute(d)
	if err != nil {
		return nil, fmt.Errorf("analysis %q: %w", a.Name, err)
	}

	s, err := summary.Describe(r2)
	if err != nil {
		return nil, fmt.Errorf("analysis %q: %w", a.Name, err)
	}

	res := &AnalysisResult{
		Name:        a.Name,
		Family:      string(a.Family),
		NumDraws:    d.NumDraws(),
		NumObs:      d.NumObs(),
		Fingerprint: d.Fingerprint(),
		R2:          r2,
		Summary:     s,
	}

	if st != nil {
		run, err := st.SaveRun(ctx, a.Name, d, r2)
		if err != nil {
			return nil, fmt.Errorf("analysis %q: recording run: %w", a.Name, err)
		}
		res.RunID = run.ID
		formatter.VerboseLog("analysis %q: recorded run %s", a.Name, run.ID)
	}

	return res, nil
}

// printAnalysisResult writes the human-readable form of one result.
func printAnalysisResult(f *OutputFormatter, res *AnalysisResult) {
	fmt.Fprintf(f.Writer, "analysis %s (%s, %d draws x %d obs)\n", res.Name, res.Family, res.NumDraws, res.NumObs)
	fmt.Fprintf(f.Writer, "  R2 mean %.4f  sd %.4f  median %.4f  q25 %.4f  q75 %.4f\n",
		res.Summary.Mean, res.Summary.SD, res.Summary.Median, res.Summary.Q25, res.Summary.Q75)
	if res.RunID != "" {
		fmt.Fprintf(f.Writer, "  recorded run %s\n", res.RunID)
	}
}
