package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/statpost/bayesr2/internal/store"
	"github.com/statpost/bayesr2/internal/summary"
)

// SummaryOptions holds flags for the summary command.
type SummaryOptions struct {
	*RootOptions
	DB   string
	Bins int
}

// RunSummary is the summarized view of a stored run.
type RunSummary struct {
	RunID       string          `json:"run_id"`
	Name        string          `json:"name"`
	Family      string          `json:"family"`
	Fingerprint string          `json:"fingerprint"`
	Summary     summary.Summary `json:"summary"`
	Histogram   []summary.Bin   `json:"histogram,omitempty"`
}

// NewSummaryCommand creates the summary command.
func NewSummaryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SummaryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "summary <run-id>",
		Short: "Summarize a stored run",
		Long: `Summarize the R² sequence of a run recorded by "bayesr2 compute --db".

Prints posterior mean, standard deviation, median, and quartiles; with
--bins, also a fixed-width histogram of the draws.

Examples:
  bayesr2 summary 3f1c... --db results.db
  bayesr2 summary 3f1c... --db results.db --bins 10 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "SQLite results database (required)")
	cmd.Flags().IntVar(&opts.Bins, "bins", 0, "histogram bin count (0 disables the histogram)")
	cmd.MarkFlagRequired("db")

	return cmd
}

func runSummary(opts *SummaryOptions, runID string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := store.Open(opts.DB)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening results database", err)
	}
	defer st.Close()

	ctx := context.Background()

	run, err := st.GetRun(ctx, runID)
	if errors.Is(err, store.ErrRunNotFound) {
		return NewExitError(ExitCommandError, fmt.Sprintf("run %s not found", runID))
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "reading run", err)
	}

	r2, err := st.GetR2(ctx, runID)
	if err != nil {
		return WrapExitError(ExitCommandError, "reading R² draws", err)
	}

	s, err := summary.Describe(r2)
	if err != nil {
		return WrapExitError(ExitFailure, "summarizing run", err)
	}

	result := RunSummary{
		RunID:       run.ID,
		Name:        run.Name,
		Family:      string(run.Family),
		Fingerprint: run.Fingerprint,
		Summary:     s,
	}
	if opts.Bins > 0 {
		hist, err := summary.Histogram(r2, opts.Bins)
		if err != nil {
			return WrapExitError(ExitFailure, "binning run", err)
		}
		result.Histogram = hist
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "run %s: analysis %s (%s, %d draws)\n", run.ID, run.Name, run.Family, s.N)
	fmt.Fprintf(formatter.Writer, "  R2 mean %.4f  sd %.4f  median %.4f  q25 %.4f  q75 %.4f\n",
		s.Mean, s.SD, s.Median, s.Q25, s.Q75)
	for _, b := range result.Histogram {
		fmt.Fprintf(formatter.Writer, "  [%.4f, %.4f) %d\n", b.Lo, b.Hi, b.Count)
	}
	return nil
}
