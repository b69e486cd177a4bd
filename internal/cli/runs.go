package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/statpost/bayesr2/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	DB string
}

// RunInfo is the listing view of a stored run.
type RunInfo struct {
	RunID       string `json:"run_id"`
	Name        string `json:"name"`
	Family      string `json:"family"`
	NumDraws    int    `json:"n_draws"`
	NumObs      int    `json:"n_obs"`
	Fingerprint string `json:"fingerprint"`
	CreatedAt   string `json:"created_at"`
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List stored runs, newest first",
		Args:  cobra.NoArgs,
		Long: `List every run recorded in the results database, newest first.

Examples:
  bayesr2 runs --db results.db
  bayesr2 runs --db results.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "SQLite results database (required)")
	cmd.MarkFlagRequired("db")

	return cmd
}

func runRuns(opts *RunsOptions, cmd *cobra.Command) error {
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

	runs, err := st.ListRuns(context.Background())
	if err != nil {
		return WrapExitError(ExitCommandError, "listing runs", err)
	}

	infos := make([]RunInfo, 0, len(runs))
	for _, r := range runs {
		infos = append(infos, RunInfo{
			RunID:       r.ID,
			Name:        r.Name,
			Family:      string(r.Family),
			NumDraws:    r.NumDraws,
			NumObs:      r.NumObs,
			Fingerprint: r.Fingerprint,
			CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		})
	}

	if opts.Format == "json" {
		return formatter.Success(infos)
	}

	if len(infos) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded.")
		return nil
	}
	for _, info := range infos {
		fmt.Fprintf(formatter.Writer, "%s  %s  %s  %d x %d  %s\n",
			info.RunID, info.CreatedAt, info.Name, info.NumDraws, info.NumObs, info.Family)
	}
	return nil
}
