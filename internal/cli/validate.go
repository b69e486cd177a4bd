package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/statpost/bayesr2/internal/manifest"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Analyses []string `json:"analyses,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <manifest-dir>",
		Short: "Validate analysis manifests without computing",
		Long: `Validate CUE analysis manifests and their draws files.

Checks manifest syntax, family/residual consistency, trial counts, and
draws file existence. Collects every problem before reporting, so one
pass surfaces all of them.

Exit codes:
  0 - Manifest valid
  1 - Validation problems found
  2 - Command error (directory missing, unreadable manifest, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	m, loadErrs := manifest.Load(dir, manifest.LoadModeCollectAll)
	if m == nil && len(loadErrs) > 0 {
		var loadErr *manifest.LoadError
		if errors.As(loadErrs[0], &loadErr) {
			formatter.Error(loadErr.Code, loadErr.Message, nil)
		} else {
			formatter.Error(manifest.ErrCodeGeneric, loadErrs[0].Error(), nil)
		}
		return NewExitError(ExitCommandError, "manifest could not be loaded")
	}

	formatter.VerboseLog("Loaded %d analysis declaration(s) from %s", len(m.Analyses), dir)

	var problems []string
	for _, err := range loadErrs {
		problems = append(problems, err.Error())
	}
	for _, err := range manifest.Validate(m) {
		problems = append(problems, err.Error())
	}

	names := make([]string, 0, len(m.Analyses))
	for _, a := range m.Analyses {
		names = append(names, a.Name)
	}

	result := ValidationResult{
		Valid:    len(problems) == 0,
		Analyses: names,
		Errors:   problems,
	}

	if !result.Valid {
		if opts.Format == "json" {
			formatter.Success(result)
		} else {
			for _, p := range problems {
				formatter.Error(manifest.ErrCodeBadAnalysis, p, nil)
			}
		}
		return NewExitError(ExitFailure, "manifest validation failed")
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success("manifest valid")
}
