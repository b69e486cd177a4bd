// Package cli implements the bayesr2 command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the bayesr2 CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "bayesr2",
		Short: "Bayesian R² post-processing for posterior draws",
		Long: `bayesr2 computes the Bayesian R² diagnostic from posterior predictive
draws: one variance-ratio value per draw, plus posterior summaries.
Analyses are declared in CUE manifests; results can be recorded in a
SQLite store for later summarization.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewComputeCommand(opts))
	cmd.AddCommand(NewSummaryCommand(opts))
	cmd.AddCommand(NewRunsCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
