package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/statpost/bayesr2/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Filter string // scenario filter (glob pattern on the scenario name)
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenario-file-or-dir>",
		Short: "Run conformance scenarios",
		Long: `Run conformance scenarios against the R² calculator.

A scenario declares inline posterior draws plus the expected per-draw
R² values (or expected error code) and optional summary assertions.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, malformed scenarios, etc.)

Examples:
  bayesr2 test ./scenarios
  bayesr2 test ./scenarios --filter "binomial-*"
  bayesr2 test scenario.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern on the name")

	return cmd
}

func runTests(opts *TestOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	files, err := findScenarioFiles(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "finding scenarios", err)
	}
	if len(files) == 0 {
		if opts.Format == "json" {
			return formatter.Success(TestResult{Scenarios: []ScenarioResult{}})
		}
		fmt.Fprintln(formatter.Writer, "No scenarios found.")
		return nil
	}

	result := TestResult{Scenarios: make([]ScenarioResult, 0, len(files))}
	for _, file := range files {
		sc, err := harness.LoadScenario(file)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("loading %s", file), err)
		}
		if opts.Filter != "" {
			match, err := filepath.Match(opts.Filter, sc.Name)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid --filter pattern", err)
			}
			if !match {
				continue
			}
		}

		formatter.VerboseLog("running scenario %s", sc.Name)
		res := harness.Run(sc)

		sr := ScenarioResult{Name: sc.Name, Pass: res.Passed()}
		for _, f := range res.Failures {
			sr.Errors = append(sr.Errors, f.Error())
		}
		result.Scenarios = append(result.Scenarios, sr)
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}
	result.Total = len(result.Scenarios)

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		printTestResult(formatter, result)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenario(s) failed", result.Failed, result.Total))
	}
	return nil
}

// findScenarioFiles returns the scenario files under path, sorted.
// A single file path is returned as-is; a directory is scanned for
// .yaml and .yml files.
func findScenarioFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(p)) {
		case ".yaml", ".yml":
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// printTestResult writes the human-readable scenario report.
func printTestResult(f *OutputFormatter, result TestResult) {
	for _, sr := range result.Scenarios {
		status := "PASS"
		if !sr.Pass {
			status = "FAIL"
		}
		fmt.Fprintf(f.Writer, "%s  %s\n", status, sr.Name)
		for _, e := range sr.Errors {
			fmt.Fprintf(f.Writer, "      %s\n", indent(e))
		}
	}
	fmt.Fprintf(f.Writer, "%d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
}

// indent reindents a multi-line failure message for report nesting.
func indent(s string) string {
	return strings.ReplaceAll(s, "\n", "\n      ")
}
