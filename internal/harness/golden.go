package harness

import (
	"encoding/json"
	"fmt"
	"strconv"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot is the golden-file representation of a scenario run.
// R² values are formatted to six decimal places so the snapshot bytes
// are stable across platforms.
type Snapshot struct {
	Scenario string   `json:"scenario"`
	Family   string   `json:"family"`
	NumDraws int      `json:"n_draws,omitempty"`
	R2       []string `json:"r2,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// snapshot builds the serializable view of a result.
func snapshot(res *Result) Snapshot {
	snap := Snapshot{
		Scenario: res.Scenario.Name,
		Family:   res.Scenario.Family,
	}
	if res.ComputeErr != nil {
		snap.Error = res.ComputeErr.Error()
		return snap
	}
	snap.NumDraws = len(res.R2)
	snap.R2 = make([]string, len(res.R2))
	for i, v := range res.R2 {
		snap.R2[i] = strconv.FormatFloat(v, 'f', 6, 64)
	}
	return snap
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file. The golden file is testdata/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files serve as the source of truth for expected calculator
// output; scenario expectations and golden snapshots check the same run.
// Returns an error if the scenario's own expectations failed. Snapshot
// mismatches fail the test via goldie.
func RunWithGolden(t *testing.T, sc *Scenario) error {
	t.Helper()

	res := Run(sc)

	data, err := json.MarshalIndent(snapshot(res), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	data = append(data, '\n')

	g := goldie.New(t)
	g.Assert(t, sc.Name, data)

	if !res.Passed() {
		return fmt.Errorf("scenario %q: %d expectation(s) failed: %v", sc.Name, len(res.Failures), res.Failures)
	}
	return nil
}
