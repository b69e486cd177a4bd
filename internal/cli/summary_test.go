package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// computeWithDB runs compute against a fresh manifest and returns the
// database path plus the recorded run ids by analysis name.
func computeWithDB(t *testing.T) (string, map[string]string) {
	t.Helper()
	dir := writeManifestDir(t)
	db := filepath.Join(t.TempDir(), "results.db")

	buf := &bytes.Buffer{}
	cmd := NewComputeCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir, "--db", db})
	require.NoError(t, cmd.Execute())

	var resp struct {
		Data []AnalysisResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))

	runs := map[string]string{}
	for _, res := range resp.Data {
		runs[res.Name] = res.RunID
	}
	return db, runs
}

func TestSummary_Text(t *testing.T) {
	db, runs := computeWithDB(t)

	buf := &bytes.Buffer{}
	cmd := NewSummaryCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{runs["kidscore"], "--db", db})

	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "analysis kidscore")
	assert.Contains(t, out, "R2 mean")
}

func TestSummary_JSONWithHistogram(t *testing.T) {
	db, runs := computeWithDB(t)

	buf := &bytes.Buffer{}
	cmd := NewSummaryCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{runs["kidscore"], "--db", db, "--bins", "4"})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string     `json:"status"`
		Data   RunSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "kidscore", resp.Data.Name)
	assert.Equal(t, 3, resp.Data.Summary.N)
	assert.InDelta(t, 0.5715048515784750, resp.Data.Summary.Mean, 1e-9)
	assert.NotEmpty(t, resp.Data.Histogram)
	assert.NotEmpty(t, resp.Data.Fingerprint)
}

func TestSummary_UnknownRun(t *testing.T) {
	db, _ := computeWithDB(t)

	cmd := NewSummaryCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"no-such-run", "--db", db})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRuns_List(t *testing.T) {
	db, runs := computeWithDB(t)

	buf := &bytes.Buffer{}
	cmd := NewRunsCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", db})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Data []RunInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.Len(t, resp.Data, 2)

	seen := map[string]bool{}
	for _, info := range resp.Data {
		seen[info.RunID] = true
	}
	for name, id := range runs {
		assert.True(t, seen[id], "run for %s missing from listing", name)
	}
}

func TestRuns_EmptyStore(t *testing.T) {
	db := filepath.Join(t.TempDir(), "results.db")

	buf := &bytes.Buffer{}
	cmd := NewRunsCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", db})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "No runs recorded.")
}
