package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: binomial-alternating
family: binomial
draws:
  - [0.1, 0.9, 0.1, 0.9]
expect:
  r2: [0.7032967032967033]
`

const failingScenario = `name: binomial-wrong-expectation
family: binomial
draws:
  - [0.1, 0.9, 0.1, 0.9]
expect:
  r2: [0.5]
`

func writeScenarioDir(t *testing.T, scenarios map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range scenarios {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestTest_AllPass(t *testing.T) {
	dir := writeScenarioDir(t, map[string]string{"pass.yaml": passingScenario})

	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "PASS  binomial-alternating")
	assert.Contains(t, buf.String(), "1 passed, 0 failed, 1 total")
}

func TestTest_Failure(t *testing.T) {
	dir := writeScenarioDir(t, map[string]string{
		"pass.yaml": passingScenario,
		"fail.yaml": failingScenario,
	})

	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "FAIL  binomial-wrong-expectation")
	assert.Contains(t, buf.String(), "1 passed, 1 failed, 2 total")
}

func TestTest_JSONOutput(t *testing.T) {
	dir := writeScenarioDir(t, map[string]string{"pass.yaml": passingScenario})

	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Data.Passed)
	assert.Equal(t, 0, resp.Data.Failed)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.True(t, resp.Data.Scenarios[0].Pass)
}

func TestTest_Filter(t *testing.T) {
	dir := writeScenarioDir(t, map[string]string{
		"pass.yaml": passingScenario,
		"fail.yaml": failingScenario,
	})

	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir, "--filter", "binomial-alternating"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "1 passed, 0 failed, 1 total")
}

func TestTest_SingleFile(t *testing.T) {
	dir := writeScenarioDir(t, map[string]string{"pass.yaml": passingScenario})

	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join(dir, "pass.yaml")})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "PASS  binomial-alternating")
}

func TestTest_MalformedScenario(t *testing.T) {
	dir := writeScenarioDir(t, map[string]string{"bad.yaml": "name: [not a string\n"})

	cmd := NewTestCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTest_EmptyDirectory(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{t.TempDir()})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "No scenarios found.")
}
