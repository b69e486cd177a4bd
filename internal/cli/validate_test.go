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

func TestValidate_ValidManifest(t *testing.T) {
	dir := writeManifestDir(t)

	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "manifest valid")
}

func TestValidate_ValidManifestJSON(t *testing.T) {
	dir := writeManifestDir(t)

	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestValidate_MissingDrawsFile(t *testing.T) {
	dir := writeManifestDir(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "arsenic_draws.csv")))

	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "arsenic_draws.csv")
}

func TestValidate_MissingDirectory(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "absent")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestValidate_GroupedBinomial(t *testing.T) {
	dir := writeManifestDir(t)
	grouped := `package analyses

analysis: grouped: {
	family: "binomial"
	draws:  "arsenic_draws.csv"
	trials: 20
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "grouped.cue"), []byte(grouped), 0o644))

	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "GROUPED_BINOMIAL")
}
