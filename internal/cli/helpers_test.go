package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// manifestCUE declares one gaussian and one binomial analysis.
const manifestCUE = `package analyses

analysis: kidscore: {
	family: "gaussian"
	draws:  "kidscore_draws.csv"
	residual: {column: "sigma", scale: "variance"}
}

analysis: arsenic: {
	family: "binomial"
	draws:  "arsenic_draws.csv"
}
`

const kidscoreCSV = `mu.1,mu.2,mu.3,mu.4,mu.5,sigma
1.2,3.4,2.2,4.1,0.5,1.5
1.0,3.0,2.5,4.4,0.8,2.0
1.4,3.1,2.0,3.9,0.6,1.2
`

const arsenicCSV = `p.1,p.2,p.3,p.4
0.1,0.9,0.1,0.9
0.2,0.4,0.6,0.8
`

// writeManifestDir creates a well-formed manifest directory with draws
// files for both analyses.
func writeManifestDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "analyses.cue"), []byte(manifestCUE), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kidscore_draws.csv"), []byte(kidscoreCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "arsenic_draws.csv"), []byte(arsenicCSV), 0o644))
	return dir
}
