// Package testutils holds fixtures shared by adapter and CLI tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// SetupTestRepo creates a temporary directory and initializes a Loam repository in it.
// It returns the absolute path to the temp dir and the initialized repository.
// It fails the test immediately on error.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// WriteFiles writes each filename/content pair under dir.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// LinearNetYAML is a sound three-place net with no guards.
const LinearNetYAML = `net: linear
places:
  - id: p_start
  - id: p_mid
  - id: p_end
transitions:
  - id: t1
    input: [p_start]
    output: [p_mid]
  - id: t2
    input: [p_mid]
    output: [p_end]
`

// GuardedNetYAML completes only when "approved" is true.
const GuardedNetYAML = `net: approval
variables:
  approved: bool
places:
  - id: p_start
  - id: p_end
transitions:
  - id: approve
    input: [p_start]
    output: [p_end]
    condition: approved
`

// UnsoundNetYAML has two source places.
const UnsoundNetYAML = `net: broken
places:
  - id: p1
  - id: p2
  - id: p3
transitions:
  - id: t1
    input: [p1]
    output: [p3]
`
