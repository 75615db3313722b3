package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/strumyk/internal/cli"
	"github.com/aretw0/strumyk/internal/testutils"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{
		"linear.yaml":   testutils.LinearNetYAML,
		"approval.yaml": testutils.GuardedNetYAML,
		"broken.yaml":   testutils.UnsoundNetYAML,
	})
	t.Setenv("STRUMYK_LOG_LEVEL", "error")

	out, err := run(t, "validate", filepath.Join(dir, "linear.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "linear is sound")

	_, err = run(t, "validate-semantic", filepath.Join(dir, "broken.yaml"))
	assert.Equal(t, 1, cli.ExitCode(err))

	out, err = run(t, "validate-syntax", filepath.Join(dir, "approval.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "syntax valid")

	reports := t.TempDir()
	out, err = run(t, "simulate", filepath.Join(dir, "approval.yaml"), `{"approved": true}`, "--report-dir", reports)
	require.NoError(t, err)
	assert.Contains(t, out, "completed")
	matches, _ := filepath.Glob(filepath.Join(reports, "*.json"))
	assert.Len(t, matches, 1)

	_, err = run(t, "simulate", filepath.Join(dir, "approval.yaml"), `{"approved": false}`, "--report-dir", reports)
	assert.Equal(t, cli.ExitIncomplete, cli.ExitCode(err))

	out, err = run(t, "graph", filepath.Join(dir, "linear.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "graph LR")

	_, err = run(t, "simulate")
	assert.Error(t, err)

	out, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "workflow-net validator")
}
