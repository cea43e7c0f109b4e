package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	root := newRootCmd()
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pomodoro-shell dev")
}

func TestConfigInitCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	out, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Config file created at "+path)
	assert.FileExists(t, path)

	_, err = execute(t, "config", "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "config", "init", path, "--force")
	require.NoError(t, err)
}

func TestRunCmdCompletesPhase(t *testing.T) {
	t.Setenv("POMODORO_SHELL_DEBUG", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := "timer:\n  short_break: 1s\nnotifications:\n  desktop:\n    enabled: false\n  sound:\n    backend: none\n"
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0600))

	out, err := execute(t, "--config", path, "run", "--phase", "short_break")
	require.NoError(t, err)
	assert.Contains(t, out, "Short Break complete. Next: Focus Time (25:00)")
}

func TestRunCmdRejectsUnknownPhase(t *testing.T) {
	t.Setenv("POMODORO_SHELL_DEBUG", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("notifications:\n  sound:\n    backend: none\n"), 0600))

	_, err := execute(t, "--config", path, "run", "--phase", "nap")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown phase")
}

func TestRootCmdFallsBackToHeadless(t *testing.T) {
	t.Setenv("POMODORO_SHELL_DEBUG", "")
	orig := interactive
	interactive = func() bool { return false }
	t.Cleanup(func() { interactive = orig })

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := "timer:\n  work: 1s\nnotifications:\n  desktop:\n    enabled: false\n  sound:\n    backend: none\n"
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0600))

	out, err := execute(t, "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Focus Time complete.")
}
