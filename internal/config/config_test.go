package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/polidog/pomodoro-shell/internal/keymap"
	"github.com/polidog/pomodoro-shell/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, timer.DefaultDurations(), cfg.Durations())
	assert.True(t, cfg.Notifications.Enabled)
	assert.True(t, cfg.Notifications.Desktop.Enabled)
	assert.False(t, cfg.Debug)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
timer:
  work: 50m
notifications:
  dnd: true
  sound:
    backend: beep
keybindings:
  toggle: ["p"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	d := cfg.Durations()
	assert.Equal(t, 50*time.Minute, d.Work)
	assert.Equal(t, 5*time.Minute, d.ShortBreak)
	assert.Equal(t, 15*time.Minute, d.LongBreak)

	n := cfg.GetNotificationConfig()
	assert.True(t, n.DND)
	assert.True(t, n.Enabled)
	assert.True(t, n.Sound.Enabled)
	assert.Equal(t, "beep", n.Sound.Backend)
	assert.Equal(t, 44100, n.Sound.SampleRate)
	assert.Equal(t, "Pomodoro Shell", n.Title.BaseTitle)

	km := cfg.GetKeymap()
	assert.True(t, km.HasAction("p", keymap.ActionToggle))
	assert.True(t, km.HasAction("r", keymap.ActionReset))
	assert.Equal(t, path, cfg.Path())
}

func TestLoadRejectsBadDurations(t *testing.T) {
	path := writeConfig(t, "timer:\n  short_break: 1500ms\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "whole seconds")
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "timer: [\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "debug: false\n")
	t.Setenv(envConfig, path)
	t.Setenv(envDebug, "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, path, cfg.Path())
}

func TestLogFile(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.LogFile())

	cfg.Log.File = "/tmp/p.log"
	assert.Equal(t, "/tmp/p.log", cfg.LogFile())

	cfg.Log.File = ""
	cfg.Debug = true
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, filepath.Join("/home/tester", ".pomodoro-shell", "pomodoro.log"), cfg.LogFile())
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	got, err := InitConfig(path, false)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, timer.DefaultDurations(), cfg.Durations())
	assert.Equal(t, "auto", cfg.Notifications.Sound.Backend)

	_, err = InitConfig(path, false)
	assert.ErrorContains(t, err, "already exists")

	_, err = InitConfig(path, true)
	assert.NoError(t, err)
}

func TestWatchReloads(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := writeConfig(t, "notifications:\n  dnd: false\n")

	var mu sync.Mutex
	var got []*Config

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, nil, func(c *Config) {
			mu.Lock()
			got = append(got, c)
			mu.Unlock()
		})
	}()

	require.Eventually(t, func() bool {
		// keep rewriting until the watcher is registered and sees it
		_ = os.WriteFile(path, []byte("notifications:\n  dnd: true\n"), 0600)
		mu.Lock()
		defer mu.Unlock()
		// a read can race the truncate, so look for any reload with the new value
		for _, c := range got {
			if c.Notifications.DND {
				return true
			}
		}
		return false
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
