package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const sampleConfig = `# pomodoro-shell configuration

timer:
  work: 25m
  short_break: 5m
  long_break: 15m

notifications:
  enabled: true
  dnd: false
  desktop:
    enabled: true
    icon: ""
    badge: "🍅"
    alert: false
  bell:
    enabled: false
  title:
    enabled: true
    format: "🍅 %s %s"
    base_title: "Pomodoro Shell"
  visual:
    enabled: true
    max_items: 3
    dismiss_after: 10
  sound:
    enabled: true
    # auto | oto | beep | none
    backend: auto
    sample_rate: 44100

# keybindings:
#   toggle: ["space", "s"]
#   reset: ["r"]
#   work: ["1"]
#   short_break: ["2"]
#   long_break: ["3"]

log:
  file: ""
debug: false
`

// InitConfig writes a sample config to path, or DefaultPath when empty.
// An existing file is only replaced when force is set.
func InitConfig(path string, force bool) (string, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return "", fmt.Errorf("locating config: %w", err)
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0600); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}
	return path, nil
}
