package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/polidog/pomodoro-shell/internal/keymap"
	"github.com/polidog/pomodoro-shell/internal/notification"
	"github.com/polidog/pomodoro-shell/internal/timer"
	"gopkg.in/yaml.v3"
)

const (
	dirName  = ".pomodoro-shell"
	fileName = "config.yaml"

	envConfig = "POMODORO_SHELL_CONFIG"
	envDebug  = "POMODORO_SHELL_DEBUG"
)

type Config struct {
	Timer TimerConfig `yaml:"timer"`

	// Notifications
	Notifications *notification.Config `yaml:"notifications"`

	// Keybindings
	Keybindings *keymap.KeyBindings `yaml:"keybindings"`

	Log LogConfig `yaml:"log"`

	// Debug enables debug logging to Log.File
	Debug bool `yaml:"debug"`

	// path is where the config was loaded from
	path string
}

// TimerConfig holds phase lengths, e.g. "25m"
type TimerConfig struct {
	Work       time.Duration `yaml:"work"`
	ShortBreak time.Duration `yaml:"short_break"`
	LongBreak  time.Duration `yaml:"long_break"`
}

// LogConfig configures the zap log file
type LogConfig struct {
	File string `yaml:"file"`
}

// Default returns the built-in configuration
func Default() *Config {
	d := timer.DefaultDurations()
	return &Config{
		Timer: TimerConfig{
			Work:       d.Work,
			ShortBreak: d.ShortBreak,
			LongBreak:  d.LongBreak,
		},
		Notifications: notification.DefaultConfig(),
	}
}

func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, dirName), nil
}

// DefaultPath returns the config file location, honouring
// POMODORO_SHELL_CONFIG
func DefaultPath() (string, error) {
	if p := os.Getenv(envConfig); p != "" {
		return p, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the config file at path, or DefaultPath when path is empty.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("locating config: %w", err)
		}
		path = p
	}

	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if v := os.Getenv(envDebug); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = debug
		}
	}

	if cfg.Notifications == nil {
		cfg.Notifications = notification.DefaultConfig()
	}
	cfg.Notifications.Normalize()

	if err := cfg.Durations().Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the file the config was loaded from
func (c *Config) Path() string {
	return c.path
}

// Durations returns the timer phase lengths
func (c *Config) Durations() timer.Durations {
	return timer.Durations{
		Work:       c.Timer.Work,
		ShortBreak: c.Timer.ShortBreak,
		LongBreak:  c.Timer.LongBreak,
	}
}

// GetNotificationConfig returns a copy of the notification settings
func (c *Config) GetNotificationConfig() *notification.Config {
	return c.Notifications.Clone()
}

// GetKeymap returns a Keymap with user customizations merged with defaults
func (c *Config) GetKeymap() *keymap.Keymap {
	bindings := keymap.DefaultKeyBindings()
	if c.Keybindings != nil {
		bindings.Merge(c.Keybindings)
	}
	return keymap.New(bindings)
}

// LogFile returns the configured log path, defaulting into the config
// directory when debug is on
func (c *Config) LogFile() string {
	if c.Log.File != "" || !c.Debug {
		return c.Log.File
	}
	dir, err := GetConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pomodoro.log")
}
