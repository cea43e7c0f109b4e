package notification

import "github.com/polidog/pomodoro-shell/internal/sound"

// Config holds all notification configuration
type Config struct {
	Enabled bool `yaml:"enabled"`

	Bell    BellConfig    `yaml:"bell"`
	Desktop DesktopConfig `yaml:"desktop"`
	Title   TitleConfig   `yaml:"title"`
	Visual  VisualConfig  `yaml:"visual"`
	Sound   SoundConfig   `yaml:"sound"`

	DND bool `yaml:"dnd"`
}

// BellConfig configures terminal bell notifications
type BellConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DesktopConfig configures desktop notifications
type DesktopConfig struct {
	Enabled bool   `yaml:"enabled"`
	Icon    string `yaml:"icon"`
	Badge   string `yaml:"badge"`
	// Alert asks the desktop to play its own sound as well
	Alert bool `yaml:"alert"`
}

// TitleConfig configures the terminal title countdown
type TitleConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Format    string `yaml:"format"`
	BaseTitle string `yaml:"base_title"`
}

// VisualConfig configures in-app toasts
type VisualConfig struct {
	Enabled      bool `yaml:"enabled"`
	MaxItems     int  `yaml:"max_items"`
	DismissAfter int  `yaml:"dismiss_after"`
}

// SoundConfig configures synthesized tones
type SoundConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Backend    string `yaml:"backend"`
	SampleRate int    `yaml:"sample_rate"`
}

// DefaultConfig returns the default notification configuration
func DefaultConfig() *Config {
	return &Config{
		Enabled: true,
		Bell: BellConfig{
			Enabled: false,
		},
		Desktop: DesktopConfig{
			Enabled: true,
			Badge:   "🍅",
		},
		Title: TitleConfig{
			Enabled: true,
			// clock, phase label
			Format:    "🍅 %s %s",
			BaseTitle: "Pomodoro Shell",
		},
		Visual: VisualConfig{
			Enabled:      true,
			MaxItems:     3,
			DismissAfter: 10,
		},
		Sound: SoundConfig{
			Enabled:    true,
			Backend:    sound.BackendAuto,
			SampleRate: sound.DefaultSampleRate,
		},
		DND: false,
	}
}

// Clone returns a deep copy
func (c *Config) Clone() *Config {
	if c == nil {
		return DefaultConfig()
	}
	out := *c
	return &out
}

// Normalize fills zero values that would disable a section by accident
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Title.Format == "" {
		c.Title.Format = def.Title.Format
	}
	if c.Title.BaseTitle == "" {
		c.Title.BaseTitle = def.Title.BaseTitle
	}
	if c.Visual.MaxItems <= 0 {
		c.Visual.MaxItems = def.Visual.MaxItems
	}
	if c.Visual.DismissAfter < 0 {
		c.Visual.DismissAfter = 0
	}
	if c.Sound.Backend == "" {
		c.Sound.Backend = def.Sound.Backend
	}
	if c.Sound.SampleRate <= 0 {
		c.Sound.SampleRate = def.Sound.SampleRate
	}
}
