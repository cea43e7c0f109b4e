package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/polidog/pomodoro-shell/internal/timer"
)

var (
	// Colors
	Work       = lipgloss.Color("#6442d6") // focus purple
	ShortBreak = lipgloss.Color("#16a34a") // break green
	LongBreak  = lipgloss.Color("#0ea5e9") // long break blue
	Warning    = lipgloss.Color("#ECB22E")
	Muted      = lipgloss.Color("#616061")
	Surface    = lipgloss.Color("#222529")
	Border     = lipgloss.Color("#383838")
	Text       = lipgloss.Color("#D1D2D3")
	TextMuted  = lipgloss.Color("#9B9B9B")

	// Base styles
	AppStyle = lipgloss.NewStyle().
			Padding(1, 2)

	// Clock styles
	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	ClockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Text).
			Padding(0, 2)

	PausedStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Italic(true)

	// Session styles
	DotStyle = lipgloss.NewStyle().
			Foreground(Muted)

	StatLabelStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	StatValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	// Toast styles
	ToastStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1).
			MarginBottom(1)

	ToastTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Text)

	ToastBodyStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	// Status bar styles
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(Text).
			Padding(0, 1)

	StatusDNDStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	// Help styles
	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)
)

// PhaseColor returns the accent colour for phase
func PhaseColor(phase timer.Phase) lipgloss.Color {
	switch phase {
	case timer.PhaseShortBreak:
		return ShortBreak
	case timer.PhaseLongBreak:
		return LongBreak
	default:
		return Work
	}
}

// PhaseIcon returns the icon shown next to the phase label
func PhaseIcon(phase timer.Phase) string {
	if phase.IsBreak() {
		return "☕"
	}
	return "🍅"
}
