package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/polidog/pomodoro-shell/internal/timer"
	"github.com/polidog/pomodoro-shell/internal/ui/styles"
)

const (
	minBarWidth = 10
	maxBarWidth = 60
)

// ClockModel renders the phase label, the countdown and the progress bar
type ClockModel struct {
	state timer.State
	bar   progress.Model
	width int
}

func NewClockModel() ClockModel {
	return ClockModel{
		bar: progress.New(
			progress.WithSolidFill(string(styles.Work)),
			progress.WithoutPercentage(),
			progress.WithWidth(maxBarWidth),
		),
	}
}

func (m *ClockModel) SetState(state timer.State) {
	m.state = state
	m.bar.FullColor = string(styles.PhaseColor(state.Phase))
}

func (m *ClockModel) SetSize(width int) {
	m.width = width
	w := width - 8
	if w < minBarWidth {
		w = minBarWidth
	}
	if w > maxBarWidth {
		w = maxBarWidth
	}
	m.bar.Width = w
}

func (m ClockModel) View() string {
	color := styles.PhaseColor(m.state.Phase)

	label := styles.LabelStyle.
		Foreground(color).
		Render(styles.PhaseIcon(m.state.Phase) + " " + m.state.Phase.Label())

	clock := styles.ClockStyle.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Render(spaced(m.state.Clock()))

	status := "running"
	if !m.state.Running {
		status = "paused"
	}

	return lipgloss.JoinVertical(
		lipgloss.Center,
		label,
		clock,
		"",
		m.bar.ViewAs(m.state.Progress()),
		styles.PausedStyle.Render(status),
	)
}

// spaced widens the clock digits so they read at a glance
func spaced(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}
