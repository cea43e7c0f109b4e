package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/polidog/pomodoro-shell/internal/timer"
	"github.com/polidog/pomodoro-shell/internal/ui/styles"
)

// SessionsView renders the cycle dots and the running totals
func SessionsView(state timer.State) string {
	dots := make([]string, 0, timer.SessionsPerCycle)
	for _, filled := range state.SessionDots() {
		if filled {
			dots = append(dots, lipgloss.NewStyle().Foreground(styles.Work).Render("●"))
		} else {
			dots = append(dots, styles.DotStyle.Render("○"))
		}
	}

	stats := []string{
		stat("sessions", fmt.Sprintf("%d", state.CompletedSessions)),
		stat("cycles", fmt.Sprintf("%d", state.CyclesCompleted())),
		stat("focus", fmt.Sprintf("%.1fh", state.FocusHours())),
	}

	return lipgloss.JoinVertical(
		lipgloss.Center,
		strings.Join(dots, " "),
		strings.Join(stats, "   "),
	)
}

func stat(label, value string) string {
	return styles.StatLabelStyle.Render(label+" ") + styles.StatValueStyle.Render(value)
}
