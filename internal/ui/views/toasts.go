package views

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/polidog/pomodoro-shell/internal/notification"
	"github.com/polidog/pomodoro-shell/internal/ui/styles"
)

// ToastsView renders queued in-app notifications, newest last
func ToastsView(toasts []notification.Message, width int) string {
	if len(toasts) == 0 {
		return ""
	}

	w := width / 2
	if w < 24 {
		w = 24
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		body := styles.ToastTitleStyle.Render(t.Title)
		if t.Body != "" {
			body += "\n" + styles.ToastBodyStyle.Render(t.Body)
		}
		rendered = append(rendered, styles.ToastStyle.Width(w).Render(body))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}
