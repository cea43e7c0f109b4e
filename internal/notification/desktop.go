package notification

import (
	"github.com/gen2brain/beeep"
)

// DesktopNotifier sends desktop notifications
type DesktopNotifier struct {
	config *DesktopConfig
	notify func(title, message string, icon any) error
	alert  func(title, message string, icon any) error
}

// NewDesktopNotifier creates a new desktop notifier
func NewDesktopNotifier(cfg *DesktopConfig) *DesktopNotifier {
	return &DesktopNotifier{
		config: cfg,
		notify: beeep.Notify,
		alert:  beeep.Alert,
	}
}

// Notify sends a desktop notification
func (d *DesktopNotifier) Notify(msg Message) error {
	if !d.config.Enabled {
		return nil
	}

	title := msg.Title
	if msg.Badge != "" {
		title = msg.Badge + " " + title
	}
	body := truncateText(msg.Body, 100)

	if msg.Alert {
		return d.alert(title, body, msg.Icon)
	}
	return d.notify(title, body, msg.Icon)
}

// Close cleans up resources
func (d *DesktopNotifier) Close() {
	// No cleanup needed
}

// truncateText truncates text to a maximum length
func truncateText(text string, maxLen int) string {
	r := []rune(text)
	if len(r) <= maxLen {
		return text
	}
	return string(r[:maxLen-3]) + "..."
}
