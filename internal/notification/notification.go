package notification

import "time"

// Message represents a notification message
type Message struct {
	Title string
	Body  string
	Icon  string
	Badge string
	// Alert requests an audible desktop alert
	Alert bool
	At    time.Time
}

// Text returns the single-line form used by in-terminal channels
func (m Message) Text() string {
	text := m.Title
	if m.Body != "" {
		text += " " + m.Body
	}
	if m.Badge != "" {
		text = m.Badge + " " + text
	}
	return text
}

// Option overrides fields of a desktop notification
type Option func(*Message)

// WithIcon sets the notification icon path
func WithIcon(icon string) Option {
	return func(m *Message) { m.Icon = icon }
}

// WithBadge sets the badge prefix
func WithBadge(badge string) Option {
	return func(m *Message) { m.Badge = badge }
}

// WithAlert makes the desktop play its alert sound
func WithAlert(alert bool) Option {
	return func(m *Message) { m.Alert = alert }
}

// Notifier interface for notification implementations
type Notifier interface {
	// Notify sends a notification
	Notify(msg Message) error
	// Close cleans up resources
	Close()
}
