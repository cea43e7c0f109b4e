package notification

import (
	"context"
	"os"
	"runtime"
)

// Permission is the host's answer to a notification permission request
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// PermissionHost is the host permission query/request capability
type PermissionHost interface {
	// Query reports the current permission without prompting
	Query() Permission
	// Request asks for permission
	Request(ctx context.Context) (Permission, error)
}

// EnvPermissionHost grants desktop notifications when the environment
// has somewhere to show them. It knows nothing about the user's config;
// the desktop switch is checked when a notification is shown.
type EnvPermissionHost struct {
	GOOS   string
	Getenv func(string) string
}

// NewEnvPermissionHost inspects the running process environment
func NewEnvPermissionHost() *EnvPermissionHost {
	return &EnvPermissionHost{
		GOOS:   runtime.GOOS,
		Getenv: os.Getenv,
	}
}

// Query returns default until Request is called
func (h *EnvPermissionHost) Query() Permission {
	return PermissionDefault
}

// Request decides from the environment
func (h *EnvPermissionHost) Request(ctx context.Context) (Permission, error) {
	if err := ctx.Err(); err != nil {
		return PermissionDefault, err
	}
	switch h.GOOS {
	case "darwin", "windows":
		return PermissionGranted, nil
	case "js", "wasip1", "plan9":
		return PermissionDenied, nil
	}

	// freedesktop notifications need a session bus or a display
	for _, key := range []string{"DBUS_SESSION_BUS_ADDRESS", "WAYLAND_DISPLAY", "DISPLAY"} {
		if h.Getenv(key) != "" {
			return PermissionGranted, nil
		}
	}
	return PermissionDenied, nil
}
