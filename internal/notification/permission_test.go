package notification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envHost(goos string, env map[string]string) *EnvPermissionHost {
	return &EnvPermissionHost{
		GOOS:   goos,
		Getenv: func(k string) string { return env[k] },
	}
}

func TestEnvPermissionHostQuery(t *testing.T) {
	assert.Equal(t, PermissionDefault, envHost("linux", nil).Query())
	assert.Equal(t, PermissionDefault, envHost("darwin", nil).Query())
}

func TestEnvPermissionHostRequest(t *testing.T) {
	tests := []struct {
		name string
		goos string
		env  map[string]string
		want Permission
	}{
		{"darwin", "darwin", nil, PermissionGranted},
		{"windows", "windows", nil, PermissionGranted},
		{"linux headless", "linux", nil, PermissionDenied},
		{"linux x11", "linux", map[string]string{"DISPLAY": ":0"}, PermissionGranted},
		{"linux wayland", "linux", map[string]string{"WAYLAND_DISPLAY": "wayland-0"}, PermissionGranted},
		{"freebsd dbus", "freebsd", map[string]string{"DBUS_SESSION_BUS_ADDRESS": "unix:path=/run/bus"}, PermissionGranted},
		{"wasm", "js", map[string]string{"DISPLAY": ":0"}, PermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := envHost(tt.goos, tt.env).Request(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnvPermissionHostRequestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := envHost("darwin", nil).Request(ctx)
	assert.Error(t, err)
	assert.Equal(t, PermissionDefault, got)
}
