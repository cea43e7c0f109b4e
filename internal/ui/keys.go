package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/polidog/pomodoro-shell/internal/keymap"
)

// helpKeys adapts the configured keymap to bubbles/help
type helpKeys struct {
	toggle     key.Binding
	reset      key.Binding
	work       key.Binding
	shortBreak key.Binding
	longBreak  key.Binding
	dismiss    key.Binding
	dnd        key.Binding
	help       key.Binding
	quit       key.Binding
}

func newHelpKeys(km *keymap.Keymap) helpKeys {
	return helpKeys{
		toggle:     km.Binding(keymap.ActionToggle, "start"),
		reset:      km.Binding(keymap.ActionReset, "reset"),
		work:       km.Binding(keymap.ActionWork, "focus"),
		shortBreak: km.Binding(keymap.ActionShortBreak, "short break"),
		longBreak:  km.Binding(keymap.ActionLongBreak, "long break"),
		dismiss:    km.Binding(keymap.ActionDismiss, "dismiss"),
		dnd:        km.Binding(keymap.ActionDND, "do not disturb"),
		help:       km.Binding(keymap.ActionHelp, "more"),
		quit:       km.Binding(keymap.ActionQuit, "quit"),
	}
}

// setRunning flips the toggle label between start and pause
func (k *helpKeys) setRunning(running bool) {
	desc := "start"
	if running {
		desc = "pause"
	}
	k.toggle.SetHelp(k.toggle.Help().Key, desc)
}

func (k helpKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.reset, k.help, k.quit}
}

func (k helpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.toggle, k.reset},
		{k.work, k.shortBreak, k.longBreak},
		{k.dismiss, k.dnd},
		{k.help, k.quit},
	}
}
