package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action represents a user action
type Action string

const (
	// Timer control
	ActionToggle Action = "toggle"
	ActionReset  Action = "reset"

	// Mode switching
	ActionWork       Action = "work"
	ActionShortBreak Action = "short_break"
	ActionLongBreak  Action = "long_break"

	// Notifications
	ActionDismiss Action = "dismiss"
	ActionDND     Action = "dnd"

	// Misc
	ActionHelp      Action = "help"
	ActionQuit      Action = "quit"
	ActionForceQuit Action = "force_quit"
)

// KeyBindings holds all key bindings
type KeyBindings struct {
	// Timer control
	Toggle []string `yaml:"toggle"`
	Reset  []string `yaml:"reset"`

	// Mode switching
	Work       []string `yaml:"work"`
	ShortBreak []string `yaml:"short_break"`
	LongBreak  []string `yaml:"long_break"`

	// Notifications
	Dismiss []string `yaml:"dismiss"`
	DND     []string `yaml:"dnd"`

	// Misc
	Help      []string `yaml:"help"`
	Quit      []string `yaml:"quit"`
	ForceQuit []string `yaml:"force_quit"`
}

// DefaultKeyBindings returns the default keybindings
func DefaultKeyBindings() *KeyBindings {
	return &KeyBindings{
		Toggle: []string{" ", "enter", "s"},
		Reset:  []string{"r"},

		Work:       []string{"1", "w"},
		ShortBreak: []string{"2", "b"},
		LongBreak:  []string{"3", "l"},

		Dismiss: []string{"x"},
		DND:     []string{"d"},

		Help:      []string{"?"},
		Quit:      []string{"q", "esc"},
		ForceQuit: []string{"ctrl+c"},
	}
}

// Keymap provides key matching functionality
type Keymap struct {
	bindings  *KeyBindings
	actionMap map[string][]Action
}

// New creates a new Keymap with the given bindings
func New(bindings *KeyBindings) *Keymap {
	if bindings == nil {
		bindings = DefaultKeyBindings()
	}

	km := &Keymap{
		bindings:  bindings,
		actionMap: make(map[string][]Action),
	}
	km.buildActionMap()
	return km
}

// buildActionMap creates a reverse mapping from keys to actions
func (km *Keymap) buildActionMap() {
	for _, action := range allActions {
		for _, k := range km.keysFor(action) {
			k = normalizeKey(k)
			km.actionMap[k] = append(km.actionMap[k], action)
		}
	}
}

// bubbletea reports the space bar as " "
func normalizeKey(k string) string {
	if k == "space" {
		return " "
	}
	return k
}

var allActions = []Action{
	ActionToggle, ActionReset,
	ActionWork, ActionShortBreak, ActionLongBreak,
	ActionDismiss, ActionDND,
	ActionHelp, ActionQuit, ActionForceQuit,
}

func (km *Keymap) keysFor(action Action) []string {
	switch action {
	case ActionToggle:
		return km.bindings.Toggle
	case ActionReset:
		return km.bindings.Reset
	case ActionWork:
		return km.bindings.Work
	case ActionShortBreak:
		return km.bindings.ShortBreak
	case ActionLongBreak:
		return km.bindings.LongBreak
	case ActionDismiss:
		return km.bindings.Dismiss
	case ActionDND:
		return km.bindings.DND
	case ActionHelp:
		return km.bindings.Help
	case ActionQuit:
		return km.bindings.Quit
	case ActionForceQuit:
		return km.bindings.ForceQuit
	}
	return nil
}

// GetActions returns all actions for a given key
func (km *Keymap) GetActions(key string) []Action {
	return km.actionMap[key]
}

// HasAction checks if a key triggers a specific action
func (km *Keymap) HasAction(key string, action Action) bool {
	for _, a := range km.actionMap[key] {
		if a == action {
			return true
		}
	}
	return false
}

// MatchKey checks if a tea.KeyMsg matches any of the given actions
func (km *Keymap) MatchKey(msg tea.KeyMsg, actions ...Action) bool {
	key := msg.String()
	for _, action := range actions {
		if km.HasAction(key, action) {
			return true
		}
	}
	return false
}

// GetBindings returns the current key bindings
func (km *Keymap) GetBindings() *KeyBindings {
	return km.bindings
}

// Binding returns a bubbles key.Binding for action, for help rendering
func (km *Keymap) Binding(action Action, desc string) key.Binding {
	var keys []string
	for _, k := range km.keysFor(action) {
		keys = append(keys, normalizeKey(k))
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(km.GetHelpText(action), desc),
	)
}

// Merge merges user bindings with defaults (user bindings take precedence)
func (km *KeyBindings) Merge(other *KeyBindings) {
	if other == nil {
		return
	}

	merge := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}

	merge(&km.Toggle, other.Toggle)
	merge(&km.Reset, other.Reset)
	merge(&km.Work, other.Work)
	merge(&km.ShortBreak, other.ShortBreak)
	merge(&km.LongBreak, other.LongBreak)
	merge(&km.Dismiss, other.Dismiss)
	merge(&km.DND, other.DND)
	merge(&km.Help, other.Help)
	merge(&km.Quit, other.Quit)
	merge(&km.ForceQuit, other.ForceQuit)
}

// GetHelpText returns help text for a specific action
func (km *Keymap) GetHelpText(action Action) string {
	keys := km.keysFor(action)
	if len(keys) == 0 {
		return ""
	}
	if keys[0] == " " || keys[0] == "space" {
		return "space"
	}
	return keys[0]
}
