package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/polidog/pomodoro-shell/internal/keymap"
	"github.com/polidog/pomodoro-shell/internal/notification"
	"github.com/polidog/pomodoro-shell/internal/timer"
	"github.com/polidog/pomodoro-shell/internal/ui/styles"
	"github.com/polidog/pomodoro-shell/internal/ui/views"
)

// Timer is the part of the engine the UI drives
type Timer interface {
	Snapshot() timer.State
	Subscribe(buffer int) <-chan timer.Event
	Toggle()
	Reset()
	SwitchMode(phase timer.Phase)
}

// Notifications is the part of the notification service the UI reads
type Notifications interface {
	Title(state timer.State) string
	TitleEnabled() bool
	GetVisualNotifications() []notification.Message
	DismissVisualNotification(index int)
	NextToastExpiry() (time.Time, bool)
	SetDND(enabled bool)
	IsDND() bool
}

type Model struct {
	timer    Timer
	notifier Notifications
	keymap   *keymap.Keymap
	events   <-chan timer.Event

	clock views.ClockModel
	help  help.Model
	keys  helpKeys

	state  timer.State
	toasts []notification.Message

	width    int
	height   int
	quitting bool
}

// EngineEventMsg carries an engine event into the update loop
type EngineEventMsg struct {
	Event timer.Event
}

// engineClosedMsg is sent once the engine closes the event channel
type engineClosedMsg struct{}

// toastExpiredMsg prompts a refresh of the toast queue
type toastExpiredMsg struct{}

const eventBuffer = 16

func NewModel(t Timer, n Notifications, km *keymap.Keymap) Model {
	if km == nil {
		km = keymap.New(nil)
	}

	m := Model{
		timer:    t,
		notifier: n,
		keymap:   km,
		events:   t.Subscribe(eventBuffer),
		clock:    views.NewClockModel(),
		help:     help.New(),
		keys:     newHelpKeys(km),
	}
	m.setState(t.Snapshot())
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForEvent(m.events),
		m.titleCmd(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clock.SetSize(msg.Width)
		m.help.Width = msg.Width

	case tea.KeyMsg:
		return m.handleKey(msg)

	case EngineEventMsg:
		previous := m.state
		m.setState(msg.Event.State)
		// any event re-reads the queue, so a dropped completion event
		// still surfaces its toast on the next tick
		cmds = append(cmds, m.refreshToasts(false))
		if m.titleChanged(previous) {
			cmds = append(cmds, m.titleCmd())
		}
		cmds = append(cmds, waitForEvent(m.events))

	case toastExpiredMsg:
		cmds = append(cmds, m.refreshToasts(true))

	case engineClosedMsg:
		m.events = nil
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keymap

	switch {
	case km.MatchKey(msg, keymap.ActionForceQuit, keymap.ActionQuit):
		m.quitting = true
		return m, tea.Quit

	case km.MatchKey(msg, keymap.ActionToggle):
		m.timer.Toggle()

	case km.MatchKey(msg, keymap.ActionReset):
		m.timer.Reset()

	case km.MatchKey(msg, keymap.ActionWork):
		m.timer.SwitchMode(timer.PhaseWork)

	case km.MatchKey(msg, keymap.ActionShortBreak):
		m.timer.SwitchMode(timer.PhaseShortBreak)

	case km.MatchKey(msg, keymap.ActionLongBreak):
		m.timer.SwitchMode(timer.PhaseLongBreak)

	case km.MatchKey(msg, keymap.ActionDismiss):
		if len(m.toasts) > 0 {
			m.notifier.DismissVisualNotification(0)
		}
		return m, m.refreshToasts(true)

	case km.MatchKey(msg, keymap.ActionDND):
		m.notifier.SetDND(!m.notifier.IsDND())

	case km.MatchKey(msg, keymap.ActionHelp):
		m.help.ShowAll = !m.help.ShowAll

	default:
		return m, nil
	}

	previous := m.state
	m.setState(m.timer.Snapshot())
	if m.titleChanged(previous) {
		return m, m.titleCmd()
	}
	return m, nil
}

func (m *Model) setState(state timer.State) {
	m.state = state
	m.clock.SetState(state)
	m.keys.setRunning(state.Running)
}

// refreshToasts reloads the queue and schedules the next expiry check.
// Unless forced, a check is only scheduled when the queue changed, since
// an unchanged queue already has one pending.
func (m *Model) refreshToasts(force bool) tea.Cmd {
	previous := m.toasts
	m.toasts = m.notifier.GetVisualNotifications()
	if len(m.toasts) == 0 || (!force && sameToasts(previous, m.toasts)) {
		return nil
	}

	at, ok := m.notifier.NextToastExpiry()
	if !ok {
		return nil
	}
	wait := time.Until(at)
	if wait < time.Second {
		wait = time.Second
	}
	return tea.Tick(wait, func(time.Time) tea.Msg {
		return toastExpiredMsg{}
	})
}

func sameToasts(a, b []notification.Message) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Title != b[i].Title || !a[i].At.Equal(b[i].At) {
			return false
		}
	}
	return true
}

func (m Model) titleChanged(previous timer.State) bool {
	return previous.Remaining != m.state.Remaining ||
		previous.Running != m.state.Running ||
		previous.Phase != m.state.Phase
}

func (m Model) titleCmd() tea.Cmd {
	if !m.notifier.TitleEnabled() {
		return nil
	}
	return tea.SetWindowTitle(m.notifier.Title(m.state))
}

// waitForEvent blocks on the engine channel, one event per command
func waitForEvent(events <-chan timer.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return engineClosedMsg{}
		}
		return EngineEventMsg{Event: ev}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.clock.View(),
		"",
		views.SessionsView(m.state),
	}
	if toasts := views.ToastsView(m.toasts, m.width); toasts != "" {
		sections = append(sections, "", toasts)
	}
	sections = append(sections, "", m.renderStatusBar())

	body := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return styles.AppStyle.Render(body)
}

func (m Model) renderStatusBar() string {
	status := m.help.View(m.keys)
	if m.notifier.IsDND() {
		status = styles.StatusDNDStyle.Render("DND") + "  " + status
	}
	return styles.StatusBarStyle.Render(status)
}

// State returns the last timer snapshot the model rendered
func (m Model) State() timer.State {
	return m.state
}
