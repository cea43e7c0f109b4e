package views

import (
	"strings"
	"testing"
	"time"

	"github.com/polidog/pomodoro-shell/internal/notification"
	"github.com/polidog/pomodoro-shell/internal/sound"
	"github.com/polidog/pomodoro-shell/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type silentNotifier struct{}

func (silentNotifier) PlaySound(sound.Kind)            {}
func (silentNotifier) NotifyTimerComplete(timer.Phase) {}
func (silentNotifier) NotifyLastMinute()               {}

type idleHandle struct{}

func (idleHandle) Cancel() {}

type idleScheduler struct{}

func (idleScheduler) Every(time.Duration, func()) timer.Handle { return idleHandle{} }

func newEngine(t *testing.T) *timer.Engine {
	t.Helper()
	e := timer.New(timer.DefaultDurations(), silentNotifier{}, idleScheduler{})
	t.Cleanup(e.Close)
	return e
}

// completeWork runs one full work phase
func completeWork(e *timer.Engine) {
	e.SwitchMode(timer.PhaseWork)
	e.Start()
	for e.Snapshot().Phase == timer.PhaseWork {
		e.Tick()
	}
}

func TestSessionsViewDotsAndStats(t *testing.T) {
	e := newEngine(t)
	completeWork(e)
	completeWork(e)

	out := SessionsView(e.Snapshot())

	assert.Contains(t, out, "● ● ○ ○")
	assert.Contains(t, out, "sessions 2")
	assert.Contains(t, out, "cycles 0")
	assert.Contains(t, out, "focus 0.8h")
}

func TestSessionsViewFullCycle(t *testing.T) {
	e := newEngine(t)
	for i := 0; i < timer.SessionsPerCycle; i++ {
		completeWork(e)
	}
	require.Equal(t, timer.PhaseLongBreak, e.Snapshot().Phase)

	out := SessionsView(e.Snapshot())

	assert.Contains(t, out, "○ ○ ○ ○")
	assert.Contains(t, out, "sessions 4")
	assert.Contains(t, out, "cycles 1")
	assert.Contains(t, out, "focus 1.7h")
}

func TestClockView(t *testing.T) {
	e := newEngine(t)
	m := NewClockModel()
	m.SetSize(40)
	m.SetState(e.Snapshot())

	out := m.View()
	assert.Contains(t, out, "Focus Time")
	assert.Contains(t, out, "2 5 : 0 0")
	assert.Contains(t, out, "paused")

	e.SwitchMode(timer.PhaseShortBreak)
	e.Start()
	e.Tick()
	m.SetState(e.Snapshot())

	out = m.View()
	assert.Contains(t, out, "Short Break")
	assert.Contains(t, out, "0 4 : 5 9")
	assert.Contains(t, out, "running")
}

func TestClockBarWidthIsClamped(t *testing.T) {
	m := NewClockModel()

	m.SetSize(0)
	assert.Equal(t, minBarWidth, m.bar.Width)

	m.SetSize(500)
	assert.Equal(t, maxBarWidth, m.bar.Width)
}

func TestToastsViewEmpty(t *testing.T) {
	assert.Empty(t, ToastsView(nil, 80))
	assert.Empty(t, ToastsView([]notification.Message{}, 80))
}

func TestToastsView(t *testing.T) {
	out := ToastsView([]notification.Message{
		{Title: "⏰ One minute left!", Body: "Almost there"},
		{Title: "🎉 Great job!"},
	}, 80)

	assert.Contains(t, out, "One minute left!")
	assert.Contains(t, out, "Almost there")
	assert.Contains(t, out, "Great job!")
	assert.Less(t, strings.Index(out, "One minute left!"), strings.Index(out, "Great job!"))
}
