package timer

import (
	"sync"
	"time"

	"github.com/polidog/pomodoro-shell/internal/sound"
	"go.uber.org/zap"
)

// TickInterval is the countdown resolution
const TickInterval = time.Second

// lastMinuteEdge is the pre-decrement value that triggers the one-minute
// warning. Phases shorter than this never warn.
const lastMinuteEdge = 61

// Notifier receives the engine's side effects
type Notifier interface {
	PlaySound(kind sound.Kind)
	NotifyTimerComplete(phase Phase)
	NotifyLastMinute()
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock overrides the time source used for event timestamps
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine is the Pomodoro state machine
type Engine struct {
	mu        sync.Mutex
	durations Durations
	state     State
	notifier  Notifier
	scheduler Scheduler
	logger    *zap.Logger
	now       func() time.Time

	handle     Handle
	generation uint64

	events []chan Event
	closed bool
}

// New creates an engine in the Work phase, paused, with no sessions
func New(durations Durations, notifier Notifier, scheduler Scheduler, opts ...Option) *Engine {
	e := &Engine{
		durations: durations,
		notifier:  notifier,
		scheduler: scheduler,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.state = State{
		Phase:     PhaseWork,
		Remaining: durations.Of(PhaseWork),
		durations: durations,
	}
	return e
}

// Durations returns the configured phase lengths
func (e *Engine) Durations() Durations {
	return e.durations
}

// Snapshot returns a copy of the current state
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Subscribe registers a new observer channel
func (e *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		close(ch)
		return ch
	}
	e.events = append(e.events, ch)
	return ch
}

// Start begins the countdown. It is a no-op while already running.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.closed || e.state.Running {
		e.mu.Unlock()
		return
	}
	e.state.Running = true
	e.acquireLocked()
	ev := e.eventLocked(EventStarted)
	e.mu.Unlock()

	e.logger.Debug("timer started",
		zap.String("phase", string(ev.State.Phase)),
		zap.Int("remaining", ev.State.Remaining))
	e.notifier.PlaySound(sound.KindTick)
	e.emit(ev)
}

// Pause stops the countdown without resetting it
func (e *Engine) Pause() {
	e.mu.Lock()
	if !e.state.Running {
		e.mu.Unlock()
		return
	}
	e.state.Running = false
	e.releaseLocked()
	ev := e.eventLocked(EventPaused)
	e.mu.Unlock()

	e.logger.Debug("timer paused", zap.Int("remaining", ev.State.Remaining))
	e.emit(ev)
}

// Toggle pauses a running timer and starts a paused one
func (e *Engine) Toggle() {
	if e.Snapshot().Running {
		e.Pause()
		return
	}
	e.Start()
}

// Tick advances the countdown by one second
func (e *Engine) Tick() {
	e.mu.Lock()
	e.tickLocked()
}

func (e *Engine) tickFrom(generation uint64) {
	e.mu.Lock()
	if generation != e.generation || e.handle == nil {
		e.mu.Unlock()
		return
	}
	e.tickLocked()
}

// tickLocked expects e.mu held and releases it
func (e *Engine) tickLocked() {
	if !e.state.Running || e.state.Remaining <= 0 {
		e.mu.Unlock()
		return
	}

	before := e.state.Remaining
	e.state.Remaining--
	lastMinute := isLastMinute(before)

	events := []Event{e.eventLocked(EventTick)}
	if lastMinute {
		events = append(events, e.eventLocked(EventLastMinute))
	}

	var ended Phase
	if e.state.Remaining == 0 {
		ended = e.reachZeroLocked()
		ev := e.eventLocked(EventCompleted)
		ev.Ended = ended
		events = append(events, ev)
	}
	e.mu.Unlock()

	if lastMinute {
		e.logger.Debug("last minute", zap.String("phase", string(events[0].State.Phase)))
		e.notifier.NotifyLastMinute()
	}
	if ended != "" {
		e.logger.Info("phase completed",
			zap.String("phase", string(ended)),
			zap.Int("sessions", events[len(events)-1].State.CompletedSessions))
		e.notifier.NotifyTimerComplete(ended)
	}
	for _, ev := range events {
		e.emit(ev)
	}
}

func isLastMinute(before int) bool {
	return before == lastMinuteEdge
}

// reachZeroLocked stops the clock and advances to the next phase.
// It returns the phase that ended.
func (e *Engine) reachZeroLocked() Phase {
	e.state.Running = false
	e.releaseLocked()

	ended := e.state.Phase
	var next Phase
	if ended == PhaseWork {
		e.state.CompletedSessions++
		if e.state.CompletedSessions%SessionsPerCycle == 0 {
			next = PhaseLongBreak
		} else {
			next = PhaseShortBreak
		}
	} else {
		next = PhaseWork
	}

	e.state.Phase = next
	e.state.Remaining = e.durations.Of(next)
	return ended
}

// Reset stops the clock and restores the current phase's full duration
func (e *Engine) Reset() {
	e.mu.Lock()
	e.state.Running = false
	e.releaseLocked()
	e.state.Remaining = e.durations.Of(e.state.Phase)
	ev := e.eventLocked(EventReset)
	e.mu.Unlock()

	e.logger.Debug("timer reset", zap.String("phase", string(ev.State.Phase)))
	e.emit(ev)
}

// SwitchMode stops the clock and moves to phase with a full countdown.
// Switching to the active phase restarts its countdown.
func (e *Engine) SwitchMode(phase Phase) {
	if !phase.Valid() {
		e.logger.Warn("ignoring unknown phase", zap.String("phase", string(phase)))
		return
	}

	e.mu.Lock()
	e.state.Running = false
	e.releaseLocked()
	e.state.Phase = phase
	e.state.Remaining = e.durations.Of(phase)
	ev := e.eventLocked(EventPhaseChanged)
	e.mu.Unlock()

	e.logger.Debug("mode switched", zap.String("phase", string(phase)))
	e.emit(ev)
}

// Close releases the periodic callback and closes all observers
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.state.Running = false
	e.releaseLocked()
	events := e.events
	e.events = nil
	e.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (e *Engine) acquireLocked() {
	e.releaseLocked()
	e.generation++
	gen := e.generation
	e.handle = e.scheduler.Every(TickInterval, func() {
		e.tickFrom(gen)
	})
}

func (e *Engine) releaseLocked() {
	if e.handle == nil {
		return
	}
	e.handle.Cancel()
	e.handle = nil
}

func (e *Engine) eventLocked(t EventType) Event {
	return Event{
		Type:  t,
		State: e.state,
		At:    e.now(),
	}
}

func (e *Engine) emit(ev Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, ch := range e.events {
		select {
		case ch <- ev:
		default:
		}
	}
}
