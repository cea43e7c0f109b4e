package timer

import "time"

// EventType defines the type of engine event
type EventType string

const (
	EventStarted      EventType = "started"
	EventPaused       EventType = "paused"
	EventTick         EventType = "tick"
	EventLastMinute   EventType = "last_minute"
	EventCompleted    EventType = "completed"
	EventReset        EventType = "reset"
	EventPhaseChanged EventType = "phase_changed"
)

// Event is an engine update for observers
type Event struct {
	Type  EventType
	State State
	// Ended is the phase that just finished, set on EventCompleted
	Ended Phase
	At    time.Time
}
