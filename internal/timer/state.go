package timer

import (
	"fmt"
	"math"
	"time"
)

// Phase is one of the three countdown modes
type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// Phases lists every phase in display order
var Phases = []Phase{PhaseWork, PhaseShortBreak, PhaseLongBreak}

// SessionsPerCycle is the number of work sessions before a long break
const SessionsPerCycle = 4

// Valid reports whether p is a known phase
func (p Phase) Valid() bool {
	switch p {
	case PhaseWork, PhaseShortBreak, PhaseLongBreak:
		return true
	}
	return false
}

// Label returns the human-readable name of the phase
func (p Phase) Label() string {
	switch p {
	case PhaseWork:
		return "Focus Time"
	case PhaseShortBreak:
		return "Short Break"
	case PhaseLongBreak:
		return "Long Break"
	}
	return string(p)
}

// IsBreak reports whether p is one of the break phases
func (p Phase) IsBreak() bool {
	return p == PhaseShortBreak || p == PhaseLongBreak
}

// Durations holds the countdown length of each phase
type Durations struct {
	Work       time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
}

// DefaultDurations returns 25/5/15 minutes
func DefaultDurations() Durations {
	return Durations{
		Work:       25 * time.Minute,
		ShortBreak: 5 * time.Minute,
		LongBreak:  15 * time.Minute,
	}
}

// Of returns the duration of phase in whole seconds
func (d Durations) Of(phase Phase) int {
	switch phase {
	case PhaseShortBreak:
		return int(d.ShortBreak / time.Second)
	case PhaseLongBreak:
		return int(d.LongBreak / time.Second)
	default:
		return int(d.Work / time.Second)
	}
}

// Validate checks every duration is a positive whole number of seconds
func (d Durations) Validate() error {
	for _, p := range Phases {
		var v time.Duration
		switch p {
		case PhaseWork:
			v = d.Work
		case PhaseShortBreak:
			v = d.ShortBreak
		case PhaseLongBreak:
			v = d.LongBreak
		}
		if v < time.Second {
			return fmt.Errorf("%s duration must be at least 1s, got %s", p, v)
		}
		if v%time.Second != 0 {
			return fmt.Errorf("%s duration must be whole seconds, got %s", p, v)
		}
	}
	return nil
}

// State is a snapshot of the timer
type State struct {
	Phase             Phase
	Remaining         int
	Running           bool
	CompletedSessions int

	durations Durations
}

// Duration returns the full length of the current phase in seconds
func (s State) Duration() int {
	return s.durations.Of(s.Phase)
}

// Progress returns the elapsed fraction of the current phase in [0, 1]
func (s State) Progress() float64 {
	total := s.Duration()
	if total <= 0 {
		return 0
	}
	return float64(total-s.Remaining) / float64(total)
}

// SessionDots reports which of the cycle's session markers are filled
func (s State) SessionDots() [SessionsPerCycle]bool {
	var dots [SessionsPerCycle]bool
	filled := s.CompletedSessions % SessionsPerCycle
	for i := range dots {
		dots[i] = i < filled
	}
	return dots
}

// CyclesCompleted returns the number of full four-session cycles
func (s State) CyclesCompleted() int {
	return s.CompletedSessions / SessionsPerCycle
}

// FocusHours returns total focused time in hours, rounded to one decimal
func (s State) FocusHours() float64 {
	minutes := s.durations.Work.Minutes()
	hours := float64(s.CompletedSessions) * minutes / 60
	return math.Round(hours*10) / 10
}

// Clock formats Remaining as MM:SS
func (s State) Clock() string {
	return FormatClock(s.Remaining)
}

// FormatClock formats seconds as zero-padded MM:SS
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
