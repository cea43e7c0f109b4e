package sound

import (
	"context"
	"math"
)

// Kind identifies one of the fixed sound cues
type Kind string

const (
	KindComplete Kind = "complete"
	KindWarning  Kind = "warning"
	KindTick     Kind = "tick"
)

// Envelope constants, in seconds and linear gain
const (
	Stagger    = 0.1
	Attack     = 0.01
	Length     = 0.5
	PeakGain   = 0.1
	FloorGain  = 0.001
	startLevel = 0.0
)

var frequencies = map[Kind][]float64{
	KindComplete: {523.25, 659.25, 783.99}, // C5 E5 G5
	KindWarning:  {440, 554.37},            // A4 C#5
	KindTick:     {800},
}

// Frequencies returns the ordered tone frequencies for a kind.
// Unknown kinds fall back to the completion chord.
func Frequencies(kind Kind) []float64 {
	freqs, ok := frequencies[kind]
	if !ok {
		freqs = frequencies[KindComplete]
	}
	out := make([]float64, len(freqs))
	copy(out, freqs)
	return out
}

// Tone is one scheduled sine oscillator on an audio clock
type Tone struct {
	Frequency float64
	// Anchor is the clock time the gain automation is relative to
	Anchor float64
	Start  float64
	Stop   float64
}

// Tones lays out the staggered chord for kind starting at now
func Tones(kind Kind, now float64) []Tone {
	freqs := Frequencies(kind)
	tones := make([]Tone, len(freqs))
	for i, f := range freqs {
		offset := float64(i) * Stagger
		tones[i] = Tone{
			Frequency: f,
			Anchor:    now,
			Start:     now + offset,
			Stop:      now + Length + offset,
		}
	}
	return tones
}

// DecayEnd is the clock time at which the gain reaches FloorGain
func (t Tone) DecayEnd() float64 {
	return t.Stop
}

// Gain returns the envelope value at clock time at.
// The ramp is anchored at Anchor, not Start, so later tones of a chord
// enter already part-way through their decay.
func (t Tone) Gain(at float64) float64 {
	attackEnd := t.Anchor + Attack
	switch {
	case at <= t.Anchor:
		return startLevel
	case at < attackEnd:
		return PeakGain * (at - t.Anchor) / Attack
	case at >= t.DecayEnd():
		return FloorGain
	}
	span := t.DecayEnd() - attackEnd
	if span <= 0 {
		return FloorGain
	}
	frac := (at - attackEnd) / span
	return PeakGain * math.Pow(FloorGain/PeakGain, frac)
}

// Sample returns the oscillator output at clock time at, silent outside
// the tone's start/stop window
func (t Tone) Sample(at float64) float64 {
	if at < t.Start || at >= t.Stop {
		return 0
	}
	return math.Sin(2*math.Pi*t.Frequency*(at-t.Start)) * t.Gain(at)
}

// Span returns the earliest start and latest stop of tones
func Span(tones []Tone) (start, stop float64) {
	if len(tones) == 0 {
		return 0, 0
	}
	start, stop = tones[0].Start, tones[0].Stop
	for _, t := range tones[1:] {
		start = math.Min(start, t.Start)
		stop = math.Max(stop, t.Stop)
	}
	return start, stop
}

// Synth is the host audio-synthesis capability
type Synth interface {
	// Now returns the synth's audio clock in seconds
	Now() float64
	// Schedule queues tones for playback
	Schedule(tones []Tone) error
	// Drain blocks until every scheduled tone has finished or ctx is done
	Drain(ctx context.Context) error
	// Close releases the audio device, cutting off anything still queued
	Close() error
}
