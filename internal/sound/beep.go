package sound

import (
	"context"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
)

// BeepSynth plays each tone as a plain system beep. It cannot shape the
// envelope, only frequency, start offset and length.
type BeepSynth struct {
	epoch   time.Time
	onError func(error)

	wg     sync.WaitGroup
	stop   chan struct{}
	once   sync.Once
	beeper func(freq float64, ms int) error
}

// NewBeepSynth creates a beeep-backed synth. onError may be nil.
func NewBeepSynth(onError func(error)) *BeepSynth {
	if onError == nil {
		onError = func(error) {}
	}
	return &BeepSynth{
		epoch:   time.Now(),
		onError: onError,
		stop:    make(chan struct{}),
		beeper:  beeep.Beep,
	}
}

// Now returns seconds since the synth was created
func (b *BeepSynth) Now() float64 {
	return time.Since(b.epoch).Seconds()
}

// Schedule starts one goroutine per tone; it never blocks the caller
func (b *BeepSynth) Schedule(tones []Tone) error {
	now := b.Now()
	for _, t := range tones {
		delay := time.Duration((t.Start - now) * float64(time.Second))
		ms := int((t.Stop - t.Start) * 1000)
		freq := t.Frequency

		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			if delay > 0 {
				timer := time.NewTimer(delay)
				defer timer.Stop()
				select {
				case <-b.stop:
					return
				case <-timer.C:
				}
			}
			if err := b.beeper(freq, ms); err != nil {
				b.onError(err)
			}
		}()
	}
	return nil
}

// Drain waits for every scheduled tone, including ones still in their
// stagger delay, to be played
func (b *BeepSynth) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels pending tones and waits for those already sounding
func (b *BeepSynth) Close() error {
	b.once.Do(func() { close(b.stop) })
	b.wg.Wait()
	return nil
}

// NopSynth discards every tone
type NopSynth struct{}

func (NopSynth) Now() float64                { return 0 }
func (NopSynth) Schedule([]Tone) error       { return nil }
func (NopSynth) Drain(context.Context) error { return nil }
func (NopSynth) Close() error                { return nil }
