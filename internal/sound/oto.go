package sound

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// DefaultSampleRate is used when no rate is configured
const DefaultSampleRate = 44100

// oto allows one context per process
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
	otoRate int
)

func otoContext(sampleRate int) (*oto.Context, int, error) {
	otoOnce.Do(func() {
		var ready chan struct{}
		otoCtx, ready, otoErr = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   50 * time.Millisecond,
		})
		if otoErr != nil {
			otoErr = fmt.Errorf("oto init: %w", otoErr)
			return
		}
		<-ready
		otoRate = sampleRate
	})
	return otoCtx, otoRate, otoErr
}

// OtoSynth renders tones to PCM and plays them through the system mixer
type OtoSynth struct {
	ctx        *oto.Context
	sampleRate int
	epoch      time.Time

	mu      sync.Mutex
	players map[*oto.Player]struct{}
	closed  bool
	// until is the synth time by which every player has been released
	until float64
}

// NewOtoSynth opens the process audio device
func NewOtoSynth(sampleRate int) (*OtoSynth, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	ctx, rate, err := otoContext(sampleRate)
	if err != nil {
		return nil, err
	}
	return &OtoSynth{
		ctx:        ctx,
		sampleRate: rate,
		epoch:      time.Now(),
		players:    make(map[*oto.Player]struct{}),
	}, nil
}

// Now returns seconds since the synth was opened
func (s *OtoSynth) Now() float64 {
	return time.Since(s.epoch).Seconds()
}

// Schedule renders the chord and starts playback immediately
func (s *OtoSynth) Schedule(tones []Tone) error {
	if len(tones) == 0 {
		return nil
	}

	origin := tones[0].Anchor
	pcm := Render(tones, origin, s.sampleRate)
	if len(pcm) == 0 {
		return nil
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	player := s.ctx.NewPlayer(bytes.NewReader(pcm))
	s.players[player] = struct{}{}
	s.mu.Unlock()

	player.Play()

	_, stop := Span(tones)
	tail := time.Duration((stop-origin)*float64(time.Second)) + releaseTail
	s.mu.Lock()
	s.until = math.Max(s.until, s.Now()+tail.Seconds())
	s.mu.Unlock()
	time.AfterFunc(tail, func() {
		s.release(player)
	})
	return nil
}

// releaseTail lets the device buffer empty before a player is closed
const releaseTail = 100 * time.Millisecond

// Drain waits until the last scheduled player has been released
func (s *OtoSynth) Drain(ctx context.Context) error {
	s.mu.Lock()
	wait := time.Duration((s.until - s.Now()) * float64(time.Second))
	s.mu.Unlock()
	if wait <= 0 {
		return nil
	}

	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *OtoSynth) release(p *oto.Player) {
	s.mu.Lock()
	_, ok := s.players[p]
	delete(s.players, p)
	s.mu.Unlock()
	if ok {
		_ = p.Close()
	}
}

// Close stops any tones still playing
func (s *OtoSynth) Close() error {
	s.mu.Lock()
	s.closed = true
	players := s.players
	s.players = make(map[*oto.Player]struct{})
	s.mu.Unlock()

	for p := range players {
		_ = p.Close()
	}
	return nil
}
