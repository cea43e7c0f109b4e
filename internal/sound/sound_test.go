package sound

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestFrequencies(t *testing.T) {
	assert.Equal(t, []float64{523.25, 659.25, 783.99}, Frequencies(KindComplete))
	assert.Equal(t, []float64{440, 554.37}, Frequencies(KindWarning))
	assert.Equal(t, []float64{800}, Frequencies(KindTick))
	assert.Equal(t, Frequencies(KindComplete), Frequencies(Kind("bogus")))
}

func TestFrequenciesReturnsCopy(t *testing.T) {
	f := Frequencies(KindTick)
	f[0] = 1
	assert.Equal(t, []float64{800}, Frequencies(KindTick))
}

func TestTonesTick(t *testing.T) {
	tones := Tones(KindTick, 0)
	require.Len(t, tones, 1)
	assert.Equal(t, 800.0, tones[0].Frequency)
	assert.Equal(t, 0.0, tones[0].Start)
	assert.InDelta(t, 0.5, tones[0].Stop, 1e-9)
}

func TestTonesStaggered(t *testing.T) {
	tones := Tones(KindComplete, 2)
	require.Len(t, tones, 3)
	for i, tone := range tones {
		offset := float64(i) * 0.1
		assert.Equal(t, 2.0, tone.Anchor)
		assert.InDelta(t, 2+offset, tone.Start, 1e-9, "tone %d start", i)
		assert.InDelta(t, 2.5+offset, tone.Stop, 1e-9, "tone %d stop", i)
	}
}

func TestGainEnvelope(t *testing.T) {
	tone := Tones(KindWarning, 1)[1]

	assert.Equal(t, 0.0, tone.Gain(1))
	assert.InDelta(t, 0.05, tone.Gain(1.005), 1e-9)
	assert.InDelta(t, PeakGain, tone.Gain(1.01), 1e-9)
	assert.InDelta(t, FloorGain, tone.Gain(tone.Stop), 1e-12)

	// strictly decaying after the attack
	prev := tone.Gain(1.01)
	for at := 1.05; at < tone.Stop; at += 0.05 {
		g := tone.Gain(at)
		assert.Less(t, g, prev)
		prev = g
	}
}

func TestSampleSilentOutsideWindow(t *testing.T) {
	tone := Tones(KindComplete, 0)[2]
	assert.Equal(t, 0.0, tone.Sample(0.1))
	assert.Equal(t, 0.0, tone.Sample(tone.Stop))
	assert.Equal(t, 0.0, tone.Sample(tone.Stop+1))
}

func TestSpan(t *testing.T) {
	start, stop := Span(Tones(KindComplete, 0))
	assert.Equal(t, 0.0, start)
	assert.InDelta(t, 0.7, stop, 1e-9)

	start, stop = Span(nil)
	assert.Zero(t, start)
	assert.Zero(t, stop)
}

func TestRender(t *testing.T) {
	pcm := Render(Tones(KindTick, 0), 0, 1000)
	require.Len(t, pcm, 500*2)

	first := int16(binary.LittleEndian.Uint16(pcm[0:]))
	assert.Zero(t, first)

	var peak int16
	for i := 0; i < len(pcm); i += 2 {
		s := int16(binary.LittleEndian.Uint16(pcm[i:]))
		if s > peak {
			peak = s
		}
	}
	assert.Greater(t, peak, int16(0))
	assert.LessOrEqual(t, float64(peak), PeakGain*32767+1)
}

func TestRenderEmpty(t *testing.T) {
	assert.Nil(t, Render(nil, 0, 44100))
	assert.Nil(t, Render(Tones(KindTick, 0), 0, 0))
}

func TestOpenNone(t *testing.T) {
	synth, err := Open(BackendNone, 0, nil)
	require.NoError(t, err)
	assert.IsType(t, NopSynth{}, synth)
	assert.NoError(t, synth.Schedule(Tones(KindTick, 0)))
}

func TestOpenUnknown(t *testing.T) {
	_, err := Open("cassette", 0, nil)
	assert.Error(t, err)
}

func TestBeepSynthSchedulesEveryTone(t *testing.T) {
	defer goleak.VerifyNone(t)

	var mu sync.Mutex
	var got []float64
	var errs []error

	b := NewBeepSynth(func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	})
	b.beeper = func(freq float64, ms int) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, freq)
		if freq == 440 {
			return errors.New("no speaker")
		}
		return nil
	}

	require.NoError(t, b.Schedule(Tones(KindWarning, b.Now())))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	}, time.Second, 5*time.Millisecond)
	require.NoError(t, b.Close())

	assert.ElementsMatch(t, []float64{440, 554.37}, got)
	assert.Len(t, errs, 1)
}

func TestBeepSynthCloseCancelsPending(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := NewBeepSynth(nil)
	called := make(chan struct{}, 1)
	b.beeper = func(float64, int) error {
		called <- struct{}{}
		return nil
	}

	far := b.Now() + 60
	require.NoError(t, b.Schedule([]Tone{{Frequency: 800, Anchor: far, Start: far, Stop: far + 0.5}}))
	require.NoError(t, b.Close())

	select {
	case <-called:
		t.Fatal("pending tone played after Close")
	default:
	}
}

func TestBeepSynthDrainPlaysWholeChord(t *testing.T) {
	defer goleak.VerifyNone(t)

	var mu sync.Mutex
	var played []float64
	b := NewBeepSynth(nil)
	b.beeper = func(freq float64, ms int) error {
		mu.Lock()
		defer mu.Unlock()
		played = append(played, freq)
		return nil
	}

	require.NoError(t, b.Schedule(Tones(KindComplete, b.Now())))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, b.Drain(ctx))
	require.NoError(t, b.Close())

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, Frequencies(KindComplete), played)
}

func TestBeepSynthDrainHonoursContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := NewBeepSynth(nil)
	b.beeper = func(float64, int) error { return nil }

	far := b.Now() + 60
	require.NoError(t, b.Schedule([]Tone{{Frequency: 800, Anchor: far, Start: far, Stop: far + 0.5}}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, b.Drain(ctx), context.DeadlineExceeded)
	require.NoError(t, b.Close())
}

func TestNopSynthDrain(t *testing.T) {
	assert.NoError(t, NopSynth{}.Drain(context.Background()))
}
