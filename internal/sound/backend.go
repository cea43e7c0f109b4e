package sound

import (
	"fmt"

	"go.uber.org/zap"
)

// Backend names accepted in config
const (
	BackendAuto = "auto"
	BackendOto  = "oto"
	BackendBeep = "beep"
	BackendNone = "none"
)

// Open returns the synth for backend. With BackendAuto it tries oto first
// and falls back to system beeps when no audio device can be opened.
func Open(backend string, sampleRate int, logger *zap.Logger) (Synth, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	onError := func(err error) {
		logger.Debug("beep failed", zap.Error(err))
	}

	switch backend {
	case BackendNone:
		return NopSynth{}, nil
	case BackendBeep:
		return NewBeepSynth(onError), nil
	case BackendOto:
		return NewOtoSynth(sampleRate)
	case BackendAuto, "":
		synth, err := NewOtoSynth(sampleRate)
		if err == nil {
			return synth, nil
		}
		logger.Info("audio device unavailable, using system beep", zap.Error(err))
		return NewBeepSynth(onError), nil
	default:
		return nil, fmt.Errorf("unknown sound backend %q", backend)
	}
}
