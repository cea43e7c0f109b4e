package timer

import (
	"sync"
	"time"
)

// Handle is a live periodic callback
type Handle interface {
	// Cancel stops future callbacks. It is idempotent and may be called
	// from inside the callback itself.
	Cancel()
}

// Scheduler is the host periodic-callback capability
type Scheduler interface {
	Every(interval time.Duration, fn func()) Handle
}

// TickerScheduler runs callbacks from a time.Ticker goroutine
type TickerScheduler struct{}

// NewTickerScheduler returns the wall-clock scheduler
func NewTickerScheduler() TickerScheduler {
	return TickerScheduler{}
}

// Every starts a goroutine calling fn once per interval until cancelled
func (TickerScheduler) Every(interval time.Duration, fn func()) Handle {
	h := &tickerHandle{stop: make(chan struct{})}
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-h.stop:
				return
			case <-ticker.C:
				// a cancel racing the tick wins
				select {
				case <-h.stop:
					return
				default:
				}
				fn()
			}
		}
	}()

	return h
}

type tickerHandle struct {
	stop chan struct{}
	once sync.Once
}

func (h *tickerHandle) Cancel() {
	h.once.Do(func() { close(h.stop) })
}
