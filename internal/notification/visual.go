package notification

import (
	"sync"
	"time"
)

// VisualNotifier keeps the in-app toast queue. Toasts are stamped on
// arrival and dropped once older than DismissAfter; expiry happens on
// read, so the UI polls with NextExpiry.
type VisualNotifier struct {
	mu     sync.Mutex
	config VisualConfig
	queue  []Message
	now    func() time.Time
}

func NewVisualNotifier(cfg VisualConfig) *VisualNotifier {
	return &VisualNotifier{
		config: cfg,
		now:    time.Now,
	}
}

// SetConfig swaps the configuration, keeping queued toasts
func (v *VisualNotifier) SetConfig(cfg VisualConfig) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.config = cfg
	v.boundLocked()
}

// Notify queues msg, evicting the oldest toast when the queue is full
func (v *VisualNotifier) Notify(msg Message) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.config.Enabled {
		return nil
	}
	msg.At = v.now()
	v.queue = append(v.queue, msg)
	v.boundLocked()
	return nil
}

func (v *VisualNotifier) boundLocked() {
	if limit := v.config.MaxItems; limit > 0 && len(v.queue) > limit {
		v.queue = append([]Message(nil), v.queue[len(v.queue)-limit:]...)
	}
}

func (v *VisualNotifier) lifetimeLocked() time.Duration {
	return time.Duration(v.config.DismissAfter) * time.Second
}

// expireLocked drops toasts past their lifetime; a zero lifetime keeps
// them until dismissed
func (v *VisualNotifier) expireLocked() {
	life := v.lifetimeLocked()
	if life <= 0 {
		return
	}
	now := v.now()
	live := v.queue[:0]
	for _, msg := range v.queue {
		if now.Sub(msg.At) < life {
			live = append(live, msg)
		}
	}
	v.queue = live
}

// GetNotifications returns live toasts, oldest first
func (v *VisualNotifier) GetNotifications() []Message {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.expireLocked()
	return append([]Message(nil), v.queue...)
}

// NextExpiry reports when the oldest live toast expires
func (v *VisualNotifier) NextExpiry() (time.Time, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.expireLocked()
	life := v.lifetimeLocked()
	if len(v.queue) == 0 || life <= 0 {
		return time.Time{}, false
	}
	return v.queue[0].At.Add(life), true
}

// Dismiss removes the toast at index; out-of-range indexes are ignored
func (v *VisualNotifier) Dismiss(index int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if index < 0 || index >= len(v.queue) {
		return
	}
	v.queue = append(v.queue[:index], v.queue[index+1:]...)
}

func (v *VisualNotifier) DismissAll() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.queue = nil
}

// Count returns the number of live toasts
func (v *VisualNotifier) Count() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.expireLocked()
	return len(v.queue)
}

// DismissAfter returns how long a toast stays visible, zero meaning forever
func (v *VisualNotifier) DismissAfter() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lifetimeLocked()
}

func (v *VisualNotifier) Close() {
	v.DismissAll()
}
