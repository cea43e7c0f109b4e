package notification

import (
	"fmt"
	"io"
	"sync"

	"github.com/polidog/pomodoro-shell/internal/timer"
)

// TitleNotifier mirrors the countdown into the terminal title. Writes are
// skipped when the title has not changed since the last one.
type TitleNotifier struct {
	config *TitleConfig
	out    io.Writer

	mu   sync.Mutex
	last string
}

func NewTitleNotifier(cfg *TitleConfig, out io.Writer) *TitleNotifier {
	return &TitleNotifier{config: cfg, out: out}
}

// Format renders the title for state: "🍅 12:34 Focus Time" while
// running, the base title while paused
func (t *TitleNotifier) Format(state timer.State) string {
	if !state.Running {
		return t.config.BaseTitle
	}
	return fmt.Sprintf(t.config.Format, state.Clock(), state.Phase.Label())
}

// Update writes the title for state
func (t *TitleNotifier) Update(state timer.State) {
	if t.config.Enabled {
		t.set(t.Format(state))
	}
}

// Close restores the base title
func (t *TitleNotifier) Close() {
	if t.config.Enabled {
		t.set(t.config.BaseTitle)
	}
}

func (t *TitleNotifier) set(title string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.out == nil || title == t.last {
		return
	}
	t.last = title
	fmt.Fprintf(t.out, "\x1b]0;%s\x07", title)
}

// handOver retires t in favour of next. The terminal keeps showing the
// current title unless next is switched off, in which case the base title
// is restored.
func (t *TitleNotifier) handOver(next *TitleNotifier) {
	if !next.config.Enabled {
		t.Close()
		return
	}
	t.mu.Lock()
	last := t.last
	t.mu.Unlock()

	next.mu.Lock()
	next.last = last
	next.mu.Unlock()
}
