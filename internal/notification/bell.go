package notification

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// BellNotifier sends terminal bell notifications
type BellNotifier struct {
	config   *BellConfig
	out      io.Writer
	terminal bool
}

// NewBellNotifier creates a new bell notifier writing to out.
// The bell only rings when out is a terminal.
func NewBellNotifier(cfg *BellConfig, out io.Writer) *BellNotifier {
	return &BellNotifier{
		config:   cfg,
		out:      out,
		terminal: isTerminal(out),
	}
}

// Notify sends a terminal bell
func (b *BellNotifier) Notify(msg Message) error {
	if !b.config.Enabled || !b.terminal {
		return nil
	}

	_, err := io.WriteString(b.out, "\a")
	return err
}

// Close cleans up resources
func (b *BellNotifier) Close() {
	// No cleanup needed
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
