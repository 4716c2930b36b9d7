// Package notify renders user-facing notifications on the terminal.
package notify

import (
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/smartmate/internal/core/ports"
	"go.trai.ch/smartmate/internal/ui/output"
	"go.trai.ch/smartmate/internal/ui/style"
)

var _ ports.Notifier = (*Notifier)(nil)

// Notifier writes one colored line per notification.
type Notifier struct {
	mu   sync.Mutex
	out  *termenv.Output
	sink func(domain.Notification)
}

// New creates a Notifier writing to w.
func New(w io.Writer) *Notifier {
	return &Notifier{out: output.New(w)}
}

// Notify renders n, or hands it to the active redirect.
func (n *Notifier) Notify(note domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.sink != nil {
		n.sink(note)
		return
	}

	icon, color := Decorate(note.Level)
	line := n.out.String(icon + " " + note.Message).Foreground(termenv.RGBColor(string(color)))
	_, _ = n.out.WriteString(line.String() + "\n")
}

// Redirect routes notifications to fn until restore is called.
func (n *Notifier) Redirect(fn func(domain.Notification)) func() {
	n.mu.Lock()
	prev := n.sink
	n.sink = fn
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		n.sink = prev
		n.mu.Unlock()
	}
}

// Decorate returns the icon and color for a level.
func Decorate(level domain.Level) (string, lipgloss.Color) {
	switch level {
	case domain.LevelSuccess:
		return style.Check, style.Green
	case domain.LevelError:
		return style.Cross, style.Red
	default:
		return style.Dot, style.Slate
	}
}
