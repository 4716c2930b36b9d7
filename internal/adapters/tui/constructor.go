// Package tui provides the interactive task board.
package tui

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/smartmate/internal/ui/output"
	"go.trai.ch/smartmate/internal/ui/style"
)

const defaultToastTTL = 4 * time.Second

// NewModel creates a board bound to actions. theme must be light or dark.
func NewModel(w io.Writer, actions Actions, theme domain.Theme) Model {
	if w == nil {
		w = os.Stderr
	}

	out := output.New(w)
	lipgloss.SetColorProfile(out.Profile)

	st := newStyles(style.PaletteFor(theme))
	return Model{
		Loading: true,
		Theme:   theme,
		ctx:     context.Background(),
		actions: actions,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(st.selected),
		),
		styles:   st,
		toastTTL: defaultToastTTL,
		now:      time.Now,
	}
}

// WithContext sets the context passed to actions.
//
//nolint:gocritic // hugeParam ignored
func (m Model) WithContext(ctx context.Context) Model {
	m.ctx = ctx
	return m
}

// WithClock overrides the clock used for overdue markers.
//
//nolint:gocritic // hugeParam ignored
func (m Model) WithClock(now func() time.Time) Model {
	m.now = now
	return m
}
