package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/smartmate/internal/ui/style"
)

type styles struct {
	palette style.Palette

	title    lipgloss.Style
	row      lipgloss.Style
	selected lipgloss.Style
	done     lipgloss.Style
	overdue  lipgloss.Style
	muted    lipgloss.Style
	failure  lipgloss.Style
	success  lipgloss.Style
}

func newStyles(p style.Palette) styles {
	return styles{
		palette: p,

		title: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(p.Accent).
			Foreground(style.White),

		row: lipgloss.NewStyle().
			Foreground(p.Foreground),

		selected: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),

		done: lipgloss.NewStyle().
			Foreground(p.Muted).
			Faint(true),

		overdue: lipgloss.NewStyle().
			Foreground(p.Danger),

		muted: lipgloss.NewStyle().
			Foreground(p.Muted),

		failure: lipgloss.NewStyle().
			Foreground(p.Danger).
			Bold(true),

		success: lipgloss.NewStyle().
			Foreground(p.Success),
	}
}
