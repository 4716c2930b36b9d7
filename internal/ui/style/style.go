// Package style provides the shared colors, icons and theme palettes.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/smartmate/internal/core/domain"
)

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Ink    = lipgloss.Color("#0B0F19")
	Mist   = lipgloss.Color("#F6F7FB")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Dot     = "●"
	Circle  = "○"
)

// Palette is the set of colors a theme renders with.
type Palette struct {
	Foreground lipgloss.Color
	Background lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Success    lipgloss.Color
	Danger     lipgloss.Color
	Warning    lipgloss.Color
}

var (
	darkPalette = Palette{
		Foreground: Mist,
		Background: Ink,
		Muted:      Slate,
		Accent:     Iris,
		Success:    Green,
		Danger:     Red,
		Warning:    Yellow,
	}
	lightPalette = Palette{
		Foreground: Ink,
		Background: White,
		Muted:      Slate,
		Accent:     Iris,
		Success:    Green,
		Danger:     Red,
		Warning:    Yellow,
	}
)

// PaletteFor returns the palette of a concrete theme. ThemeSystem must be
// resolved by the caller; it renders as dark.
func PaletteFor(t domain.Theme) Palette {
	if t == domain.ThemeLight {
		return lightPalette
	}
	return darkPalette
}

// PriorityColor maps a task priority to its color in p.
func (p Palette) PriorityColor(pr domain.Priority) lipgloss.Color {
	switch pr {
	case domain.PriorityHigh:
		return p.Danger
	case domain.PriorityMedium:
		return p.Warning
	default:
		return p.Muted
	}
}
