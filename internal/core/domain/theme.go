package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Theme is the persisted UI color preference.
type Theme string

// Themes.
const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// PreferenceTheme is the preference key holding the theme.
const PreferenceTheme = "theme"

// ParseTheme parses a theme name case-insensitively.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return t, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidTheme, "parse theme"), "value", s)
	}
}

// Toggle flips between light and dark. System resolves to dark.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Resolve maps system to a concrete theme using the terminal's background.
func (t Theme) Resolve(darkBackground bool) Theme {
	if t != ThemeSystem {
		return t
	}
	if darkBackground {
		return ThemeDark
	}
	return ThemeLight
}
