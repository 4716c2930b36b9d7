package app

import (
	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/zerr"
)

// Theme returns the stored theme. A missing value means system; an
// unknown one is logged and treated as system.
func (a *App) Theme() domain.Theme {
	raw, ok := a.prefs.Get(domain.PreferenceTheme)
	if !ok {
		return domain.ThemeSystem
	}
	theme, err := domain.ParseTheme(raw)
	if err != nil {
		a.logger.Warn("ignoring stored theme " + raw + ", using system")
		return domain.ThemeSystem
	}
	return theme
}

// AppliedTheme resolves the stored theme against the terminal background.
func (a *App) AppliedTheme() domain.Theme {
	return a.Theme().Resolve(a.darkBackground())
}

// SetTheme stores theme.
func (a *App) SetTheme(theme domain.Theme) error {
	if err := a.prefs.Set(domain.PreferenceTheme, string(theme)); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to save theme"), "theme", string(theme))
	}
	return nil
}

// ToggleTheme switches between light and dark and stores the result.
func (a *App) ToggleTheme() (domain.Theme, error) {
	next := a.Theme().Toggle()
	if err := a.SetTheme(next); err != nil {
		return "", err
	}
	return next, nil
}
