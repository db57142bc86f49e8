package prefs

import (
	"context"
	"errors"

	"github.com/Thanajai/GrowFuse/internal/shared/storage/kv"
	"github.com/Thanajai/GrowFuse/internal/shared/telemetry"
)

const (
	themeKey = "theme"

	ThemeLight = "light"
	ThemeDark  = "dark"
)

var ErrInvalidTheme = errors.New("prefs: theme must be light or dark")

// Repo persists small UI preferences. Absent or unrecognized values resolve
// to the dark theme default.
type Repo struct {
	Store kv.Store
}

func NewRepo(store kv.Store) *Repo {
	return &Repo{Store: store}
}

func (r *Repo) Theme(ctx context.Context) string {
	value, ok, err := r.Store.Get(ctx, themeKey)
	if err != nil {
		telemetry.Error("prefs.read_failed", map[string]any{"error": err.Error()})
		return ThemeDark
	}
	if !ok || (value != ThemeLight && value != ThemeDark) {
		return ThemeDark
	}
	return value
}

func (r *Repo) SetTheme(ctx context.Context, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return ErrInvalidTheme
	}
	return r.Store.Set(ctx, themeKey, theme)
}
