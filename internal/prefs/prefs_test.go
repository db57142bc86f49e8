package prefs

import (
	"context"
	"errors"
	"testing"

	"github.com/Thanajai/GrowFuse/internal/shared/storage/kv"
)

func TestThemeDefaultsToDark(t *testing.T) {
	repo := NewRepo(kv.NewMemoryStore())
	if got := repo.Theme(context.Background()); got != ThemeDark {
		t.Fatalf("expected dark default, got %q", got)
	}
}

func TestThemeRoundTrip(t *testing.T) {
	repo := NewRepo(kv.NewMemoryStore())
	ctx := context.Background()

	if err := repo.SetTheme(ctx, ThemeLight); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if got := repo.Theme(ctx); got != ThemeLight {
		t.Fatalf("expected light, got %q", got)
	}
}

func TestThemeInvalidStoredValueFallsBack(t *testing.T) {
	store := kv.NewMemoryStore()
	repo := NewRepo(store)
	ctx := context.Background()

	if err := store.Set(ctx, themeKey, "sepia"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if got := repo.Theme(ctx); got != ThemeDark {
		t.Fatalf("expected dark fallback, got %q", got)
	}
}

func TestSetThemeRejectsUnknownValue(t *testing.T) {
	repo := NewRepo(kv.NewMemoryStore())
	if err := repo.SetTheme(context.Background(), "sepia"); !errors.Is(err, ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got %v", err)
	}
}
