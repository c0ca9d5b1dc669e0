package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// Theme tests share the package-level theme and never run in parallel.

func TestInitTheme(t *testing.T) {
	orig := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(orig) })

	InitTheme(true)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("Expected no-color theme, got %q", GetCurrentTheme().Name)
	}

	t.Setenv("NO_COLOR", "")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("Expected NO_COLOR to disable colors, got %q", GetCurrentTheme().Name)
	}
}

func TestSetTheme(t *testing.T) {
	orig := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(orig) })

	for name, want := range map[string]string{"light": "light", "none": "none", "dark": "dark", "neon": "dark"} {
		SetTheme(name)
		if got := GetCurrentTheme().Name; got != want {
			t.Errorf("SetTheme(%q) selected %q, want %q", name, got, want)
		}
	}
}

func TestCurrentPalette(t *testing.T) {
	orig := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(orig) })

	SetCurrentTheme(NoColorTheme)
	if _, ok := CurrentPalette().Accent.(lipgloss.NoColor); !ok {
		t.Error("Expected NoColor accent with the no-color theme")
	}
	SetCurrentTheme(DarkTheme)
	if _, ok := CurrentPalette().Accent.(lipgloss.NoColor); ok {
		t.Error("Expected a real accent color with the dark theme")
	}
}

func TestPaint(t *testing.T) {
	if got := NoColorTheme.Paint(NoColorTheme.Error, "x"); got != "x" {
		t.Errorf("NoColorTheme.Paint = %q, want %q", got, "x")
	}
	if got := DarkTheme.Paint(DarkTheme.Error, "x"); got != DarkTheme.Error+"x"+DarkTheme.Reset {
		t.Errorf("DarkTheme.Paint = %q", got)
	}
}
