// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// =============================================================================
// THEME CREATION TESTS
// =============================================================================

func TestNewTheme(t *testing.T) {
	theme := NewTheme(ThemeOptions{})

	if theme == nil {
		t.Fatal("NewTheme() returned nil")
	}

	if rendered := theme.App.Render("test"); rendered == "" {
		t.Error("NewTheme() should initialize App style")
	}
}

func TestNewTheme_ExplicitName(t *testing.T) {
	if theme := NewTheme(ThemeOptions{Name: ThemeLight}); theme.IsDark {
		t.Error("light theme should not report a dark background")
	}
	if theme := NewTheme(ThemeOptions{Name: ThemeDark}); !theme.IsDark {
		t.Error("dark theme should report a dark background")
	}
}

func TestNewTheme_NoColor(t *testing.T) {
	t.Cleanup(func() { lipgloss.SetColorProfile(termenv.ColorProfile()) })

	theme := NewTheme(ThemeOptions{NoColor: true})
	if theme.ColorProfile != termenv.Ascii {
		t.Errorf("ColorProfile = %v, want Ascii", theme.ColorProfile)
	}
	if theme.HasTrueColor {
		t.Error("no-color theme should not claim true color")
	}
	if got := theme.BadgeReady.Render("Ready"); !strings.Contains(got, "Ready") {
		t.Errorf("badge lost its text: %q", got)
	}
}

func TestThemeInitStyles(t *testing.T) {
	theme := NewTheme(ThemeOptions{Name: ThemeDark})

	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Header", theme.Header},
		{"Card", theme.Card},
		{"EmptyState", theme.EmptyState},
		{"BadgeEmpty", theme.BadgeEmpty},
		{"BadgeReady", theme.BadgeReady},
		{"BadgeProcessing", theme.BadgeProcessing},
		{"BadgeSucceeded", theme.BadgeSucceeded},
		{"BadgeFailed", theme.BadgeFailed},
		{"ErrorBox", theme.ErrorBox},
		{"Preview", theme.Preview},
		{"HelpBar", theme.HelpBar},
		{"HelpOverlay", theme.HelpOverlay},
	}

	for _, s := range styles {
		if rendered := s.style.Render("test"); !strings.Contains(rendered, "test") {
			t.Errorf("%s style dropped its content: %q", s.name, rendered)
		}
	}
}

// =============================================================================
// THEME SIZE TESTS
// =============================================================================

func TestThemeSetSize(t *testing.T) {
	theme := NewTheme(ThemeOptions{})

	tests := []struct {
		width  int
		height int
	}{
		{80, 24},
		{120, 40},
		{40, 10},
	}

	for _, tc := range tests {
		theme.SetSize(tc.width, tc.height)
		if theme.Width != tc.width {
			t.Errorf("SetSize(%d, %d) Width = %d, want %d", tc.width, tc.height, theme.Width, tc.width)
		}
		if theme.Height != tc.height {
			t.Errorf("SetSize(%d, %d) Height = %d, want %d", tc.width, tc.height, theme.Height, tc.height)
		}
	}
}

func TestThemeGetLayoutMode(t *testing.T) {
	theme := NewTheme(ThemeOptions{})

	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{200, LayoutWide},
	}

	for _, tc := range tests {
		theme.SetSize(tc.width, 24)
		if got := theme.GetLayoutMode(); got != tc.want {
			t.Errorf("GetLayoutMode() with width %d = %v, want %v", tc.width, got, tc.want)
		}
	}
}

func TestLayoutModeString(t *testing.T) {
	if LayoutNarrow.String() != "narrow" || LayoutMedium.String() != "medium" || LayoutWide.String() != "wide" {
		t.Error("unexpected layout mode names")
	}
}
