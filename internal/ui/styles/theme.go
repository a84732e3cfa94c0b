// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme names accepted by ui.theme in the config file.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ThemeOptions selects the palette and color depth.
type ThemeOptions struct {
	Name    string // ThemeDark or ThemeLight; empty means auto-detect
	NoColor bool
}

// Theme holds all the styled components for the vectorize screen.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// IMAGE CARD STYLES
	// ==========================================================================

	Card       lipgloss.Style
	CardTitle  lipgloss.Style
	Label      lipgloss.Style
	Value      lipgloss.Style
	Muted      lipgloss.Style
	EmptyState lipgloss.Style

	// ==========================================================================
	// STATE BADGES
	// ==========================================================================

	BadgeEmpty      lipgloss.Style
	BadgeReady      lipgloss.Style
	BadgeProcessing lipgloss.Style
	BadgeSucceeded  lipgloss.Style
	BadgeFailed     lipgloss.Style

	// ==========================================================================
	// RESULT STYLES
	// ==========================================================================

	ErrorBox   lipgloss.Style
	ErrorTitle lipgloss.Style
	Preview    lipgloss.Style
	Link       lipgloss.Style

	// ==========================================================================
	// HELP BAR STYLES
	// ==========================================================================

	HelpBar         lipgloss.Style
	HelpKey         lipgloss.Style
	HelpKeyDisabled lipgloss.Style
	HelpDesc        lipgloss.Style
	HelpOverlay     lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
// An explicit theme name overrides background detection and NoColor
// drops the profile to ASCII for every lipgloss renderer.
func NewTheme(opts ThemeOptions) *Theme {
	colorProfile := termenv.ColorProfile()
	if opts.NoColor {
		colorProfile = termenv.Ascii
		lipgloss.SetColorProfile(colorProfile)
	}

	isDark := termenv.HasDarkBackground()
	switch opts.Name {
	case ThemeDark:
		isDark = true
	case ThemeLight:
		isDark = false
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Image card
	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.CardTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.Label = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Width(10)

	t.Value = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.EmptyState = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Padding(1, 2)

	// Badges
	badge := lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Padding(0, 1)

	t.BadgeEmpty = badge.Background(OverlayDim)
	t.BadgeReady = badge.Background(Cyan)
	t.BadgeProcessing = badge.Background(Amber)
	t.BadgeSucceeded = badge.Background(Emerald)
	t.BadgeFailed = badge.Background(Rose)

	// Result
	t.ErrorBox = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(RoseDeep).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 1)

	t.ErrorTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Rose)

	t.Preview = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Emerald)

	t.Link = lipgloss.NewStyle().
		Foreground(LinkColor).
		Underline(true)

	// Help bar
	t.HelpBar = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(SurfaceDim).
		Padding(0, 1)

	t.HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.HelpKeyDisabled = lipgloss.NewStyle().
		Foreground(OverlayDim).
		Strikethrough(true)

	t.HelpDesc = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.HelpOverlay = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Purple).
		Padding(1, 2)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)

// String returns the layout name.
func (m LayoutMode) String() string {
	switch m {
	case LayoutNarrow:
		return "narrow"
	case LayoutMedium:
		return "medium"
	default:
		return "wide"
	}
}
