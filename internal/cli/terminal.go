// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - What the headless commands may assume about the terminal:
// whether a path can be prompted for, whether stdout takes color, and
// whether an SVG may be written straight to stdout.

package cli

import (
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTTY reports whether stdin is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY reports whether stdout is a terminal. When it is not, convert
// writes the SVG to stdout.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// CanPrompt reports whether convert may ask for a missing image path.
func CanPrompt() bool {
	return IsTTY()
}

// Report rules never grow past reportWidthMax or shrink below reportWidthMin.
const (
	reportWidthMin = 30
	reportWidthMax = 60
)

// ReportWidth is the width of separator rules in command reports: the
// terminal width clamped to a readable range, or reportWidthMax when stdout
// is not a terminal.
func ReportWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return reportWidthMax
	}
	return min(max(width, reportWidthMin), reportWidthMax)
}

// =============================================================================
// COLOR
// =============================================================================

var (
	colorMu       sync.Mutex
	colorDecided  bool
	colorsAllowed bool
)

// ColorsEnabled reports whether command output is styled. NO_COLOR wins over
// FORCE_COLOR; otherwise color follows whether stdout is a terminal.
func ColorsEnabled() bool {
	colorMu.Lock()
	defer colorMu.Unlock()

	if !colorDecided {
		switch {
		case os.Getenv("NO_COLOR") != "":
			colorsAllowed = false
		case os.Getenv("FORCE_COLOR") != "":
			colorsAllowed = true
		default:
			colorsAllowed = IsStdoutTTY()
		}
		colorDecided = true
	}
	return colorsAllowed
}

// ForceColorsEnabled pins the color decision. ui.no_color and tests use it.
func ForceColorsEnabled(enabled bool) {
	colorMu.Lock()
	defer colorMu.Unlock()
	colorsAllowed = enabled
	colorDecided = true
}

// GetColorProfile maps the color decision onto a termenv profile.
func GetColorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}
