// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the vectorize TUI.

# Color System (colors.go)

All colors are Lip Gloss AdaptiveColor values so the palette follows the
terminal background:

  - Purple - titles and focused borders
  - Cyan - Ready badge and key hints
  - Amber - Processing badge
  - Emerald - Succeeded badge and the SVG preview border
  - Rose - Failed badge and the error box

StatusIndicators pair every state with an ASCII marker ([OK], [X], [..])
so the screen stays readable with NO_COLOR.

# Theme System (theme.go)

	theme := styles.NewTheme(styles.ThemeOptions{Name: cfg.UI.Theme, NoColor: cfg.UI.NoColor})
	theme.SetSize(msg.Width, msg.Height)
	if theme.GetLayoutMode() == styles.LayoutNarrow {
		// stack the image card above the preview
	}
*/
package styles
