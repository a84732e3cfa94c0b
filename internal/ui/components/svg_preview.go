// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/vectorize-tui/internal/ui/styles"
)

// =============================================================================
// SVG SOURCE RENDERER
// =============================================================================

// SVGPreview renders converted SVG markup as numbered, highlighted source.
type SVGPreview struct {
	Source      string
	Highlight   bool
	ChromaStyle string
}

// NewSVGPreview creates a preview for source. Highlighting is on by default.
func NewSVGPreview(source string) SVGPreview {
	return SVGPreview{
		Source:      source,
		Highlight:   true,
		ChromaStyle: "monokai",
	}
}

// Render returns the numbered lines, ready to be placed in a viewport.
func (p SVGPreview) Render() string {
	source := strings.TrimSpace(FormatSVG(p.Source))
	if p.Highlight {
		source = highlightXML(source, p.ChromaStyle)
	}

	lines := strings.Split(source, "\n")
	gutter := len(strconv.Itoa(len(lines)))

	lineNumStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Width(gutter).
		Align(lipgloss.Right).
		MarginRight(1)

	rendered := make([]string, 0, len(lines))
	for i, line := range lines {
		rendered = append(rendered, lineNumStyle.Render(strconv.Itoa(i+1))+line)
	}
	return strings.Join(rendered, "\n")
}

// FormatSVG puts every tag on its own line. Services often return the
// whole document on a single line, which is unreadable in a viewport.
func FormatSVG(svg string) string {
	if strings.Count(svg, "\n") > 1 {
		return svg
	}
	return strings.ReplaceAll(svg, "><", ">\n<")
}

// highlightXML applies chroma XML highlighting for terminal output.
// It returns code unchanged when highlighting fails.
func highlightXML(code, styleName string) string {
	lexer := lexers.Get("xml")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get(styleName)
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}
