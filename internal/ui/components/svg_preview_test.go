// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
)

const sampleSVG = `<svg xmlns="http://www.w3.org/2000/svg"><path d="M0 0L10 10"/><circle r="4"/></svg>`

func TestFormatSVG(t *testing.T) {
	got := FormatSVG(sampleSVG)
	if lines := strings.Count(got, "\n"); lines != 3 {
		t.Errorf("expected every tag on its own line, got %d breaks in %q", lines, got)
	}

	multi := "<svg>\n<g/>\n</svg>"
	if FormatSVG(multi) != multi {
		t.Error("already formatted markup should be left alone")
	}
}

func TestSVGPreviewPlain(t *testing.T) {
	p := NewSVGPreview(sampleSVG)
	p.Highlight = false

	out := p.Render()
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "1 ") {
		t.Errorf("first line should be numbered: %q", lines[0])
	}
	if !strings.Contains(lines[1], `<path d="M0 0L10 10"/>`) {
		t.Errorf("second line should hold the path: %q", lines[1])
	}
}

func TestSVGPreviewHighlighted(t *testing.T) {
	out := NewSVGPreview(sampleSVG).Render()
	for _, want := range []string{"svg", "path", "circle"} {
		if !strings.Contains(out, want) {
			t.Errorf("highlighted output lost %q", want)
		}
	}
}

func TestHighlightXMLUnknownStyle(t *testing.T) {
	out := highlightXML("<svg/>", "no-such-style")
	if !strings.Contains(out, "svg") {
		t.Errorf("fallback style should still render: %q", out)
	}
}
