// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package vectorize

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/jeranaias/vectorize-tui/internal/util"
)

// =============================================================================
// SHARING
// =============================================================================

// Default share texts.
const (
	ShareTitle   = "Vector Art"
	ShareMessage = "Check out my vectorized artwork!"
)

// ShareContent is what a ShareSink receives.
type ShareContent struct {
	Title      string
	Message    string
	FileName   string // suggested name, e.g. "art.svg"
	SVG        string
	ImageToken string
	EditorURL  string
}

// NewShareContent builds the share payload for a converted image.
func NewShareContent(img SelectedImage, res ConversionResult) ShareContent {
	return ShareContent{
		Title:      ShareTitle,
		Message:    ShareMessage,
		FileName:   SVGFileName(img.Name),
		SVG:        res.SVG,
		ImageToken: res.ImageToken,
		EditorURL:  res.EditorURL,
	}
}

// SVGFileName swaps the extension of name for .svg.
func SVGFileName(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "vector"
	}
	return base + ".svg"
}

// ShareSink delivers a result somewhere outside the app.
type ShareSink interface {
	Name() string
	Share(ctx context.Context, content ShareContent) error
}

// FileSink writes the SVG into Dir. FileName, when set, replaces the
// suggested name from the content.
type FileSink struct {
	Dir      string
	FileName string
}

// NewFileSink creates a FileSink writing into dir.
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// Name implements ShareSink.
func (s *FileSink) Name() string { return "file" }

// PathFor returns the path Share writes content to.
func (s *FileSink) PathFor(content ShareContent) string {
	name := content.FileName
	if s.FileName != "" {
		name = s.FileName
	}
	return filepath.Join(s.Dir, name)
}

// Share implements ShareSink.
func (s *FileSink) Share(ctx context.Context, content ShareContent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if content.SVG == "" {
		return fmt.Errorf("empty SVG")
	}
	return util.AtomicWriteFile(s.PathFor(content), []byte(content.SVG), 0644)
}

// ClipboardSink copies the SVG markup to the system clipboard.
type ClipboardSink struct {
	write func(string) error
}

// NewClipboardSink creates a sink backed by the system clipboard.
func NewClipboardSink() *ClipboardSink {
	return &ClipboardSink{}
}

// Name implements ShareSink.
func (s *ClipboardSink) Name() string { return "clipboard" }

// Share implements ShareSink.
func (s *ClipboardSink) Share(ctx context.Context, content ShareContent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.write != nil {
		return s.write(content.SVG)
	}
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard not available")
	}
	return clipboard.WriteAll(content.SVG)
}
