// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package vectorize

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// =============================================================================
// IMAGE SOURCE
// =============================================================================

// SupportedExtensions lists the image types the service accepts.
var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"}

// ImageSource picks an image. Implementations may return a Selection with
// missing fields; the Controller drops those.
type ImageSource interface {
	Pick(ctx context.Context) (Selection, error)
}

// ImageOpener opens the bytes behind a SelectedImage URI.
type ImageOpener interface {
	Open(uri string) (io.ReadCloser, error)
}

// FileSource is an ImageSource backed by a local path.
type FileSource struct {
	Path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Pick stats the file and builds a Selection for it.
func (s *FileSource) Pick(ctx context.Context) (Selection, error) {
	if err := ctx.Err(); err != nil {
		return Selection{}, err
	}

	abs, err := filepath.Abs(s.Path)
	if err != nil {
		return Selection{}, fmt.Errorf("failed to resolve %s: %w", s.Path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Selection{}, fmt.Errorf("failed to stat %s: %w", s.Path, err)
	}
	if info.IsDir() {
		return Selection{}, fmt.Errorf("%s is a directory", s.Path)
	}

	size := info.Size()
	return Selection{
		URI:      FileURI(abs),
		FileName: filepath.Base(abs),
		MIMEType: DetectMIMEType(abs),
		FileSize: &size,
	}, nil
}

// FileURI converts an absolute path into a file:// URI.
func FileURI(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	if !strings.HasPrefix(u.Path, "/") {
		u.Path = "/" + u.Path
	}
	return u.String()
}

// DetectMIMEType resolves the MIME type from the extension, falling back to
// sniffing the first 512 bytes. Returns "" when the type is not an image.
func DetectMIMEType(path string) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); strings.HasPrefix(t, "image/") {
		return t
	}

	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	head := make([]byte, 512)
	n, _ := io.ReadFull(f, head)
	if t := http.DetectContentType(head[:n]); strings.HasPrefix(t, "image/") {
		return t
	}
	return ""
}

// IsSupportedImage reports whether path has one of SupportedExtensions.
func IsSupportedImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FileOpener opens file:// URIs and plain paths.
type FileOpener struct{}

// Open implements ImageOpener.
func (FileOpener) Open(uri string) (io.ReadCloser, error) {
	path, err := pathFromURI(uri)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return f, nil
}

func pathFromURI(uri string) (string, error) {
	if !strings.Contains(uri, "://") {
		return uri, nil
	}
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid image location %q: %w", uri, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedURI, u.Scheme)
	}
	path := u.Path
	// file:///C:/art.png
	if len(path) > 2 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}
