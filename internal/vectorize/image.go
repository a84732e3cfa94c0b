// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package vectorize

// SelectedImage is an image the user picked for conversion.
// Values are never mutated; selecting again replaces the whole value.
type SelectedImage struct {
	URI      string // opaque location, e.g. file:///home/u/art.png
	Name     string // display and upload file name
	MIMEType string
	Size     *int64 // optional byte size
}

// HasSize reports whether the byte size is known.
func (i SelectedImage) HasSize() bool {
	return i.Size != nil && *i.Size > 0
}

// clone returns a copy that shares no memory with i.
func (i SelectedImage) clone() SelectedImage {
	if i.Size != nil {
		size := *i.Size
		i.Size = &size
	}
	return i
}

// Selection is the raw result handed back by an image source.
// Any field may be missing.
type Selection struct {
	URI      string
	FileName string
	MIMEType string
	FileSize *int64
}

// Image converts the selection into a SelectedImage. ok is false when
// URI, FileName or MIMEType is missing; such selections are dropped.
func (s Selection) Image() (img SelectedImage, ok bool) {
	if s.URI == "" || s.FileName == "" || s.MIMEType == "" {
		return SelectedImage{}, false
	}
	return SelectedImage{
		URI:      s.URI,
		Name:     s.FileName,
		MIMEType: s.MIMEType,
		Size:     s.FileSize,
	}, true
}
