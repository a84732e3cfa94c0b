// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// FormatFileSize renders a byte count as KB below one megabyte and MB above,
// with one decimal. Zero or negative sizes render as "".
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return ""
	}
	kb := float64(bytes) / 1024
	if kb < 1024 {
		return fmt.Sprintf("%.1f KB", kb)
	}
	return fmt.Sprintf("%.1f MB", kb/1024)
}

// TruncateWidth truncates s to maxWidth display columns, appending "..."
// when cut. Wide (CJK) characters count as two columns.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}
