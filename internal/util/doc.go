// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds the file and display helpers shared by the TUI and
// the headless commands.
//
// # Key Functions
//
//   - AtomicWriteFile: temp file, fsync, rename. Saved SVGs and config
//     files are never left half written.
//   - FormatFileSize: "2.0 KB" / "1.5 MB" for the image card and summaries
//   - TruncateWidth: column-aware truncation with "..." for file names and
//     locations, wide characters counting as two columns
//
// # Usage
//
//	err := util.AtomicWriteFile(filepath.Join(dir, "art.svg"), []byte(svg), 0644)
//
//	size := util.FormatFileSize(2048) // "2.0 KB"
//
//	name := util.TruncateWidth(img.Name, 40)
package util
