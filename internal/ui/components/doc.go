// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the vectorize screen.

  - Spinner (spinner.go) - Processing indicator with elapsed timer.
  - ToastManager (toast.go) - Auto-dismissing notifications for share outcomes.
  - SVGPreview (svg_preview.go) - Chroma-highlighted SVG source with line numbers.

Components are plain values updated from the screen model's Update method;
only ToastManager is shared by pointer and guards itself with a mutex.
*/
package components
