// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package vectorize

// ScreenState is the single mode the screen is in.
type ScreenState int

const (
	StateEmpty      ScreenState = iota // no image selected
	StateReady                         // image selected, nothing run yet
	StateProcessing                    // request in flight
	StateSucceeded                     // result available
	StateFailed                        // error available
)

// String returns the state name.
func (s ScreenState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateReady:
		return "ready"
	case StateProcessing:
		return "processing"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CanConvert reports whether the convert action is offered.
func (s ScreenState) CanConvert() bool { return s == StateReady }

// CanRetry reports whether the retry action is offered.
func (s ScreenState) CanRetry() bool { return s == StateFailed }

// CanShare reports whether a result can be shared.
func (s ScreenState) CanShare() bool { return s == StateSucceeded }

// deriveState maps the stored fields onto exactly one state. Processing wins
// over a stale result or error so the screen never shows two modes at once.
func deriveState(hasImage, processing, hasResult, hasErr bool) ScreenState {
	switch {
	case !hasImage:
		return StateEmpty
	case processing:
		return StateProcessing
	case hasResult:
		return StateSucceeded
	case hasErr:
		return StateFailed
	default:
		return StateReady
	}
}
