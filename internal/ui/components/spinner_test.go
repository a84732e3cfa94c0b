// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// SPINNER TESTS
// =============================================================================

func TestNewSpinner(t *testing.T) {
	s := NewSpinner()

	if s.style != SpinnerLine {
		t.Errorf("NewSpinner() style = %v, want %v", s.style, SpinnerLine)
	}
	if s.message != "Vectorizing" {
		t.Errorf("NewSpinner() message = %q, want %q", s.message, "Vectorizing")
	}
	if s.isActive {
		t.Error("NewSpinner() should not be active initially")
	}
	if s.View() != "" {
		t.Error("inactive spinner should render nothing")
	}
}

func TestSpinnerSetStyle(t *testing.T) {
	s := NewSpinner()

	for _, style := range []SpinnerStyle{SpinnerDots, SpinnerBlock, SpinnerLine} {
		s.SetStyle(style)
		if len(s.spinner.Spinner.Frames) == 0 {
			t.Errorf("style %d has no frames", style)
		}
	}
}

func TestSpinnerStartStop(t *testing.T) {
	s := NewSpinner()

	cmd := s.Start()
	if cmd == nil {
		t.Error("Start() should return a tick command")
	}
	if s.View() == "" {
		t.Error("spinner should render after Start()")
	}
	if s.Elapsed() < 0 {
		t.Error("Elapsed() should not be negative")
	}

	s.Stop()
	if s.View() != "" {
		t.Error("spinner should render nothing after Stop()")
	}

	_, cmd = s.Update(tea.KeyMsg{})
	if cmd != nil {
		t.Error("inactive spinner should not schedule ticks")
	}
}

func TestSpinnerView(t *testing.T) {
	s := NewSpinner()
	s.SetMessage("Uploading")
	s.SetDetail("art.png")
	s.Start()

	view := s.View()
	if !strings.Contains(view, "Uploading...") {
		t.Errorf("view should contain the message: %q", view)
	}
	if !strings.Contains(view, "art.png") {
		t.Errorf("view should contain the detail: %q", view)
	}
	if !strings.Contains(view, "0s") {
		t.Errorf("view should contain the timer: %q", view)
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{1500 * time.Millisecond, "1s"},
		{59 * time.Second, "59s"},
		{65 * time.Second, "1m 5s"},
		{10 * time.Minute, "10m 0s"},
	}

	for _, tc := range tests {
		if got := FormatElapsed(tc.d); got != tc.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
