// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screen

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/vectorize-tui/internal/config"
	"github.com/jeranaias/vectorize-tui/internal/vectorize"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ConfigReloadedMsg is sent by the config watcher when the file changes.
// Err is set when the new file failed to load or validate; Config then
// holds defaults and is ignored.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// imagePickedMsg carries the outcome of an ImageSource.
type imagePickedMsg struct {
	Selection vectorize.Selection
	Err       error
}

// conversionDoneMsg carries a finished conversion back to Update.
type conversionDoneMsg struct {
	Outcome vectorize.Outcome
}

// shareDoneMsg reports a share attempt.
type shareDoneMsg struct {
	Sink   string
	Target string // file path for the file sink
	Err    error
}

// =============================================================================
// COMMANDS
// =============================================================================

// pickTimeout bounds how long an ImageSource may take.
const pickTimeout = 10 * time.Second

// pickImageCmd asks source for a selection.
func pickImageCmd(source vectorize.ImageSource) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), pickTimeout)
		defer cancel()
		sel, err := source.Pick(ctx)
		return imagePickedMsg{Selection: sel, Err: err}
	}
}

// convertCmd runs an accepted job. The controller discards the outcome
// if the job was superseded by the time it arrives.
func convertCmd(ctx context.Context, ctrl *vectorize.Controller, job vectorize.Job) tea.Cmd {
	return func() tea.Msg {
		return conversionDoneMsg{Outcome: ctrl.Run(ctx, job)}
	}
}

// shareCmd hands the current result to sink.
func shareCmd(ctrl *vectorize.Controller, sink vectorize.ShareSink) tea.Cmd {
	return func() tea.Msg {
		msg := shareDoneMsg{Sink: sink.Name()}
		if fs, ok := sink.(*vectorize.FileSink); ok {
			if snap := ctrl.Snapshot(); snap.Image != nil && snap.Result != nil {
				msg.Target = fs.PathFor(vectorize.NewShareContent(*snap.Image, *snap.Result))
			}
		}
		msg.Err = ctrl.Share(context.Background(), sink)
		return msg
	}
}
