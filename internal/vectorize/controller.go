// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package vectorize

import (
	"context"
	"sync"
	"time"

	"github.com/jeranaias/vectorize-tui/internal/logging"
)

// Converter turns an image into an SVG. *Client implements it.
type Converter interface {
	Convert(ctx context.Context, img SelectedImage) (*ConversionResult, error)
}

// Snapshot is a read-only copy of the controller state.
type Snapshot struct {
	State      ScreenState
	Image      *SelectedImage
	Result     *ConversionResult
	Err        *ConversionError
	Processing bool
}

// Job is an accepted conversion. It must be passed to Run and the Outcome
// back to Complete.
type Job struct {
	Image      SelectedImage
	generation uint64
}

// Outcome is the resolution of a Job.
type Outcome struct {
	Result     *ConversionResult
	Err        *ConversionError
	Elapsed    time.Duration
	generation uint64
}

// Controller holds the screen state and is the only writer of it.
//
// Every transition recomputes the stored ScreenState once. selectImage and
// reset bump a generation counter so a request that resolves after either
// is discarded instead of resurrecting stale output.
type Controller struct {
	converter Converter
	log       *logging.Logger

	mu         sync.Mutex
	image      *SelectedImage
	result     *ConversionResult
	err        *ConversionError
	processing bool
	state      ScreenState
	generation uint64
}

// NewController creates a controller in the Empty state.
func NewController(converter Converter, log *logging.Logger) *Controller {
	if log == nil {
		log = logging.Nop()
	}
	return &Controller{
		converter: converter,
		log:       log.WithOperation("controller"),
		state:     StateEmpty,
	}
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// SelectImage stores img and clears any result or error.
func (c *Controller) SelectImage(img SelectedImage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	img = img.clone()
	c.image = &img
	c.result = nil
	c.err = nil
	c.processing = false
	c.generation++
	c.transitionLocked("select")
}

// SelectFrom accepts a raw selection. Incomplete selections are dropped
// without changing state and false is returned.
func (c *Controller) SelectFrom(sel Selection) bool {
	img, ok := sel.Image()
	if !ok {
		c.log.Debug().
			Bool("uri", sel.URI != "").
			Bool("name", sel.FileName != "").
			Bool("type", sel.MIMEType != "").
			Msg("dropping incomplete selection")
		return false
	}
	c.SelectImage(img)
	return true
}

// StartConversion begins a conversion of the selected image. It is a no-op
// returning false when nothing is selected or a request is in flight.
func (c *Controller) StartConversion() (Job, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.image == nil || c.processing {
		return Job{}, false
	}

	c.processing = true
	c.err = nil
	c.generation++
	c.transitionLocked("start")
	return Job{Image: c.image.clone(), generation: c.generation}, true
}

// Retry re-runs the conversion with the already selected image.
func (c *Controller) Retry() (Job, bool) {
	return c.StartConversion()
}

// Run executes job against the converter. It does not touch controller
// state and may be called from any goroutine.
func (c *Controller) Run(ctx context.Context, job Job) Outcome {
	start := time.Now()
	result, err := c.converter.Convert(ctx, job.Image)

	out := Outcome{Elapsed: time.Since(start), generation: job.generation}
	switch {
	case err != nil:
		if convErr, ok := AsConversionError(err); ok {
			out.Err = convErr
		} else {
			out.Err = &ConversionError{Kind: KindTransport, Message: err.Error(), Cause: err}
		}
	case result == nil || !IsSVG(result.SVG):
		out.Err = &ConversionError{Kind: KindInvalidPayload, Message: InvalidSVGMessage}
	default:
		out.Result = result
	}
	return out
}

// Complete applies an outcome. Outcomes for a job that was superseded by
// select or reset are ignored and false is returned.
func (c *Controller) Complete(out Outcome) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.processing || out.generation != c.generation {
		c.log.Debug().Msg("discarding stale conversion outcome")
		return false
	}

	c.processing = false
	if out.Err != nil {
		c.err = out.Err
		c.result = nil
		c.log.Warn().
			Str("kind", out.Err.Kind.String()).
			Int("status", out.Err.StatusCode).
			Str("error", out.Err.Message).
			Msg("conversion failed")
	} else {
		c.result = out.Result
		c.err = nil
	}
	c.transitionLocked("complete")
	return true
}

// Reset clears everything and returns to Empty.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.image = nil
	c.result = nil
	c.err = nil
	c.processing = false
	c.generation++
	c.transitionLocked("reset")
}

// Convert runs a full start, run, complete cycle synchronously.
// ok is false when StartConversion was a no-op.
func (c *Controller) Convert(ctx context.Context) (Snapshot, bool) {
	job, ok := c.StartConversion()
	if !ok {
		return c.Snapshot(), false
	}
	c.Complete(c.Run(ctx, job))
	return c.Snapshot(), true
}

func (c *Controller) transitionLocked(event string) {
	prev := c.state
	c.state = deriveState(c.image != nil, c.processing, c.result != nil, c.err != nil)
	if prev != c.state {
		c.log.Debug().
			Str("event", event).
			Str("from", prev.String()).
			Str("to", c.state.String()).
			Msg("state transition")
	}
}

// =============================================================================
// QUERIES
// =============================================================================

// State returns the current screen state.
func (c *Controller) State() ScreenState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{State: c.state, Processing: c.processing}
	if c.image != nil {
		img := c.image.clone()
		snap.Image = &img
	}
	if c.result != nil {
		res := *c.result
		snap.Result = &res
	}
	if c.err != nil {
		e := *c.err
		snap.Err = &e
	}
	return snap
}

// Share hands the current result to sink. Failures are returned as
// *ShareError and leave the result untouched.
func (c *Controller) Share(ctx context.Context, sink ShareSink) error {
	snap := c.Snapshot()
	if snap.Result == nil || snap.Image == nil {
		return ErrNothingToShare
	}

	if err := sink.Share(ctx, NewShareContent(*snap.Image, *snap.Result)); err != nil {
		c.log.Warn().Str("sink", sink.Name()).Err(err).Msg("share failed")
		return &ShareError{Sink: sink.Name(), Err: err}
	}
	c.log.Info().Str("sink", sink.Name()).Msg("result shared")
	return nil
}
