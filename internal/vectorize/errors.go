// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package vectorize

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorKind categorizes conversion failures.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindTransport covers dial failures, timeouts and broken response bodies.
	KindTransport
	// KindServer is a non-2xx response from the service.
	KindServer
	// KindInvalidPayload is a 2xx response whose body is not SVG, or a
	// response too large to accept.
	KindInvalidPayload
	// KindImageRead means the selected image could not be read.
	KindImageRead
)

// String returns the kind name used in logs.
func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindServer:
		return "server"
	case KindInvalidPayload:
		return "invalid_payload"
	case KindImageRead:
		return "image_read"
	default:
		return "unknown"
	}
}

// InvalidSVGMessage is the message for a successful response without SVG markup.
const InvalidSVGMessage = "Invalid SVG content returned"

// ConversionError is the only error type produced by Client.Convert.
// Message is suitable for display; StatusCode is set for server errors.
type ConversionError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Cause      error
}

func (e *ConversionError) Error() string {
	return e.Message
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// Sentinel errors for easy checking.
var (
	// ErrNothingToShare is returned by Controller.Share without a result.
	ErrNothingToShare = errors.New("no conversion result to share")
	// ErrUnsupportedURI is returned by FileOpener for non-file locations.
	ErrUnsupportedURI = errors.New("unsupported image location")
	// ErrInvalidEndpoint is returned by BuildRequest for an unusable endpoint.
	ErrInvalidEndpoint = errors.New("invalid conversion endpoint")
	// ErrResponseTooLarge marks a body past ClientConfig.MaxResponseBytes.
	ErrResponseTooLarge = errors.New("response too large")
)

func transportError(err error) *ConversionError {
	return &ConversionError{Kind: KindTransport, Message: err.Error(), Cause: err}
}

func imageReadError(err error) *ConversionError {
	return &ConversionError{Kind: KindImageRead, Message: err.Error(), Cause: err}
}

// AsConversionError extracts a *ConversionError from err.
func AsConversionError(err error) (*ConversionError, bool) {
	var convErr *ConversionError
	if errors.As(err, &convErr) {
		return convErr, true
	}
	return nil, false
}

// IsInvalidPayload checks if err is a non-SVG success response.
func IsInvalidPayload(err error) bool {
	convErr, ok := AsConversionError(err)
	return ok && convErr.Kind == KindInvalidPayload
}

// IsServerError checks if err is a non-2xx response.
func IsServerError(err error) bool {
	convErr, ok := AsConversionError(err)
	return ok && convErr.Kind == KindServer
}

// IsTransportError checks if err is a network level failure.
func IsTransportError(err error) bool {
	convErr, ok := AsConversionError(err)
	return ok && convErr.Kind == KindTransport
}

// ShareError reports a failed share. It never affects the conversion result.
type ShareError struct {
	Sink string
	Err  error
}

func (e *ShareError) Error() string {
	return fmt.Sprintf("share via %s failed: %v", e.Sink, e.Err)
}

func (e *ShareError) Unwrap() error {
	return e.Err
}
