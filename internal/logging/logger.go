// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging wraps zerolog for vectorize.
//
// The TUI owns the terminal, so interactive runs log to a file while the
// headless convert command logs to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog with vectorize specific context helpers.
type Logger struct {
	zl zerolog.Logger
}

// Config holds logger configuration.
type Config struct {
	Level   string    // debug, info, warn, error, disabled
	Format  string    // json or console
	Output  io.Writer // defaults to os.Stderr
	Service string
}

// New creates a Logger from cfg.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	var zl zerolog.Logger
	if cfg.Format == "console" {
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		})
	} else {
		zl = zerolog.New(out)
	}

	service := cfg.Service
	if service == "" {
		service = "vectorize"
	}

	zl = zl.Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", service).
		Logger()

	return &Logger{zl: zl}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// OpenFile creates a JSON logger appending to path. The returned closer
// must be closed when the program exits.
func OpenFile(path, level string) (*Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(Config{Level: level, Format: "json", Output: f}), f, nil
}

// ParseLevel maps a level name to a zerolog level. Unknown names map to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off", "none":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Debug starts a debug event.
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }

// Info starts an info event.
func (l *Logger) Info() *zerolog.Event { return l.zl.Info() }

// Warn starts a warning event.
func (l *Logger) Warn() *zerolog.Event { return l.zl.Warn() }

// Error starts an error event.
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }

// WithOperation returns a logger tagged with an operation name.
func (l *Logger) WithOperation(op string) *Logger {
	return &Logger{zl: l.zl.With().Str("operation", op).Logger()}
}

// WithRequest returns a logger tagged with a request id.
func (l *Logger) WithRequest(id string) *Logger {
	return &Logger{zl: l.zl.With().Str("request_id", id).Logger()}
}
