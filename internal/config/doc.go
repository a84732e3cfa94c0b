// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for vectorize.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ServiceConfig: Conversion endpoint and timeout
//   - LogConfig: Log level, format and file
//   - Watcher: Reloads the config file when it changes
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (VECTORIZE_*, NO_COLOR), including a .env file
//   - ~/.vectorize/config.toml
//   - ~/.vectorize/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Follow edits while running:
//
//	config.Watch(ctx, path, func(cfg *config.Config, err error) { ... })
package config
