// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the headless commands of
// vectorize.
//
// # Key Types
//
//   - Command: Enumeration of the available commands
//   - Args: Parsed command-line arguments
//   - ArgParser: Flag and positional argument parsing
//   - JSONResponse: --json output envelope
//   - HealthCheck: One doctor check result
//
// # Usage
//
//	cmd, args := cli.Parse(os.Args[1:])
//	switch cmd {
//	case cli.CmdConvert:
//	    err = cli.HandleConvert(ctx, args, cfg, log)
//	case cli.CmdConfig:
//	    err = cli.HandleConfig(os.Stdout, args, cfg, path)
//	case cli.CmdDoctor:
//	    err = cli.HandleDoctor(ctx, os.Stdout, args, cli.DoctorOptions{Config: cfg, Path: path})
//	}
//
// All commands support --json.
package cli
