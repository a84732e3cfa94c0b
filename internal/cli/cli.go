// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command selection, usage and version output for vectorize.
package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdConvert
	CmdConfig
	CmdDoctor
	CmdVersion
	CmdHelp
	CmdUnknown
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	JSON    bool   // Output in JSON format
	Verbose bool   // Debug logging
	Config  string // Explicit config file

	// convert
	Image    string
	Out      string
	Endpoint string

	// config
	Subcommand string
	ConfigKey  string
	ConfigVal  string
	Force      bool

	// Name of an unrecognized command
	Unknown string
}

// boolFlagNames never take a value.
var boolFlagNames = []string{"json", "verbose", "v", "force", "help", "h", "version"}

const usageText = `vectorize - turn raster images into SVG vector art

Usage:
  vectorize                           Start the TUI (default)
  vectorize convert <image> [flags]   Convert one image without the TUI
  vectorize config [show|path|init]   Show or create the configuration
  vectorize config get <key>          Print one configuration value
  vectorize config set <key> <value>  Change one configuration value
  vectorize doctor                    Check the service, folders and clipboard
  vectorize version                   Show version information
  vectorize help                      Show this help

Convert flags:
  -o, --out FILE       Write the SVG to FILE (default: stdout when piped,
                       otherwise <output.dir>/<name>.svg)
  --endpoint URL       Override service.endpoint for this run

Global flags:
  --config FILE        Use FILE instead of ~/.vectorize/config.toml
  --json               Machine readable output
  -v, --verbose        Debug logging

Supported images: JPG, PNG, GIF, BMP, WEBP

Version: %s
`

// PrintUsage writes the usage/help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "vectorize version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go:         %s\n", runtime.Version())
}

// HandleVersion handles the "version" command with JSON output support.
func HandleVersion(w io.Writer, args Args) error {
	if args.JSON {
		return NewJSONResponse("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}).Write(w)
	}
	PrintVersion(w)
	return nil
}

// Parse parses command-line arguments (without the program name) and
// returns the command and args.
func Parse(argv []string) (Command, Args) {
	p := NewArgParser(argv, boolFlagNames...)

	args := Args{
		JSON:    p.BoolFlag("json"),
		Verbose: p.BoolFlag("verbose", "v"),
		Config:  p.Flag("config"),
	}

	if p.BoolFlag("help", "h") {
		return CmdHelp, args
	}
	if p.BoolFlag("version") {
		return CmdVersion, args
	}

	switch strings.ToLower(p.Subcommand()) {
	case "", "tui":
		return CmdTUI, args

	case "convert", "c":
		args.Image = p.Positional(1)
		args.Out = p.Flag("out", "o")
		args.Endpoint = p.Flag("endpoint")
		return CmdConvert, args

	case "config":
		args.Subcommand = strings.ToLower(p.Positional(1))
		if args.Subcommand == "" {
			args.Subcommand = "show"
		}
		args.ConfigKey = p.Positional(2)
		args.ConfigVal = p.Positional(3)
		args.Force = p.BoolFlag("force")
		return CmdConfig, args

	case "doctor", "diag":
		return CmdDoctor, args

	case "version":
		return CmdVersion, args

	case "help":
		return CmdHelp, args

	default:
		args.Unknown = p.Subcommand()
		return CmdUnknown, args
	}
}
