// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// args.go - Flag and positional splitting for the vectorize command line.

package cli

import "strings"

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser splits a command line into flags and positional arguments.
// Flags may appear anywhere:
//
//	--out art.svg     value in the next argument
//	--out=art.svg     value after '='
//	-o art.svg        short form
//	--json            boolean
//
// A flag named in boolNames never takes the next argument as its value, so
// "convert --json logo.png" keeps logo.png positional. --name=true and
// --name=false set a boolean explicitly.
type ArgParser struct {
	values     map[string]string
	switches   map[string]bool
	positional []string // positional[0] is the subcommand
}

// NewArgParser parses raw (without the program name).
func NewArgParser(raw []string, boolNames ...string) *ArgParser {
	isBool := make(map[string]bool, len(boolNames))
	for _, name := range boolNames {
		isBool[flagName(name)] = true
	}

	p := &ArgParser{
		values:   make(map[string]string),
		switches: make(map[string]bool),
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			p.positional = append(p.positional, arg)
			continue
		}

		if name, value, ok := strings.Cut(arg, "="); ok {
			name = flagName(name)
			switch value {
			case "true", "false":
				p.switches[name] = value == "true"
			default:
				p.values[name] = value
			}
			continue
		}

		name := flagName(arg)
		if !isBool[name] && i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "-") {
			p.values[name] = raw[i+1]
			i++
			continue
		}
		p.switches[name] = true
	}

	return p
}

func flagName(s string) string {
	return strings.TrimLeft(s, "-")
}

// Subcommand returns the first positional argument, or "".
func (p *ArgParser) Subcommand() string {
	return p.Positional(0)
}

// Positional returns positional argument i (0 is the subcommand), or "".
func (p *ArgParser) Positional(i int) string {
	if i < 0 || i >= len(p.positional) {
		return ""
	}
	return p.positional[i]
}

// Flag returns the value of the first of names that was given, or "".
// Pass the long and short spelling together: Flag("out", "o").
func (p *ArgParser) Flag(names ...string) string {
	for _, name := range names {
		if v, ok := p.values[flagName(name)]; ok {
			return v
		}
	}
	return ""
}

// BoolFlag reports whether any of names was set to true.
func (p *ArgParser) BoolFlag(names ...string) bool {
	for _, name := range names {
		if p.switches[flagName(name)] {
			return true
		}
	}
	return false
}
