// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for vectorize.
//
// Command: config [subcommand]
// Short:   View and modify configuration
//
// Subcommands:
//   show (default)      Display current configuration
//   path                Show configuration file path
//   init [--force]      Write a config file with the defaults
//   get <key>           Print one value
//   set <key> <value>   Change one value and save
//
// Examples:
//   vectorize config
//   vectorize config show --json
//   vectorize config set service.endpoint http://localhost:8080/vectorize
//   vectorize config set service.timeout_secs 60
//   vectorize config get output.dir
//
// Flags:
//   --json              Output in JSON format

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeranaias/vectorize-tui/internal/config"
)

// HandleConfig dispatches the config subcommands. path is the config file
// the command reads and writes.
func HandleConfig(w io.Writer, args Args, cfg *config.Config, path string) error {
	switch args.Subcommand {
	case "show":
		return showConfig(w, args, cfg)
	case "path":
		if args.JSON {
			return NewJSONResponse("config path", map[string]string{"path": path}).Write(w)
		}
		fmt.Fprintln(w, path)
		return nil
	case "init":
		return initConfig(w, args, path)
	case "get":
		return getConfig(w, args, cfg)
	case "set":
		return setConfig(w, args, path)
	default:
		return &ValidationError{
			Field:   "subcommand",
			Value:   args.Subcommand,
			Reason:  "unknown config subcommand",
			Example: "vectorize config [show|path|init|get|set]",
		}
	}
}

func showConfig(w io.Writer, args Args, cfg *config.Config) error {
	if args.JSON {
		return NewJSONResponse("config show", cfg).Write(w)
	}

	fmt.Fprintln(w, RenderConditional(TitleStyle, "vectorize configuration"))
	section := ""
	for _, key := range config.AllKeys() {
		if prefix, _, ok := strings.Cut(key, "."); ok && prefix != section {
			section = prefix
			fmt.Fprintln(w)
			fmt.Fprintln(w, RenderConditional(SectionStyle, "["+section+"]"))
		}
		val, err := cfg.Get(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s%s\n", RenderLabel(key), formatValue(val))
	}
	return nil
}

func formatValue(v interface{}) string {
	if s, ok := v.(string); ok && s == "" {
		return RenderConditional(DimStyle, "(not set)")
	}
	return fmt.Sprint(v)
}

func initConfig(w io.Writer, args Args, path string) error {
	if _, err := os.Stat(path); err == nil && !args.Force {
		return NewCommandError("config", "init", "config file already exists (use --force to overwrite)", nil)
	}
	if err := writeConfig(config.Default(), path); err != nil {
		return NewCommandError("config", "init", "cannot write config", err)
	}
	if args.JSON {
		return NewJSONResponse("config init", map[string]string{"path": path}).Write(w)
	}
	fmt.Fprintf(w, "%s Wrote %s\n", RenderConditional(SuccessStyle, "[OK]"), path)
	return nil
}

func getConfig(w io.Writer, args Args, cfg *config.Config) error {
	if args.ConfigKey == "" {
		return ErrMissingArgument("key", "vectorize config get service.endpoint")
	}
	val, err := cfg.Get(args.ConfigKey)
	if err != nil {
		return NewValidationError("key", args.ConfigKey, err.Error())
	}
	if args.JSON {
		return NewJSONResponse("config get", map[string]interface{}{args.ConfigKey: val}).Write(w)
	}
	fmt.Fprintln(w, val)
	return nil
}

// setConfig edits the file on disk rather than the effective config so
// environment overrides are not persisted.
func setConfig(w io.Writer, args Args, path string) error {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		return ErrMissingArgument("key and value", "vectorize config set service.timeout_secs 60")
	}

	onDisk := config.Default()
	if _, err := os.Stat(path); err == nil {
		loaded, err := loadFileOnly(path)
		if err != nil {
			return NewCommandError("config", "set", "cannot read config", err)
		}
		onDisk = loaded
	}

	if err := onDisk.Set(args.ConfigKey, args.ConfigVal); err != nil {
		return NewValidationError(args.ConfigKey, args.ConfigVal, err.Error())
	}
	if err := onDisk.Validate(); err != nil {
		return err
	}
	if err := writeConfig(onDisk, path); err != nil {
		return NewCommandError("config", "set", "cannot write config", err)
	}

	if args.JSON {
		return NewJSONResponse("config set", map[string]string{args.ConfigKey: args.ConfigVal}).Write(w)
	}
	fmt.Fprintf(w, "%s %s = %s\n", RenderConditional(SuccessStyle, "[OK]"), args.ConfigKey, args.ConfigVal)
	return nil
}

func loadFileOnly(path string) (*config.Config, error) {
	cfg := &config.Config{}
	if strings.HasSuffix(path, ".json") {
		return cfg, config.LoadJSON(cfg, path)
	}
	return cfg, config.LoadTOML(cfg, path)
}

func writeConfig(cfg *config.Config, path string) error {
	if strings.HasSuffix(path, ".json") {
		return config.SaveJSON(cfg, path)
	}
	return config.SaveTOML(cfg, path)
}
