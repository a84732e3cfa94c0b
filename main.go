// vectorize - turn raster images into SVG vector art from the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/vectorize-tui/internal/cli"
	"github.com/jeranaias/vectorize-tui/internal/config"
	"github.com/jeranaias/vectorize-tui/internal/logging"
	"github.com/jeranaias/vectorize-tui/internal/ui/screen"
	"github.com/jeranaias/vectorize-tui/internal/ui/styles"
	"github.com/jeranaias/vectorize-tui/internal/vectorize"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse(os.Args[1:])

	switch cmd {
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
		return
	case cli.CmdVersion:
		cli.HandleErrorAndExit(cli.HandleVersion(os.Stdout, args), args.JSON)
		return
	case cli.CmdUnknown:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args.Unknown)
		cli.PrintUsage(os.Stderr)
		os.Exit(cli.ExitUsageError)
	}

	cfg, path, err := loadConfig(args)
	if err != nil {
		cli.HandleErrorAndExit(err, args.JSON)
	}
	cli.ApplyColorProfile(cfg.UI.NoColor)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case cli.CmdTUI:
		err = runTUI(ctx, cfg, path, args)
	case cli.CmdConvert:
		err = cli.HandleConvert(ctx, args, cfg, consoleLogger(cfg, args))
	case cli.CmdConfig:
		err = cli.HandleConfig(os.Stdout, args, cfg, path)
	case cli.CmdDoctor:
		err = cli.HandleDoctor(ctx, os.Stdout, args, cli.DoctorOptions{Config: cfg, Path: path})
	}

	if err != nil {
		stop()
		cli.HandleErrorAndExit(err, args.JSON)
	}
}

// loadConfig honours --config and otherwise reads the default location.
// A broken default file is reported and replaced by defaults so the user
// can still start the app and fix it with "vectorize config".
func loadConfig(args cli.Args) (*config.Config, string, error) {
	if args.Config != "" {
		cfg, err := config.LoadFromPath(args.Config)
		return cfg, args.Config, err
	}

	path, err := config.ActivePath()
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.Load()
	if cfg == nil {
		return nil, path, err
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] ignoring %s: %v\n", path, err)
	}
	return cfg, path, nil
}

// consoleLogger logs to stderr for one-shot commands.
func consoleLogger(cfg *config.Config, args cli.Args) *logging.Logger {
	level := "warn"
	if args.Verbose || cfg.Service.Debug {
		level = "debug"
	}
	return logging.New(logging.Config{
		Level:  level,
		Format: "console",
		Output: os.Stderr,
	})
}

// fileLogger logs to the configured file; the TUI owns the terminal.
func fileLogger(cfg *config.Config, args cli.Args) (*logging.Logger, io.Closer, error) {
	if cfg.Log.Path == "" {
		return logging.Nop(), io.NopCloser(nil), nil
	}
	level := cfg.LogLevel()
	if args.Verbose {
		level = "debug"
	}
	return logging.OpenFile(cfg.Log.Path, level)
}

func runTUI(ctx context.Context, cfg *config.Config, path string, args cli.Args) error {
	log, closer, err := fileLogger(cfg, args)
	if err != nil {
		return err
	}
	defer closer.Close()

	client := vectorize.NewClient(&vectorize.ClientConfig{
		Endpoint: cfg.Service.Endpoint,
		Timeout:  cfg.Service.Timeout(),
		Logger:   log,
	})

	m := screen.New(screen.Options{
		Controller: vectorize.NewController(client, log),
		Endpoint:   client,
		Config:     cfg,
		Theme:      styles.NewTheme(styles.ThemeOptions{Name: cfg.UI.Theme, NoColor: cfg.UI.NoColor}),
		Logger:     log,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-watchCtx.Done()
		p.Quit()
	}()

	if err := config.Watch(watchCtx, path, func(next *config.Config, err error) {
		p.Send(screen.ConfigReloadedMsg{Config: next, Err: err})
	}); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("config watch disabled")
	}

	log.Info().
		Str("version", Version).
		Str("endpoint", cfg.Service.Endpoint).
		Msg("starting tui")

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
