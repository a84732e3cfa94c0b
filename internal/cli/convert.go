// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// convert.go - Headless conversion of a single image.
//
// Command: convert <image>
// Short:   Upload an image and save the returned SVG
// Aliases: c
//
// Examples:
//   vectorize convert logo.png                Save ./logo.svg (or output.dir)
//   vectorize convert logo.png -o art.svg     Save to art.svg
//   vectorize convert logo.png > logo.svg     Stream the SVG to stdout
//   vectorize convert logo.png --json         Report as JSON, SVG inline
//   vectorize convert                         Prompt for the path

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/jeranaias/vectorize-tui/internal/config"
	"github.com/jeranaias/vectorize-tui/internal/logging"
	"github.com/jeranaias/vectorize-tui/internal/util"
	"github.com/jeranaias/vectorize-tui/internal/vectorize"
)

const convertUsage = "vectorize convert logo.png [--out logo.svg]"

// ConvertOptions carries the environment of a convert run.
type ConvertOptions struct {
	Config *config.Config
	Logger *logging.Logger

	Stdout    io.Writer
	Stderr    io.Writer
	StdoutTTY bool

	// Prompt asks for the image path; nil when stdin is not a terminal.
	Prompt func(prompt string) (string, error)

	// Converter replaces the HTTP client (tests).
	Converter vectorize.Converter
}

// HandleConvert runs convert against the real terminal.
func HandleConvert(ctx context.Context, args Args, cfg *config.Config, log *logging.Logger) error {
	opts := ConvertOptions{
		Config:    cfg,
		Logger:    log,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		StdoutTTY: IsStdoutTTY(),
	}
	if CanPrompt() {
		opts.Prompt = PromptLine
	}
	return RunConvert(ctx, args, opts)
}

// RunConvert selects the image, converts it and delivers the SVG.
func RunConvert(ctx context.Context, args Args, opts ConvertOptions) error {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}

	path := strings.TrimSpace(args.Image)
	if path == "" && opts.Prompt != nil {
		input, err := opts.Prompt("Image path: ")
		if err != nil {
			return NewCommandError("convert", "prompt", "no image chosen", err)
		}
		path = strings.TrimSpace(input)
	}
	if path == "" {
		return ErrMissingArgument("image", convertUsage)
	}

	sel, err := vectorize.NewFileSource(path).Pick(ctx)
	if err != nil {
		return NewCommandError("convert", "select", "cannot read image", err)
	}

	converter := opts.Converter
	if converter == nil {
		endpoint := opts.Config.Service.Endpoint
		if args.Endpoint != "" {
			endpoint = args.Endpoint
		}
		converter = vectorize.NewClient(&vectorize.ClientConfig{
			Endpoint: endpoint,
			Timeout:  opts.Config.Service.Timeout(),
			Logger:   opts.Logger,
		})
	}

	ctrl := vectorize.NewController(converter, opts.Logger)
	if !ctrl.SelectFrom(sel) {
		return &ValidationError{
			Field:   "image",
			Value:   path,
			Reason:  "not a supported image",
			Example: "supported: " + strings.Join(vectorize.SupportedExtensions, " "),
		}
	}

	start := time.Now()
	snap, _ := ctrl.Convert(ctx)
	if snap.Err != nil {
		return snap.Err
	}
	elapsed := time.Since(start)

	data := ConvertData{
		File:       snap.Image.Name,
		MIMEType:   snap.Image.MIMEType,
		Bytes:      len(snap.Result.SVG),
		ImageToken: snap.Result.ImageToken,
		EditorURL:  snap.Result.EditorURL,
		ElapsedMS:  elapsed.Milliseconds(),
	}
	if snap.Image.Size != nil {
		data.Size = *snap.Image.Size
	}

	switch {
	case args.Out != "":
		sink := &vectorize.FileSink{Dir: filepath.Dir(args.Out), FileName: filepath.Base(args.Out)}
		if err := ctrl.Share(ctx, sink); err != nil {
			return NewCommandError("convert", "save", "cannot write SVG", err)
		}
		data.Output = args.Out

	case args.JSON:
		data.SVG = snap.Result.SVG

	case !opts.StdoutTTY:
		if _, err := io.WriteString(opts.Stdout, snap.Result.SVG); err != nil {
			return NewCommandError("convert", "write", "cannot write SVG", err)
		}
		printConvertSummary(opts.Stderr, data)
		return nil

	default:
		sink := vectorize.NewFileSink(opts.Config.Output.Dir)
		if err := ctrl.Share(ctx, sink); err != nil {
			return NewCommandError("convert", "save", "cannot write SVG", err)
		}
		data.Output = sink.PathFor(vectorize.NewShareContent(*snap.Image, *snap.Result))
	}

	if args.JSON {
		return NewJSONResponse("convert", data).Write(opts.Stdout)
	}
	printConvertSummary(opts.Stdout, data)
	return nil
}

func printConvertSummary(w io.Writer, data ConvertData) {
	fmt.Fprintf(w, "%s %s\n", RenderConditional(SuccessStyle, "[OK]"), "Conversion complete")
	fmt.Fprintf(w, "  %s%s\n", RenderLabel("Image"), data.File)
	if size := util.FormatFileSize(data.Size); size != "" {
		fmt.Fprintf(w, "  %s%s\n", RenderLabel("Size"), size)
	}
	fmt.Fprintf(w, "  %s%s\n", RenderLabel("SVG"), util.FormatFileSize(int64(data.Bytes)))
	if data.Output != "" {
		fmt.Fprintf(w, "  %s%s\n", RenderLabel("Saved to"), data.Output)
	}
	if data.ImageToken != "" {
		fmt.Fprintf(w, "  %s%s\n", RenderLabel("Image token"), data.ImageToken)
	}
	if data.EditorURL != "" {
		fmt.Fprintf(w, "  %s%s\n", RenderLabel("Editor"), data.EditorURL)
	}
	fmt.Fprintf(w, "  %s%s\n", RenderLabel("Elapsed"), (time.Duration(data.ElapsedMS) * time.Millisecond).String())
}

// =============================================================================
// PATH PROMPT
// =============================================================================

// PromptLine reads one line with editing and image path completion.
func PromptLine(prompt string) (string, error) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(completeImagePath)

	input, err := line.Prompt(prompt)
	if err == liner.ErrPromptAborted {
		return "", fmt.Errorf("aborted")
	}
	return input, err
}

// completeImagePath offers directories and supported images matching the
// typed prefix.
func completeImagePath(prefix string) []string {
	matches, err := filepath.Glob(prefix + "*")
	if err != nil {
		return nil
	}

	var out []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if info.IsDir() {
			out = append(out, m+string(filepath.Separator))
		} else if vectorize.IsSupportedImage(m) {
			out = append(out, m)
		}
	}
	return out
}
