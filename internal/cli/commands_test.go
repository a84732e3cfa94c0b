// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/vectorize-tui/internal/config"
	"github.com/jeranaias/vectorize-tui/internal/vectorize"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func init() {
	ForceColorsEnabled(false)
}

func writeImage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, pngBytes, 0644))
	return path
}

func svgServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(vectorize.ImageTokenHeader, "abc123")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testOptions(out, errOut *bytes.Buffer, tty bool) ConvertOptions {
	cfg := config.Default()
	return ConvertOptions{Config: cfg, Stdout: out, Stderr: errOut, StdoutTTY: tty}
}

// =============================================================================
// CONVERT
// =============================================================================

func TestRunConvert_PipedStdoutGetsSVG(t *testing.T) {
	srv := svgServer(t, http.StatusOK, "<svg>piped</svg>")
	img := writeImage(t, t.TempDir(), "logo.png")

	var out, errOut bytes.Buffer
	err := RunConvert(context.Background(), Args{Image: img, Endpoint: srv.URL}, testOptions(&out, &errOut, false))
	require.NoError(t, err)

	assert.Equal(t, "<svg>piped</svg>", out.String())
	assert.Contains(t, errOut.String(), "Conversion complete")
	assert.Contains(t, errOut.String(), "abc123")
}

func TestRunConvert_OutFlag(t *testing.T) {
	srv := svgServer(t, http.StatusOK, "<svg>file</svg>")
	dir := t.TempDir()
	img := writeImage(t, dir, "logo.png")
	dest := filepath.Join(dir, "nested", "art.svg")

	var out, errOut bytes.Buffer
	err := RunConvert(context.Background(), Args{Image: img, Out: dest, Endpoint: srv.URL}, testOptions(&out, &errOut, false))
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "<svg>file</svg>", string(data))
	assert.Contains(t, out.String(), dest)
}

func TestRunConvert_TTYSavesToOutputDir(t *testing.T) {
	srv := svgServer(t, http.StatusOK, "<svg/>")
	dir := t.TempDir()
	img := writeImage(t, dir, "photo.png")
	outDir := filepath.Join(dir, "svgs")

	var out, errOut bytes.Buffer
	opts := testOptions(&out, &errOut, true)
	opts.Config.Output.Dir = outDir

	require.NoError(t, RunConvert(context.Background(), Args{Image: img, Endpoint: srv.URL}, opts))
	_, err := os.Stat(filepath.Join(outDir, "photo.svg"))
	assert.NoError(t, err)
}

func TestRunConvert_JSON(t *testing.T) {
	srv := svgServer(t, http.StatusOK, "<svg>json</svg>")
	img := writeImage(t, t.TempDir(), "logo.png")

	var out, errOut bytes.Buffer
	err := RunConvert(context.Background(), Args{Image: img, Endpoint: srv.URL, JSON: true}, testOptions(&out, &errOut, false))
	require.NoError(t, err)

	var resp struct {
		Success bool        `json:"success"`
		Data    ConvertData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "logo.png", resp.Data.File)
	assert.Equal(t, "image/png", resp.Data.MIMEType)
	assert.Equal(t, "<svg>json</svg>", resp.Data.SVG)
	assert.Equal(t, "abc123", resp.Data.ImageToken)
}

func TestRunConvert_ServerError(t *testing.T) {
	srv := svgServer(t, http.StatusUnprocessableEntity, `{"error":"unsupported format"}`)
	img := writeImage(t, t.TempDir(), "logo.png")

	var out, errOut bytes.Buffer
	err := RunConvert(context.Background(), Args{Image: img, Endpoint: srv.URL}, testOptions(&out, &errOut, false))
	require.Error(t, err)
	assert.Equal(t, "unsupported format", err.Error())
	assert.Equal(t, ExitServiceError, GetExitCode(err))
	assert.Empty(t, out.String())
}

func TestRunConvert_InvalidPayload(t *testing.T) {
	srv := svgServer(t, http.StatusOK, "not xml")
	img := writeImage(t, t.TempDir(), "logo.png")

	var out, errOut bytes.Buffer
	err := RunConvert(context.Background(), Args{Image: img, Endpoint: srv.URL}, testOptions(&out, &errOut, false))
	assert.True(t, vectorize.IsInvalidPayload(err))
}

func TestRunConvert_MissingImage(t *testing.T) {
	var out, errOut bytes.Buffer
	err := RunConvert(context.Background(), Args{}, testOptions(&out, &errOut, false))
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	err = RunConvert(context.Background(), Args{Image: filepath.Join(t.TempDir(), "nope.png")}, testOptions(&out, &errOut, false))
	assert.Equal(t, ExitNotFoundError, GetExitCode(err))
}

func TestRunConvert_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	var out, errOut bytes.Buffer
	err := RunConvert(context.Background(), Args{Image: path}, testOptions(&out, &errOut, false))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "image", verr.Field)
}

func TestRunConvert_PromptsForPath(t *testing.T) {
	srv := svgServer(t, http.StatusOK, "<svg/>")
	img := writeImage(t, t.TempDir(), "logo.png")

	var out, errOut bytes.Buffer
	opts := testOptions(&out, &errOut, false)
	prompted := false
	opts.Prompt = func(string) (string, error) {
		prompted = true
		return "  " + img + "\n", nil
	}

	require.NoError(t, RunConvert(context.Background(), Args{Endpoint: srv.URL}, opts))
	assert.True(t, prompted)
	assert.Equal(t, "<svg/>", out.String())
}

func TestRunConvert_UsesConverter(t *testing.T) {
	img := writeImage(t, t.TempDir(), "logo.png")

	var out, errOut bytes.Buffer
	opts := testOptions(&out, &errOut, false)
	opts.Converter = converterFunc(func(ctx context.Context, sel vectorize.SelectedImage) (*vectorize.ConversionResult, error) {
		return nil, errors.New("dial tcp: connection refused")
	})

	err := RunConvert(context.Background(), Args{Image: img}, opts)
	assert.Equal(t, ExitNetworkError, GetExitCode(err))
}

type converterFunc func(context.Context, vectorize.SelectedImage) (*vectorize.ConversionResult, error)

func (f converterFunc) Convert(ctx context.Context, img vectorize.SelectedImage) (*vectorize.ConversionResult, error) {
	return f(ctx, img)
}

func TestCompleteImagePath(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "art.png")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "art.txt"), nil, 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "artwork"), 0755))

	got := completeImagePath(filepath.Join(dir, "art"))
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "art.png"),
		filepath.Join(dir, "artwork") + string(filepath.Separator),
	}, got)
}

// =============================================================================
// CONFIG
// =============================================================================

func TestHandleConfig_InitShowSetGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	var out bytes.Buffer

	require.NoError(t, HandleConfig(&out, Args{Subcommand: "init"}, config.Default(), path))
	assert.FileExists(t, path)

	err := HandleConfig(&out, Args{Subcommand: "init"}, config.Default(), path)
	assert.Error(t, err, "init refuses to overwrite without --force")
	require.NoError(t, HandleConfig(&out, Args{Subcommand: "init", Force: true}, config.Default(), path))

	out.Reset()
	require.NoError(t, HandleConfig(&out, Args{Subcommand: "set", ConfigKey: "service.timeout_secs", ConfigVal: "30"}, nil, path))
	loaded, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 30, loaded.Service.TimeoutSecs)

	out.Reset()
	require.NoError(t, HandleConfig(&out, Args{Subcommand: "get", ConfigKey: "service.timeout_secs"}, loaded, path))
	assert.Equal(t, "30\n", out.String())

	out.Reset()
	require.NoError(t, HandleConfig(&out, Args{Subcommand: "show"}, loaded, path))
	assert.Contains(t, out.String(), "[service]")
	assert.Contains(t, out.String(), vectorize.DefaultEndpoint)

	out.Reset()
	require.NoError(t, HandleConfig(&out, Args{Subcommand: "path"}, loaded, path))
	assert.Equal(t, path+"\n", out.String())
}

func TestHandleConfig_SetRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	var out bytes.Buffer

	err := HandleConfig(&out, Args{Subcommand: "set", ConfigKey: "ui.theme", ConfigVal: "neon"}, nil, path)
	assert.Equal(t, ExitConfigError, GetExitCode(err))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "invalid values are not written")

	err = HandleConfig(&out, Args{Subcommand: "set", ConfigKey: "service.bogus", ConfigVal: "1"}, nil, path)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestHandleConfig_ShowJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, HandleConfig(&out, Args{Subcommand: "show", JSON: true}, config.Default(), "x.toml"))

	var resp struct {
		Data config.Config `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, vectorize.DefaultEndpoint, resp.Data.Service.Endpoint)
}

func TestHandleConfig_Unknown(t *testing.T) {
	var out bytes.Buffer
	err := HandleConfig(&out, Args{Subcommand: "frob"}, config.Default(), "x.toml")
	assert.True(t, strings.Contains(err.Error(), "unknown config subcommand"))
}

// =============================================================================
// ERRORS AND OUTPUT
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"validation", ErrMissingArgument("image", "x"), ExitUsageError},
		{"config", fmt.Errorf("invalid config: %w", config.ValidateErrors{{Field: "a", Message: "b"}}), ExitConfigError},
		{"transport", &vectorize.ConversionError{Kind: vectorize.KindTransport, Message: "x"}, ExitNetworkError},
		{"server", &vectorize.ConversionError{Kind: vectorize.KindServer, Message: "x"}, ExitServiceError},
		{"payload", &vectorize.ConversionError{Kind: vectorize.KindInvalidPayload, Message: "x"}, ExitServiceError},
		{"image read", &vectorize.ConversionError{Kind: vectorize.KindImageRead, Message: "x"}, ExitNotFoundError},
		{"deadline", &vectorize.ConversionError{Kind: vectorize.KindTransport, Cause: context.DeadlineExceeded}, ExitTimeoutError},
		{"not exist", fmt.Errorf("x: %w", os.ErrNotExist), ExitNotFoundError},
		{"other", errors.New("boom"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestDisplayErrorJSON(t *testing.T) {
	var out bytes.Buffer
	DisplayError(&out, &vectorize.ConversionError{Kind: vectorize.KindServer, Message: "Error 500", StatusCode: 500}, true)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "Error 500", got["error"])
	assert.Equal(t, "conversion_error", got["error_type"])
	assert.Equal(t, "server", got["kind"])
	assert.EqualValues(t, 500, got["status"])
}

func TestDisplayErrorPlain(t *testing.T) {
	var out bytes.Buffer
	DisplayError(&out, errors.New("boom"), false)
	assert.Equal(t, "[ERROR] boom\n", out.String())
}

func TestHandleVersionJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, HandleVersion(&out, Args{JSON: true}))
	assert.Contains(t, out.String(), `"version": "`+Version+`"`)
}
