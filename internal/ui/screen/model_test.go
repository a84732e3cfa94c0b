// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/vectorize-tui/internal/config"
	"github.com/jeranaias/vectorize-tui/internal/ui/components"
	"github.com/jeranaias/vectorize-tui/internal/ui/styles"
	"github.com/jeranaias/vectorize-tui/internal/vectorize"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg"><path d="M0 0L4 4"/></svg>`

// =============================================================================
// TEST HELPERS
// =============================================================================

type converterFunc func(ctx context.Context, img vectorize.SelectedImage) (*vectorize.ConversionResult, error)

func (f converterFunc) Convert(ctx context.Context, img vectorize.SelectedImage) (*vectorize.ConversionResult, error) {
	return f(ctx, img)
}

func succeeding() converterFunc {
	return func(ctx context.Context, img vectorize.SelectedImage) (*vectorize.ConversionResult, error) {
		return &vectorize.ConversionResult{SVG: testSVG, ImageToken: "abc123", EditorURL: "https://editor.example/abc123"}, nil
	}
}

func failing(msg string) converterFunc {
	return func(ctx context.Context, img vectorize.SelectedImage) (*vectorize.ConversionResult, error) {
		return nil, &vectorize.ConversionError{Kind: vectorize.KindServer, StatusCode: 500, Message: msg}
	}
}

type recordingSink struct {
	err      error
	received []vectorize.ShareContent
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Share(ctx context.Context, content vectorize.ShareContent) error {
	s.received = append(s.received, content)
	return s.err
}

type endpointRecorder struct {
	mu  sync.Mutex
	got []string
}

func (r *endpointRecorder) SetEndpoint(endpoint string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, endpoint)
}

type fixture struct {
	model     Model
	clipboard *recordingSink
	endpoint  *endpointRecorder
	outDir    string
}

func newFixture(t *testing.T, conv vectorize.Converter) *fixture {
	t.Helper()

	cfg := config.Default()
	cfg.UI.NoColor = true
	cfg.Output.Dir = t.TempDir()

	f := &fixture{
		clipboard: &recordingSink{},
		endpoint:  &endpointRecorder{},
		outDir:    cfg.Output.Dir,
	}
	f.model = New(Options{
		Controller: vectorize.NewController(conv, nil),
		Endpoint:   f.endpoint,
		Config:     cfg,
		Theme:      styles.NewTheme(styles.ThemeOptions{Name: styles.ThemeDark, NoColor: true}),
		Clipboard:  f.clipboard,
		StartDir:   t.TempDir(),
	})
	return f
}

// send applies msg and returns the command it produced.
func (f *fixture) send(msg tea.Msg) tea.Cmd {
	next, cmd := f.model.Update(msg)
	f.model = next.(Model)
	return cmd
}

func (f *fixture) press(keys string) tea.Cmd {
	switch keys {
	case "enter":
		return f.send(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return f.send(tea.KeyMsg{Type: tea.KeyEsc})
	case "ctrl+c":
		return f.send(tea.KeyMsg{Type: tea.KeyCtrlC})
	}
	return f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
}

func (f *fixture) selectImage(name string) {
	size := int64(2048)
	f.send(imagePickedMsg{Selection: vectorize.Selection{
		URI:      "file:///tmp/" + name,
		FileName: name,
		MIMEType: "image/png",
		FileSize: &size,
	}})
}

func (f *fixture) state() vectorize.ScreenState {
	return f.model.Controller().State()
}

// collect runs cmd, expanding batches, and returns every message produced.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findMsg[T any](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v
		}
	}
	var zero T
	t.Fatalf("no %T among %d messages", zero, len(msgs))
	return zero
}

// =============================================================================
// STATE AND KEY ENABLEMENT
// =============================================================================

func TestNew_StartsEmpty(t *testing.T) {
	f := newFixture(t, succeeding())

	assert.Equal(t, vectorize.StateEmpty, f.state())
	assert.Equal(t, ModeMain, f.model.Mode())
	assert.True(t, f.model.keys.Open.Enabled())
	assert.False(t, f.model.keys.Convert.Enabled())
	assert.False(t, f.model.keys.Retry.Enabled())
	assert.False(t, f.model.keys.Reset.Enabled())
	assert.False(t, f.model.keys.Save.Enabled())
	assert.Contains(t, f.model.View(), "No image selected")
}

func TestKeyMap_SyncState(t *testing.T) {
	tests := []struct {
		state                      vectorize.ScreenState
		convert, retry, reset, out bool
	}{
		{vectorize.StateEmpty, false, false, false, false},
		{vectorize.StateReady, true, false, true, false},
		{vectorize.StateProcessing, false, false, true, false},
		{vectorize.StateSucceeded, false, false, true, true},
		{vectorize.StateFailed, false, true, true, false},
	}

	for _, tc := range tests {
		t.Run(tc.state.String(), func(t *testing.T) {
			k := DefaultKeyMap()
			k.SyncState(tc.state)
			assert.Equal(t, tc.convert, k.Convert.Enabled())
			assert.Equal(t, tc.retry, k.Retry.Enabled())
			assert.Equal(t, tc.reset, k.Reset.Enabled())
			assert.Equal(t, tc.out, k.Save.Enabled())
			assert.Equal(t, tc.out, k.Copy.Enabled())
			assert.True(t, k.Open.Enabled())
			assert.True(t, k.Help.Enabled())
		})
	}
}

func TestConvertIgnoredWithoutImage(t *testing.T) {
	f := newFixture(t, succeeding())

	assert.Nil(t, f.press("c"))
	assert.Nil(t, f.press("enter"))
	assert.Equal(t, vectorize.StateEmpty, f.state())
}

// =============================================================================
// SELECTION
// =============================================================================

func TestImagePicked_Ready(t *testing.T) {
	f := newFixture(t, succeeding())
	f.selectImage("art.png")

	assert.Equal(t, vectorize.StateReady, f.state())
	assert.True(t, f.model.keys.Convert.Enabled())

	view := f.model.View()
	assert.Contains(t, view, "art.png")
	assert.Contains(t, view, "2.0 KB")
	assert.Contains(t, view, "Ready")
}

func TestImagePicked_IncompleteSelectionDropped(t *testing.T) {
	f := newFixture(t, succeeding())

	cmd := f.send(imagePickedMsg{Selection: vectorize.Selection{URI: "file:///tmp/a.png", FileName: "a.png"}})

	assert.NotNil(t, cmd, "warning toast should start the tick loop")
	assert.Equal(t, vectorize.StateEmpty, f.state())
	require.True(t, f.model.toasts.HasToasts())
	assert.Contains(t, f.model.toasts.Toasts()[0].Message, "Not a supported image")
}

func TestImagePicked_Error(t *testing.T) {
	f := newFixture(t, succeeding())
	f.selectImage("art.png")

	f.send(imagePickedMsg{Err: errors.New("permission denied")})

	assert.Equal(t, vectorize.StateReady, f.state(), "a failed pick keeps the current image")
	assert.Contains(t, f.model.toasts.Toasts()[0].Message, "permission denied")
}

func TestPickImageCmd_FileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n0000"), 0644))

	msg := pickImageCmd(vectorize.NewFileSource(path))().(imagePickedMsg)

	require.NoError(t, msg.Err)
	assert.Equal(t, "logo.png", msg.Selection.FileName)
	assert.Equal(t, "image/png", msg.Selection.MIMEType)
	require.NotNil(t, msg.Selection.FileSize)
	assert.EqualValues(t, 12, *msg.Selection.FileSize)
}

// =============================================================================
// CONVERSION
// =============================================================================

func TestConvert_Success(t *testing.T) {
	f := newFixture(t, succeeding())
	f.selectImage("art.png")

	cmd := f.press("enter")
	require.NotNil(t, cmd)
	assert.Equal(t, vectorize.StateProcessing, f.state())
	assert.False(t, f.model.keys.Convert.Enabled())
	assert.Contains(t, f.model.View(), "Processing")

	// A second press while processing does nothing.
	assert.Nil(t, f.press("c"))

	done := findMsg[conversionDoneMsg](t, collect(cmd))
	f.send(done)

	assert.Equal(t, vectorize.StateSucceeded, f.state())
	assert.True(t, f.model.keys.Save.Enabled())

	view := f.model.View()
	assert.Contains(t, view, "Converted to art.svg")
	assert.Contains(t, view, "https://editor.example/abc123")
	assert.Contains(t, view, "abc123")
}

func TestConvert_FailureThenRetry(t *testing.T) {
	f := newFixture(t, failing("Error 500"))
	f.selectImage("art.png")

	f.send(findMsg[conversionDoneMsg](t, collect(f.press("c"))))

	assert.Equal(t, vectorize.StateFailed, f.state())
	assert.True(t, f.model.keys.Retry.Enabled())
	view := f.model.View()
	assert.Contains(t, view, "Conversion failed")
	assert.Contains(t, view, "Error 500")

	cmd := f.press("r")
	require.NotNil(t, cmd)
	assert.Equal(t, vectorize.StateProcessing, f.state())
	assert.Contains(t, f.model.View(), "Retrying...")
}

func TestConvert_StaleOutcomeAfterReset(t *testing.T) {
	f := newFixture(t, succeeding())
	f.selectImage("art.png")

	cmd := f.press("c")
	require.NotNil(t, cmd)

	f.press("x")
	assert.Equal(t, vectorize.StateEmpty, f.state())

	f.send(findMsg[conversionDoneMsg](t, collect(cmd)))
	assert.Equal(t, vectorize.StateEmpty, f.state(), "late result must not resurrect the screen")
	assert.Nil(t, f.model.Controller().Snapshot().Result)
}

func TestConvert_StaleOutcomeAfterNewSelection(t *testing.T) {
	f := newFixture(t, succeeding())
	f.selectImage("first.png")

	cmd := f.press("c")
	f.selectImage("second.png")

	f.send(findMsg[conversionDoneMsg](t, collect(cmd)))

	snap := f.model.Controller().Snapshot()
	assert.Equal(t, vectorize.StateReady, snap.State)
	assert.Equal(t, "second.png", snap.Image.Name)
}

func TestConvert_CancelledOnReset(t *testing.T) {
	started := make(chan struct{})
	conv := converterFunc(func(ctx context.Context, img vectorize.SelectedImage) (*vectorize.ConversionResult, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})
	f := newFixture(t, conv)
	f.selectImage("art.png")

	cmd := f.press("c")
	msgs := make(chan []tea.Msg, 1)
	go func() { msgs <- collect(cmd) }()

	<-started
	f.press("esc")

	f.send(findMsg[conversionDoneMsg](t, <-msgs))
	assert.Equal(t, vectorize.StateEmpty, f.state())
}

func TestConvert_IncompletePickKeepsUploadRunning(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	conv := converterFunc(func(ctx context.Context, img vectorize.SelectedImage) (*vectorize.ConversionResult, error) {
		close(started)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-release:
			return &vectorize.ConversionResult{SVG: "<svg></svg>"}, nil
		}
	})
	f := newFixture(t, conv)
	f.selectImage("art.png")

	cmd := f.press("c")
	msgs := make(chan []tea.Msg, 1)
	go func() { msgs <- collect(cmd) }()
	<-started

	f.send(imagePickedMsg{Selection: vectorize.Selection{URI: "file:///tmp/x.bmp", FileName: "x.bmp"}})
	assert.Equal(t, vectorize.StateProcessing, f.state())

	close(release)
	f.send(findMsg[conversionDoneMsg](t, <-msgs))
	assert.Equal(t, vectorize.StateSucceeded, f.state())
}

// =============================================================================
// SHARING
// =============================================================================

func convertedFixture(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t, succeeding())
	f.selectImage("art.png")
	f.send(findMsg[conversionDoneMsg](t, collect(f.press("c"))))
	require.Equal(t, vectorize.StateSucceeded, f.state())
	return f
}

func TestSave_WritesFile(t *testing.T) {
	f := convertedFixture(t)

	done := findMsg[shareDoneMsg](t, collect(f.press("s")))
	require.NoError(t, done.Err)
	assert.Equal(t, filepath.Join(f.outDir, "art.svg"), done.Target)

	data, err := os.ReadFile(done.Target)
	require.NoError(t, err)
	assert.Equal(t, testSVG, string(data))

	f.send(done)
	assert.Contains(t, f.model.toasts.Toasts()[0].Message, "Saved")
}

func TestCopy_UsesClipboardSink(t *testing.T) {
	f := convertedFixture(t)

	f.send(findMsg[shareDoneMsg](t, collect(f.press("y"))))

	require.Len(t, f.clipboard.received, 1)
	assert.Equal(t, testSVG, f.clipboard.received[0].SVG)
	assert.Equal(t, vectorize.ShareTitle, f.clipboard.received[0].Title)
	assert.Equal(t, "Copied SVG to clipboard", f.model.toasts.Toasts()[0].Message)
}

func TestShareFailure_KeepsResult(t *testing.T) {
	f := convertedFixture(t)
	f.clipboard.err = errors.New("cancelled by user")

	f.send(findMsg[shareDoneMsg](t, collect(f.press("y"))))

	assert.Equal(t, vectorize.StateSucceeded, f.state())
	assert.NotNil(t, f.model.Controller().Snapshot().Result)
	assert.Equal(t, ShareFailedMessage, f.model.toasts.Toasts()[0].Message)
}

func TestShareKeysDisabledBeforeSuccess(t *testing.T) {
	f := newFixture(t, succeeding())
	f.selectImage("art.png")

	assert.Nil(t, f.press("s"))
	assert.Nil(t, f.press("y"))
	assert.Empty(t, f.clipboard.received)
}

// =============================================================================
// PREVIEW, HELP AND PICKER
// =============================================================================

func TestPreviewToggle(t *testing.T) {
	f := convertedFixture(t)
	f.send(tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Contains(t, f.model.View(), "Press v to view the SVG source")

	f.press("v")
	assert.True(t, f.model.showPreview)
	assert.Contains(t, f.model.View(), `<path d="M0 0L4 4"/>`)

	f.press("x")
	assert.False(t, f.model.showPreview, "reset hides the preview")
}

func TestResizeSizesPreview(t *testing.T) {
	f := newFixture(t, succeeding())
	f.send(tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Equal(t, 98, f.model.preview.Width)
	assert.Equal(t, 28, f.model.preview.Height)
	assert.Equal(t, 100, f.model.theme.Width)
}

func TestHelpOverlay(t *testing.T) {
	f := newFixture(t, succeeding())
	f.send(tea.WindowSizeMsg{Width: 120, Height: 40})

	f.press("?")
	assert.Equal(t, ModeHelp, f.model.Mode())
	view := f.model.View()
	assert.Contains(t, view, "Vectorize")
	assert.Contains(t, view, "retry after a failure")

	f.press("?")
	assert.Equal(t, ModeMain, f.model.Mode())
}

func TestPickerOpenAndClose(t *testing.T) {
	f := newFixture(t, succeeding())

	cmd := f.press("o")
	assert.NotNil(t, cmd, "opening the picker reads the directory")
	assert.Equal(t, ModePicker, f.model.Mode())
	assert.Contains(t, f.model.View(), "Choose an image")

	f.press("q")
	assert.Equal(t, ModeMain, f.model.Mode())
}

func TestPickerTypesIncludeUpperCase(t *testing.T) {
	types := pickerTypes()
	assert.Contains(t, types, ".png")
	assert.Contains(t, types, ".PNG")
	assert.Len(t, types, 2*len(vectorize.SupportedExtensions))
}

// =============================================================================
// CONFIG RELOAD AND QUIT
// =============================================================================

func TestConfigReload(t *testing.T) {
	f := newFixture(t, succeeding())

	cfg := config.Default()
	cfg.Service.Endpoint = "http://localhost:9000/vectorize"
	cfg.Output.Dir = "/tmp/svgs"
	f.send(ConfigReloadedMsg{Config: cfg})

	assert.Equal(t, []string{"http://localhost:9000/vectorize"}, f.endpoint.got)
	assert.Equal(t, "/tmp/svgs", f.model.outputDir)
	assert.Equal(t, "Configuration reloaded", f.model.toasts.Toasts()[0].Message)
}

func TestConfigReloadError(t *testing.T) {
	f := newFixture(t, succeeding())
	before := f.model.outputDir

	f.send(ConfigReloadedMsg{Config: config.Default(), Err: errors.New("service.endpoint: invalid")})

	assert.Empty(t, f.endpoint.got)
	assert.Equal(t, before, f.model.outputDir)
	assert.True(t, strings.HasPrefix(f.model.toasts.Toasts()[0].Message, "Config not reloaded"))
}

func TestToastTickLoop(t *testing.T) {
	f := newFixture(t, succeeding())

	first := f.send(ConfigReloadedMsg{Config: config.Default()})
	second := f.send(ConfigReloadedMsg{Config: config.Default()})
	assert.NotNil(t, first)
	assert.Nil(t, second, "only one tick loop runs at a time")

	f.model.toasts.Clear()
	f.send(components.ToastTickMsg{})
	assert.False(t, f.model.toastTick)
}

func TestResetClearsToasts(t *testing.T) {
	f := newFixture(t, succeeding())
	f.selectImage("art.png")
	f.send(ConfigReloadedMsg{Config: config.Default()})
	require.True(t, f.model.toasts.HasToasts())

	f.press("x")
	assert.False(t, f.model.toasts.HasToasts())
	assert.NotContains(t, f.model.View(), "Configuration reloaded")
}

func TestQuit(t *testing.T) {
	f := newFixture(t, succeeding())

	cmd := f.press("q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	cmd = f.press("ctrl+c")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
