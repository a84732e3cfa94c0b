// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screen

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/vectorize-tui/internal/config"
	"github.com/jeranaias/vectorize-tui/internal/logging"
	"github.com/jeranaias/vectorize-tui/internal/ui/components"
	"github.com/jeranaias/vectorize-tui/internal/ui/styles"
	"github.com/jeranaias/vectorize-tui/internal/vectorize"
)

// ShareFailedMessage is shown when a share sink fails.
const ShareFailedMessage = "Failed to share file"

// =============================================================================
// SCREEN MODE
// =============================================================================

// Mode is what currently owns the keyboard.
type Mode int

const (
	ModeMain   Mode = iota // image card, result and help bar
	ModePicker             // file picker overlay
	ModeHelp               // rendered help overlay
)

// EndpointSetter is updated when the config file changes.
// *vectorize.Client implements it.
type EndpointSetter interface {
	SetEndpoint(endpoint string)
}

// Options configure a screen Model.
type Options struct {
	Controller *vectorize.Controller
	Endpoint   EndpointSetter // optional
	Config     *config.Config
	Theme      *styles.Theme
	Logger     *logging.Logger
	Clipboard  vectorize.ShareSink // default: system clipboard
	StartDir   string              // picker start; default: working directory
}

// =============================================================================
// SCREEN MODEL
// =============================================================================

// Model is the Bubble Tea model for the single vectorize screen.
// All screen state lives in the Controller; the model only renders it and
// turns keys into transitions.
type Model struct {
	ctrl     *vectorize.Controller
	endpoint EndpointSetter
	log      *logging.Logger
	theme    *styles.Theme
	keys     KeyMap

	outputDir string
	noColor   bool
	clipboard vectorize.ShareSink

	mode        Mode
	picker      filepicker.Model
	spinner     components.Spinner
	preview     viewport.Model
	showPreview bool
	toasts      *components.ToastManager
	toastTick   bool
	helpText    string

	cancel      context.CancelFunc
	lastElapsed time.Duration

	width  int
	height int
}

// New creates the screen model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme(styles.ThemeOptions{Name: cfg.UI.Theme, NoColor: cfg.UI.NoColor})
	}
	ctrl := opts.Controller
	if ctrl == nil {
		ctrl = vectorize.NewController(vectorize.NewClient(nil), log)
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = vectorize.NewClipboardSink()
	}

	startDir := opts.StartDir
	if startDir == "" {
		if wd, err := os.Getwd(); err == nil {
			startDir = wd
		} else {
			startDir = "."
		}
	}

	fp := filepicker.New()
	fp.CurrentDirectory = startDir
	fp.AllowedTypes = pickerTypes()
	fp.ShowHidden = false
	fp.Height = 12

	m := Model{
		ctrl:      ctrl,
		endpoint:  opts.Endpoint,
		log:       log.WithOperation("screen"),
		theme:     theme,
		keys:      DefaultKeyMap(),
		outputDir: outputDir(cfg),
		noColor:   cfg.UI.NoColor,
		clipboard: clip,
		picker:    fp,
		spinner:   components.NewSpinner(),
		preview:   viewport.New(80, 12),
		toasts:    components.NewToastManager(),
	}
	m.keys.SyncState(ctrl.State())
	return m
}

// pickerTypes lists the supported extensions in both cases; the picker
// matches suffixes case-sensitively.
func pickerTypes() []string {
	types := make([]string, 0, 2*len(vectorize.SupportedExtensions))
	for _, ext := range vectorize.SupportedExtensions {
		types = append(types, ext, strings.ToUpper(ext))
	}
	return types
}

func outputDir(cfg *config.Config) string {
	if cfg.Output.Dir != "" {
		return cfg.Output.Dir
	}
	return "."
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Mode returns the current input mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Controller returns the controller behind the screen.
func (m Model) Controller() *vectorize.Controller {
	return m.ctrl
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case imagePickedMsg:
		return m.handleImagePicked(msg)

	case conversionDoneMsg:
		return m.handleConversionDone(msg)

	case shareDoneMsg:
		return m.handleShareDone(msg)

	case ConfigReloadedMsg:
		return m.handleConfigReloaded(msg)

	case components.ToastTickMsg:
		m.toasts.Tick()
		if !m.toasts.HasToasts() {
			m.toastTick = false
			return m, nil
		}
		return m, components.ToastTickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Directory listings and other picker internals.
	if m.mode == ModePicker {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	// header (3) + image card (6) + status line (2) + help bar (1)
	const reserved = 12
	previewHeight := msg.Height - reserved
	if previewHeight < 3 {
		previewHeight = 3
	}
	m.preview.Width = max(msg.Width-2, 10)
	m.preview.Height = previewHeight

	m.picker.Height = max(msg.Height-6, 3)

	if m.mode == ModeHelp {
		m.helpText = m.renderHelp()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch m.mode {
	case ModePicker:
		return m.handlePickerKey(msg)
	case ModeHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Reset, m.keys.Quit) {
			m.mode = ModeMain
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		m.helpText = m.renderHelp()
		return m, nil

	case key.Matches(msg, m.keys.Open):
		m.mode = ModePicker
		return m, m.picker.Init()

	case key.Matches(msg, m.keys.Convert):
		job, ok := m.ctrl.StartConversion()
		if !ok {
			return m, nil
		}
		return m.startJob(job, "Vectorizing")

	case key.Matches(msg, m.keys.Retry):
		job, ok := m.ctrl.Retry()
		if !ok {
			return m, nil
		}
		return m.startJob(job, "Retrying")

	case key.Matches(msg, m.keys.Reset):
		m.cancelInFlight()
		m.ctrl.Reset()
		m.toasts.Clear()
		m.afterTransition()
		return m, nil

	case key.Matches(msg, m.keys.Save):
		return m, shareCmd(m.ctrl, vectorize.NewFileSink(m.outputDir))

	case key.Matches(msg, m.keys.Copy):
		return m, shareCmd(m.ctrl, m.clipboard)

	case key.Matches(msg, m.keys.Preview):
		m.showPreview = !m.showPreview
		return m, nil

	case key.Matches(msg, m.keys.Up, m.keys.Down, m.keys.PageUp, m.keys.PageDown):
		if !m.showPreview {
			return m, nil
		}
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Close) {
		m.mode = ModeMain
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.mode = ModeMain
		m.log.Debug().Str("path", path).Msg("image chosen")
		return m, pickImageCmd(vectorize.NewFileSource(path))
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.toasts.AddWarning("Not a supported image: " + path)
		return m, m.toastCmd()
	}
	return m, cmd
}

func (m Model) startJob(job vectorize.Job, label string) (tea.Model, tea.Cmd) {
	m.cancelInFlight()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	m.spinner.SetMessage(label)
	m.spinner.SetDetail(job.Image.Name)
	m.afterTransition()
	tick := m.spinner.Start()
	return m, tea.Batch(convertCmd(ctx, m.ctrl, job), tick)
}

func (m *Model) cancelInFlight() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// afterTransition re-derives everything the view keeps outside the controller.
func (m *Model) afterTransition() {
	snap := m.ctrl.Snapshot()
	m.keys.SyncState(snap.State)

	if !snap.Processing {
		m.spinner.Stop()
	}
	if snap.Result == nil {
		m.showPreview = false
		m.preview.SetContent("")
		return
	}

	p := components.NewSVGPreview(snap.Result.SVG)
	p.Highlight = !m.noColor
	m.preview.SetContent(p.Render())
	m.preview.GotoTop()
}

func (m Model) handleImagePicked(msg imagePickedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.log.Warn().Err(msg.Err).Msg("image pick failed")
		m.toasts.AddError("Could not open image: " + msg.Err.Error())
		return m, m.toastCmd()
	}

	if !m.ctrl.SelectFrom(msg.Selection) {
		m.toasts.AddWarning("Not a supported image: " + msg.Selection.FileName)
		return m, m.toastCmd()
	}
	m.cancelInFlight()
	m.lastElapsed = 0
	m.afterTransition()
	return m, nil
}

func (m Model) handleConversionDone(msg conversionDoneMsg) (tea.Model, tea.Cmd) {
	if !m.ctrl.Complete(msg.Outcome) {
		return m, nil
	}
	m.cancelInFlight()
	m.lastElapsed = msg.Outcome.Elapsed
	m.afterTransition()
	return m, nil
}

func (m Model) handleShareDone(msg shareDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.log.Warn().Str("sink", msg.Sink).Err(msg.Err).Msg("share failed")
		m.toasts.AddError(ShareFailedMessage)
		return m, m.toastCmd()
	}

	text := "Copied SVG to clipboard"
	if msg.Target != "" {
		text = "Saved " + msg.Target
	}
	m.toasts.AddSuccess(text)
	return m, m.toastCmd()
}

func (m Model) handleConfigReloaded(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.log.Warn().Err(msg.Err).Msg("config reload rejected")
		m.toasts.AddWarning("Config not reloaded: " + msg.Err.Error())
		return m, m.toastCmd()
	}

	if m.endpoint != nil {
		m.endpoint.SetEndpoint(msg.Config.Service.Endpoint)
	}
	m.outputDir = outputDir(msg.Config)
	m.log.Info().Str("endpoint", msg.Config.Service.Endpoint).Msg("config reloaded")
	m.toasts.AddStatus("Configuration reloaded")
	return m, m.toastCmd()
}

// toastCmd starts the toast tick loop if it is not running.
func (m *Model) toastCmd() tea.Cmd {
	if m.toastTick {
		return nil
	}
	m.toastTick = true
	return components.ToastTickCmd()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.cancelInFlight()
	return m, tea.Quit
}

// =============================================================================
// HELP
// =============================================================================

const helpMarkdown = `# Vectorize

Turn a raster image into an SVG.

| Key | Action |
| --- | --- |
| o | open an image (PNG, JPEG, GIF, BMP, WebP) |
| enter, c | vectorize the selected image |
| r | retry after a failure |
| x, esc | clear the image and result |
| s | save the SVG to the output directory |
| y | copy the SVG markup to the clipboard |
| v | show or hide the SVG source |
| ? | toggle this help |
| q, ctrl+c | quit |

Edits to the config file are picked up while the screen is open.
`

func (m Model) renderHelp() string {
	width := m.width - 8
	if width < 40 {
		width = 40
	}

	style := "dark"
	switch {
	case m.noColor:
		style = "notty"
	case !m.theme.IsDark:
		style = "light"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
