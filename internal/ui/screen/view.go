// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screen

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/vectorize-tui/internal/ui/components"
	"github.com/jeranaias/vectorize-tui/internal/ui/styles"
	"github.com/jeranaias/vectorize-tui/internal/util"
	"github.com/jeranaias/vectorize-tui/internal/vectorize"
)

// View implements tea.Model.
func (m Model) View() string {
	switch m.mode {
	case ModePicker:
		return m.renderPicker()
	case ModeHelp:
		return m.theme.HelpOverlay.Render(m.helpText)
	}

	snap := m.ctrl.Snapshot()

	sections := []string{
		m.renderHeader(snap.State),
		m.renderImageCard(snap),
	}
	if body := m.renderBody(snap); body != "" {
		sections = append(sections, body)
	}
	if m.toasts.HasToasts() {
		sections = append(sections, components.RenderToastStack(m.toasts.Toasts(), m.width))
	}
	sections = append(sections, m.renderHelpBar())

	return m.theme.Container.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// =============================================================================
// SECTIONS
// =============================================================================

func (m Model) renderHeader(state vectorize.ScreenState) string {
	title := m.theme.HeaderTitle.Render("Vectorize")
	subtitle := m.theme.HeaderSubtitle.Render("image to SVG")
	badge := m.stateBadge(state)

	if m.theme.GetLayoutMode() == styles.LayoutNarrow {
		return lipgloss.JoinVertical(lipgloss.Left, title, badge)
	}
	return m.theme.Header.Render(title + "  " + subtitle + "  " + badge)
}

func (m Model) stateBadge(state vectorize.ScreenState) string {
	switch state {
	case vectorize.StateReady:
		return m.theme.BadgeReady.Render(styles.StatusIndicators.Info + " Ready")
	case vectorize.StateProcessing:
		return m.theme.BadgeProcessing.Render(styles.StatusIndicators.Pending + " Processing")
	case vectorize.StateSucceeded:
		return m.theme.BadgeSucceeded.Render(styles.StatusIndicators.Success + " Done")
	case vectorize.StateFailed:
		return m.theme.BadgeFailed.Render(styles.StatusIndicators.Error + " Failed")
	default:
		return m.theme.BadgeEmpty.Render(styles.StatusIndicators.Empty + " No image")
	}
}

func (m Model) renderImageCard(snap vectorize.Snapshot) string {
	if snap.Image == nil {
		return m.theme.EmptyState.Render("No image selected. Press o to choose one.")
	}

	valueWidth := m.contentWidth() - 14
	img := snap.Image

	size := "unknown"
	if img.HasSize() {
		size = util.FormatFileSize(*img.Size)
	}

	rows := []string{
		m.row("File", util.TruncateWidth(img.Name, valueWidth)),
		m.row("Type", img.MIMEType),
		m.row("Size", size),
		m.row("Location", util.TruncateWidth(img.URI, valueWidth)),
	}
	return m.theme.Card.Render(strings.Join(rows, "\n"))
}

func (m Model) row(label, value string) string {
	return m.theme.Label.Render(label) + m.theme.Value.Render(value)
}

func (m Model) renderBody(snap vectorize.Snapshot) string {
	switch snap.State {
	case vectorize.StateProcessing:
		return m.spinner.View()

	case vectorize.StateFailed:
		if snap.Err == nil {
			return ""
		}
		content := m.theme.ErrorTitle.Render(styles.StatusIndicators.Error+" Conversion failed") +
			"\n" + snap.Err.Message +
			"\n" + m.theme.Muted.Render("Press r to retry.")
		return m.theme.ErrorBox.Width(m.contentWidth() - 2).Render(content)

	case vectorize.StateSucceeded:
		return m.renderResult(snap)
	}
	return ""
}

func (m Model) renderResult(snap vectorize.Snapshot) string {
	res := snap.Result
	if res == nil {
		return ""
	}

	summary := "Converted to " + vectorize.SVGFileName(snap.Image.Name) +
		" (" + util.FormatFileSize(int64(len(res.SVG))) + ")"
	if m.lastElapsed > 0 {
		summary += " in " + components.FormatElapsed(m.lastElapsed)
	}
	lines := []string{styles.RenderSuccess(summary)}

	if res.EditorURL != "" {
		lines = append(lines, m.row("Editor", m.theme.Link.Render(res.EditorURL)))
	}
	if res.ImageToken != "" {
		lines = append(lines, m.row("Token", res.ImageToken))
	}

	if m.showPreview {
		lines = append(lines, m.theme.Preview.Render(m.preview.View()))
	} else {
		lines = append(lines, m.theme.Muted.Render("Press v to view the SVG source ("+
			strconv.Itoa(strings.Count(components.FormatSVG(res.SVG), "\n")+1)+" lines)."))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderPicker() string {
	title := m.theme.HeaderTitle.Render("Choose an image")
	dir := m.theme.Muted.Render(util.TruncateWidth(m.picker.CurrentDirectory, m.contentWidth()))
	hint := m.theme.HelpBar.Render("enter open  backspace up  q close")
	return m.theme.Container.Render(lipgloss.JoinVertical(lipgloss.Left, title, dir, m.picker.View(), hint))
}

// renderHelpBar lists every action; bindings the state disallows are dimmed.
func (m Model) renderHelpBar() string {
	parts := make([]string, 0, len(m.keys.ActionBindings()))
	for _, b := range m.keys.ActionBindings() {
		parts = append(parts, m.renderBinding(b))
	}
	return m.theme.HelpBar.Render(strings.Join(parts, "  "))
}

func (m Model) renderBinding(b key.Binding) string {
	h := b.Help()
	if !b.Enabled() {
		return m.theme.HelpKeyDisabled.Render(h.Key + " " + h.Desc)
	}
	return m.theme.HelpKey.Render(h.Key) + " " + m.theme.HelpDesc.Render(h.Desc)
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return max(m.width-2, 20)
}
