// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screen

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/vectorize-tui/internal/vectorize"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings for the vectorize screen.
// Action bindings are disabled whenever the current state does not allow
// them, so key.Matches doubles as the enablement check.
type KeyMap struct {
	Open     key.Binding
	Convert  key.Binding
	Retry    key.Binding
	Reset    key.Binding
	Save     key.Binding
	Copy     key.Binding
	Preview  key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Help     key.Binding
	Close    key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open image"),
		),
		Convert: key.NewBinding(
			key.WithKeys("enter", "c"),
			key.WithHelp("enter", "vectorize"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x", "esc"),
			key.WithHelp("x", "reset"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save svg"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy svg"),
		),
		Preview: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "toggle source"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp/C-u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn/C-d", "page down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Close: key.NewBinding(
			key.WithKeys("q", "ctrl+o"),
			key.WithHelp("q", "close picker"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SyncState enables the action bindings the given state allows.
// Open, Help and Quit stay available in every state.
func (k *KeyMap) SyncState(state vectorize.ScreenState) {
	k.Convert.SetEnabled(state.CanConvert())
	k.Retry.SetEnabled(state.CanRetry())
	k.Reset.SetEnabled(state != vectorize.StateEmpty)
	k.Save.SetEnabled(state.CanShare())
	k.Copy.SetEnabled(state.CanShare())
	k.Preview.SetEnabled(state.CanShare())
	k.Up.SetEnabled(state.CanShare())
	k.Down.SetEnabled(state.CanShare())
	k.PageUp.SetEnabled(state.CanShare())
	k.PageDown.SetEnabled(state.CanShare())
}

// ActionBindings returns the bindings shown in the help bar, in order.
func (k KeyMap) ActionBindings() []key.Binding {
	return []key.Binding{k.Open, k.Convert, k.Retry, k.Reset, k.Save, k.Copy, k.Preview, k.Help, k.Quit}
}
