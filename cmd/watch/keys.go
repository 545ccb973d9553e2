package main

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings. It satisfies key.Map so it can be passed
// directly to bubbles/help.Model for automatic rendering.
type keyMap struct {
	Bars    key.Binding
	Curve   key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings shown in the mini help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Bars, k.Curve, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Bars, k.Curve, k.Refresh},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	Bars: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "bar view"),
	),
	Curve: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "curve view"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refetch now"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
