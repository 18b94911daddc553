package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap describes the bindings shown in the footer. Dispatch itself is
// done by the input modes.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Search key.Binding
	Submit key.Binding
	Clear  key.Binding
	Retry  key.Binding
	Pager  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "keep query"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Pager: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "page results"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// shortHelp picks the bindings relevant to the current screen
func (k KeyMap) shortHelp(searching, failed, hasResults, hasQuery bool) []key.Binding {
	switch {
	case searching:
		return []key.Binding{k.Up, k.Down, k.Submit, k.Clear}
	case failed:
		return []key.Binding{k.Retry, k.Help, k.Quit}
	}

	bindings := []key.Binding{k.Up, k.Down, k.Search}
	if hasQuery {
		bindings = append(bindings, k.Clear)
	}
	if hasResults {
		bindings = append(bindings, k.Pager)
	}
	return append(bindings, k.Help, k.Quit)
}
