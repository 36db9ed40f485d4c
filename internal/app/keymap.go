package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the set of bindings handled in handleKey.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Lecture key.Binding
	Answer  key.Binding
	Sidebar key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the holodeck bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select module"),
		),
		Lecture: key.NewBinding(
			key.WithKeys(" ", "l"),
			key.WithHelp("space", "lecture"),
		),
		Answer: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "answer"),
		),
		Sidebar: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "modules"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Lecture, k.Answer, k.Sidebar, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Lecture, k.Answer},
		{k.Sidebar, k.Help, k.Quit},
	}
}
