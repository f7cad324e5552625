package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the search screen bindings. It implements help.KeyMap.
type KeyMap struct {
	Submit key.Binding
	Focus  key.Binding
	Left   key.Binding
	Right  key.Binding
	Reroll key.Binding
	Browse key.Binding
	Reset  key.Binding
	Quit   key.Binding
	Help   key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Focus:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "suggestions")),
		Left:   key.NewBinding(key.WithKeys("left", "up"), key.WithHelp("←", "prev")),
		Right:  key.NewBinding(key.WithKeys("right", "down"), key.WithHelp("→", "next")),
		Reroll: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "new suggestions")),
		Browse: key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "browse all")),
		Reset:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "search another")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Focus, k.Reroll, k.Browse, k.Reset, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Focus, k.Left, k.Right},
		{k.Reroll, k.Browse, k.Reset, k.Quit, k.Help},
	}
}
