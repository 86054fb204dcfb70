package tui

import "github.com/charmbracelet/bubbles/key"

// tokenKeys are typed straight into the expression.
const tokenKeys = "0123456789.+-*/^"

type keyMap struct {
	Evaluate  key.Binding
	Backspace key.Binding
	Clear     key.Binding
	Root      key.Binding
	Up        key.Binding
	Down      key.Binding
	Reuse     key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Evaluate: key.NewBinding(
			key.WithKeys("enter", "="),
			key.WithHelp("enter/=", "evaluate"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "delete"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Root: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "√"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/↓", "history"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
		),
		Reuse: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "reuse result"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Evaluate, k.Backspace, k.Clear, k.Root, k.Up, k.Reuse, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
