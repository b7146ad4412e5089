package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Digit    key.Binding
	Decimal  key.Binding
	Add      key.Binding
	Subtract key.Binding
	Equals   key.Binding
	Clear    key.Binding
	Response key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Digit: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "digit"),
		),
		Decimal: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "decimal"),
		),
		Add: key.NewBinding(
			key.WithKeys("+", "a"),
			key.WithHelp("+", "add"),
		),
		Subtract: key.NewBinding(
			key.WithKeys("-", "s"),
			key.WithHelp("-", "subtract"),
		),
		Equals: key.NewBinding(
			key.WithKeys("=", "enter"),
			key.WithHelp("=/enter", "evaluate"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c", "C", "esc"),
			key.WithHelp("c", "clear"),
		),
		Response: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "api response"),
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

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Equals, k.Clear, k.Response, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Digit, k.Decimal},
		{k.Add, k.Subtract, k.Equals},
		{k.Clear, k.Response},
		{k.Help, k.Quit},
	}
}
