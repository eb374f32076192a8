package component

import "github.com/charmbracelet/bubbles/key"

func testBindings() []key.Binding {
	disabled := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hidden"))
	disabled.SetEnabled(false)

	return []key.Binding{
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
		disabled,
		key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "toggle logs")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}
