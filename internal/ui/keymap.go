package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keyboard shortcuts for the application
type KeyMap struct {
	Quit key.Binding
	Back key.Binding

	Up   key.Binding
	Down key.Binding
	Top  key.Binding

	Refresh    key.Binding
	Export     key.Binding
	ExportPump key.Binding
	Details    key.Binding
	ToggleLogs key.Binding
	Logs       key.Binding

	// Logs screen
	CycleLevel  key.Binding
	ToggleField key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "newest"),
		),

		Refresh: key.NewBinding(
			key.WithKeys("r", "f5"),
			key.WithHelp("r", "refresh"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export csv"),
		),
		ExportPump: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "export pump json"),
		),
		Details: key.NewBinding(
			key.WithKeys("enter", "d"),
			key.WithHelp("enter", "details"),
		),
		ToggleLogs: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "toggle logs"),
		),
		Logs: key.NewBinding(
			key.WithKeys("f12"),
			key.WithHelp("F12", "logs"),
		),

		CycleLevel: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "level filter"),
		),
		ToggleField: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "fields"),
		),
	}
}

// ContextualHelp returns the bindings shown in the help bar of route
func (k KeyMap) ContextualHelp(route Route) []key.Binding {
	switch route {
	case RouteTransfers:
		return []key.Binding{k.Up, k.Down, k.Details, k.Refresh, k.Export, k.ExportPump, k.ToggleLogs, k.Logs, k.Quit}
	case RouteLogs:
		return []key.Binding{k.Up, k.Down, k.CycleLevel, k.ToggleField, k.Back, k.Quit}
	default:
		return []key.Binding{k.Quit}
	}
}
