package desk

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the desktop TUI.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	Fold     key.Binding
	Edit     key.Binding
	NewFile  key.Binding
	Save     key.Binding
	Maximize key.Binding
	Cycle    key.Binding
	Taskbar  key.Binding
	Refresh  key.Binding
	Cancel   key.Binding
	Quit     key.Binding
}

var keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Fold: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "fold folder"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	NewFile: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new file"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	Maximize: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "maximize"),
	),
	Cycle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next window"),
	),
	Taskbar: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5"),
		key.WithHelp("1-5", "toggle window"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh tree"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
