package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the application key bindings.
type KeyMap struct {
	Quit   key.Binding
	Back   key.Binding
	Enter  key.Binding
	Tab    key.Binding
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding

	// Chart bindings
	ShiftLeft   key.Binding
	ShiftRight  key.Binding
	ResizeLeft  key.Binding
	ResizeRight key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding
	Complete    key.Binding
	Today       key.Binding
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
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "select"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "right"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		ShiftLeft: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "move earlier"),
		),
		ShiftRight: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "move later"),
		),
		ResizeLeft: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "shrink"),
		),
		ResizeRight: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "grow"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "reorder up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "reorder down"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "toggle done"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "jump to today"),
		),
	}
}
