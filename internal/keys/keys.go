package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the dashboard.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding
	Back   key.Binding

	// Buckets
	Important    key.Binding
	Regular      key.Binding
	SwitchBucket key.Binding

	// Actions on the selected email
	ToggleImportance key.Binding
	Delete           key.Binding

	// View
	Search      key.Binding
	Refresh     key.Binding
	ToggleTheme key.Binding
	Narrow      key.Binding
	Widen       key.Binding
	Dismiss     key.Binding

	Command key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open email"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close email"),
		),
		Important: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "important"),
		),
		Regular: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "regular"),
		),
		SwitchBucket: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch bucket"),
		),
		ToggleImportance: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "move bucket"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle theme"),
		),
		Narrow: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "narrow list"),
		),
		Widen: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "widen list"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss error"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.SwitchBucket,
		k.ToggleImportance, k.Delete, k.Help, k.Quit,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.Important, k.Regular, k.SwitchBucket},
		{k.ToggleImportance, k.Delete, k.Refresh, k.Dismiss},
		{k.Search, k.ToggleTheme, k.Narrow, k.Widen},
		{k.Command, k.Help, k.Quit},
	}
}
