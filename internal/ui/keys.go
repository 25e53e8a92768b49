package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the browser.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Layout     key.Binding
	Logs       key.Binding
	Back       key.Binding

	// Paging
	NextPage key.Binding
	PrevPage key.Binding
	Refresh  key.Binding

	// Records
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Search key.Binding

	// Detail
	PrevImage key.Binding
	NextImage key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Layout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Toggle list/split"),
		),
		Logs: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "Diagnostics log"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),

		NextPage: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n/→", "Next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p/←", "Previous page"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh page"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "Move down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open detail"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search page"),
		),

		PrevImage: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "Previous image"),
		),
		NextImage: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Next image"),
		),
	}
}

// ShortHelp returns key bindings for the status bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.NextPage, k.PrevPage, k.Refresh, k.Search, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay, one column per group.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Back, k.Search},
		{k.NextPage, k.PrevPage, k.Refresh},
		{k.PrevImage, k.NextImage},
		{k.Layout, k.CycleTheme, k.Logs, k.Help, k.Quit},
	}
}
