package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the application.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Enter       key.Binding
	Back        key.Binding
	Escape      key.Binding
	Quit        key.Binding
	Help        key.Binding
	Browse      key.Binding
	Hot         key.Binding
	Watchlist   key.Binding
	Search      key.Binding
	Filter      key.Binding
	Category    key.Binding
	ClearFilter key.Binding
	Sort        key.Binding
	LoadMore    key.Binding
	Refresh     key.Binding
	Watch       key.Binding
	Owned       key.Binding
	WantToPlay  key.Binding
	Remove      key.Binding
	Open        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("k/up", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("j/down", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "b"),
			key.WithHelp("b", "back"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Browse: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "browse"),
		),
		Hot: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "trending"),
		),
		Watchlist: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "watchlist"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter preset"),
		),
		Category: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "category"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear filter"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "load more"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Watch: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "watch/unwatch"),
		),
		Owned: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "toggle owned"),
		),
		WantToPlay: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "toggle want to play"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),
	}
}

// ShortHelp returns the short help text for the key bindings.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Back, k.Quit}
}

// FullHelp returns the full help text for the key bindings.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back},
		{k.Browse, k.Hot, k.Watchlist, k.Search},
		{k.Filter, k.Category, k.ClearFilter, k.Sort, k.LoadMore},
		{k.Refresh, k.Watch, k.Owned, k.WantToPlay, k.Remove},
		{k.Open, k.Help, k.Quit},
	}
}
