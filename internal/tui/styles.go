package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hiroaqii/bgg-shelf/internal/watchlist"
)

// Table-top palette: felt for chrome, meeple colors for shelf state.
var (
	ColorFelt   = lipgloss.Color("#2A9D8F") // Green baize
	ColorWood   = lipgloss.Color("#D4A373") // Component wood
	ColorBrass  = lipgloss.Color("#E9C46A") // Brass meeple
	ColorMeeple = lipgloss.Color("#E76F51") // Red meeple
	ColorCard   = lipgloss.Color("#F1FAEE") // Card stock
	ColorError  = lipgloss.Color("#D62828")
	ColorMuted  = lipgloss.Color("#8D99AE")
	ColorBorder = lipgloss.Color("#264653")

	// ColorAccent highlights key names and prompts.
	ColorAccent = ColorBrass
)

// Styles contains all the styles used in the application.
type Styles struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	MenuItem      lipgloss.Style
	MenuItemFocus lipgloss.Style
	ListItem      lipgloss.Style
	ListItemFocus lipgloss.Style
	Help          lipgloss.Style
	Error         lipgloss.Style
	Notice        lipgloss.Style
	Loading       lipgloss.Style
	Border        lipgloss.Style
	Rating        lipgloss.Style
	Rank          lipgloss.Style
	Players       lipgloss.Style
	Time          lipgloss.Style
	Label         lipgloss.Style
	Value         lipgloss.Style

	// Shelf badges mark watchlist state on lists and the detail page.
	Watched    lipgloss.Style
	Owned      lipgloss.Style
	WantToPlay lipgloss.Style
}

// DefaultStyles returns the default styles for the application.
func DefaultStyles() Styles {
	badge := lipgloss.NewStyle().
		Foreground(ColorCard).
		Bold(true).
		Padding(0, 1)

	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorFelt).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true),

		MenuItem: lipgloss.NewStyle().
			PaddingLeft(2),

		MenuItemFocus: lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(ColorFelt).
			Bold(true),

		ListItem: lipgloss.NewStyle(),

		ListItemFocus: lipgloss.NewStyle().
			Foreground(ColorBrass).
			Bold(true),

		Help: lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1),

		Error: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),

		Notice: lipgloss.NewStyle().
			Foreground(ColorFelt),

		Loading: lipgloss.NewStyle().
			Foreground(ColorBrass).
			Italic(true),

		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1),

		Rating: lipgloss.NewStyle().
			Foreground(ColorBrass),

		Rank: lipgloss.NewStyle().
			Foreground(ColorWood),

		Players: lipgloss.NewStyle().
			Foreground(ColorFelt),

		Time: lipgloss.NewStyle().
			Foreground(ColorMuted),

		Label: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Width(12),

		Value: lipgloss.NewStyle().
			Foreground(ColorCard),

		Watched:    lipgloss.NewStyle().Foreground(ColorMeeple).Bold(true),
		Owned:      badge.Background(ColorFelt),
		WantToPlay: badge.Background(ColorMeeple),
	}
}

// watchMark is the one-cell marker for a watched game in a list row.
func (s Styles) watchMark(watched bool) string {
	if !watched {
		return " "
	}
	return s.Watched.Render("*")
}

// shelfBadges renders the owned and want-to-play badges of a watchlist item,
// or "" when neither is set.
func (s Styles) shelfBadges(it watchlist.Item) string {
	var badges []string
	if it.Owned {
		badges = append(badges, s.Owned.Render("owned"))
	}
	if it.WantToPlay {
		badges = append(badges, s.WantToPlay.Render("want to play"))
	}
	return strings.Join(badges, " ")
}
