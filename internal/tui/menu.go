package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type menuItem struct {
	label string
	key   string
	view  View
}

type menuModel struct {
	s        *session
	cursor   int
	items    []menuItem
	styles   Styles
	keys     KeyMap
	selected *View
}

func newMenuModel(s *session, styles Styles, keys KeyMap) menuModel {
	return menuModel{
		s: s,
		items: []menuItem{
			{label: "Browse Games", key: "1", view: ViewBrowse},
			{label: "Trending Games", key: "2", view: ViewHot},
			{label: "Watchlist", key: "3", view: ViewWatchlist},
			{label: "API Token", key: "t", view: ViewSetupToken},
		},
		styles: styles,
		keys:   keys,
	}
}

func (m menuModel) Update(msg tea.Msg) (menuModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(km, m.keys.Enter):
		view := m.items[m.cursor].view
		m.selected = &view
	case km.String() == "t":
		view := ViewSetupToken
		m.selected = &view
	}
	return m, nil
}

func (m menuModel) View(width, height int) string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("BGG Shelf"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("BoardGameGeek catalog browser " + Version))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		style := m.styles.MenuItem
		if i == m.cursor {
			cursor = "> "
			style = m.styles.MenuItemFocus
		}

		label := item.label
		if item.view == ViewWatchlist {
			total, owned, want := m.s.watchlist.Counts()
			label = fmt.Sprintf("%s (%d, %d owned, %d want to play)", label, total, owned, want)
		}
		b.WriteString(fmt.Sprintf("%s[%s] %s\n", cursor, item.key, style.Render(label)))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  [q] %s\n", m.styles.MenuItem.Render("Quit")))

	if m.s.config.UseProxy() {
		b.WriteString("\n")
		b.WriteString(m.styles.Subtitle.Render("Using proxy endpoints"))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("j/k: Navigate  Enter: Select  ?: Help  q: Quit"))

	return centerContent(b.String(), width, height)
}
