package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	bgg "github.com/hiroaqii/bgg-shelf/go-bgg"
	"github.com/hiroaqii/bgg-shelf/internal/watchlist"
)

type watchlistMsg struct {
	notice string
	err    error
}

// toggleWatch adds e to the watchlist, or removes it when already present.
func toggleWatch(s *session, e bgg.CatalogEntry) tea.Cmd {
	wl, ctx := s.watchlist, s.ctx
	return func() tea.Msg {
		if wl.Contains(e.ID) {
			if err := wl.Remove(ctx, e.ID); err != nil {
				return watchlistMsg{err: err}
			}
			return watchlistMsg{notice: "Removed " + e.Name + " from watchlist"}
		}
		if err := wl.Add(ctx, e); err != nil {
			return watchlistMsg{err: err}
		}
		return watchlistMsg{notice: "Added " + e.Name + " to watchlist"}
	}
}

func watchlistCmd(wl *watchlist.Store, notice string, fn func(*watchlist.Store) error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(wl); err != nil {
			return watchlistMsg{err: err}
		}
		return watchlistMsg{notice: notice}
	}
}

type watchlistModel struct {
	s         *session
	styles    Styles
	keys      KeyMap
	filter    listFilter[watchlist.Item]
	notice    string
	err       string
	selected  *int
	wantsBack bool
}

func newWatchlistModel(s *session, styles Styles, keys KeyMap) watchlistModel {
	return watchlistModel{
		s:      s,
		styles: styles,
		keys:   keys,
		filter: newListFilter(
			func(it watchlist.Item) string { return it.Name },
			func(it watchlist.Item) int { return it.ID },
		),
	}
}

func (m *watchlistModel) refreshRows() {
	m.filter.setItems(m.s.watchlist.Items())
}

func (m *watchlistModel) takeSelection() (int, bool) {
	if m.selected == nil {
		return 0, false
	}
	id := *m.selected
	m.selected = nil
	return id, true
}

func (m watchlistModel) Update(msg tea.Msg) (watchlistModel, tea.Cmd) {
	switch msg := msg.(type) {
	case watchlistMsg:
		m.notice, m.err = msg.notice, errorText(msg.err)
		m.refreshRows()
		return m, nil

	case tea.KeyMsg:
		if m.filter.active {
			outcome, cmd := m.filter.update(msg, m.keys)
			if outcome == filterChosen {
				if id, ok := m.filter.selected(); ok {
					m.selected = &id
				}
			}
			return m, cmd
		}

		m.notice = ""
		id, ok := m.filter.selected()
		ctx := m.s.ctx
		switch {
		case key.Matches(msg, m.keys.Back):
			m.wantsBack = true
		case key.Matches(msg, m.keys.Search):
			return m, m.filter.start()
		case key.Matches(msg, m.keys.Up):
			m.filter.up()
		case key.Matches(msg, m.keys.Down):
			m.filter.down()
		case key.Matches(msg, m.keys.Enter) && ok:
			m.selected = &id
		case key.Matches(msg, m.keys.Owned) && ok:
			return m, watchlistCmd(m.s.watchlist, "Updated owned", func(wl *watchlist.Store) error {
				return wl.ToggleOwned(ctx, id)
			})
		case key.Matches(msg, m.keys.WantToPlay) && ok:
			return m, watchlistCmd(m.s.watchlist, "Updated want to play", func(wl *watchlist.Store) error {
				return wl.ToggleWantToPlay(ctx, id)
			})
		case (key.Matches(msg, m.keys.Remove) || key.Matches(msg, m.keys.Watch)) && ok:
			return m, watchlistCmd(m.s.watchlist, "Removed from watchlist", func(wl *watchlist.Store) error {
				return wl.Remove(ctx, id)
			})
		}
	}
	return m, nil
}

func (m watchlistModel) View(width, height int) string {
	var b strings.Builder

	total, owned, want := m.s.watchlist.Counts()
	b.WriteString(m.styles.Title.Render("Watchlist"))
	b.WriteString("\n")
	if m.filter.active || m.filter.visible != nil {
		b.WriteString(m.filter.input.View())
	} else {
		b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("%d games  %d owned  %d want to play", total, owned, want)))
	}
	b.WriteString("\n\n")

	rows := m.filter.rows()
	if len(rows) == 0 {
		if !m.s.watchlist.Loaded() {
			b.WriteString(m.styles.Error.Render("Watchlist could not be loaded."))
		} else {
			b.WriteString(m.styles.Subtitle.Render("Nothing here yet. Press w on a game to watch it."))
		}
		b.WriteString("\n")
	}

	nameWidth := max(10, contentWidth(m.s.config.Display.ListWidth, width)-36)
	start, end := listRange(m.filter.cursor, len(rows), height)
	for i := start; i < end; i++ {
		it := rows[i]
		prefix, style := cursorPrefix(i, m.filter.cursor, m.styles)
		b.WriteString(fmt.Sprintf("%s%s %s %s %s\n",
			prefix,
			style.Render(padName(it.Name, nameWidth)),
			m.styles.Rating.Render(fmt.Sprintf("%4.1f", it.AverageRating)),
			m.styles.Players.Render(fmt.Sprintf("%6s", formatPlayers(it.MinPlayers, it.MaxPlayers))),
			m.styles.shelfBadges(it),
		))
	}

	if m.err != "" {
		b.WriteString(m.styles.Error.Render("Error: " + m.err))
		b.WriteString("\n")
	} else if m.notice != "" {
		b.WriteString(m.styles.Notice.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render("/: filter  h: owned  p: want to play  d: remove  enter: detail  b: back"))

	return centerContent(b.String(), width, height)
}
