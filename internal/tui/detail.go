package tui

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	bgg "github.com/hiroaqii/bgg-shelf/go-bgg"
	"github.com/hiroaqii/bgg-shelf/internal/catalog"
	"github.com/hiroaqii/bgg-shelf/internal/watchlist"
)

const (
	detailChromeRows = 22

	// detailMargin is the gap kept between wrapped text and the detail width.
	detailMargin        = 4
	minDescriptionWidth = 20
)

type detailState int

const (
	detailStateLoading detailState = iota
	detailStateResults
	detailStateError
)

// detailLoadedMsg carries a game fetched because it was not in the active set.
type detailLoadedMsg struct {
	id    int
	entry bgg.CatalogEntry
	err   error
}

type detailModel struct {
	s         *session
	state     detailState
	styles    Styles
	keys      KeyMap
	spinner   spinner.Model
	gameID    int
	entry     bgg.CatalogEntry
	descLines []string
	wrapWidth int
	scroll    int
	errMsg    string
	notice    string
	wantsBack bool
}

func newDetailModel(s *session, styles Styles, keys KeyMap, id, termWidth int) detailModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Loading

	return detailModel{
		s:         s,
		state:     detailStateLoading,
		styles:    styles,
		keys:      keys,
		spinner:   sp,
		gameID:    id,
		wrapWidth: detailWrapWidth(s.config.Display.DetailWidth, termWidth),
	}
}

// detailWrapWidth is the column at which descriptions wrap.
func detailWrapWidth(configured, termWidth int) int {
	return max(minDescriptionWidth, contentWidth(configured, termWidth)-detailMargin)
}

// resize rewraps the description after the terminal width changes.
func (m *detailModel) resize(termWidth int) {
	w := detailWrapWidth(m.s.config.Display.DetailWidth, termWidth)
	if w == m.wrapWidth {
		return
	}
	m.wrapWidth = w
	if m.state == detailStateResults {
		m.descLines = descriptionLines(m.entry.Description, w)
		m.scroll = min(m.scroll, m.maxScroll())
	}
}

func (m *detailModel) setEntry(e bgg.CatalogEntry) {
	m.state = detailStateResults
	m.entry = e
	m.descLines = descriptionLines(e.Description, m.wrapWidth)
	m.scroll = 0
}

func (m detailModel) load() tea.Cmd {
	svc, ctx, id := m.s.service, m.s.ctx, m.gameID
	return func() tea.Msg {
		entry, err := svc.Game(ctx, id)
		return detailLoadedMsg{id: id, entry: entry, err: err}
	}
}

func (m *detailModel) tick(msg spinner.TickMsg) tea.Cmd {
	if m.state != detailStateLoading {
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

func (m detailModel) maxScroll() int {
	return max(0, len(m.descLines)-1)
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		if msg.id != m.gameID {
			return m, nil
		}
		if msg.err != nil {
			m.state = detailStateError
			if errors.Is(msg.err, catalog.ErrNotFound) {
				m.errMsg = fmt.Sprintf("Game %d was not found.", msg.id)
			} else {
				m.errMsg = errorText(msg.err)
			}
			return m, nil
		}
		m.setEntry(msg.entry)
		return m, nil

	case watchlistMsg:
		if msg.err != nil {
			m.notice = "Error: " + errorText(msg.err)
		} else {
			m.notice = msg.notice
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			m.wantsBack = true
			return m, nil
		}

		switch m.state {
		case detailStateError:
			if key.Matches(msg, m.keys.Refresh) {
				m.state = detailStateLoading
				return m, tea.Batch(m.load(), m.spinner.Tick)
			}
		case detailStateResults:
			switch {
			case key.Matches(msg, m.keys.Up):
				if m.scroll > 0 {
					m.scroll--
				}
			case key.Matches(msg, m.keys.Down):
				if m.scroll < m.maxScroll() {
					m.scroll++
				}
			case key.Matches(msg, m.keys.Open):
				openBrowser(gameURL(m.entry.ID))
			case key.Matches(msg, m.keys.Watch):
				return m, toggleWatch(m.s, m.entry)
			case key.Matches(msg, m.keys.Owned) && m.s.watchlist.Contains(m.entry.ID):
				ctx, id := m.s.ctx, m.entry.ID
				return m, watchlistCmd(m.s.watchlist, "Updated owned", func(wl *watchlist.Store) error {
					return wl.ToggleOwned(ctx, id)
				})
			case key.Matches(msg, m.keys.WantToPlay) && m.s.watchlist.Contains(m.entry.ID):
				ctx, id := m.s.ctx, m.entry.ID
				return m, watchlistCmd(m.s.watchlist, "Updated want to play", func(wl *watchlist.Store) error {
					return wl.ToggleWantToPlay(ctx, id)
				})
			}
		}
	}
	return m, nil
}

func gameURL(id int) string {
	return fmt.Sprintf("https://boardgamegeek.com/boardgame/%d", id)
}

func (m detailModel) View(width, height int) string {
	var b strings.Builder

	switch m.state {
	case detailStateLoading:
		writeLoadingView(&b, m.styles, "Game Details", m.spinner.View()+" Loading game details...")
		return centerContent(b.String(), width, height)
	case detailStateError:
		writeErrorView(&b, m.styles, "Game Details", m.errMsg, "r: Retry  b: Back  esc: Menu")
		return centerContent(b.String(), width, height)
	}

	e := m.entry
	title := e.Name
	if e.YearPublished > 0 {
		title = fmt.Sprintf("%s (%d)", e.Name, e.YearPublished)
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")

	if item, ok := m.s.watchlist.Get(e.ID); ok {
		b.WriteString(m.styles.Watched.Render("* watching"))
		if badges := m.styles.shelfBadges(item); badges != "" {
			b.WriteString(" " + badges)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, line := range m.infoLines() {
		b.WriteString(m.styles.Label.Render(line[0]))
		b.WriteString(m.styles.Value.Render(line[1]))
		b.WriteString("\n")
	}

	if len(m.descLines) > 0 {
		b.WriteString("\n")
		visible := max(3, height-detailChromeRows)
		end := min(len(m.descLines), m.scroll+visible)
		for _, line := range m.descLines[m.scroll:end] {
			b.WriteString(line)
			b.WriteString("\n")
		}
		if end < len(m.descLines) {
			b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("(%d more lines)", len(m.descLines)-end)))
			b.WriteString("\n")
		}
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Notice.Render(m.notice))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("j/k: scroll  w: watch  h: owned  p: want to play  o: open in browser  b: back"))

	return centerContent(b.String(), width, height)
}

// infoLines returns the label/value pairs shown above the description.
func (m detailModel) infoLines() [][2]string {
	e := m.entry
	rank := "Not Ranked"
	if e.Ranked() {
		rank = fmt.Sprintf("#%d", e.Rank)
	}
	playTime := fmt.Sprintf("%d min", e.PlayingTimeMinutes)
	if e.MinPlayTimeMinutes > 0 && e.MaxPlayTimeMinutes > e.MinPlayTimeMinutes {
		playTime = fmt.Sprintf("%d-%d min", e.MinPlayTimeMinutes, e.MaxPlayTimeMinutes)
	}

	lines := [][2]string{
		{"Rank", rank},
		{"Rating", fmt.Sprintf("%.2f (%d ratings)", e.AverageRating, e.NumRatings)},
		{"Weight", fmt.Sprintf("%.2f / 5", e.ComplexityWeight)},
		{"Players", formatPlayers(e.MinPlayers, e.MaxPlayers)},
		{"Play time", playTime},
	}
	if e.MinAge > 0 {
		lines = append(lines, [2]string{"Age", fmt.Sprintf("%d+", e.MinAge)})
	}
	for _, list := range []struct {
		label  string
		values []string
	}{
		{"Designers", e.Designers},
		{"Publishers", e.Publishers},
		{"Categories", e.Categories},
		{"Mechanics", e.Mechanics},
	} {
		if len(list.values) > 0 {
			lines = append(lines, [2]string{list.label, truncateName(strings.Join(list.values, ", "), m.wrapWidth)})
		}
	}
	return lines
}

// openBrowser opens the specified URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return
	}

	_ = cmd.Start()
}
