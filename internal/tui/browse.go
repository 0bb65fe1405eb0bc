package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	bgg "github.com/hiroaqii/bgg-shelf/go-bgg"
	"github.com/hiroaqii/bgg-shelf/internal/catalog"
	"github.com/hiroaqii/bgg-shelf/internal/query"
)

type initialLoadMsg struct {
	err error
}

// searchDebounceMsg fires once typing has paused. Only the message carrying
// the latest sequence number triggers a search.
type searchDebounceMsg struct {
	seq   int
	query string
}

type catalogMsg struct {
	seq     int
	applied bool
	err     error
}

type filterPreset struct {
	name string
	spec query.FilterSpec
}

var filterPresets = []filterPreset{
	{name: "All games"},
	{name: "Solo", spec: query.FilterSpec{MinPlayers: query.Int(1), MaxPlayers: query.Int(1)}},
	{name: "Two players", spec: query.FilterSpec{MinPlayers: query.Int(2), MaxPlayers: query.Int(2)}},
	{name: "Party (6+)", spec: query.FilterSpec{MinPlayers: query.Int(6)}},
	{name: "Under an hour", spec: query.FilterSpec{MaxPlayTime: query.Int(60)}},
	{name: "Light", spec: query.FilterSpec{MaxComplexity: query.Float(2.0)}},
	{name: "Heavy", spec: query.FilterSpec{MinComplexity: query.Float(3.5)}},
	{name: "Highly rated", spec: query.FilterSpec{MinRating: query.Float(8.0)}},
}

type browseModel struct {
	s       *session
	styles  Styles
	keys    KeyMap
	input   textinput.Model
	spinner spinner.Model

	seq      int // bumped on every edit and every issued fetch
	inflight int
	err      string
	notice   string

	preset   int
	category string
	sortKey  query.SortKey
	page     int
	cursor   int
	selected *int
}

func newBrowseModel(s *session, styles Styles, keys KeyMap, sortKey query.SortKey) browseModel {
	ti := textinput.New()
	ti.Placeholder = "search by name"
	ti.Prompt = "Search: "
	ti.CharLimit = 100
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Loading

	return browseModel{
		s:       s,
		styles:  styles,
		keys:    keys,
		input:   ti,
		spinner: sp,
		sortKey: sortKey,
	}
}

func (m browseModel) loadInitial() tea.Cmd {
	svc, ctx := m.s.service, m.s.ctx
	return func() tea.Msg {
		return initialLoadMsg{err: svc.LoadInitial(ctx)}
	}
}

func (m browseModel) fetch(seq int, run func() (bool, error)) tea.Cmd {
	return func() tea.Msg {
		applied, err := run()
		return catalogMsg{seq: seq, applied: applied, err: err}
	}
}

// beginFetch marks a request in flight and returns its sequence number.
func (m *browseModel) beginFetch() int {
	m.seq++
	m.inflight++
	m.err = ""
	return m.seq
}

func (m *browseModel) search(q string) tea.Cmd {
	seq := m.beginFetch()
	svc, ctx := m.s.service, m.s.ctx
	return tea.Batch(m.fetch(seq, func() (bool, error) { return svc.Search(ctx, q) }), m.spinner.Tick)
}

func (m *browseModel) refresh() tea.Cmd {
	seq := m.beginFetch()
	svc, ctx := m.s.service, m.s.ctx
	return tea.Batch(m.fetch(seq, func() (bool, error) { return svc.Refresh(ctx) }), m.spinner.Tick)
}

func debounce(seq int, q string) tea.Cmd {
	return tea.Tick(catalog.DebounceInterval, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq, query: q}
	})
}

func (m *browseModel) tick(msg spinner.TickMsg) tea.Cmd {
	if m.inflight == 0 {
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

func (m browseModel) loading() bool {
	return m.inflight > 0
}

func (m browseModel) spec() query.FilterSpec {
	spec := filterPresets[m.preset].spec
	if m.category != "" {
		spec.Categories = []string{m.category}
	}
	return spec
}

func (m browseModel) rows() []bgg.CatalogEntry {
	return m.s.store.Entries(m.spec(), m.sortKey, m.page)
}

func (m *browseModel) resetView() {
	m.page = 0
	m.cursor = 0
}

func (m *browseModel) takeSelection() (int, bool) {
	if m.selected == nil {
		return 0, false
	}
	id := *m.selected
	m.selected = nil
	return id, true
}

func (m browseModel) Update(msg tea.Msg) (browseModel, tea.Cmd) {
	switch msg := msg.(type) {
	case initialLoadMsg:
		m.inflight = max(0, m.inflight-1)
		m.err = errorText(msg.err)
		m.resetView()
		return m, nil

	case searchDebounceMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m, m.search(msg.query)

	case catalogMsg:
		m.inflight = max(0, m.inflight-1)
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.err = errorText(msg.err)
			return m, nil
		}
		if msg.applied {
			m.resetView()
		}
		return m, nil

	case watchlistMsg:
		m.notice, m.err = msg.notice, errorText(msg.err)
		return m, nil

	case tea.KeyMsg:
		if m.input.Focused() {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m browseModel) updateInput(msg tea.KeyMsg) (browseModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		m.input.Blur()
		return m, m.search(m.input.Value())
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	m.seq++
	return m, tea.Batch(cmd, debounce(m.seq, m.input.Value()))
}

func (m browseModel) updateList(msg tea.KeyMsg) (browseModel, tea.Cmd) {
	m.notice = ""
	rows := m.rows()

	switch {
	case key.Matches(msg, m.keys.Search):
		m.input.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Enter):
		if m.cursor < len(rows) {
			id := rows[m.cursor].ID
			m.selected = &id
		}
	case key.Matches(msg, m.keys.Filter):
		m.preset = (m.preset + 1) % len(filterPresets)
		m.resetView()
	case key.Matches(msg, m.keys.Category):
		m.category = nextCategory(m.s.store.Facets().Categories, m.category)
		m.resetView()
	case key.Matches(msg, m.keys.ClearFilter):
		m.preset, m.category = 0, ""
		m.resetView()
	case key.Matches(msg, m.keys.Sort):
		m.sortKey = m.sortKey.Next()
		m.cursor = 0
	case key.Matches(msg, m.keys.LoadMore):
		if m.s.store.HasMore(m.spec(), m.page) {
			m.page++
		}
	case key.Matches(msg, m.keys.Refresh):
		m.input.SetValue("")
		return m, m.refresh()
	case key.Matches(msg, m.keys.Watch):
		if m.cursor < len(rows) {
			return m, toggleWatch(m.s, rows[m.cursor])
		}
	}
	return m, nil
}

// nextCategory cycles through categories, returning to "" after the last.
func nextCategory(all []string, current string) string {
	if len(all) == 0 {
		return ""
	}
	if current == "" {
		return all[0]
	}
	for i, c := range all {
		if c == current && i+1 < len(all) {
			return all[i+1]
		}
	}
	return ""
}

func (m browseModel) filterLabel() string {
	parts := []string{filterPresets[m.preset].name}
	if m.category != "" {
		parts = append(parts, m.category)
	}
	return strings.Join(parts, " / ")
}

func (m browseModel) View(width, height int) string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Browse Games"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	if m.loading() {
		b.WriteString("  " + m.spinner.View())
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("Filter: %s  Sort: %s", m.filterLabel(), m.sortKey.Label())))
	b.WriteString("\n\n")

	rows := m.rows()
	if len(rows) == 0 {
		switch {
		case m.loading():
			b.WriteString(m.styles.Loading.Render("Loading games..."))
		case len(m.s.store.Active()) == 0 && strings.TrimSpace(m.input.Value()) != "":
			b.WriteString(m.styles.Subtitle.Render("No games found."))
		default:
			b.WriteString(m.styles.Subtitle.Render("No games match the current filter."))
		}
		b.WriteString("\n")
	}

	nameWidth := max(10, contentWidth(m.s.config.Display.ListWidth, width)-42)
	start, end := listRange(m.cursor, len(rows), height)
	for i := start; i < end; i++ {
		e := rows[i]
		prefix, style := cursorPrefix(i, m.cursor, m.styles)
		mark := m.styles.watchMark(m.s.watchlist.Contains(e.ID))
		line := fmt.Sprintf("%s%s %s %s %s %s %s",
			prefix,
			mark,
			m.styles.Rank.Render(formatRank(e.Rank)),
			style.Render(padName(e.Name, nameWidth)),
			m.styles.Rating.Render(fmt.Sprintf("%4.1f", e.AverageRating)),
			m.styles.Players.Render(fmt.Sprintf("%6s", formatPlayers(e.MinPlayers, e.MaxPlayers))),
			m.styles.Time.Render(fmt.Sprintf("%4dm", e.PlayingTimeMinutes)),
		)
		b.WriteString(line + "\n")
	}

	if m.s.store.HasMore(m.spec(), m.page) {
		b.WriteString(m.styles.Subtitle.Render("m: load more"))
		b.WriteString("\n")
	}
	if m.err != "" {
		b.WriteString(m.styles.Error.Render("Error: " + m.err))
		b.WriteString("\n")
	} else if m.notice != "" {
		b.WriteString(m.styles.Notice.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render("/: search  f: filter  c: category  x: clear  s: sort  w: watch  r: refresh  enter: detail  esc: menu"))

	return centerContent(b.String(), width, height)
}
