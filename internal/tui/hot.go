package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	bgg "github.com/hiroaqii/bgg-shelf/go-bgg"
)

type trendingMsg struct {
	applied bool
	err     error
}

type hotModel struct {
	s         *session
	styles    Styles
	keys      KeyMap
	spinner   spinner.Model
	filter    listFilter[bgg.TrendingSummary]
	loading   bool
	err       string
	selected  *int
	wantsBack bool
}

func newHotModel(s *session, styles Styles, keys KeyMap) hotModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Loading

	return hotModel{
		s:       s,
		styles:  styles,
		keys:    keys,
		spinner: sp,
		filter: newListFilter(
			func(g bgg.TrendingSummary) string { return g.Name },
			func(g bgg.TrendingSummary) int { return g.ID },
		),
	}
}

func (m *hotModel) refreshRows() {
	m.filter.setItems(m.s.store.Trending())
}

func (m hotModel) refresh() tea.Cmd {
	svc, ctx := m.s.service, m.s.ctx
	return func() tea.Msg {
		applied, err := svc.RefreshTrending(ctx)
		return trendingMsg{applied: applied, err: err}
	}
}

func (m *hotModel) tick(msg spinner.TickMsg) tea.Cmd {
	if !m.loading {
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

func (m *hotModel) takeSelection() (int, bool) {
	if m.selected == nil {
		return 0, false
	}
	id := *m.selected
	m.selected = nil
	return id, true
}

func (m hotModel) Update(msg tea.Msg) (hotModel, tea.Cmd) {
	switch msg := msg.(type) {
	case trendingMsg:
		if !msg.applied && msg.err == nil {
			// Superseded by a newer refresh.
			return m, nil
		}
		m.loading = false
		m.err = errorText(msg.err)
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

		switch {
		case key.Matches(msg, m.keys.Back):
			m.wantsBack = true
		case key.Matches(msg, m.keys.Search):
			return m, m.filter.start()
		case key.Matches(msg, m.keys.Up):
			m.filter.up()
		case key.Matches(msg, m.keys.Down):
			m.filter.down()
		case key.Matches(msg, m.keys.Enter):
			if id, ok := m.filter.selected(); ok {
				m.selected = &id
			}
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			m.err = ""
			return m, tea.Batch(m.refresh(), m.spinner.Tick)
		}
	}
	return m, nil
}

func (m hotModel) View(width, height int) string {
	var b strings.Builder

	if m.loading && len(m.filter.items) == 0 {
		writeLoadingView(&b, m.styles, "Trending Games", m.spinner.View()+" Loading trending games...")
		return centerContent(b.String(), width, height)
	}
	if m.err != "" && len(m.filter.items) == 0 {
		writeErrorView(&b, m.styles, "Trending Games", m.err, "r: Retry  b: Back  esc: Menu")
		return centerContent(b.String(), width, height)
	}

	b.WriteString(m.styles.Title.Render("Trending Games"))
	b.WriteString("\n")
	if m.filter.active || m.filter.visible != nil {
		b.WriteString(m.filter.input.View())
	} else {
		b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("%d games", len(m.filter.items))))
	}
	b.WriteString("\n\n")

	rows := m.filter.rows()
	nameWidth := max(10, contentWidth(m.s.config.Display.ListWidth, width)-20)
	start, end := listRange(m.filter.cursor, len(rows), height)
	for i := start; i < end; i++ {
		g := rows[i]
		prefix, style := cursorPrefix(i, m.filter.cursor, m.styles)
		year := ""
		if g.HasYear {
			year = fmt.Sprintf("(%s)", formatYear(g.YearPublished))
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s\n",
			prefix,
			m.styles.Rank.Render(fmt.Sprintf("%3d.", g.Rank)),
			style.Render(padName(g.Name, nameWidth)),
			m.styles.Time.Render(year),
		))
	}

	if m.err != "" {
		b.WriteString(m.styles.Error.Render("Error: " + m.err))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render("/: filter  enter: detail  r: refresh  b: back  esc: menu"))

	return centerContent(b.String(), width, height)
}
