package tui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	bgg "github.com/hiroaqii/bgg-shelf/go-bgg"
	"github.com/hiroaqii/bgg-shelf/internal/catalog"
	"github.com/hiroaqii/bgg-shelf/internal/config"
	"github.com/hiroaqii/bgg-shelf/internal/query"
	"github.com/hiroaqii/bgg-shelf/internal/watchlist"
)

// Options wires the application to its collaborators.
type Options struct {
	Config    *config.Config
	Store     *catalog.Store
	Watchlist *watchlist.Store
	// Connect builds a catalog source for the given configuration. It is
	// called again after the token changes.
	Connect func(*config.Config) catalog.Source
	Logger  *slog.Logger
}

// session is the state shared by every view.
type session struct {
	ctx       context.Context
	config    *config.Config
	store     *catalog.Store
	service   *catalog.Service
	watchlist *watchlist.Store
	connect   func(*config.Config) catalog.Source
	logger    *slog.Logger
}

func (s *session) reconnect() {
	s.service = catalog.NewService(s.connect(s.config), s.store, nil, s.logger)
}

func (s *session) ready() bool {
	return s.config.HasToken() || s.config.UseProxy()
}

// Model is the main application model.
type Model struct {
	s            *session
	cancel       context.CancelFunc
	currentView  View
	previousView View
	styles       Styles
	keys         KeyMap
	width        int
	height       int
	showHelp     bool

	menu      menuModel
	setup     setupTokenModel
	browse    browseModel
	hot       hotModel
	watchlist watchlistModel
	detail    detailModel
}

// New creates a new application model.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		ctx:       ctx,
		config:    opts.Config,
		store:     opts.Store,
		watchlist: opts.Watchlist,
		connect:   opts.Connect,
		logger:    logger,
	}
	s.reconnect()

	styles := DefaultStyles()
	keys := DefaultKeyMap()

	sortKey, err := query.ParseSortKey(opts.Config.Browse.DefaultSort)
	if err != nil {
		sortKey = query.SortRank
	}

	m := Model{
		s:           s,
		cancel:      cancel,
		currentView: ViewMenu,
		styles:      styles,
		keys:        keys,
		menu:        newMenuModel(s, styles, keys),
		browse:      newBrowseModel(s, styles, keys, sortKey),
		hot:         newHotModel(s, styles, keys),
		watchlist:   newWatchlistModel(s, styles, keys),
	}
	if s.ready() {
		m.hot.loading = true
		m.browse.inflight = 1
	} else {
		m.currentView = ViewSetupToken
		m.setup = newSetupTokenModel(s, styles, keys)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.currentView == ViewSetupToken {
		return m.setup.Init()
	}
	return m.startSession()
}

func (m Model) startSession() tea.Cmd {
	return tea.Batch(m.browse.loadInitial(), m.browse.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.currentView == ViewDetail {
			m.detail.resize(msg.Width)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancel()
			return m, tea.Quit
		}
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if !m.typing() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.cancel()
				return m, tea.Quit
			case key.Matches(msg, m.keys.Help):
				m.showHelp = true
				return m, nil
			case key.Matches(msg, m.keys.Escape) && m.currentView != ViewMenu && m.currentView != ViewSetupToken:
				m.currentView = ViewMenu
				return m, nil
			}
		}

	case initialLoadMsg, catalogMsg, searchDebounceMsg:
		var cmd tea.Cmd
		m.browse, cmd = m.browse.Update(msg)
		// Trending arrives alongside the first catalog load.
		if _, ok := msg.(initialLoadMsg); ok {
			m.hot.loading = false
			m.hot.refreshRows()
		}
		return m, cmd

	case spinner.TickMsg:
		return m, tea.Batch(m.browse.tick(msg), m.hot.tick(msg), m.detail.tick(msg))

	case trendingMsg:
		var cmd tea.Cmd
		m.hot, cmd = m.hot.Update(msg)
		return m, cmd

	case detailLoadedMsg:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd

	case watchlistMsg:
		m.watchlist.refreshRows()
		var cmd tea.Cmd
		switch m.currentView {
		case ViewDetail:
			m.detail, cmd = m.detail.Update(msg)
		case ViewWatchlist:
			m.watchlist, cmd = m.watchlist.Update(msg)
		default:
			m.browse, cmd = m.browse.Update(msg)
		}
		return m, cmd
	}

	return m.updateCurrentView(msg)
}

// typing reports whether keystrokes belong to a text input.
func (m Model) typing() bool {
	switch m.currentView {
	case ViewSetupToken:
		return true
	case ViewBrowse:
		return m.browse.input.Focused()
	case ViewHot:
		return m.hot.filter.active
	case ViewWatchlist:
		return m.watchlist.filter.active
	}
	return false
}

func (m Model) updateCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewSetupToken:
		m.setup, cmd = m.setup.Update(msg)
		if m.setup.cancelled {
			m.currentView = ViewMenu
			return m, nil
		}
		if m.setup.done {
			m.s.reconnect()
			m.currentView = ViewMenu
			m.hot.loading = true
			m.browse.inflight = 1
			return m, tea.Batch(cmd, m.startSession())
		}

	case ViewMenu:
		m.menu, cmd = m.menu.Update(msg)
		if m.menu.selected != nil {
			target := *m.menu.selected
			m.menu.selected = nil
			m.currentView = target
			switch target {
			case ViewWatchlist:
				m.watchlist.refreshRows()
			case ViewSetupToken:
				m.setup = newSetupTokenModel(m.s, m.styles, m.keys)
				return m, m.setup.Init()
			}
		}

	case ViewBrowse:
		m.browse, cmd = m.browse.Update(msg)
		if id, ok := m.browse.takeSelection(); ok {
			return m.openDetail(id, ViewBrowse)
		}

	case ViewHot:
		m.hot, cmd = m.hot.Update(msg)
		if id, ok := m.hot.takeSelection(); ok {
			return m.openDetail(id, ViewHot)
		}
		if m.hot.wantsBack {
			m.hot.wantsBack = false
			m.currentView = ViewMenu
		}

	case ViewWatchlist:
		m.watchlist, cmd = m.watchlist.Update(msg)
		if id, ok := m.watchlist.takeSelection(); ok {
			return m.openDetail(id, ViewWatchlist)
		}
		if m.watchlist.wantsBack {
			m.watchlist.wantsBack = false
			m.currentView = ViewMenu
		}

	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
		if m.detail.wantsBack {
			m.detail.wantsBack = false
			m.currentView = m.previousView
			if m.currentView == ViewWatchlist {
				m.watchlist.refreshRows()
			}
		}
	}

	if m.currentView != ViewSetupToken && m.currentView != ViewDetail {
		if km, ok := msg.(tea.KeyMsg); ok && !m.typing() {
			m.jump(km)
		}
	}
	return m, cmd
}

// jump switches between the top-level lists from anywhere.
func (m *Model) jump(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Browse):
		m.currentView = ViewBrowse
	case key.Matches(msg, m.keys.Hot):
		m.currentView = ViewHot
	case key.Matches(msg, m.keys.Watchlist):
		m.watchlist.refreshRows()
		m.currentView = ViewWatchlist
	}
}

func (m Model) openDetail(id int, from View) (tea.Model, tea.Cmd) {
	m.previousView = from
	m.currentView = ViewDetail
	m.detail = newDetailModel(m.s, m.styles, m.keys, id, m.width)
	if entry, ok := m.s.store.Lookup(id); ok {
		// Active-set entries render without a round trip.
		m.detail.setEntry(entry)
		return m, nil
	}
	return m, tea.Batch(m.detail.load(), m.detail.spinner.Tick)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.currentView {
	case ViewSetupToken:
		content = m.setup.View(m.width, m.height)
	case ViewMenu:
		content = m.menu.View(m.width, m.height)
	case ViewBrowse:
		content = m.browse.View(m.width, m.height)
	case ViewHot:
		content = m.hot.View(m.width, m.height)
	case ViewWatchlist:
		content = m.watchlist.View(m.width, m.height)
	case ViewDetail:
		content = m.detail.View(m.width, m.height)
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return content
}

func (m Model) renderHelpOverlay() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(ColorAccent).Width(10)
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(h.Desc)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render("Press any key to close"))

	return centerContent(m.styles.Border.Render(b.String()), m.width, m.height)
}

// errorText turns a fetch failure into a message fit for the status line.
func errorText(err error) string {
	if err == nil {
		return ""
	}
	return bgg.Describe(err)
}
