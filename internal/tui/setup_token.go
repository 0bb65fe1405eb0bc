package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type setupTokenModel struct {
	s          *session
	styles     Styles
	keys       KeyMap
	tokenInput textinput.Model
	err        string
	done       bool
	cancelled  bool
}

func newSetupTokenModel(s *session, styles Styles, keys KeyMap) setupTokenModel {
	ti := textinput.New()
	ti.Placeholder = "paste your token here"
	ti.EchoMode = textinput.EchoPassword
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 40

	return setupTokenModel{
		s:          s,
		styles:     styles,
		keys:       keys,
		tokenInput: ti,
	}
}

func (m setupTokenModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m setupTokenModel) Update(msg tea.Msg) (setupTokenModel, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, m.keys.Escape) && m.s.ready() {
		m.cancelled = true
		return m, nil
	}
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, m.keys.Enter) {
		token := strings.TrimSpace(m.tokenInput.Value())
		if token == "" {
			m.err = "Token must not be empty."
			return m, nil
		}
		m.s.config.API.Token = token
		if err := m.s.config.Save(); err != nil {
			// The token still applies to this session.
			m.s.logger.Warn("save config failed", slog.String("error", err.Error()))
		}
		m.done = true
		return m, nil
	}

	var cmd tea.Cmd
	m.tokenInput, cmd = m.tokenInput.Update(msg)
	return m, cmd
}

func (m setupTokenModel) View(width, height int) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorAccent)

	var b strings.Builder

	b.WriteString(titleStyle.Render("Setup Required"))
	b.WriteString("\n\n")
	b.WriteString("BGG API Token is required.\n\n")
	b.WriteString("1. Go to https://boardgamegeek.com/applications\n")
	b.WriteString("2. Create an application\n")
	b.WriteString("3. Generate a token\n")
	b.WriteString("4. Enter it below:\n\n")
	b.WriteString(fmt.Sprintf("Token: %s\n", m.tokenInput.View()))
	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	help := "Enter: Save  Ctrl+C: Quit"
	if m.s.ready() {
		help = "Enter: Save  Esc: Cancel  Ctrl+C: Quit"
	}
	b.WriteString(m.styles.Help.Render(help))

	return centerContent(b.String(), width, height)
}
