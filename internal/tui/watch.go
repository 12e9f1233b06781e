// Package tui provides the interactive inbox watcher. Messages arrive
// from an inbox watcher running outside the bubbletea loop and are
// streamed into a scrollable viewport until the user quits.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/openclaw/agent-teams/internal/identity"
	"github.com/openclaw/agent-teams/internal/inbox"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Padding(0, 1)

	fromStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// MessageMsg carries one polled message into the model. The watch
// command's inbox watcher converts each delivered message into one of
// these and sends it through the running program.
type MessageMsg inbox.Message

// WatchModel is the bubbletea model behind the watch command.
type WatchModel struct {
	id identity.Identity

	viewport viewport.Model
	lines    []string
	received int
	ready    bool

	width  int
	height int
}

// NewWatch builds a watch model for the given identity.
func NewWatch(id identity.Identity) WatchModel {
	return WatchModel{id: id}
}

func (m WatchModel) Init() tea.Cmd {
	return nil
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 2
		footerHeight := 1
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.viewport.SetContent(strings.Join(m.lines, "\n"))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case MessageMsg:
		atBottom := m.viewport.AtBottom()
		m.lines = append(m.lines, formatMessage(inbox.Message(msg)))
		m.received++
		m.viewport.SetContent(strings.Join(m.lines, "\n"))
		if atBottom {
			m.viewport.GotoBottom()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m WatchModel) View() string {
	if !m.ready {
		return "Connecting..."
	}
	header := titleStyle.Render(fmt.Sprintf("Inbox %s", m.id)) +
		metaStyle.Render(fmt.Sprintf(" %d received", m.received))
	footer := helpStyle.Render("q: quit")
	return header + "\n\n" + m.viewport.View() + "\n" + footer
}

func formatMessage(m inbox.Message) string {
	meta := metaStyle.Render(fmt.Sprintf("[%s %s]", m.Timestamp.Format("15:04:05"), m.Type))
	return fmt.Sprintf("%s %s %s", meta, fromStyle.Render(m.From+":"), m.Text)
}
