// Package tui is a minimal editor host for exercising the assistant
// interactively: one in-memory buffer, inline ghost text, and a status
// line fed by the status service.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ghostink-ai/ghostink/internal/app"
	"github.com/ghostink-ai/ghostink/internal/completion"
	"github.com/ghostink-ai/ghostink/internal/editor"
	"github.com/ghostink-ai/ghostink/internal/logging"
	"github.com/ghostink-ai/ghostink/internal/pubsub"
	"github.com/ghostink-ai/ghostink/internal/status"
)

type Model struct {
	app     *app.App
	surface *editor.MemorySurface
	keys    keyMap
	spin    spinner.Model

	session     *completion.Session
	statusText  string
	statusLevel status.Level
	showLogs    bool
	width       int
	height      int
}

func New(a *app.App) Model {
	surface := editor.NewMemorySurface("")
	a.Host.Register(surface)
	a.Host.SetReady(true)

	spin := spinner.New(spinner.WithSpinner(spinner.MiniDot))

	return Model{
		app:     a,
		surface: surface,
		keys:    defaultKeyMap(),
		spin:    spin,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spin.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case pubsub.Event[completion.Session]:
		return m.handleSessionEvent(msg), nil

	case pubsub.Event[status.Message]:
		m.statusText = msg.Payload.Message
		m.statusLevel = msg.Payload.Level
		return m, nil

	case pubsub.Event[logging.Log]:
		// The record is already in the log service; a redraw picks it up
		// when the pane is open.
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleSessionEvent(ev pubsub.Event[completion.Session]) Model {
	if ev.Payload.SurfaceID != m.surface.ID() {
		return m
	}
	switch ev.Type {
	case completion.EventSuggestionShown:
		session := ev.Payload
		m.session = &session
	case completion.EventSuggestionAccepted, completion.EventSuggestionCleared:
		m.session = nil
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Trigger):
		if err := m.app.Controller.Trigger(m.surface.ID(), completion.OriginHotkey); err != nil {
			m.statusText = err.Error()
			m.statusLevel = status.LevelWarn
		}
		return m, nil

	case key.Matches(msg, m.keys.Accept):
		if m.session != nil {
			if err := m.app.Controller.Accept(m.surface.ID()); err != nil {
				m.statusText = err.Error()
				m.statusLevel = status.LevelError
			}
			m.session = nil
		}
		return m, nil

	case key.Matches(msg, m.keys.Reject):
		m.app.Controller.Reject(m.surface.ID())
		m.session = nil
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.showLogs = !m.showLogs
		return m, nil
	}

	switch msg.Type {
	case tea.KeyRunes:
		m.insert(string(msg.Runes))
	case tea.KeySpace:
		m.insert(" ")
	case tea.KeyEnter:
		m.insert("\n")
	case tea.KeyBackspace:
		m.deleteBack()
	case tea.KeyLeft:
		m.moveCursor(-1)
	case tea.KeyRight:
		m.moveCursor(1)
	default:
		return m, nil
	}
	return m, nil
}

// insert types text at the cursor. Any showing suggestion is stale the
// moment the buffer changes; an automatic trigger follows.
func (m *Model) insert(text string) {
	cursor := m.surface.CursorOffset()
	if err := m.surface.InsertText(cursor, text); err != nil {
		return
	}
	m.surface.SetCursorOffset(cursor + len([]rune(text)))
	m.afterEdit()
}

func (m *Model) deleteBack() {
	cursor := m.surface.CursorOffset()
	if cursor == 0 {
		return
	}
	runes := []rune(m.surface.Text())
	m.surface.SetText(string(runes[:cursor-1]) + string(runes[cursor:]))
	m.surface.SetCursorOffset(cursor - 1)
	m.afterEdit()
}

func (m *Model) moveCursor(delta int) {
	m.surface.SetCursorOffset(m.surface.CursorOffset() + delta)
	if m.session != nil {
		m.app.Controller.Invalidate(m.surface.ID())
		m.session = nil
	}
}

func (m *Model) afterEdit() {
	m.session = nil
	m.app.Controller.Invalidate(m.surface.ID())
	m.app.Controller.Trigger(m.surface.ID(), completion.OriginAuto)
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("ghostink"))
	sb.WriteString("\n")

	width := m.width - 4
	if width < 20 {
		width = 20
	}
	sb.WriteString(editorStyle.Width(width).Render(m.renderDocument()))
	sb.WriteString("\n")

	sb.WriteString(m.renderStatus())
	sb.WriteString("\n")
	if m.showLogs {
		sb.WriteString(m.renderLogs())
		sb.WriteString("\n")
	}
	sb.WriteString(helpStyle.Render("ctrl+space suggest · tab accept · esc dismiss · ctrl+l logs · ctrl+c quit"))
	return sb.String()
}

// renderLogs shows the tail of the in-memory log service.
func (m Model) renderLogs() string {
	records := logging.List(8)
	if len(records) == 0 {
		return helpStyle.Render("no log records yet")
	}
	lines := make([]string, 0, len(records))
	for _, rec := range records {
		lines = append(lines, fmt.Sprintf("%s %-5s %s",
			rec.Timestamp.Format("15:04:05"), rec.Level, rec.Message))
	}
	return helpStyle.Render(strings.Join(lines, "\n"))
}

// renderDocument shows the buffer with the ghost suggestion inline at
// its anchor, styled but never part of the document text.
func (m Model) renderDocument() string {
	runes := []rune(m.surface.Text())
	cursor := m.surface.CursorOffset()

	if m.session != nil {
		anchor := m.session.Anchor
		if anchor > len(runes) {
			anchor = len(runes)
		}
		return string(runes[:anchor]) +
			ghostStyle.Render(m.session.Text) +
			string(runes[anchor:])
	}

	if cursor >= len(runes) {
		return string(runes) + cursorStyle.Render(" ")
	}
	return string(runes[:cursor]) +
		cursorStyle.Render(string(runes[cursor])) +
		string(runes[cursor+1:])
}

func (m Model) renderStatus() string {
	phase := m.app.Controller.Phase(m.surface.ID())
	var left string
	switch phase {
	case completion.StatePending:
		left = fmt.Sprintf("%s thinking", m.spin.View())
	case completion.StateSuggested:
		left = "suggestion ready"
	default:
		left = "idle"
	}

	line := statusInfoStyle.Render(left)
	if m.statusText != "" {
		line = lipgloss.JoinHorizontal(lipgloss.Top,
			line, "  ", statusStyle(m.statusLevel).Render(m.statusText))
	}
	return line
}
