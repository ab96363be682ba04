// Package tui implements the interactive room view: a code editor, the
// execution log, chat, and the presence roster, with toast notifications
// overlaid on top.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/studydesk/studydesk/internal/core/notify"
	"github.com/studydesk/studydesk/internal/core/session"
)

// Focus identifies which pane receives key input.
type Focus int

const (
	FocusEditor Focus = iota
	FocusChat
)

// SessionChangedMsg signals that session state changed outside a key
// event (run completion, external mutation).
type SessionChangedMsg struct{}

// ToastsChangedMsg signals that the notification queue changed.
type ToastsChangedMsg struct{}

// Model is the Bubble Tea model for an open room.
type Model struct {
	session  *session.Session
	notifier *notify.Queue
	roomName string

	editor    textarea.Model
	log       viewport.Model
	chatInput textinput.Model

	focus    Focus
	width    int
	height   int
	quitting bool
}

// NewRoomModel builds the room view over an open session.
func NewRoomModel(roomName string, s *session.Session, notifier *notify.Queue) Model {
	editor := textarea.New()
	editor.SetValue(s.Buffer())
	editor.Focus()

	chatInput := textinput.New()
	chatInput.Placeholder = "Type a message..."
	chatInput.CharLimit = 500

	log := viewport.New(40, 10)
	log.SetContent(strings.Join(s.Log(), "\n"))

	return Model{
		session:   s,
		notifier:  notifier,
		roomName:  roomName,
		editor:    editor,
		log:       log,
		chatInput: chatInput,
		focus:     FocusEditor,
	}
}

// Focused returns the pane currently receiving key input.
func (m Model) Focused() Focus {
	return m.focus
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case SessionChangedMsg, ToastsChangedMsg:
		m.log.SetContent(strings.Join(m.session.Log(), "\n"))
		m.log.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		m.session.Close()
		return m, tea.Quit

	case "tab":
		m.toggleFocus()
		return m, nil

	case "ctrl+r":
		m.session.Run()
		return m, nil

	case "ctrl+l":
		m.session.ClearLog()
		m.log.SetContent(strings.Join(m.session.Log(), "\n"))
		return m, nil

	case "ctrl+g":
		m.session.ToggleMute()
		return m, nil

	case "enter":
		if m.focus == FocusChat {
			if _, ok := m.session.SendMessage(m.chatInput.Value()); ok {
				m.chatInput.SetValue("")
			}
			return m, nil
		}
	}

	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FocusEditor:
		m.editor, cmd = m.editor.Update(msg)
		m.session.EditBuffer(m.editor.Value())
	case FocusChat:
		m.chatInput, cmd = m.chatInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) toggleFocus() {
	if m.focus == FocusEditor {
		m.focus = FocusChat
		m.editor.Blur()
		m.chatInput.Focus()
		return
	}
	m.focus = FocusEditor
	m.chatInput.Blur()
	m.editor.Focus()
}

func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}

	editorWidth := m.width * 2 / 3
	sideWidth := m.width - editorWidth - 4
	bodyHeight := m.height - 8

	m.editor.SetWidth(editorWidth)
	m.editor.SetHeight(bodyHeight)
	m.log.Width = sideWidth
	m.log.Height = bodyHeight / 2
	m.chatInput.Width = m.width - 4
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := headerStyle.Render(fmt.Sprintf(
		"%s  |  %d online", m.roomName, m.session.OnlineCount(),
	))
	if m.session.Muted() {
		header += mutedStyle.Render("  [muted]")
	}

	editorPane := m.renderPane("Code", m.editor.View(), m.focus == FocusEditor)
	side := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPane("Output", m.log.View(), false),
		m.renderPane("Participants", m.renderRoster(), false),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, editorPane, side)

	chatPane := m.renderPane("Chat", m.renderChat(), m.focus == FocusChat)

	status := statusBarStyle.Render(fmt.Sprintf(
		"%d lines · %d chars  |  tab: focus · ctrl+r: run · ctrl+l: clear · ctrl+g: mute · esc: leave",
		m.session.LineCount(), m.session.CharCount(),
	))

	sections := []string{header, body, chatPane, status}
	if toasts := m.renderToasts(); toasts != "" {
		sections = append(sections, toasts)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderPane(title, content string, focused bool) string {
	style := paneStyle
	if focused {
		style = focusedPaneStyle
	}
	return style.Render(paneTitleStyle.Render(title) + "\n" + content)
}

func (m Model) renderRoster() string {
	var b strings.Builder
	for _, p := range m.session.Roster() {
		style := rosterOfflineStyle
		marker := "○"
		if p.Online {
			style = rosterOnlineStyle
			marker = "●"
		}
		fmt.Fprintf(&b, "%s %s (%s)\n", style.Render(marker), p.DisplayName, p.AvatarInitials)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderChat() string {
	var b strings.Builder
	chat := m.session.Chat()

	// Show only the most recent messages; the chat pane is one of four
	// sections and cannot grow unbounded.
	const maxVisible = 5
	if len(chat) > maxVisible {
		chat = chat[len(chat)-maxVisible:]
	}

	for _, msg := range chat {
		fmt.Fprintf(&b, "%s %s\n", chatAuthorStyle.Render(msg.Author+":"), msg.Text)
	}
	b.WriteString(m.chatInput.View())
	return b.String()
}

func (m Model) renderToasts() string {
	active := m.notifier.Active()
	if len(active) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(active))
	for _, n := range active {
		rendered = append(rendered, toastStyle(n.Kind).Render(n.Message))
	}
	return strings.Join(rendered, "\n")
}

// Run opens the room view and blocks until the user leaves. The session
// is closed on exit.
func Run(roomName string, s *session.Session, notifier *notify.Queue, forward func(func(tea.Msg))) error {
	m := NewRoomModel(roomName, s, notifier)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if forward != nil {
		forward(func(msg tea.Msg) { p.Send(msg) })
	}

	_, err := p.Run()
	return err
}
