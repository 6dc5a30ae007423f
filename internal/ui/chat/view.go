// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatflow-tui/internal/model"
	"github.com/jeranaias/chatflow-tui/internal/ui/components"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the thread pane: header, message viewport, typing line,
// and the input box.
func (m Model) View() string {
	if m.chat == nil {
		return m.renderEmptyState()
	}

	sections := []string{
		m.renderHeader(),
		m.viewport.View(),
		m.renderTypingLine(),
		m.renderInput(),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader shows the chat name and the counterpart's presence.
func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render(m.chat.Name)

	presence := ""
	if m.hasCounterpart {
		if m.counterpart.IsOnline {
			presence = m.theme.HeaderPresence.Render("* online")
		} else {
			presence = m.theme.HeaderSubtitle.Render("offline")
		}
	}

	line := title
	if presence != "" {
		line += "  " + presence
	}

	return m.theme.Header.Width(m.width).Render(line)
}

// renderTypingLine reserves a row for the typing indicator so the layout
// doesn't jump when it appears.
func (m Model) renderTypingLine() string {
	if !m.typing {
		return ""
	}
	return " " + m.indicator.View()
}

// renderInput renders the message input box.
func (m Model) renderInput() string {
	prompt := m.theme.InputPrompt.Render("> ")
	box := m.theme.InputContainer.Width(maxInt(m.width-2, 10))
	return box.Render(prompt + m.input.View())
}

// renderEmptyState fills the pane when no chat is selected.
func (m Model) renderEmptyState() string {
	hint := m.theme.AuthHint.Render("Select a conversation to start chatting")
	return lipgloss.Place(m.width, maxInt(m.height, 1), lipgloss.Center, lipgloss.Center, hint)
}

// refreshViewport re-renders every bubble into the viewport. Thread sizes
// here are small (no pagination), so a full rebuild per change is fine.
func (m *Model) refreshViewport() {
	if m.chat == nil {
		m.viewport.SetContent("")
		return
	}

	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}

	gap := "\n\n"
	if m.compact {
		gap = "\n"
	}

	var b strings.Builder
	for i, msg := range m.messages {
		if i > 0 {
			b.WriteString(gap)
		}

		outgoing := msg.IsFrom(m.currentUser.ID)
		bubble := components.NewBubble(msg, m.senderName(msg), outgoing, width, m.theme)
		bubble.Renderer = m.renderer
		b.WriteString(bubble.View())
	}

	m.viewport.SetContent(b.String())
}

// senderName resolves a message's sender to a display name.
func (m Model) senderName(msg model.Message) string {
	if m.chat != nil {
		if u, ok := m.chat.Participant(msg.SenderID); ok {
			return u.DisplayName()
		}
	}
	if msg.IsFrom(m.currentUser.ID) {
		return m.currentUser.DisplayName()
	}
	return m.counterpart.DisplayName()
}

// maxInt returns the maximum of two integers.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
