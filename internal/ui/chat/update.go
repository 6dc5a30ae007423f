// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatflow-tui/internal/model"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages for the chat view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case ResponderResultMsg:
		return m.handleResponderResult(msg)

	case RevealMsg:
		return m.handleReveal(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.indicator, cmd = m.indicator.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey routes keyboard input: enter submits, everything else edits
// the input field or scrolls the viewport.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m, m.Submit()

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleResponderResult schedules the reveal for a reply. Replies for a
// chat that is no longer active are dropped, and so are replies arriving
// after SetConversation cleared the pending flag: switching away and back
// abandons the in-flight reply rather than splicing it into the reset
// thread.
func (m Model) handleResponderResult(msg ResponderResultMsg) (Model, tea.Cmd) {
	if m.chat == nil || msg.ChatID != m.chat.ID || !m.pending {
		return m, nil
	}

	reply := model.NewMessage(m.counterpart.ID, msg.Body)
	return m, revealCmd(m.revealDelay, msg.ChatID, reply)
}

// handleReveal appends the counterpart's message once its typing delay has
// passed. A reveal tagged with a stale chat ID is discarded: the switched-to
// chat keeps its own thread, and the abandoned reply never resurfaces.
func (m Model) handleReveal(msg RevealMsg) (Model, tea.Cmd) {
	if m.chat == nil || msg.ChatID != m.chat.ID || !m.pending {
		return m, nil
	}

	m.messages = append(m.messages, msg.Message)
	m.typing = false
	m.pending = false
	m.indicator.Stop()
	m.refreshViewport()
	m.viewport.GotoBottom()

	revealed := msg
	return m, func() tea.Msg {
		return RevealedMsg{ChatID: revealed.ChatID, Message: revealed.Message}
	}
}
