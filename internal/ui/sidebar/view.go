// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sidebar

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatflow-tui/internal/model"
	"github.com/jeranaias/chatflow-tui/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the conversation list.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.SidebarTitle.Render("Chats"))
	b.WriteString("\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.theme.SidebarSearch.Render("/ " + m.search.View()))
		b.WriteString("\n")
	}

	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString("\n")
		b.WriteString(m.theme.ChatItemPreview.Render(" No conversations"))
	}

	for pos, idx := range visible {
		b.WriteString("\n")
		b.WriteString(m.renderItem(&m.chats[idx], pos == m.cursor))
	}

	return m.theme.Sidebar.
		Width(maxInt(m.width-1, 10)).
		Height(maxInt(m.height, 1)).
		Render(b.String())
}

// renderItem renders one chat row: presence dot, name, unread badge, and
// a truncated last-message preview.
func (m Model) renderItem(chat *model.Chat, cursor bool) string {
	rowWidth := maxInt(m.width-4, 12)

	dot := m.theme.PresenceOffline.Render("o")
	if counterpart, ok := chat.Counterpart(m.currentUserID); ok && counterpart.IsOnline {
		dot = m.theme.PresenceOnline.Render("*")
	}

	name := m.theme.ChatItemName.Render(util.TruncateWidth(chat.Name, rowWidth-8))

	badge := ""
	if chat.UnreadCount > 0 {
		badge = " " + m.theme.UnreadBadge.Render(strconv.Itoa(chat.UnreadCount))
	}

	header := dot + " " + name + badge

	preview := ""
	timestamp := ""
	if last, ok := chat.LastMessage(); ok {
		preview = util.TruncateWidth(util.FirstLine(last.Body), rowWidth-2)
		timestamp = last.Timestamp
	}

	lines := []string{header}
	if preview != "" {
		detail := m.theme.ChatItemPreview.Render("  " + preview)
		if timestamp != "" {
			detail += " " + m.theme.ChatItemTime.Render(timestamp)
		}
		lines = append(lines, detail)
	}

	row := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if cursor {
		return m.theme.ChatItemSelected.Width(rowWidth).Render(row)
	}
	return m.theme.ChatItem.Width(rowWidth).Render(row)
}

// maxInt returns the maximum of two integers.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
