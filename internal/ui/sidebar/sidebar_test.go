// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sidebar

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatflow-tui/internal/model"
	"github.com/jeranaias/chatflow-tui/internal/ui/styles"
)

func newTestSidebar(t *testing.T) Model {
	t.Helper()
	m := New(styles.NewTheme(), model.SeedCurrentUserID)
	m.SetSize(32, 24)
	m.SetChats(model.SeedChats())
	return m
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	panic("unhandled key: " + s)
}

// =============================================================================
// SELECTION TESTS
// =============================================================================

func TestSelectEmitsSelectedMsg(t *testing.T) {
	m := newTestSidebar(t)

	cmd := m.Select()
	if cmd == nil {
		t.Fatal("select should emit a command")
	}

	selected, ok := cmd().(SelectedMsg)
	if !ok {
		t.Fatalf("expected SelectedMsg, got %T", cmd())
	}
	if selected.Chat.ID != m.Chats()[0].ID {
		t.Errorf("cursor starts on the first chat, got %q", selected.Chat.ID)
	}
	if m.SelectedID() != selected.Chat.ID {
		t.Error("selection should be recorded")
	}
}

func TestSelectClearsUnread(t *testing.T) {
	m := newTestSidebar(t)

	// Seeded chat-1 starts with unread messages.
	if m.Chats()[0].UnreadCount == 0 {
		t.Fatal("seed data should carry an unread count on the first chat")
	}

	m.Select()
	if m.Chats()[0].UnreadCount != 0 {
		t.Error("selecting a chat should clear its unread counter")
	}
}

func TestSelectEmptyListIsNoOp(t *testing.T) {
	m := New(styles.NewTheme(), "user-1")
	m.SetSize(32, 24)

	if cmd := m.Select(); cmd != nil {
		t.Error("select with no chats should be a no-op")
	}
}

func TestSelectByID(t *testing.T) {
	m := newTestSidebar(t)

	cmd := m.SelectByID("chat-2")
	if cmd == nil {
		t.Fatal("SelectByID should find the chat")
	}
	if got := cmd().(SelectedMsg).Chat.ID; got != "chat-2" {
		t.Errorf("selected %q, want chat-2", got)
	}

	if cmd := m.SelectByID("chat-missing"); cmd != nil {
		t.Error("unknown ID should be a no-op")
	}
}

func TestCursorNavigation(t *testing.T) {
	m := newTestSidebar(t)

	m, _ = m.Update(keyMsg("down"))
	m, _ = m.Update(keyMsg("down"))
	cmd := m.Select()
	if got := cmd().(SelectedMsg).Chat.ID; got != m.Chats()[2].ID {
		t.Errorf("cursor should be on the third chat, got %q", got)
	}

	// Down at the end stays put.
	m, _ = m.Update(keyMsg("down"))
	cmd = m.Select()
	if got := cmd().(SelectedMsg).Chat.ID; got != m.Chats()[2].ID {
		t.Errorf("cursor should clamp at the last chat, got %q", got)
	}

	m, _ = m.Update(keyMsg("up"))
	m, _ = m.Update(keyMsg("up"))
	m, _ = m.Update(keyMsg("up"))
	cmd = m.Select()
	if got := cmd().(SelectedMsg).Chat.ID; got != m.Chats()[0].ID {
		t.Errorf("cursor should clamp at the first chat, got %q", got)
	}
}

func TestSetChatsKeepsSelection(t *testing.T) {
	m := newTestSidebar(t)
	m.SelectByID("chat-2")

	m.SetChats(model.SeedChats())
	if m.SelectedID() != "chat-2" {
		t.Error("selection should survive a list refresh")
	}

	m.SetChats(nil)
	if m.SelectedID() != "" {
		t.Error("selection should drop when its chat disappears")
	}
}

// =============================================================================
// SEARCH TESTS
// =============================================================================

func TestSearchFiltersChats(t *testing.T) {
	m := newTestSidebar(t)

	m, _ = m.Update(keyMsg("/"))
	for _, r := range "alice" {
		m, _ = m.Update(keyMsg(string(r)))
	}

	visible := m.visible()
	if len(visible) != 1 {
		t.Fatalf("expected 1 match for 'alice', got %d", len(visible))
	}
	if m.Chats()[visible[0]].Name != "Alice" {
		t.Errorf("wrong match: %q", m.Chats()[visible[0]].Name)
	}
}

func TestSearchIsCaseFolded(t *testing.T) {
	m := newTestSidebar(t)

	m, _ = m.Update(keyMsg("/"))
	for _, r := range "ALICE" {
		m, _ = m.Update(keyMsg(string(r)))
	}

	if len(m.visible()) != 1 {
		t.Error("search should be case-insensitive")
	}
}

func TestSearchEscClearsFilter(t *testing.T) {
	m := newTestSidebar(t)
	total := len(m.Chats())

	m, _ = m.Update(keyMsg("/"))
	for _, r := range "alice" {
		m, _ = m.Update(keyMsg(string(r)))
	}
	m, _ = m.Update(keyMsg("esc"))

	if len(m.visible()) != total {
		t.Error("esc should clear the filter")
	}
}

func TestSearchEnterSelectsMatch(t *testing.T) {
	m := newTestSidebar(t)

	m, _ = m.Update(keyMsg("/"))
	for _, r := range "bob" {
		m, _ = m.Update(keyMsg(string(r)))
	}
	m, cmd := m.Update(keyMsg("enter"))

	if cmd == nil {
		t.Fatal("enter in search mode should select the match")
	}
	selected := cmd().(SelectedMsg)
	if !strings.Contains(strings.ToLower(selected.Chat.Name), "bob") {
		t.Errorf("expected the Bob chat, got %q", selected.Chat.Name)
	}
	if m.SelectedID() != selected.Chat.ID {
		t.Error("selection should be recorded")
	}
}

// =============================================================================
// UNREAD AND PREVIEW TESTS
// =============================================================================

func TestBumpUnread(t *testing.T) {
	m := newTestSidebar(t)
	before := m.Chats()[1].UnreadCount

	m.BumpUnread(m.Chats()[1].ID)
	if m.Chats()[1].UnreadCount != before+1 {
		t.Error("bump should increment the unread counter")
	}

	m.BumpUnread("chat-missing") // no panic
}

func TestRecordMessageUpdatesPreview(t *testing.T) {
	m := newTestSidebar(t)
	chatID := m.Chats()[0].ID

	msg := model.NewMessage("user-2", "fresh preview text")
	m.RecordMessage(chatID, msg)

	last, ok := m.Chats()[0].LastMessage()
	if !ok || last.Body != "fresh preview text" {
		t.Error("recorded message should become the preview")
	}
}

// =============================================================================
// VIEW TESTS
// =============================================================================

func TestViewShowsChatsAndBadges(t *testing.T) {
	m := newTestSidebar(t)
	view := m.View()

	if !strings.Contains(view, "Alice") {
		t.Error("view should list chat names")
	}
	if !strings.Contains(view, "2") {
		t.Error("view should show the unread badge for the seeded chat")
	}
}

func TestViewEmptyList(t *testing.T) {
	m := New(styles.NewTheme(), "user-1")
	m.SetSize(32, 24)

	if !strings.Contains(m.View(), "No conversations") {
		t.Error("empty list should show a placeholder")
	}
}
