// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sidebar

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatflow-tui/internal/model"
	"github.com/jeranaias/chatflow-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// SelectedMsg announces the newly active chat. Selection is
// last-write-wins: whichever SelectedMsg arrives last determines the
// thread pane's conversation.
type SelectedMsg struct {
	Chat model.Chat
}

// =============================================================================
// SIDEBAR MODEL
// =============================================================================

// Model is the Bubble Tea model for the conversation list.
type Model struct {
	theme *styles.Theme

	// currentUserID identifies the signed-in user so presence reflects
	// the counterpart, not the user themselves.
	currentUserID string

	// Dimensions
	width  int
	height int

	// Conversations, in display order.
	chats []model.Chat

	// selected is the ID of the active chat; "" means none.
	selected string

	// cursor indexes into the visible (filtered) list.
	cursor int

	// Search
	searching bool
	search    textinput.Model
}

// New creates a sidebar with no chats.
func New(theme *styles.Theme, currentUserID string) Model {
	search := textinput.New()
	search.Placeholder = "Search chats..."
	search.CharLimit = 64

	return Model{
		theme:         theme,
		currentUserID: currentUserID,
		search:        search,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// =============================================================================
// STATE
// =============================================================================

// SetChats replaces the conversation list, keeping the current selection
// when its chat is still present.
func (m *Model) SetChats(chats []model.Chat) {
	m.chats = chats

	if m.selected != "" {
		if _, ok := m.chatByID(m.selected); !ok {
			m.selected = ""
		}
	}
	m.clampCursor()
}

// Chats returns the conversation list.
func (m Model) Chats() []model.Chat {
	return m.chats
}

// SelectedID returns the active chat's ID, or "".
func (m Model) SelectedID() string {
	return m.selected
}

// SetSize resizes the sidebar pane.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.search.Width = width - 6
}

// BumpUnread increments a chat's unread counter. Used when a message
// lands in a room other than the active one.
func (m *Model) BumpUnread(chatID string) {
	for i := range m.chats {
		if m.chats[i].ID == chatID {
			m.chats[i].UnreadCount++
			return
		}
	}
}

// RecordMessage appends a message to a chat's local copy so the preview
// and timestamp column stay current.
func (m *Model) RecordMessage(chatID string, msg model.Message) {
	for i := range m.chats {
		if m.chats[i].ID == chatID {
			m.chats[i].Append(msg)
			return
		}
	}
}

// Select makes the chat at the cursor active, clears its unread counter,
// and returns the command announcing the selection. Selecting with an
// empty visible list is a no-op.
func (m *Model) Select() tea.Cmd {
	visible := m.visible()
	if len(visible) == 0 {
		return nil
	}
	if m.cursor >= len(visible) {
		m.cursor = len(visible) - 1
	}

	idx := visible[m.cursor]
	m.chats[idx].UnreadCount = 0
	m.selected = m.chats[idx].ID

	chat := m.chats[idx]
	return func() tea.Msg {
		return SelectedMsg{Chat: chat}
	}
}

// SelectByID makes a specific chat active. Used by the dashboard for the
// initial selection.
func (m *Model) SelectByID(chatID string) tea.Cmd {
	visible := m.visible()
	for pos, idx := range visible {
		if m.chats[idx].ID == chatID {
			m.cursor = pos
			return m.Select()
		}
	}
	return nil
}

// =============================================================================
// FILTERING
// =============================================================================

// visible returns the indices of chats matching the search query, in
// display order. An empty query shows everything. Folding lives in
// model.Fold so both sides of the comparison normalize the same way.
func (m Model) visible() []int {
	query := model.Fold(strings.TrimSpace(m.search.Value()))

	indices := make([]int, 0, len(m.chats))
	for i := range m.chats {
		if query == "" || m.chats[i].Matches(query) {
			indices = append(indices, i)
		}
	}
	return indices
}

// chatByID finds a chat by ID.
func (m Model) chatByID(id string) (*model.Chat, bool) {
	for i := range m.chats {
		if m.chats[i].ID == id {
			return &m.chats[i], true
		}
	}
	return nil, false
}

// clampCursor keeps the cursor inside the visible list.
func (m *Model) clampCursor() {
	n := len(m.visible())
	if n == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles sidebar input. "/" opens the search box; while searching,
// typing edits the query and esc closes it. Arrows move the cursor and
// enter activates the chat under it.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.searching {
		switch key.String() {
		case "esc":
			m.searching = false
			m.search.Blur()
			m.search.Reset()
			m.clampCursor()
			return m, nil
		case "enter":
			m.searching = false
			m.search.Blur()
			return m, m.Select()
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.clampCursor()
			return m, cmd
		}
	}

	switch key.String() {
	case "/":
		m.searching = true
		return m, m.search.Focus()

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		return m, m.Select()
	}

	return m, nil
}
