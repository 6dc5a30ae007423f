// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package drawer

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatflow-tui/internal/model"
	"github.com/jeranaias/chatflow-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ToggleThemeMsg asks the application to flip between dark and light.
type ToggleThemeMsg struct{}

// SignOutMsg asks the application to end the session.
type SignOutMsg struct{}

// CloseMsg asks the dashboard to close the drawer.
type CloseMsg struct{}

// =============================================================================
// DRAWER MODEL
// =============================================================================

// action indexes into the drawer's menu.
type action int

const (
	actionToggleTheme action = iota
	actionSignOut
	actionClose
	actionCount
)

var actionLabels = [actionCount]string{
	"Toggle theme",
	"Sign out",
	"Close",
}

// Model is the Bubble Tea model for the profile drawer.
type Model struct {
	theme *styles.Theme
	user  model.User

	cursor action

	width  int
	height int
}

// New creates a drawer for the signed-in user.
func New(theme *styles.Theme, user model.User) Model {
	return Model{
		theme: theme,
		user:  user,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetUser refreshes the displayed profile.
func (m *Model) SetUser(user model.User) {
	m.user = user
}

// SetSize resizes the drawer.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles drawer input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < actionCount-1 {
			m.cursor++
		}

	case "esc":
		return m, func() tea.Msg { return CloseMsg{} }

	case "enter":
		switch m.cursor {
		case actionToggleTheme:
			return m, func() tea.Msg { return ToggleThemeMsg{} }
		case actionSignOut:
			return m, func() tea.Msg { return SignOutMsg{} }
		case actionClose:
			return m, func() tea.Msg { return CloseMsg{} }
		}
	}

	return m, nil
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the drawer panel.
func (m Model) View() string {
	presence := m.theme.PresenceOffline.Render("o offline")
	if m.user.IsOnline {
		presence = m.theme.PresenceOnline.Render("* online")
	}

	rows := []string{
		m.theme.DrawerTitle.Render("Profile"),
		"",
		m.theme.ChatItemName.Render(m.user.DisplayName()) + "  " + presence,
	}
	if m.user.Email != "" {
		rows = append(rows, m.theme.ChatItemPreview.Render(m.user.Email))
	}
	rows = append(rows, "")

	for a := action(0); a < actionCount; a++ {
		label := actionLabels[a]
		if a == m.cursor {
			rows = append(rows, m.theme.DrawerItemSelected.Render("> "+label))
		} else {
			rows = append(rows, m.theme.DrawerItem.Render("  "+label))
		}
	}

	return m.theme.DrawerBox.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
