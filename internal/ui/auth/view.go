// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the centered auth box for the active mode.
func (m Model) View() string {
	var title, hint string
	switch m.mode {
	case ModeSignUp:
		title = "Create your account"
		hint = "ctrl+s: sign in instead  enter: submit"
	case ModeMFACode:
		title = "Verification code"
		hint = "esc: back  enter: submit"
	default:
		title = "Sign in to ChatFlow"
		hint = "ctrl+s: create account  enter: submit"
	}

	rows := []string{
		m.theme.AuthTitle.Render(title),
		"",
	}

	for _, f := range m.visibleFields() {
		rows = append(rows, m.renderField(f))
	}

	if m.busy {
		rows = append(rows, "", m.theme.AuthHint.Render("Signing in..."))
	} else if m.errLine != "" {
		rows = append(rows, "", m.theme.AuthError.Render(m.errLine))
	}

	rows = append(rows, "", m.theme.AuthHint.Render(hint))

	box := m.theme.AuthBox.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderField renders a labeled input row.
func (m Model) renderField(field int) string {
	var label string
	switch field {
	case fieldName:
		label = "Name"
	case fieldEmail:
		label = "Email"
	case fieldPassword:
		label = "Password"
	case fieldCode:
		label = "Code"
	}

	labelView := m.theme.AuthLabel.Width(10).Render(label)
	return labelView + m.fields[field].View()
}
