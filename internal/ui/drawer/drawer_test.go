// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package drawer

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatflow-tui/internal/model"
	"github.com/jeranaias/chatflow-tui/internal/ui/styles"
)

func newTestDrawer() Model {
	user := model.User{ID: "user-1", Name: "Jesse", Email: "jesse@example.com", IsOnline: true}
	m := New(styles.NewTheme(), user)
	m.SetSize(40, 20)
	return m
}

func pressKey(m Model, s string) (Model, tea.Cmd) {
	switch s {
	case "enter":
		return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	case "down":
		return m.Update(tea.KeyMsg{Type: tea.KeyDown})
	case "up":
		return m.Update(tea.KeyMsg{Type: tea.KeyUp})
	}
	return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestViewShowsProfile(t *testing.T) {
	m := newTestDrawer()
	view := m.View()

	for _, want := range []string{"Jesse", "jesse@example.com", "online", "Sign out"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEnterEmitsActions(t *testing.T) {
	m := newTestDrawer()

	// First item: theme toggle.
	m, cmd := pressKey(m, "enter")
	if _, ok := cmd().(ToggleThemeMsg); !ok {
		t.Errorf("expected ToggleThemeMsg, got %T", cmd())
	}

	m, _ = pressKey(m, "down")
	m, cmd = pressKey(m, "enter")
	if _, ok := cmd().(SignOutMsg); !ok {
		t.Errorf("expected SignOutMsg, got %T", cmd())
	}

	m, _ = pressKey(m, "down")
	m, cmd = pressKey(m, "enter")
	if _, ok := cmd().(CloseMsg); !ok {
		t.Errorf("expected CloseMsg, got %T", cmd())
	}

	// Cursor clamps at the last item.
	m, _ = pressKey(m, "down")
	m, cmd = pressKey(m, "enter")
	if _, ok := cmd().(CloseMsg); !ok {
		t.Error("cursor should clamp on the last action")
	}
}

func TestEscCloses(t *testing.T) {
	m := newTestDrawer()

	_, cmd := pressKey(m, "esc")
	if _, ok := cmd().(CloseMsg); !ok {
		t.Errorf("expected CloseMsg, got %T", cmd())
	}
}
