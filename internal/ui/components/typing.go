// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatflow-tui/internal/ui/styles"
)

// =============================================================================
// TYPING INDICATOR
// =============================================================================

// TypingIndicator shows "<name> is typing" with an animated spinner while a
// reply is pending. ASCII frames keep it safe on terminals without Unicode.
type TypingIndicator struct {
	spinner spinner.Model
	theme   *styles.Theme
	name    string
	active  bool
}

// NewTypingIndicator creates an inactive indicator.
func NewTypingIndicator(theme *styles.Theme) TypingIndicator {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}

	return TypingIndicator{
		spinner: s,
		theme:   theme,
	}
}

// Start activates the indicator for the named sender and returns the tick
// command that drives the animation.
func (t *TypingIndicator) Start(name string) tea.Cmd {
	t.name = name
	t.active = true
	return t.spinner.Tick
}

// Stop deactivates the indicator.
func (t *TypingIndicator) Stop() {
	t.active = false
}

// IsActive returns whether the indicator is currently showing.
func (t *TypingIndicator) IsActive() bool {
	return t.active
}

// Update advances the spinner animation.
func (t TypingIndicator) Update(msg tea.Msg) (TypingIndicator, tea.Cmd) {
	if !t.active {
		return t, nil
	}

	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return t, cmd
}

// View renders the indicator, or an empty string when inactive.
func (t TypingIndicator) View() string {
	if !t.active {
		return ""
	}

	spinnerView := t.theme.Spinner.Render(t.spinner.View())
	textView := t.theme.TypingText.Render(t.name + " is typing...")

	return spinnerView + " " + textView
}
