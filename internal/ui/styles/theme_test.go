// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestNewThemeInitializesStyles(t *testing.T) {
	theme := NewTheme()

	// A few spot checks that initStyles ran: styled output differs from
	// or wraps the raw input.
	out := theme.UnreadBadge.Render("2")
	if !strings.Contains(out, "2") {
		t.Errorf("badge render lost its content: %q", out)
	}

	if theme.ChatItemSelected.GetBold() != true {
		t.Error("selected chat row should be bold")
	}
	if theme.AuthTitle.GetBold() != true {
		t.Error("auth title should be bold")
	}
}

func TestSetSize(t *testing.T) {
	theme := NewTheme()
	theme.SetSize(120, 40)

	if theme.Width != 120 || theme.Height != 40 {
		t.Errorf("SetSize not applied: %dx%d", theme.Width, theme.Height)
	}
}

func TestBubbleStylesDiffer(t *testing.T) {
	theme := NewTheme()

	if theme.OutgoingBubble.GetBackground() == theme.IncomingBubble.GetBackground() {
		t.Error("outgoing and incoming bubbles must be visually distinct")
	}
}
