// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatflow-tui/internal/model"
	"github.com/jeranaias/chatflow-tui/internal/responder"
)

// =============================================================================
// LIFECYCLE COMMANDS
// =============================================================================

// respondCmd asks the responder for a reply in the background. The result
// always carries displayable text: categorized apologies stand in for
// failures, so the caller handles success and failure identically.
func respondCmd(client *responder.Client, chatID, userMessage, contextHint string, history []model.TranscriptEntry) tea.Cmd {
	return func() tea.Msg {
		body := client.GenerateResponse(context.Background(), userMessage, contextHint, history)
		return ResponderResultMsg{ChatID: chatID, Body: body}
	}
}

// revealCmd holds the reply back for the typing delay before it is shown.
// A zero delay delivers on the next event-loop pass.
func revealCmd(delay time.Duration, chatID string, msg model.Message) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg {
			return RevealMsg{ChatID: chatID, Message: msg}
		}
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return RevealMsg{ChatID: chatID, Message: msg}
	})
}
