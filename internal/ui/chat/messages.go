// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file defines the Bubble Tea message types used by the chat view.
// Reply-bearing messages carry the chat ID they were produced for; the
// update loop drops any that arrive after the user has switched chats.
package chat

import (
	"github.com/jeranaias/chatflow-tui/internal/model"
)

// =============================================================================
// LIFECYCLE MESSAGES
// =============================================================================

// ResponderResultMsg delivers the responder's reply text for a chat.
// The body is always displayable: responder failures arrive here as
// apology text, indistinguishable in shape from a successful reply.
type ResponderResultMsg struct {
	ChatID string
	Body   string
}

// RevealMsg fires after the typing delay and carries the counterpart
// message to append.
type RevealMsg struct {
	ChatID  string
	Message model.Message
}

// =============================================================================
// OUTBOUND MESSAGES
// =============================================================================

// SentMsg is emitted when the user's own message has been appended, so the
// dashboard can persist it and update the sidebar preview.
type SentMsg struct {
	ChatID  string
	Message model.Message
}

// RevealedMsg is emitted when a counterpart message has been appended.
type RevealedMsg struct {
	ChatID  string
	Message model.Message
}
