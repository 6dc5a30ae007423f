// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package responder

import (
	"context"
	"strings"

	"github.com/jeranaias/chatflow-tui/internal/model"
)

// =============================================================================
// PROMPT ASSEMBLY
// =============================================================================

// historyWindow is how many trailing transcript entries are folded into the
// prompt as conversation context.
const historyWindow = 6

// buildPrompt assembles the casual-conversation prompt from the rolling
// history, an optional context hint, and the triggering message.
func buildPrompt(userMessage, contextHint string, history []model.TranscriptEntry) string {
	var sb strings.Builder

	sb.WriteString("You are chatting casually with a friend. Keep responses short, conversational, and natural. Don't give detailed explanations unless asked. Just respond like you're texting someone.\n\n")

	if len(history) > 0 {
		start := 0
		if len(history) > historyWindow {
			start = len(history) - historyWindow
		}
		sb.WriteString("Previous conversation:\n")
		for _, entry := range history[start:] {
			label := "AI"
			if entry.Role == model.RoleUser {
				label = "User"
			}
			sb.WriteString(label)
			sb.WriteString(": ")
			sb.WriteString(entry.Content)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if contextHint != "" {
		sb.WriteString("Context: ")
		sb.WriteString(contextHint)
		sb.WriteString("\n\n")
	}

	sb.WriteString("User: ")
	sb.WriteString(userMessage)
	sb.WriteString("\n\nRespond casually:")

	return sb.String()
}

// =============================================================================
// FALLBACK REPLIES
// =============================================================================

// Canned apologies delivered in place of a reply when generation fails.
// The lifecycle treats these exactly like real replies, so a failure still
// produces a counterpart message instead of surfacing an error state.
const (
	fallbackMissingKey = "I'm sorry, I'm having trouble responding right now. Please check your API key configuration."
	fallbackAuth       = "I'm sorry, there's an issue with my API configuration. Please check the Gemini API key."
	fallbackQuota      = "I'm sorry, I've reached my usage limit. Please try again later."
	fallbackNetwork    = "I'm sorry, I'm having network issues. Please check your internet connection and try again."
	fallbackGeneric    = "I'm sorry, I'm having trouble responding right now. Please try again."
)

// =============================================================================
// RESPONSE GENERATION
// =============================================================================

// GenerateResponse produces the counterpart's reply to userMessage.
//
// It never returns an error: failures are absorbed into an apology string
// matched to the failure category, so callers always get displayable text.
func (c *Client) GenerateResponse(ctx context.Context, userMessage, contextHint string, history []model.TranscriptEntry) string {
	prompt := buildPrompt(userMessage, contextHint, history)

	text, err := c.generateContent(ctx, prompt)
	if err != nil {
		return fallbackFor(err)
	}
	return strings.TrimSpace(text)
}

// fallbackFor maps a generation error to the apology shown in its place.
func fallbackFor(err error) string {
	switch {
	case IsMissingKey(err):
		return fallbackMissingKey
	case IsAuth(err):
		return fallbackAuth
	case IsQuota(err):
		return fallbackQuota
	case IsNetwork(err), IsTimeout(err):
		return fallbackNetwork
	default:
		return fallbackGeneric
	}
}
