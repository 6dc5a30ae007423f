// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatflow-tui/internal/model"
	"github.com/jeranaias/chatflow-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE
// =============================================================================

// Bubble renders a single chat message. Outgoing messages (from the signed-in
// user) are right-aligned in indigo; incoming messages are left-aligned in
// neutral tones with the sender's name above the bubble.
type Bubble struct {
	Message    model.Message
	SenderName string
	Outgoing   bool
	Width      int
	Theme      *styles.Theme

	// Renderer, when set, enables markdown and code-fence rendering for
	// message bodies that use those constructs.
	Renderer *MarkdownRenderer
}

// NewBubble creates a bubble for a message at the given pane width.
func NewBubble(msg model.Message, senderName string, outgoing bool, width int, theme *styles.Theme) Bubble {
	return Bubble{
		Message:    msg,
		SenderName: senderName,
		Outgoing:   outgoing,
		Width:      width,
		Theme:      theme,
	}
}

// View renders the bubble with its header line.
func (b Bubble) View() string {
	if b.Outgoing {
		return b.renderOutgoing()
	}
	return b.renderIncoming()
}

// renderOutgoing renders the signed-in user's message, right-aligned.
func (b Bubble) renderOutgoing() string {
	content, contentWidth := b.renderContent()

	bubble := b.Theme.OutgoingBubble.
		Width(contentWidth).
		Render(content)

	header := b.Theme.BubbleTime.Render(b.timestamp())

	// Push the bubble to the right edge of the pane.
	indent := b.Width - contentWidth - 4
	if indent < 0 {
		indent = 0
	}
	aligned := lipgloss.NewStyle().MarginLeft(indent)

	return lipgloss.JoinVertical(lipgloss.Right,
		aligned.Render(bubble),
		aligned.Render(header),
	)
}

// renderIncoming renders a counterpart message, left-aligned with the
// sender's name above the bubble.
func (b Bubble) renderIncoming() string {
	content, contentWidth := b.renderContent()

	bubble := b.Theme.IncomingBubble.
		Width(contentWidth).
		Render(content)

	header := b.Theme.BubbleSender.Render(b.SenderName) +
		" " + b.Theme.BubbleTime.Render(b.timestamp())

	return lipgloss.JoinVertical(lipgloss.Left, header, bubble)
}

// renderContent wraps or renders the body and sizes the bubble to fit.
func (b Bubble) renderContent() (string, int) {
	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}

	body := b.Message.Body
	if b.Renderer != nil && looksLikeMarkdown(body) {
		body = b.Renderer.Render(body)
	} else {
		body = wordWrap(body, maxContentWidth)
	}

	contentWidth := minInt(maxLineWidth(body)+2, b.Width-8)
	if contentWidth < 4 {
		contentWidth = 4
	}

	return body, contentWidth
}

// timestamp returns the display timestamp, preferring the preformatted
// value carried on the message.
func (b Bubble) timestamp() string {
	if b.Message.Timestamp != "" {
		return b.Message.Timestamp
	}
	if !b.Message.CreatedAt.IsZero() {
		return b.Message.CreatedAt.Local().Format(model.TimestampLayout)
	}
	return ""
}
