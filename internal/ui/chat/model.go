// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatflow-tui/internal/model"
	"github.com/jeranaias/chatflow-tui/internal/responder"
	"github.com/jeranaias/chatflow-tui/internal/ui/components"
	"github.com/jeranaias/chatflow-tui/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the message thread pane.
//
// The visible message list is a copy of the selected chat's sequence; the
// chat value handed to SetConversation is never written back to. The two
// flags gate the lifecycle: typing drives the indicator, pending blocks
// re-entrant submits while a reply is outstanding.
type Model struct {
	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Who is signed in. Passed in explicitly; outgoing messages are the
	// ones sent by this user.
	currentUser model.User

	// Active conversation (view-state copy)
	chat           *model.Chat
	messages       []model.Message
	counterpart    model.User
	hasCounterpart bool

	// Lifecycle flags
	typing  bool
	pending bool

	// Reveal delay between receiving a reply and showing it.
	revealDelay time.Duration

	// Responder client
	responder *responder.Client

	// UI components
	viewport  viewport.Model
	input     textinput.Model
	indicator components.TypingIndicator

	// Markdown rendering of message bodies; nil renderer = plain text.
	markdown bool
	renderer *components.MarkdownRenderer

	// Compact mode drops the blank row between bubbles.
	compact bool
}

// New creates a chat model for the signed-in user.
func New(theme *styles.Theme, client *responder.Client, currentUser model.User, revealDelay time.Duration) Model {
	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.CharLimit = 2000
	input.Focus()

	vp := viewport.New(80, 20)

	return Model{
		theme:       theme,
		currentUser: currentUser,
		revealDelay: revealDelay,
		responder:   client,
		viewport:    vp,
		input:       input,
		indicator:   components.NewTypingIndicator(theme),
		markdown:    true,
	}
}

// SetMarkdown enables or disables rich rendering of message bodies.
func (m *Model) SetMarkdown(enabled bool) {
	m.markdown = enabled
	if !enabled {
		m.renderer = nil
	}
}

// SetResponder swaps the client used for replies. An in-flight request
// keeps the old client; the next submit uses the new one.
func (m *Model) SetResponder(client *responder.Client) {
	m.responder = client
}

// SetRevealDelay changes how long replies are held back before showing.
func (m *Model) SetRevealDelay(delay time.Duration) {
	m.revealDelay = delay
}

// SetCompact tightens bubble spacing for small terminals.
func (m *Model) SetCompact(enabled bool) {
	m.compact = enabled
	m.refreshViewport()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// =============================================================================
// CONVERSATION STATE
// =============================================================================

// SetConversation replaces the visible thread with the given chat's
// messages and resets the lifecycle flags. It is idempotent: re-selecting
// the already-active chat performs the same wholesale replacement, which
// also abandons any in-flight reply for the previous selection state.
func (m *Model) SetConversation(chat *model.Chat) {
	m.chat = chat
	m.typing = false
	m.pending = false
	m.indicator.Stop()
	m.input.Reset()

	if chat == nil {
		m.messages = nil
		m.hasCounterpart = false
		m.counterpart = model.User{}
		m.viewport.SetContent("")
		return
	}

	m.messages = chat.MessageCopy()
	m.counterpart, m.hasCounterpart = chat.Counterpart(m.currentUser.ID)
	m.refreshViewport()
	m.viewport.GotoBottom()
}

// ActiveChatID returns the ID of the selected chat, or "" when none is.
func (m Model) ActiveChatID() string {
	if m.chat == nil {
		return ""
	}
	return m.chat.ID
}

// Messages returns the visible thread.
func (m Model) Messages() []model.Message {
	return m.messages
}

// IsPending reports whether a reply is outstanding.
func (m Model) IsPending() bool {
	return m.pending
}

// IsTyping reports whether the typing indicator is showing.
func (m Model) IsTyping() bool {
	return m.typing
}

// InputValue returns the current input text.
func (m Model) InputValue() string {
	return m.input.Value()
}

// SetInputValue replaces the input text. Used by tests and by the
// dashboard when restoring drafts.
func (m *Model) SetInputValue(s string) {
	m.input.SetValue(s)
}

// SetSize resizes the thread pane.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	// Header, typing line, and input box take four rows.
	vpHeight := height - 4
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = width
	m.viewport.Height = vpHeight
	m.input.Width = width - 6
	if m.markdown {
		m.renderer = components.NewMarkdownRenderer(width - 12)
	}
	m.refreshViewport()
}

// =============================================================================
// SUBMIT
// =============================================================================

// Submit runs the send path for the current input. Empty-trimmed input, an
// outstanding reply, and a chat with nobody to answer are all silent no-ops.
// Otherwise the user's message is appended synchronously before any network
// work starts, and the returned commands carry the responder call plus the
// SentMsg for the dashboard write-through.
func (m *Model) Submit() tea.Cmd {
	body := strings.TrimSpace(m.input.Value())
	if body == "" || m.pending || m.chat == nil || !m.hasCounterpart {
		return nil
	}

	msg := model.NewMessage(m.currentUser.ID, body)
	history := model.BuildTranscript(m.messages, m.currentUser.ID)

	m.messages = append(m.messages, msg)
	m.input.Reset()
	m.typing = true
	m.pending = true
	m.refreshViewport()
	m.viewport.GotoBottom()

	chatID := m.chat.ID
	sent := msg
	hint := "You are chatting with " + m.counterpart.DisplayName()
	return tea.Batch(
		m.indicator.Start(m.counterpart.DisplayName()),
		func() tea.Msg { return SentMsg{ChatID: chatID, Message: sent} },
		respondCmd(m.responder, chatID, body, hint, history),
	)
}
