// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for users, chats, and messages.
package model

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// CHAT KIND
// =============================================================================

// ChatKind distinguishes one-on-one chats from group chats.
type ChatKind string

const (
	KindPrivate ChatKind = "private"
	KindGroup   ChatKind = "group"
)

// Valid reports whether the kind is one of the known variants.
func (k ChatKind) Valid() bool {
	return k == KindPrivate || k == KindGroup
}

// =============================================================================
// CHAT TYPE
// =============================================================================

// Chat is a named, ordered thread of messages among a fixed participant set.
//
// The Messages slice is the sequence of record: append-only, chronological,
// insertion order = display order. The chat window works on a copy of it and
// does not write back (the visible list diverges locally until another chat
// is selected).
type Chat struct {
	// Identity
	ID   string   `json:"id"`
	Kind ChatKind `json:"kind"`
	Name string   `json:"name"`

	// Participants, unique by id, in insertion order.
	Participants []User `json:"participants"`

	// UnreadCount is independent of the message count.
	UnreadCount int `json:"unread_count"`

	// Messages is the owned, append-only sequence.
	Messages []Message `json:"messages"`
}

// Counterpart resolves the participant treated as the chat's responder
// target: the first participant whose id differs from currentUserID.
//
// For group chats this picks the first non-current member; when every
// participant is the current user (degenerate data) it falls back to the
// first participant. Returns false only for a chat with no participants.
func (c *Chat) Counterpart(currentUserID string) (User, bool) {
	for _, p := range c.Participants {
		if p.ID != currentUserID {
			return p, true
		}
	}
	if len(c.Participants) > 0 {
		return c.Participants[0], true
	}
	return User{}, false
}

// Participant returns the participant with the given id.
func (c *Chat) Participant(id string) (User, bool) {
	for _, p := range c.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return User{}, false
}

// LastMessage returns the most recent message, or false if the chat is empty.
func (c *Chat) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// MessageCopy returns a fresh copy of the message sequence for the chat
// window's view-state cache.
func (c *Chat) MessageCopy() []Message {
	out := make([]Message, len(c.Messages))
	copy(out, c.Messages)
	return out
}

// Append adds a message to the sequence of record.
func (c *Chat) Append(msg Message) {
	c.Messages = append(c.Messages, msg)
}

// Matches reports whether the chat matches a search query against its
// name or last message body. Both sides are case-folded and NFKC-normalized
// so composed and decomposed spellings compare equal.
func (c *Chat) Matches(query string) bool {
	if query == "" {
		return true
	}
	query = Fold(query)
	if strings.Contains(Fold(c.Name), query) {
		return true
	}
	if last, ok := c.LastMessage(); ok {
		return strings.Contains(Fold(last.Body), query)
	}
	return false
}

// Fold normalizes a string for search comparison: NFKC, then lowercase.
func Fold(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}
