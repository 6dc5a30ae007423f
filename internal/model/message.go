// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for users, chats, and messages.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a chat.
//
// Messages are immutable once created: they are appended to a chat's
// sequence and never edited or removed. The display timestamp is formatted
// at creation time and never recomputed, so a message sent at 10:30 keeps
// reading "10:30 AM" for the rest of the session.
type Message struct {
	// Identity
	ID       string `json:"id"`
	SenderID string `json:"sender_id"`

	// Content
	Body string `json:"body"`

	// Timestamp is the preformatted display time (e.g. "10:30 AM").
	Timestamp string `json:"timestamp"`

	// CreatedAt orders messages when the display timestamp is ambiguous.
	CreatedAt time.Time `json:"created_at"`
}

// TimestampLayout is the display format for message timestamps.
const TimestampLayout = "3:04 PM"

// NewMessage creates a message from a sender with the current time.
func NewMessage(senderID, body string) Message {
	now := time.Now()
	return Message{
		ID:        "msg-" + uuid.NewString(),
		SenderID:  senderID,
		Body:      body,
		Timestamp: now.Format(TimestampLayout),
		CreatedAt: now,
	}
}

// IsFrom reports whether the message was sent by the given user.
func (m Message) IsFrom(userID string) bool {
	return m.SenderID == userID
}

// =============================================================================
// TRANSCRIPT MAPPING
// =============================================================================

// TranscriptRole tags a transcript entry for the responder service.
type TranscriptRole string

const (
	RoleUser  TranscriptRole = "user"
	RoleModel TranscriptRole = "model"
)

// TranscriptEntry is one turn of the rolling history sent to the responder.
type TranscriptEntry struct {
	Role    TranscriptRole `json:"role"`
	Content string         `json:"content"`
}

// BuildTranscript maps a message slice to the two-role transcript the
// responder consumes. Messages sent by currentUserID become "user" turns;
// everything else becomes "model" turns.
func BuildTranscript(messages []Message, currentUserID string) []TranscriptEntry {
	entries := make([]TranscriptEntry, 0, len(messages))
	for _, msg := range messages {
		role := RoleModel
		if msg.IsFrom(currentUserID) {
			role = RoleUser
		}
		entries = append(entries, TranscriptEntry{Role: role, Content: msg.Body})
	}
	return entries
}
