// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
)

// =============================================================================
// COUNTERPART RESOLUTION TESTS
// =============================================================================

func TestCounterpartPrivate(t *testing.T) {
	chat := Chat{
		Kind: KindPrivate,
		Participants: []User{
			{ID: "me", Name: "Me"},
			{ID: "alice", Name: "Alice"},
		},
	}

	other, ok := chat.Counterpart("me")
	if !ok {
		t.Fatal("expected a counterpart")
	}
	if other.ID != "alice" {
		t.Errorf("expected alice, got %s", other.ID)
	}
}

func TestCounterpartGroupPicksFirstOther(t *testing.T) {
	chat := Chat{
		Kind: KindGroup,
		Participants: []User{
			{ID: "me"},
			{ID: "bob"},
			{ID: "charlie"},
		},
	}

	other, ok := chat.Counterpart("me")
	if !ok {
		t.Fatal("expected a counterpart")
	}
	if other.ID != "bob" {
		t.Errorf("group counterpart should be first non-current participant, got %s", other.ID)
	}
}

func TestCounterpartFallsBackToFirstParticipant(t *testing.T) {
	chat := Chat{
		Kind:         KindPrivate,
		Participants: []User{{ID: "me"}},
	}

	other, ok := chat.Counterpart("me")
	if !ok {
		t.Fatal("expected fallback counterpart")
	}
	if other.ID != "me" {
		t.Errorf("expected first-participant fallback, got %s", other.ID)
	}
}

func TestCounterpartEmptyChat(t *testing.T) {
	chat := Chat{Kind: KindPrivate}

	if _, ok := chat.Counterpart("me"); ok {
		t.Error("chat with no participants should have no counterpart")
	}
}

// =============================================================================
// TRANSCRIPT TESTS
// =============================================================================

func TestBuildTranscriptRoles(t *testing.T) {
	messages := []Message{
		{SenderID: "alice", Body: "hi"},
		{SenderID: "me", Body: "hello"},
		{SenderID: "alice", Body: "how are you?"},
	}

	transcript := BuildTranscript(messages, "me")
	if len(transcript) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(transcript))
	}

	wantRoles := []TranscriptRole{RoleModel, RoleUser, RoleModel}
	for i, entry := range transcript {
		if entry.Role != wantRoles[i] {
			t.Errorf("entry %d: expected role %s, got %s", i, wantRoles[i], entry.Role)
		}
		if entry.Content != messages[i].Body {
			t.Errorf("entry %d: content mismatch", i)
		}
	}
}

func TestBuildTranscriptEmpty(t *testing.T) {
	transcript := BuildTranscript(nil, "me")
	if len(transcript) != 0 {
		t.Errorf("expected empty transcript, got %d entries", len(transcript))
	}
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage(t *testing.T) {
	msg := NewMessage("me", "hello there")

	if msg.SenderID != "me" {
		t.Errorf("expected sender 'me', got %s", msg.SenderID)
	}
	if msg.Body != "hello there" {
		t.Errorf("unexpected body %q", msg.Body)
	}
	if !strings.HasPrefix(msg.ID, "msg-") {
		t.Errorf("expected msg- id prefix, got %s", msg.ID)
	}
	if msg.Timestamp == "" {
		t.Error("expected a preformatted timestamp")
	}
	if msg.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestNewMessageUniqueIDs(t *testing.T) {
	a := NewMessage("me", "one")
	b := NewMessage("me", "two")
	if a.ID == b.ID {
		t.Error("message ids must be unique")
	}
}

// =============================================================================
// CHAT HELPER TESTS
// =============================================================================

func TestMessageCopyIsIndependent(t *testing.T) {
	chat := Chat{Messages: []Message{{ID: "a"}, {ID: "b"}}}

	cp := chat.MessageCopy()
	cp = append(cp, Message{ID: "c"})
	cp[0].ID = "mutated"

	if len(chat.Messages) != 2 {
		t.Errorf("appending to the copy must not grow the chat, got %d", len(chat.Messages))
	}
	if chat.Messages[0].ID != "a" {
		t.Error("mutating the copy must not touch the chat's sequence")
	}
}

func TestChatMatches(t *testing.T) {
	chat := Chat{
		Name:     "Project Phoenix",
		Messages: []Message{{Body: "Backend services are all deployed."}},
	}

	tests := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"phoenix", true},
		{"deployed", true},
		{"zebra", false},
	}

	for _, tt := range tests {
		if got := chat.Matches(tt.query); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestChatMatchesNormalizesUnicode(t *testing.T) {
	// Name in decomposed form: "Rene" + combining acute accent.
	chat := Chat{Name: "René"}

	// Query in composed form ("é" as a single code point).
	if !chat.Matches("rené") {
		t.Error("composed query should match a decomposed name")
	}
	// And the reverse: a decomposed query against a composed name.
	composed := Chat{Name: "René"}
	if !composed.Matches("rené") {
		t.Error("decomposed query should match a composed name")
	}
}

// =============================================================================
// SEED DATA TESTS
// =============================================================================

func TestSeedChatsShape(t *testing.T) {
	chats := SeedChats()
	if len(chats) != 3 {
		t.Fatalf("expected 3 seeded chats, got %d", len(chats))
	}

	for _, chat := range chats {
		if !chat.Kind.Valid() {
			t.Errorf("chat %s has invalid kind %q", chat.ID, chat.Kind)
		}
		if len(chat.Participants) < 2 {
			t.Errorf("chat %s should have at least 2 participants", chat.ID)
		}
		if _, ok := chat.Counterpart(SeedCurrentUserID); !ok {
			t.Errorf("chat %s should resolve a counterpart", chat.ID)
		}
	}

	if chats[0].UnreadCount != 2 {
		t.Errorf("chat-1 should seed with 2 unread, got %d", chats[0].UnreadCount)
	}
}

func TestRebindSeedChats(t *testing.T) {
	me := User{ID: "clerk_abc123", Name: "Jesse"}
	chats := RebindSeedChats(SeedChats(), me)

	for _, chat := range chats {
		for _, p := range chat.Participants {
			if p.ID == SeedCurrentUserID {
				t.Errorf("chat %s still has the placeholder participant", chat.ID)
			}
		}
		for _, msg := range chat.Messages {
			if msg.SenderID == SeedCurrentUserID {
				t.Errorf("chat %s still has a placeholder sender", chat.ID)
			}
		}
	}

	if _, ok := chats[0].Participant(me.ID); !ok {
		t.Error("rebinding should insert the signed-in user as a participant")
	}
}
