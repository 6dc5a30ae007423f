// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for users, chats, and messages.
package model

// =============================================================================
// SEED DATA
// =============================================================================

// Seed data for a fresh installation: a handful of users and three chats
// with a little history, so the dashboard is not empty before the store
// has anything in it. "user-1" is a placeholder replaced by the signed-in
// user's id at provisioning time.

// SeedCurrentUserID is the placeholder id rewritten at sign-in.
const SeedCurrentUserID = "user-1"

// SeedUsers returns the seeded user table keyed by id.
func SeedUsers() map[string]User {
	return map[string]User{
		"user-1": {ID: "user-1", Name: "You", AvatarURL: "https://picsum.photos/seed/you/100/100", Email: "you@chatflow.dev", IsOnline: true},
		"user-2": {ID: "user-2", Name: "Alice", AvatarURL: "https://picsum.photos/seed/alice/100/100", IsOnline: true},
		"user-3": {ID: "user-3", Name: "Bob", AvatarURL: "https://picsum.photos/seed/bob/100/100", IsOnline: false},
		"user-4": {ID: "user-4", Name: "Charlie", AvatarURL: "https://picsum.photos/seed/charlie/100/100", IsOnline: true},
		"user-5": {ID: "user-5", Name: "Design Team", AvatarURL: "https://picsum.photos/seed/design/100/100", IsOnline: true},
	}
}

// SeedChats returns the seeded conversation list.
func SeedChats() []Chat {
	users := SeedUsers()

	return []Chat{
		{
			ID:           "chat-1",
			Kind:         KindPrivate,
			Name:         "Alice",
			UnreadCount:  2,
			Participants: []User{users["user-1"], users["user-2"]},
			Messages: []Message{
				{ID: "msg-1", Body: "Hey, how is it going?", Timestamp: "10:30 AM", SenderID: "user-2"},
				{ID: "msg-2", Body: "Great! Working on the new designs. You?", Timestamp: "10:31 AM", SenderID: "user-1"},
				{ID: "msg-3", Body: "Awesome! I am just reviewing them. They look amazing!", Timestamp: "10:32 AM", SenderID: "user-2"},
				{ID: "msg-4", Body: "Thanks! Let me know if you have any feedback.", Timestamp: "10:32 AM", SenderID: "user-2"},
			},
		},
		{
			ID:           "chat-2",
			Kind:         KindGroup,
			Name:         "Project Phoenix",
			UnreadCount:  0,
			Participants: []User{users["user-1"], users["user-3"], users["user-4"]},
			Messages: []Message{
				{ID: "msg-5", Body: "Team, the deadline is approaching. How is the progress?", Timestamp: "Yesterday", SenderID: "user-3"},
				{ID: "msg-6", Body: "Frontend is almost done. Just need to integrate the API.", Timestamp: "Yesterday", SenderID: "user-1"},
				{ID: "msg-7", Body: "Backend services are all deployed. Ready when you are!", Timestamp: "Yesterday", SenderID: "user-4"},
			},
		},
		{
			ID:           "chat-3",
			Kind:         KindPrivate,
			Name:         "Bob",
			UnreadCount:  0,
			Participants: []User{users["user-1"], users["user-3"]},
			Messages: []Message{
				{ID: "msg-8", Body: "Can we have a quick sync tomorrow?", Timestamp: "Tuesday", SenderID: "user-3"},
				{ID: "msg-9", Body: "Sure, what time works for you?", Timestamp: "Tuesday", SenderID: "user-1"},
			},
		},
	}
}

// RebindSeedChats rewrites the placeholder current-user id in the seeded
// chats to the signed-in user's id, so message ownership and counterpart
// resolution line up with the real identity.
func RebindSeedChats(chats []Chat, current User) []Chat {
	for ci := range chats {
		for pi := range chats[ci].Participants {
			if chats[ci].Participants[pi].ID == SeedCurrentUserID {
				chats[ci].Participants[pi] = current
			}
		}
		for mi := range chats[ci].Messages {
			if chats[ci].Messages[mi].SenderID == SeedCurrentUserID {
				chats[ci].Messages[mi].SenderID = current.ID
			}
		}
	}
	return chats
}
