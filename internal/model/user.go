// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for users, chats, and messages.
package model

// User represents a chat participant.
//
// Users are created at sign-in/provisioning time and only mutated by the
// identity provider; within a session they are read-only.
type User struct {
	// Identity
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`

	// Presentation
	AvatarURL string `json:"avatar_url"`
	IsOnline  bool   `json:"is_online"`
}

// Initial returns the first rune of the user's name for avatar placeholders.
func (u User) Initial() string {
	for _, r := range u.Name {
		return string(r)
	}
	return "?"
}

// DisplayName returns the user's name or a fallback.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return "User"
}
