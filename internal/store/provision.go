// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/jeranaias/chatflow-tui/internal/model"
)

// =============================================================================
// PROVISIONING
// =============================================================================

// Provision returns the signed-in user's conversations, seeding the demo
// chats into an empty database on first run.
//
// Unread counts are runtime state, not persisted: freshly seeded chats carry
// the demo counts, reloaded chats start read.
func (s *Store) Provision(ctx context.Context, current model.User, seed bool) ([]model.Chat, error) {
	if err := s.UpsertUser(ctx, UserRow{
		AuthID:    current.ID,
		Email:     current.Email,
		FullName:  current.Name,
		AvatarURL: current.AvatarURL,
	}); err != nil {
		return nil, err
	}

	rooms, err := s.ListChatRooms(ctx, current.ID)
	if err != nil {
		return nil, err
	}

	if len(rooms) == 0 {
		if !seed {
			return nil, nil
		}
		return s.seedChats(ctx, current)
	}

	return s.loadChats(ctx, current, rooms)
}

// seedChats persists the demo conversations and returns them.
func (s *Store) seedChats(ctx context.Context, current model.User) ([]model.Chat, error) {
	for _, u := range model.SeedUsers() {
		if u.ID == model.SeedCurrentUserID {
			continue
		}
		if err := s.UpsertUser(ctx, UserRow{
			AuthID:    u.ID,
			Email:     u.Email,
			FullName:  u.Name,
			AvatarURL: u.AvatarURL,
		}); err != nil {
			return nil, err
		}
	}

	chats := model.RebindSeedChats(model.SeedChats(), current)
	for ci := range chats {
		room, err := s.CreateChatRoom(ctx, chats[ci].Name, string(chats[ci].Kind), current.ID)
		if err != nil {
			return nil, err
		}
		chats[ci].ID = room.ID

		for _, msg := range chats[ci].Messages {
			if _, err := s.SaveMessage(ctx, MessageRow{
				ID:         msg.ID,
				ChatRoomID: room.ID,
				UserID:     msg.SenderID,
				Content:    msg.Body,
				IsAI:       !msg.IsFrom(current.ID),
			}); err != nil {
				return nil, err
			}
		}
	}

	return chats, nil
}

// loadChats rebuilds domain chats from persisted rooms and messages.
func (s *Store) loadChats(ctx context.Context, current model.User, rooms []RoomRow) ([]model.Chat, error) {
	chats := make([]model.Chat, 0, len(rooms))

	for _, room := range rooms {
		msgs, err := s.ListMessages(ctx, room.ID)
		if err != nil {
			return nil, err
		}

		chat := model.Chat{
			ID:   room.ID,
			Kind: model.ChatKind(room.Type),
			Name: room.Name,
		}

		seen := map[string]bool{current.ID: true}
		chat.Participants = append(chat.Participants, current)

		for _, row := range msgs {
			chat.Messages = append(chat.Messages, model.Message{
				ID:        row.ID,
				SenderID:  row.UserID,
				Body:      row.Content,
				Timestamp: row.CreatedAt.Local().Format(model.TimestampLayout),
				CreatedAt: row.CreatedAt,
			})

			if seen[row.UserID] {
				continue
			}
			seen[row.UserID] = true
			chat.Participants = append(chat.Participants, s.participant(ctx, row.UserID))
		}

		// A room with no history yet still needs a counterpart to address.
		if len(chat.Participants) == 1 {
			chat.Participants = append(chat.Participants, model.User{
				ID:   "peer-" + room.ID,
				Name: room.Name,
			})
		}

		chats = append(chats, chat)
	}

	return chats, nil
}

// participant resolves a sender id against the users table, degrading to a
// bare id when the row is missing.
func (s *Store) participant(ctx context.Context, userID string) model.User {
	row, err := s.GetUser(ctx, userID)
	if err != nil {
		return model.User{ID: userID, Name: userID}
	}
	return model.User{
		ID:        row.AuthID,
		Name:      row.FullName,
		Email:     row.Email,
		AvatarURL: row.AvatarURL,
	}
}

// SaveChatMessage persists a domain message into a room.
func (s *Store) SaveChatMessage(ctx context.Context, roomID string, msg model.Message, isAI bool) error {
	_, err := s.SaveMessage(ctx, MessageRow{
		ID:         msg.ID,
		ChatRoomID: roomID,
		UserID:     msg.SenderID,
		Content:    msg.Body,
		IsAI:       isAI,
		CreatedAt:  msg.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to persist message: %w", err)
	}
	return nil
}
