// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotFound = errors.New("record not found")
	ErrClosed   = errors.New("store is closed")
)

// =============================================================================
// ROW TYPES
// =============================================================================

// UserRow is a row in the users table.
type UserRow struct {
	AuthID    string
	Email     string
	FullName  string
	AvatarURL string
	UpdatedAt time.Time
}

// RoomRow is a row in the chat_rooms table.
type RoomRow struct {
	ID        string
	Name      string
	Type      string // "private" or "group"
	UserID    string
	CreatedAt time.Time
}

// MessageRow is a row in the chat_messages table.
type MessageRow struct {
	ID         string
	ChatRoomID string
	UserID     string
	Content    string
	IsAI       bool
	CreatedAt  time.Time
}

// =============================================================================
// SCHEMA
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS users (
	auth_id    TEXT PRIMARY KEY,
	email      TEXT NOT NULL DEFAULT '',
	full_name  TEXT NOT NULL DEFAULT '',
	avatar_url TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS chat_rooms (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	type       TEXT NOT NULL CHECK (type IN ('private', 'group')),
	user_id    TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS chat_messages (
	id           TEXT PRIMARY KEY,
	chat_room_id TEXT NOT NULL REFERENCES chat_rooms(id) ON DELETE CASCADE,
	user_id      TEXT NOT NULL,
	content      TEXT NOT NULL,
	is_ai        INTEGER NOT NULL DEFAULT 0,
	created_at   TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_room_time
	ON chat_messages(chat_room_id, created_at);
CREATE INDEX IF NOT EXISTS idx_rooms_user
	ON chat_rooms(user_id);
`

// =============================================================================
// STORE
// =============================================================================

// Store is the SQLite-backed persistence layer.
//
// All methods are safe for concurrent use. SQLite only supports one writer
// at a time, so the connection pool is pinned to a single connection.
type Store struct {
	db *sql.DB

	mu          sync.Mutex
	closed      bool
	nextSubID   int
	messageSubs map[string]map[int]func(MessageRow) // room id -> sub id -> callback
	roomSubs    map[string]map[int]func(RoomRow)    // owner user id -> sub id -> callback
}

// Open opens (creating if necessary) the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{
		db:          db,
		messageSubs: make(map[string]map[int]func(MessageRow)),
		roomSubs:    make(map[string]map[int]func(RoomRow)),
	}, nil
}

// Close closes the database and drops all subscriptions.
func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	s.messageSubs = make(map[string]map[int]func(MessageRow))
	s.roomSubs = make(map[string]map[int]func(RoomRow))
	s.mu.Unlock()
	return s.db.Close()
}

// =============================================================================
// USERS
// =============================================================================

// UpsertUser creates or updates a user keyed by its auth id.
func (s *Store) UpsertUser(ctx context.Context, u UserRow) error {
	u.UpdatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (auth_id, email, full_name, avatar_url, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(auth_id) DO UPDATE SET
			email = excluded.email,
			full_name = excluded.full_name,
			avatar_url = excluded.avatar_url,
			updated_at = excluded.updated_at
	`, u.AuthID, u.Email, u.FullName, u.AvatarURL, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// GetUser returns the user with the given auth id.
func (s *Store) GetUser(ctx context.Context, authID string) (UserRow, error) {
	var u UserRow
	err := s.db.QueryRowContext(ctx, `
		SELECT auth_id, email, full_name, avatar_url, updated_at
		FROM users WHERE auth_id = ?
	`, authID).Scan(&u.AuthID, &u.Email, &u.FullName, &u.AvatarURL, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return UserRow{}, ErrNotFound
	}
	if err != nil {
		return UserRow{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// =============================================================================
// CHAT ROOMS
// =============================================================================

// CreateChatRoom inserts a room owned by userID and notifies room subscribers.
func (s *Store) CreateChatRoom(ctx context.Context, name, roomType, userID string) (RoomRow, error) {
	room := RoomRow{
		ID:        "room-" + uuid.NewString(),
		Name:      name,
		Type:      roomType,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_rooms (id, name, type, user_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, room.ID, room.Name, room.Type, room.UserID, room.CreatedAt)
	if err != nil {
		return RoomRow{}, fmt.Errorf("failed to create chat room: %w", err)
	}

	s.notifyRoom(room)
	return room, nil
}

// ListChatRooms returns the rooms owned by userID, oldest first.
func (s *Store) ListChatRooms(ctx context.Context, userID string) ([]RoomRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, type, user_id, created_at
		FROM chat_rooms WHERE user_id = ?
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat rooms: %w", err)
	}
	defer rows.Close()

	var rooms []RoomRow
	for rows.Next() {
		var r RoomRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Type, &r.UserID, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat room: %w", err)
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

// DeleteChatRoom removes a room and, via cascade, its messages.
func (s *Store) DeleteChatRoom(ctx context.Context, roomID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM chat_rooms WHERE id = ?`, roomID)
	if err != nil {
		return fmt.Errorf("failed to delete chat room: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// =============================================================================
// MESSAGES
// =============================================================================

// SaveMessage inserts a message and notifies subscribers of its room.
// The caller supplies the message id so the stored row matches the one
// already rendered optimistically.
func (s *Store) SaveMessage(ctx context.Context, msg MessageRow) (MessageRow, error) {
	if msg.ID == "" {
		msg.ID = "msg-" + uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_messages (id, chat_room_id, user_id, content, is_ai, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, msg.ID, msg.ChatRoomID, msg.UserID, msg.Content, msg.IsAI, msg.CreatedAt)
	if err != nil {
		return MessageRow{}, fmt.Errorf("failed to save message: %w", err)
	}

	s.notifyMessage(msg)
	return msg, nil
}

// ListMessages returns a room's messages in chronological order.
func (s *Store) ListMessages(ctx context.Context, roomID string) ([]MessageRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, chat_room_id, user_id, content, is_ai, created_at
		FROM chat_messages WHERE chat_room_id = ?
		ORDER BY created_at, id
	`, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []MessageRow
	for rows.Next() {
		var m MessageRow
		if err := rows.Scan(&m.ID, &m.ChatRoomID, &m.UserID, &m.Content, &m.IsAI, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// DeleteMessage removes a single message.
func (s *Store) DeleteMessage(ctx context.Context, messageID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM chat_messages WHERE id = ?`, messageID)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// =============================================================================
// SUBSCRIPTIONS
// =============================================================================

// SubscribeMessages registers a callback for inserts into the given room.
// The callback runs synchronously on the inserting goroutine; keep it cheap
// and hand off to a channel for anything slow. The returned function
// cancels the subscription.
func (s *Store) SubscribeMessages(roomID string, callback func(MessageRow)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.messageSubs[roomID] == nil {
		s.messageSubs[roomID] = make(map[int]func(MessageRow))
	}
	id := s.nextSubID
	s.nextSubID++
	s.messageSubs[roomID][id] = callback

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.messageSubs[roomID], id)
	}
}

// SubscribeRooms registers a callback for rooms created for the given owner.
// The returned function cancels the subscription.
func (s *Store) SubscribeRooms(userID string, callback func(RoomRow)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.roomSubs[userID] == nil {
		s.roomSubs[userID] = make(map[int]func(RoomRow))
	}
	id := s.nextSubID
	s.nextSubID++
	s.roomSubs[userID][id] = callback

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.roomSubs[userID], id)
	}
}

func (s *Store) notifyMessage(msg MessageRow) {
	s.mu.Lock()
	subs := make([]func(MessageRow), 0, len(s.messageSubs[msg.ChatRoomID]))
	for _, cb := range s.messageSubs[msg.ChatRoomID] {
		subs = append(subs, cb)
	}
	s.mu.Unlock()

	for _, cb := range subs {
		cb(msg)
	}
}

func (s *Store) notifyRoom(room RoomRow) {
	s.mu.Lock()
	subs := make([]func(RoomRow), 0, len(s.roomSubs[room.UserID]))
	for _, cb := range s.roomSubs[room.UserID] {
		subs = append(subs, cb)
	}
	s.mu.Unlock()

	for _, cb := range subs {
		cb(room)
	}
}
