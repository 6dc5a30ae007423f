// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store persists users, chat rooms, and messages in a local SQLite
// database and fans out insert notifications to in-process subscribers.
//
// The schema mirrors the hosted backend this client originally synced with
// (users keyed by external auth id, chat_rooms owned by a user, chat_messages
// flagged with is_ai), so a future sync layer can map rows one to one.
package store
