// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for users, chats, and messages.
//
// The types here are deliberately simple: a Chat owns its ordered Message
// sequence, a Message is immutable once created, and all mutation happens
// in the UI controllers that work on copies of these values. The package
// also carries the seed data used to populate a fresh installation.
package model
