// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sidebar implements the conversation list: selection, search,
// unread badges, and last-message previews. It owns which chat is active
// and announces changes with SelectedMsg; the thread pane reacts, never
// the other way around.
package sidebar
