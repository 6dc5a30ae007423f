// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the message thread view and the message lifecycle:
// a submitted message is appended optimistically, the responder is asked for
// a reply in the background, and the counterpart's bubble is revealed after a
// short typing delay. Failures surface as apology replies through the same
// path, so the conversation never shows a raw error.
package chat
