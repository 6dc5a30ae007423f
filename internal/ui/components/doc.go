// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI pieces for the chatflow TUI:
// message bubbles, the typing indicator, and markdown/code rendering.
// Components are pure view helpers; they hold no application state beyond
// what the caller passes in.
package components
