// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the chatflow TUI.
//
// The palette is defined once in colors.go using AdaptiveColor pairs so every
// style works on light and dark terminals, and Theme bundles the configured
// lipgloss styles for the header, sidebar, bubbles, auth screens, and status
// bar. Components take a *Theme rather than building styles inline.
package styles
