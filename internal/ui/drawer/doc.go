// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package drawer implements the profile drawer: current user details, a
// dark/light theme toggle, and sign-out. Whether the drawer is open is the
// dashboard's business; this model only handles its contents.
package drawer
