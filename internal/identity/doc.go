// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package identity provides sign-up and sign-in for the chat client.
//
// The local provider keeps credentials in a JSON file under the config
// directory: PBKDF2-hashed passwords, optional TOTP enrollment, and
// short-lived in-memory sessions. The Provider interface keeps the UI
// decoupled from the backing implementation so a hosted auth service can
// slot in later.
package identity
