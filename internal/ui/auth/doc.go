// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth implements the sign-in and sign-up screens. Credentials go
// through an identity.Provider; a successful authentication is announced
// with SignedInMsg and the dashboard takes over. Provider errors render as
// a single error line under the form, never as a crash or a raw dump.
package auth
