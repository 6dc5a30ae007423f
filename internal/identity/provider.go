// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package identity

import (
	"context"
	"errors"
	"time"

	"github.com/jeranaias/chatflow-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("an account with this email already exists")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrMFARequired        = errors.New("a verification code is required")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrNoSession          = errors.New("not signed in")
)

// =============================================================================
// SESSION
// =============================================================================

// Session is an authenticated sign-in.
type Session struct {
	Token     string
	User      model.User
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// =============================================================================
// PROVIDER INTERFACE
// =============================================================================

// Provider authenticates users and manages the active session.
type Provider interface {
	// SignUp creates an account and signs it in.
	SignUp(ctx context.Context, name, email, password string) (*Session, error)

	// SignIn verifies credentials. When MFA is enabled for the account and
	// code is empty, it fails with ErrMFARequired; the caller retries with
	// the TOTP code.
	SignIn(ctx context.Context, email, password, code string) (*Session, error)

	// SignOut invalidates the active session.
	SignOut(ctx context.Context) error

	// CurrentSession returns the active session, or ErrNoSession.
	CurrentSession(ctx context.Context) (*Session, error)
}
