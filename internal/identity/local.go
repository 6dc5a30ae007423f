// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package identity

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/pbkdf2"

	"github.com/jeranaias/chatflow-tui/internal/model"
	"github.com/jeranaias/chatflow-tui/internal/util"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// pbkdf2Iterations matches OWASP guidance for PBKDF2-SHA256.
	pbkdf2Iterations = 600000
	keySize          = 32
	saltSize         = 32

	minPasswordLength = 8

	totpIssuer = "chatflow"
)

// =============================================================================
// CREDENTIAL STORE
// =============================================================================

// userRecord is one account in the credential file.
type userRecord struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	AvatarURL    string `json:"avatar_url"`
	Salt         string `json:"salt"`
	PasswordHash string `json:"password_hash"`
	TOTPSecret   string `json:"totp_secret,omitempty"`
}

// credentialFile is the on-disk JSON shape.
type credentialFile struct {
	Users []userRecord `json:"users"`
}

// =============================================================================
// LOCAL PROVIDER
// =============================================================================

// LocalProvider is a file-backed Provider.
//
// Accounts live in a 0600 JSON file; sessions are in-memory only and die
// with the process.
type LocalProvider struct {
	path            string
	sessionDuration time.Duration
	mfaEnabled      bool

	mu      sync.Mutex
	session *Session
}

// NewLocalProvider creates a provider backed by the credential file at path.
func NewLocalProvider(path string, sessionDuration time.Duration, mfaEnabled bool) *LocalProvider {
	if sessionDuration <= 0 {
		sessionDuration = 8 * time.Hour
	}
	return &LocalProvider{
		path:            path,
		sessionDuration: sessionDuration,
		mfaEnabled:      mfaEnabled,
	}
}

// SignUp creates an account and signs it in.
func (p *LocalProvider) SignUp(ctx context.Context, name, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	creds, err := p.load()
	if err != nil {
		return nil, err
	}
	if _, ok := findUser(creds, email); ok {
		return nil, ErrUserExists
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	rec := userRecord{
		ID:           "user-" + uuid.NewString(),
		Email:        email,
		FullName:     name,
		Salt:         hex.EncodeToString(salt),
		PasswordHash: hex.EncodeToString(hashPassword(password, salt)),
	}

	if p.mfaEnabled {
		key, err := totp.Generate(totp.GenerateOpts{
			Issuer:      totpIssuer,
			AccountName: email,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to generate TOTP secret: %w", err)
		}
		rec.TOTPSecret = key.Secret()
	}

	creds.Users = append(creds.Users, rec)
	if err := p.save(creds); err != nil {
		return nil, err
	}

	return p.startSession(rec)
}

// SignIn verifies credentials against the credential file.
func (p *LocalProvider) SignIn(ctx context.Context, email, password, code string) (*Session, error) {
	email = normalizeEmail(email)

	p.mu.Lock()
	defer p.mu.Unlock()

	creds, err := p.load()
	if err != nil {
		return nil, err
	}

	rec, ok := findUser(creds, email)
	if !ok {
		// Burn a hash anyway so a missing account is not distinguishable
		// from a wrong password by timing.
		hashPassword(password, make([]byte, saltSize))
		return nil, ErrInvalidCredentials
	}

	salt, err := hex.DecodeString(rec.Salt)
	if err != nil {
		return nil, fmt.Errorf("corrupt credential record for %s: %w", email, err)
	}
	want, err := hex.DecodeString(rec.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("corrupt credential record for %s: %w", email, err)
	}

	got := hashPassword(password, salt)
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return nil, ErrInvalidCredentials
	}

	if p.mfaEnabled && rec.TOTPSecret != "" {
		if code == "" {
			return nil, ErrMFARequired
		}
		if !totp.Validate(code, rec.TOTPSecret) {
			return nil, ErrInvalidCode
		}
	}

	return p.startSession(rec)
}

// SignOut invalidates the active session.
func (p *LocalProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.session = nil
	return nil
}

// CurrentSession returns the active session if it has not expired.
func (p *LocalProvider) CurrentSession(ctx context.Context) (*Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session == nil {
		return nil, ErrNoSession
	}
	if p.session.Expired() {
		p.session = nil
		return nil, ErrNoSession
	}
	return p.session, nil
}

// TOTPSecret returns the enrolled TOTP secret for an account, for display
// during sign-up when MFA is enabled.
func (p *LocalProvider) TOTPSecret(email string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	creds, err := p.load()
	if err != nil {
		return "", err
	}
	rec, ok := findUser(creds, normalizeEmail(email))
	if !ok {
		return "", ErrInvalidCredentials
	}
	return rec.TOTPSecret, nil
}

// =============================================================================
// INTERNALS
// =============================================================================

func (p *LocalProvider) startSession(rec userRecord) (*Session, error) {
	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p.session = &Session{
		Token: token,
		User: model.User{
			ID:        rec.ID,
			Name:      rec.FullName,
			Email:     rec.Email,
			AvatarURL: rec.AvatarURL,
			IsOnline:  true,
		},
		CreatedAt: now,
		ExpiresAt: now.Add(p.sessionDuration),
	}
	return p.session, nil
}

// newSessionToken creates a cryptographically random session token.
// 128 bits of randomness, formatted sess_<32 hex chars>.
func newSessionToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("cryptographic random generation failed: %w", err)
	}
	return "sess_" + hex.EncodeToString(b), nil
}

func hashPassword(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keySize, sha256.New)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func findUser(creds *credentialFile, email string) (userRecord, bool) {
	for _, u := range creds.Users {
		if u.Email == email {
			return u, true
		}
	}
	return userRecord{}, false
}

// load reads the credential file, returning an empty store when the file
// does not exist yet.
func (p *LocalProvider) load() (*credentialFile, error) {
	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return &credentialFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	var creds credentialFile
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	return &creds, nil
}

// save writes the credential file atomically with 0600 permissions.
func (p *LocalProvider) save(creds *credentialFile) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	if err := util.AtomicWriteFile(p.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	return nil
}
