// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/jeranaias/chatflow-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete chatflow configuration.
type Config struct {
	Version string `toml:"version"`

	// Responder (Gemini) configuration
	Responder ResponderConfig `toml:"responder"`

	// UI configuration
	UI UIConfig `toml:"ui"`

	// Storage configuration
	Storage StorageConfig `toml:"storage"`

	// Identity configuration
	Identity IdentityConfig `toml:"identity"`
}

// ResponderConfig contains the response-generation service configuration.
type ResponderConfig struct {
	// APIKey is the Gemini API key. Usually set via GEMINI_API_KEY or
	// CHATFLOW_API_KEY rather than stored in the file.
	APIKey string `toml:"api_key"`
	// Model is the generation model to request.
	Model string `toml:"model"`
	// BaseURL is the API endpoint root.
	BaseURL string `toml:"base_url"`
	// TimeoutSecs bounds each generation request.
	TimeoutSecs int `toml:"timeout_secs"`
	// RevealDelayMS is how long a finished reply stays hidden behind the
	// typing indicator before it is shown, in milliseconds.
	RevealDelayMS int `toml:"reveal_delay_ms"`
	// RequestsPerMinute caps generation calls; 0 disables the limiter.
	RequestsPerMinute int `toml:"requests_per_minute"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme"`
	// SidebarWidth is the conversation list width in columns.
	SidebarWidth int `toml:"sidebar_width"`
	// CompactMode collapses message padding for small terminals.
	CompactMode bool `toml:"compact_mode"`
	// Markdown renders message bodies through the markdown renderer.
	Markdown bool `toml:"markdown"`
}

// StorageConfig contains the message store configuration.
type StorageConfig struct {
	// Path is the SQLite database location (empty = ~/.chatflow/chatflow.db).
	Path string `toml:"path"`
	// Seed provisions demo conversations into an empty database.
	Seed bool `toml:"seed"`
}

// IdentityConfig contains the sign-in provider configuration.
type IdentityConfig struct {
	// CredentialsPath is the credential store location
	// (empty = ~/.chatflow/credentials.json).
	CredentialsPath string `toml:"credentials_path"`
	// SessionDurationHours is how long a session token remains valid.
	SessionDurationHours int `toml:"session_duration_hours"`
	// MFAEnabled requires a TOTP code after password verification.
	MFAEnabled bool `toml:"mfa_enabled"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Responder: ResponderConfig{
			Model:             "gemini-2.5-flash",
			BaseURL:           "https://generativelanguage.googleapis.com/v1beta",
			TimeoutSecs:       30,
			RevealDelayMS:     1000,
			RequestsPerMinute: 30,
		},

		UI: UIConfig{
			Theme:        "dark",
			SidebarWidth: 32,
			CompactMode:  false,
			Markdown:     true,
		},

		Storage: StorageConfig{
			Path: "",
			Seed: true,
		},

		Identity: IdentityConfig{
			CredentialsPath:      "",
			SessionDurationHours: 8,
			MFAEnabled:           false,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the chatflow configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".chatflow"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// DatabasePath resolves the storage path, falling back to the default
// location inside the config directory.
func (c *Config) DatabasePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "chatflow.db"), nil
}

// CredentialsPath resolves the identity store path, falling back to the
// default location inside the config directory.
func (c *Config) CredentialsPath() (string, error) {
	if c.Identity.CredentialsPath != "" {
		return c.Identity.CredentialsPath, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "credentials.json"), nil
}

// ensureSecurePermissions checks and fixes permissions on config files.
// SECURITY: Config files should be 0600 (owner read/write only) to protect API keys.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	mode := info.Mode().Perm()
	if mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}

	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from ~/.chatflow/config.toml, falling back to
// defaults when the file does not exist. Environment overrides are applied
// last, then the result is validated.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := loadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. Used by tests and the --config flag.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := loadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadTOML decodes a TOML file over the defaults already in cfg.
// SECURITY: Checks and fixes file permissions on load.
func loadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		// Permissions might not be fixable on all systems; warn and continue.
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}

	if cfg.Responder.Model == "" {
		cfg.Responder.Model = defaults.Responder.Model
	}
	if cfg.Responder.BaseURL == "" {
		cfg.Responder.BaseURL = defaults.Responder.BaseURL
	}
	if cfg.Responder.TimeoutSecs == 0 {
		cfg.Responder.TimeoutSecs = defaults.Responder.TimeoutSecs
	}
	if cfg.Responder.RevealDelayMS == 0 {
		cfg.Responder.RevealDelayMS = defaults.Responder.RevealDelayMS
	}

	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
	if cfg.UI.SidebarWidth == 0 {
		cfg.UI.SidebarWidth = defaults.UI.SidebarWidth
	}

	if cfg.Identity.SessionDurationHours == 0 {
		cfg.Identity.SessionDurationHours = defaults.Identity.SessionDurationHours
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
// SECURITY: Creates config files with 0600 permissions (owner read/write only).
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# chatflow configuration file")
	fmt.Fprintln(&buf, "# Generated by chatflow - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - CHATFLOW_API_KEY: overrides responder.api_key
//   - GEMINI_API_KEY: overrides responder.api_key (lower precedence)
//   - CHATFLOW_MODEL: overrides responder.model
//   - CHATFLOW_BASE_URL: overrides responder.base_url
//   - CHATFLOW_THEME: overrides ui.theme
//   - CHATFLOW_DB: overrides storage.path
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Responder.APIKey = key
	}
	if key := os.Getenv("CHATFLOW_API_KEY"); key != "" {
		c.Responder.APIKey = key
	}
	if model := os.Getenv("CHATFLOW_MODEL"); model != "" {
		c.Responder.Model = model
	}
	if base := os.Getenv("CHATFLOW_BASE_URL"); base != "" {
		c.Responder.BaseURL = base
	}
	if theme := os.Getenv("CHATFLOW_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if db := os.Getenv("CHATFLOW_DB"); db != "" {
		c.Storage.Path = db
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme %q (valid: dark, light, auto)", c.UI.Theme),
		})
	}

	if c.UI.SidebarWidth < 16 || c.UI.SidebarWidth > 80 {
		errs = append(errs, ValidationError{
			Field:   "ui.sidebar_width",
			Message: fmt.Sprintf("must be between 16 and 80, got %d", c.UI.SidebarWidth),
		})
	}

	if u, err := url.Parse(c.Responder.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "responder.base_url",
			Message: fmt.Sprintf("invalid URL %q", c.Responder.BaseURL),
		})
	}

	if c.Responder.TimeoutSecs < 1 || c.Responder.TimeoutSecs > 300 {
		errs = append(errs, ValidationError{
			Field:   "responder.timeout_secs",
			Message: fmt.Sprintf("must be between 1 and 300, got %d", c.Responder.TimeoutSecs),
		})
	}

	if c.Responder.RevealDelayMS < 0 || c.Responder.RevealDelayMS > 10000 {
		errs = append(errs, ValidationError{
			Field:   "responder.reveal_delay_ms",
			Message: fmt.Sprintf("must be between 0 and 10000, got %d", c.Responder.RevealDelayMS),
		})
	}

	if c.Responder.RequestsPerMinute < 0 {
		errs = append(errs, ValidationError{
			Field:   "responder.requests_per_minute",
			Message: "must not be negative",
		})
	}

	if c.Identity.SessionDurationHours < 1 || c.Identity.SessionDurationHours > 168 {
		errs = append(errs, ValidationError{
			Field:   "identity.session_duration_hours",
			Message: fmt.Sprintf("must be between 1 and 168, got %d", c.Identity.SessionDurationHours),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// REDACTION
// =============================================================================

// String returns a string representation of the config for debugging.
// SECURITY: Redacts the API key to prevent accidental exposure in logs.
func (c *Config) String() string {
	safe := *c
	if safe.Responder.APIKey != "" {
		safe.Responder.APIKey = "[REDACTED]"
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(safe); err != nil {
		return fmt.Sprintf("config{version: %s}", c.Version)
	}
	return buf.String()
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		globalConfigMu.Lock()
		defer globalConfigMu.Unlock()
		if globalConfig != nil {
			// SetGlobal ran before first access.
			return
		}
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
			cfg.ApplyEnvOverrides()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
