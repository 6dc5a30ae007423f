// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// =============================================================================
// DEFAULT CONFIG TESTS
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Responder.Model != "gemini-2.5-flash" {
		t.Errorf("unexpected default model: %s", cfg.Responder.Model)
	}
	if cfg.Responder.RevealDelayMS != 1000 {
		t.Errorf("expected 1000ms reveal delay, got %d", cfg.Responder.RevealDelayMS)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("expected dark theme, got %s", cfg.UI.Theme)
	}
	if !cfg.Storage.Seed {
		t.Error("seeding should default to on")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

// =============================================================================
// LOAD TESTS
// =============================================================================

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
version = "1.0.0"

[responder]
model = "gemini-2.5-pro"
timeout_secs = 60

[ui]
theme = "light"
sidebar_width = 40

[storage]
seed = false
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Responder.Model != "gemini-2.5-pro" {
		t.Errorf("model not loaded: %s", cfg.Responder.Model)
	}
	if cfg.Responder.TimeoutSecs != 60 {
		t.Errorf("timeout not loaded: %d", cfg.Responder.TimeoutSecs)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme not loaded: %s", cfg.UI.Theme)
	}
	if cfg.Storage.Seed {
		t.Error("seed=false not loaded")
	}

	// Unset fields fall back to defaults.
	if cfg.Responder.BaseURL == "" {
		t.Error("base_url should fall back to default")
	}
	if cfg.Responder.RevealDelayMS != 1000 {
		t.Errorf("reveal delay should default, got %d", cfg.Responder.RevealDelayMS)
	}
}

func TestLoadFromPathInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[ui]
theme = "neon"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Error("expected validation error for unknown theme")
	}
}

func TestLoadFixesPermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := os.WriteFile(path, []byte("version = \"1.0.0\"\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadFromPath(path); err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected permissions fixed to 0600, got %o", info.Mode().Perm())
	}
}

// =============================================================================
// SAVE / ROUND-TRIP TESTS
// =============================================================================

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Responder.Model = "gemini-2.5-pro"
	cfg.UI.SidebarWidth = 48

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions, got %o", info.Mode().Perm())
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Responder.Model != cfg.Responder.Model {
		t.Errorf("model did not round-trip: %s", loaded.Responder.Model)
	}
	if loaded.UI.SidebarWidth != cfg.UI.SidebarWidth {
		t.Errorf("sidebar width did not round-trip: %d", loaded.UI.SidebarWidth)
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDE TESTS
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("CHATFLOW_MODEL", "gemini-exp")
	t.Setenv("CHATFLOW_THEME", "light")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Responder.APIKey != "gem-key" {
		t.Errorf("GEMINI_API_KEY not applied: %s", cfg.Responder.APIKey)
	}
	if cfg.Responder.Model != "gemini-exp" {
		t.Errorf("CHATFLOW_MODEL not applied: %s", cfg.Responder.Model)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("CHATFLOW_THEME not applied: %s", cfg.UI.Theme)
	}
}

func TestChatflowKeyWinsOverGemini(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("CHATFLOW_API_KEY", "flow-key")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Responder.APIKey != "flow-key" {
		t.Errorf("CHATFLOW_API_KEY should take precedence, got %s", cfg.Responder.APIKey)
	}
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad theme", func(c *Config) { c.UI.Theme = "rainbow" }, "ui.theme"},
		{"sidebar too narrow", func(c *Config) { c.UI.SidebarWidth = 4 }, "ui.sidebar_width"},
		{"bad url", func(c *Config) { c.Responder.BaseURL = "not a url" }, "responder.base_url"},
		{"timeout too long", func(c *Config) { c.Responder.TimeoutSecs = 9999 }, "responder.timeout_secs"},
		{"negative reveal", func(c *Config) { c.Responder.RevealDelayMS = -1 }, "responder.reveal_delay_ms"},
		{"negative rate", func(c *Config) { c.Responder.RequestsPerMinute = -5 }, "responder.requests_per_minute"},
		{"session too long", func(c *Config) { c.Identity.SessionDurationHours = 400 }, "identity.session_duration_hours"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("error %q should name field %s", err.Error(), tc.field)
			}
		})
	}
}

func TestValidateZeroRateAllowed(t *testing.T) {
	cfg := Default()
	cfg.Responder.RequestsPerMinute = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("rate limit 0 (disabled) should validate: %v", err)
	}
}

// =============================================================================
// REDACTION TESTS
// =============================================================================

func TestStringRedactsAPIKey(t *testing.T) {
	cfg := Default()
	cfg.Responder.APIKey = "super-secret-key"

	s := cfg.String()
	if strings.Contains(s, "super-secret-key") {
		t.Error("String() must not expose the API key")
	}
	if !strings.Contains(s, "[REDACTED]") {
		t.Error("String() should mark the key as redacted")
	}
	if cfg.Responder.APIKey != "super-secret-key" {
		t.Error("String() must not mutate the original config")
	}
}

// =============================================================================
// GLOBAL SINGLETON TESTS
// =============================================================================

func TestSetGlobal(t *testing.T) {
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	cfg := Default()
	cfg.Responder.Model = "pinned-model"
	SetGlobal(cfg)

	if got := Global(); got.Responder.Model != "pinned-model" {
		t.Errorf("Global() did not return the set config: %s", got.Responder.Model)
	}
}
