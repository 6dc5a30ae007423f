// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for chatflow.
//
// Configuration lives in ~/.chatflow/config.toml with sensible defaults,
// environment variable overrides, and validation. A file watcher can reload
// the configuration while the app is running.
//
// Precedence (highest wins):
//   - Environment variables (CHATFLOW_*, GEMINI_API_KEY)
//   - ~/.chatflow/config.toml
//   - Built-in defaults
package config
