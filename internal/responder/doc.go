// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package responder provides the HTTP client for the Gemini generation API.
//
// The chat window talks to one exported entry point, GenerateResponse, which
// never returns an error: every failure mode is absorbed into a canned
// apology string so the conversation flow can treat replies uniformly. The
// lower-level request path categorizes failures (missing key, auth, quota,
// network, timeout) so the apology matches what actually went wrong.
package responder
