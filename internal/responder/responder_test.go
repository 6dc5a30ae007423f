// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package responder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jeranaias/chatflow-tui/internal/model"
)

// newTestServer returns a server that replies with the given text for every
// generateContent call, recording the last prompt it received.
func newTestServer(t *testing.T, reply string, lastPrompt *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if lastPrompt != nil && len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			*lastPrompt = req.Contents[0].Parts[0].Text
		}

		json.NewEncoder(w).Encode(generateResponse{
			Candidates: []candidate{
				{Content: content{Role: "model", Parts: []part{{Text: reply}}}},
			},
		})
	}))
}

func newTestClient(baseURL string) *Client {
	return NewClientWithConfig(&ClientConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
	})
}

// =============================================================================
// GENERATION TESTS
// =============================================================================

func TestGenerateResponse_Success(t *testing.T) {
	var prompt string
	srv := newTestServer(t, "  not much, you?  ", &prompt)
	defer srv.Close()

	client := newTestClient(srv.URL)
	reply := client.GenerateResponse(context.Background(), "hey, what's up?", "", nil)

	if reply != "not much, you?" {
		t.Errorf("unexpected reply: %q", reply)
	}
	if !strings.Contains(prompt, "User: hey, what's up?") {
		t.Errorf("prompt missing user message: %q", prompt)
	}
	if !strings.HasSuffix(prompt, "Respond casually:") {
		t.Errorf("prompt missing casual suffix: %q", prompt)
	}
	if strings.Contains(prompt, "Previous conversation:") {
		t.Error("prompt should omit history section when history is empty")
	}
}

func TestGenerateResponse_IncludesHistory(t *testing.T) {
	var prompt string
	srv := newTestServer(t, "ok", &prompt)
	defer srv.Close()

	history := []model.TranscriptEntry{
		{Role: model.RoleModel, Content: "hi"},
		{Role: model.RoleUser, Content: "hello"},
	}

	client := newTestClient(srv.URL)
	client.GenerateResponse(context.Background(), "how are you?", "", history)

	if !strings.Contains(prompt, "Previous conversation:") {
		t.Fatalf("prompt missing history section: %q", prompt)
	}
	if !strings.Contains(prompt, "AI: hi\n") {
		t.Errorf("prompt missing model turn: %q", prompt)
	}
	if !strings.Contains(prompt, "User: hello\n") {
		t.Errorf("prompt missing user turn: %q", prompt)
	}
}

func TestGenerateResponse_MissingKeyFallback(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{})

	reply := client.GenerateResponse(context.Background(), "hey", "", nil)
	if reply != fallbackMissingKey {
		t.Errorf("expected missing-key apology, got %q", reply)
	}
}

func TestGenerateResponse_AuthFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	reply := client.GenerateResponse(context.Background(), "hey", "", nil)
	if reply != fallbackAuth {
		t.Errorf("expected auth apology, got %q", reply)
	}
}

func TestGenerateResponse_QuotaFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	reply := client.GenerateResponse(context.Background(), "hey", "", nil)
	if reply != fallbackQuota {
		t.Errorf("expected quota apology, got %q", reply)
	}
}

func TestGenerateResponse_NetworkFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := newTestClient(srv.URL)
	reply := client.GenerateResponse(context.Background(), "hey", "", nil)
	if reply != fallbackNetwork {
		t.Errorf("expected network apology, got %q", reply)
	}
}

func TestGenerateResponse_GenericFallbackOnEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	reply := client.GenerateResponse(context.Background(), "hey", "", nil)
	if reply != fallbackGeneric {
		t.Errorf("expected generic apology, got %q", reply)
	}
}

// =============================================================================
// RATE LIMITER TESTS
// =============================================================================

func TestRateLimiterCapsRequests(t *testing.T) {
	srv := newTestServer(t, "ok", nil)
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{
		APIKey:            "test-key",
		BaseURL:           srv.URL,
		RequestsPerMinute: 1,
	})

	first := client.GenerateResponse(context.Background(), "hey", "", nil)
	if first != "ok" {
		t.Fatalf("first request should pass, got %q", first)
	}

	second := client.GenerateResponse(context.Background(), "hey again", "", nil)
	if second != fallbackQuota {
		t.Errorf("second request should hit the limiter, got %q", second)
	}
}

// =============================================================================
// PROMPT ASSEMBLY TESTS
// =============================================================================

func TestBuildPromptWindowsHistory(t *testing.T) {
	history := make([]model.TranscriptEntry, 0, 10)
	for i := 0; i < 10; i++ {
		role := model.RoleUser
		if i%2 == 1 {
			role = model.RoleModel
		}
		history = append(history, model.TranscriptEntry{Role: role, Content: "turn-" + string(rune('0'+i))})
	}

	prompt := buildPrompt("latest", "", history)

	if strings.Contains(prompt, "turn-3") {
		t.Error("prompt should drop turns older than the window")
	}
	for i := 4; i < 10; i++ {
		want := "turn-" + string(rune('0'+i))
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing windowed turn %s", want)
		}
	}
}

func TestBuildPromptContextHint(t *testing.T) {
	prompt := buildPrompt("hey", "group chat named Project Phoenix", nil)
	if !strings.Contains(prompt, "Context: group chat named Project Phoenix\n\n") {
		t.Errorf("prompt missing context hint: %q", prompt)
	}
}

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestNewClientWithConfigFillsDefaults(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{APIKey: "k"})

	cfg := client.GetConfig()
	if cfg.BaseURL == "" {
		t.Error("BaseURL should default")
	}
	if cfg.Model != "gemini-2.5-flash" {
		t.Errorf("Model should default, got %s", cfg.Model)
	}
	if cfg.Timeout == 0 {
		t.Error("Timeout should default")
	}
}

func TestNilConfigUsesDefaults(t *testing.T) {
	client := NewClientWithConfig(nil)
	if client.GetConfig().Model != DefaultConfig().Model {
		t.Error("nil config should fall back to defaults")
	}
}
