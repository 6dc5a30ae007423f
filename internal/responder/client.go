// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package responder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the responder client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeMissingKey
	ErrTypeAuth
	ErrTypeQuota
	ErrTypeNetwork
	ErrTypeTimeout
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrMissingKey = &ClientError{Type: ErrTypeMissingKey, Message: "API key not configured"}
	ErrQuota      = &ClientError{Type: ErrTypeQuota, Message: "quota exhausted"}
	ErrTimeout    = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// IsMissingKey checks if an error indicates a missing API key.
func IsMissingKey(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeMissingKey
	}
	return errors.Is(err, ErrMissingKey)
}

// IsAuth checks if an error is an authentication/key error.
func IsAuth(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeAuth
	}
	return false
}

// IsQuota checks if an error is a quota/rate-limit error.
func IsQuota(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeQuota
	}
	return errors.Is(err, ErrQuota)
}

// IsNetwork checks if an error is a connectivity error.
func IsNetwork(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeNetwork
	}
	return false
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the responder client.
type ClientConfig struct {
	// APIKey authenticates against the generation API. Empty is allowed;
	// requests then fail with ErrMissingKey and GenerateResponse falls
	// back to the configuration apology.
	APIKey string

	// BaseURL is the API endpoint root (default: Gemini v1beta).
	BaseURL string

	// Model to request (default: "gemini-2.5-flash").
	Model string

	// Timeout for generation requests (default: 30s).
	Timeout time.Duration

	// RequestsPerMinute caps generation calls; 0 disables the limiter.
	RequestsPerMinute int
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:           "https://generativelanguage.googleapis.com/v1beta",
		Model:             "gemini-2.5-flash",
		Timeout:           30 * time.Second,
		RequestsPerMinute: 30,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the Gemini generation API.
//
// The Client is thread-safe for concurrent use.
//
// Example:
//
//	client := responder.NewClientWithConfig(&responder.ClientConfig{APIKey: key})
//	reply := client.GenerateResponse(ctx, "hey!", "", history)
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new responder client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new responder client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if config.Model == "" {
		config.Model = "gemini-2.5-flash"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	var limiter *rate.Limiter
	if config.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerMinute)/60.0, config.RequestsPerMinute)
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: limiter,
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// SetModel updates the generation model.
func (c *Client) SetModel(model string) {
	c.config.Model = model
}

// =============================================================================
// GENERATION
// =============================================================================

// generateContent sends a single-turn prompt to the API and returns the
// first candidate's text.
func (c *Client) generateContent(ctx context.Context, prompt string) (string, error) {
	if c.config.APIKey == "" {
		return "", ErrMissingKey
	}

	if c.limiter != nil && !c.limiter.Allow() {
		return "", ErrQuota
	}

	reqBody := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{
			MaxOutputTokens: 1000,
			Temperature:     0.7,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	url := c.config.BaseURL + "/models/" + c.config.Model + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &ClientError{Type: ErrTypeNetwork, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", &ClientError{Type: ErrTypeNetwork, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.statusError(resp)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "empty response from model"}
	}

	var sb strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

// statusError maps a non-2xx response to a categorized ClientError.
func (c *Client) statusError(resp *http.Response) error {
	var apiErr apiError
	msg := "generation request failed: " + resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
		msg = apiErr.Error.Message
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &ClientError{Type: ErrTypeAuth, Message: msg}
	case http.StatusTooManyRequests:
		return &ClientError{Type: ErrTypeQuota, Message: msg}
	case http.StatusBadRequest:
		// The API reports invalid keys as 400 INVALID_ARGUMENT.
		if strings.Contains(strings.ToLower(msg), "api key") {
			return &ClientError{Type: ErrTypeAuth, Message: msg}
		}
		return &ClientError{Type: ErrTypeInvalidResponse, Message: msg}
	default:
		return &ClientError{Type: ErrTypeInvalidResponse, Message: msg}
	}
}
