// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package llm provides the client for hosted chat-completion APIs.
package llm

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Configuration constants for the chat-completion API.
const (
	// DefaultBaseURL is the base URL for the chat-completion API.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is the model used when none is configured.
	DefaultModel = "gpt-4o-mini"

	// DefaultTimeout is the wall-clock upper bound for a single request.
	// A caller-supplied context deadline takes precedence.
	DefaultTimeout = 60 * time.Second

	// DefaultTemperature is applied when the caller does not set one.
	DefaultTemperature = 0.7

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

// sharedHTTPClient pools connections across all requests.
// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	// No client-level timeout: per-request deadlines come from the context.
}

// =============================================================================
// ERROR TYPES
// =============================================================================

// Sentinel errors for the client's failure taxonomy.
var (
	// ErrNotConfigured indicates the API credential is not set. Calls fail
	// immediately without attempting the network.
	ErrNotConfigured = errors.New("API key not configured")

	// ErrAuthFailed indicates authentication failed (invalid or expired key).
	ErrAuthFailed = errors.New("authentication failed")

	// ErrRateLimited indicates too many requests were made.
	ErrRateLimited = errors.New("rate limited")

	// ErrServer indicates a 5xx response from the API.
	ErrServer = errors.New("server error")

	// ErrNetwork indicates the request never produced an HTTP response.
	ErrNetwork = errors.New("network error")

	// ErrEmptyResponse indicates the API returned a success with no usable
	// text. Callers never receive an empty success.
	ErrEmptyResponse = errors.New("model returned an empty response")
)

// APIError represents a structured error response from the API.
type APIError struct {
	Code    string
	Message string
	Status  int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API error [%s] (HTTP %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("API error (HTTP %d): %s", e.Status, e.Message)
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// ChatMessage represents a single message in a chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`    // "user", "assistant", or "system"
	Content string `json:"content"` // The message content
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) ChatMessage {
	return ChatMessage{Role: "user", Content: content}
}

// NewAssistantMessage creates a new assistant message.
func NewAssistantMessage(content string) ChatMessage {
	return ChatMessage{Role: "assistant", Content: content}
}

// NewSystemMessage creates a new system message.
func NewSystemMessage(content string) ChatMessage {
	return ChatMessage{Role: "system", Content: content}
}

// chatRequest is the request body for the chat completions endpoint.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// chatResponse is the response body from the chat completions endpoint.
type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// content returns the text of the first choice, or empty string if none.
func (r *chatResponse) content() string {
	if len(r.Choices) > 0 {
		return r.Choices[0].Message.Content
	}
	return ""
}

// apiErrorResponse represents a structured error payload from the API.
type apiErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options tunes a single generation request. A nil Options applies defaults.
// The client does not retain it.
type Options struct {
	// Temperature in [0,2]. Nil means DefaultTemperature; an explicit
	// zero requests deterministic output.
	Temperature *float64

	// MaxTokens caps the generated output. Zero means no explicit cap.
	MaxTokens int

	// Model overrides the configured model for this request.
	Model string
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is a stateless client for an OpenAI-compatible chat-completion API.
//
// The Client is safe for concurrent use.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	timeout time.Duration

	// limiter smooths bursts of requests toward the provider. Waiting
	// honors the caller's context, so cancellation still propagates.
	limiter *rate.Limiter
}

// NewClient creates a new client with the given API key.
//
// If the key is empty the client is still created, but every generation call
// fails with ErrNotConfigured without attempting the network.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		timeout: DefaultTimeout,
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
	}
}

// WithBaseURL sets a custom base URL for the API.
func (c *Client) WithBaseURL(url string) *Client {
	if url != "" {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
	return c
}

// WithModel sets the default model for requests.
func (c *Client) WithModel(model string) *Client {
	if model != "" {
		c.model = model
	}
	return c
}

// WithTimeout sets the internal request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	if timeout > 0 {
		c.timeout = timeout
	}
	return c
}

// IsConfigured returns true if the client has an API key.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// Model returns the configured default model.
func (c *Client) Model() string {
	return c.model
}

// =============================================================================
// GENERATION
// =============================================================================

// Generate performs a chat completion for the given system prompt and
// ordered message history, returning the generated text trimmed.
//
// A non-empty systemPrompt is prepended as a synthetic leading message with
// role "system". If ctx carries a deadline it is honored as-is; otherwise the
// client applies its internal timeout. No retries are attempted.
func (c *Client) Generate(ctx context.Context, systemPrompt string, messages []ChatMessage, opts *Options) (string, error) {
	if !c.IsConfigured() {
		return "", fmt.Errorf("%w: missing credential", ErrNotConfigured)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	reqBody := chatRequest{
		Model:       c.model,
		Temperature: DefaultTemperature,
	}
	if opts != nil {
		if opts.Model != "" {
			reqBody.Model = opts.Model
		}
		if opts.Temperature != nil {
			reqBody.Temperature = *opts.Temperature
		}
		if opts.MaxTokens > 0 {
			reqBody.MaxTokens = opts.MaxTokens
		}
	}

	reqBody.Messages = make([]ChatMessage, 0, len(messages)+1)
	if systemPrompt != "" {
		reqBody.Messages = append(reqBody.Messages, NewSystemMessage(systemPrompt))
	}
	reqBody.Messages = append(reqBody.Messages, messages...)

	resp, err := c.doRequest(ctx, reqBody)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.content())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// OneShot performs a single-turn generation with no prior history.
// Equivalent to Generate with a single synthetic user message.
func (c *Client) OneShot(ctx context.Context, systemPrompt, userText string, opts *Options) (string, error) {
	return c.Generate(ctx, systemPrompt, []ChatMessage{NewUserMessage(userText)}, opts)
}

// =============================================================================
// TRANSPORT
// =============================================================================

// doRequest performs a single HTTP request to the chat completions endpoint.
// SECURITY: Clears the Authorization header after the request to keep the
// credential out of request dumps.
func (c *Client) doRequest(ctx context.Context, reqBody chatRequest) (*chatResponse, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "clippy-ai/0.1.0")

	start := time.Now()
	resp, err := sharedHTTPClient.Do(req)
	req.Header.Del("Authorization")

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	log.Printf("API response: %d (%v)", resp.StatusCode, time.Since(start).Round(time.Millisecond))

	body, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, shapeError(resp.StatusCode, body)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &chatResp, nil
}

// readResponse reads the response body with a size limit.
// SECURITY: Response size limit prevents memory exhaustion.
func readResponse(resp *http.Response) ([]byte, error) {
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// shapeError converts a non-success HTTP response into the client's error
// taxonomy. It prefers the structured error payload's message and falls back
// to the raw body when parsing fails.
func shapeError(statusCode int, body []byte) error {
	detail := strings.TrimSpace(string(body))
	code := ""

	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		detail = apiErr.Error.Message
		code = apiErr.Error.Code
	}

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrAuthFailed, detail)
	case statusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, detail)
	case statusCode >= 500:
		return fmt.Errorf("%w (HTTP %d): %s", ErrServer, statusCode, detail)
	default:
		return &APIError{Code: code, Message: detail, Status: statusCode}
	}
}
