// Package openrouter is a stateless wrapper around the OpenRouter chat
// completion API. It has no dependency on the task store; the command layer
// funnels suggested titles back into store operations.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the OpenRouter API root.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// appTitle is sent in the X-Title attribution header required by the
	// provider's policy.
	appTitle = "TaskTamer"

	// appReferer identifies the calling application's origin.
	appReferer = "https://github.com/tasktamer/tasktamer"
)

// Client issues authenticated HTTP requests to OpenRouter. One instance is
// reusable per API key. It performs no retries; a failed call surfaces as
// an error to the caller.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

// NewClient creates a client for the given API key. A non-positive timeout
// falls back to 60 seconds.
func NewClient(apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// WithBaseURL overrides the API root. Used by tests against a local server.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("HTTP-Referer", appReferer)
	req.Header.Set("X-Title", appTitle)
}

// ValidateAPIKey issues a lightweight authenticated request and reports
// whether the credential is accepted. A transport failure or a non-2xx
// response means invalid, not a fatal error.
func (c *Client) ValidateAPIKey(ctx context.Context) bool {
	if c.apiKey == "" {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return false
	}
	c.setHeaders(req)
	resp, err := c.httpc.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// ListModels fetches the models available to the credential.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create models request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch models: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, apiErrorFrom(resp, raw)
	}

	var wrapper modelsResponse
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse models response: %w", err)
	}
	return wrapper.Data, nil
}

// CreateCompletion sends a chat-style completion request and returns the
// provider's response.
func (c *Client) CreateCompletion(ctx context.Context, request CompletionRequest) (CompletionResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("failed to create completion request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("completion request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return CompletionResponse{}, apiErrorFrom(resp, raw)
	}

	var completion CompletionResponse
	if err := json.Unmarshal(raw, &completion); err != nil {
		return CompletionResponse{}, fmt.Errorf("failed to parse completion response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return CompletionResponse{}, fmt.Errorf("completion response contained no choices")
	}
	return completion, nil
}

// apiErrorFrom extracts the provider's error message when the body carries
// one, otherwise falls back to the HTTP status.
func apiErrorFrom(resp *http.Response, raw []byte) error {
	var body apiError
	if err := json.Unmarshal(raw, &body); err == nil && body.Error.Message != "" {
		return fmt.Errorf("OpenRouter API error (%s): %s", resp.Status, body.Error.Message)
	}
	return fmt.Errorf("OpenRouter API error (%s): %s", resp.Status, strings.TrimSpace(string(raw)))
}

var numberedLine = regexp.MustCompile(`^\d+\.\s*`)

// ParseNumberedList extracts the items of a numbered list from the model's
// free-text reply: lines matching "N." are kept with the numbering
// stripped, everything else is discarded.
func ParseNumberedList(content string) []string {
	var items []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !numberedLine.MatchString(line) {
			continue
		}
		item := strings.TrimSpace(numberedLine.ReplaceAllString(line, ""))
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
