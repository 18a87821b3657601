// Package llm invokes the remote language model that produces document
// summaries.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/harshajxn/gecf-knowledge-insight/internal/domain"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "meta-llama/llama-4-maverick-17b-128e-instruct"
)

// Client handles communication with the OpenAI-compatible chat completions
// API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	maxRetries int
	httpClient *http.Client
}

// Config holds client construction options.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents the API request structure. Temperature is pinned to 0
// for deterministic sampling.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

// Response represents the API response structure.
type Response struct {
	ID      string   `json:"id"`
	Choices []Choice `json:"choices"`
	Error   *APIErr  `json:"error,omitempty"`
}

// Choice represents a single completion choice.
type Choice struct {
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// APIErr is the provider's error payload.
type APIErr struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// NewClient creates a new LLM client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// HasAPIKey reports whether the client was configured with credentials.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// Summarize produces a one-paragraph summary of the extracted text,
// selecting the prompt template by whether any GECF country was found.
// All invocation failures come back as catchable API errors.
func (c *Client) Summarize(ctx context.Context, text string, countriesFound []string) (string, error) {
	if c.apiKey == "" {
		return "", domain.APIError("GROQ_API_KEY is not configured", nil)
	}

	req := Request{
		Model: c.model,
		Messages: []Message{
			{Role: "user", Content: BuildPrompt(text, len(countriesFound) > 0)},
		},
		Temperature: 0,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", domain.APIError("marshal request", err)
	}

	resp, err := c.retryWithBackoff(ctx, func() (*http.Response, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.baseURL+"/chat/completions", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
		return c.httpClient.Do(httpReq)
	})
	if err != nil {
		return "", domain.APIError("send completion request", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.APIError("read response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", domain.APIError(fmt.Sprintf("API returned status %d: %s", resp.StatusCode, truncate(string(respBody), 300)), nil)
	}

	var apiResp Response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", domain.APIError("parse API response", err)
	}
	if apiResp.Error != nil {
		return "", domain.APIError(apiResp.Error.Message, nil)
	}
	if len(apiResp.Choices) == 0 {
		return "", domain.APIError("no choices in API response", nil)
	}

	content := strings.TrimSpace(apiResp.Choices[0].Message.Content)
	if content == "" {
		return "", domain.APIError("empty completion", nil)
	}
	return content, nil
}

// retryWithBackoff retries transient failures (network errors, 429, 5xx)
// with jittered exponential backoff.
func (c *Client) retryWithBackoff(ctx context.Context, do func() (*http.Response, error)) (*http.Response, error) {
	var lastErr error
	backoff := 500 * time.Millisecond

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			jitter := time.Duration(rand.Int63n(int64(backoff / 2)))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff + jitter):
			}
			backoff *= 2
		}

		resp, err := do()
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(body), 200))
			continue
		}
		return resp, nil
	}

	return nil, fmt.Errorf("after %d attempts: %w", c.maxRetries, lastErr)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
