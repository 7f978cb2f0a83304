// Package enhance polishes generated prompts and preview replies through an
// OpenAI-compatible chat completions endpoint.
package enhance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultBaseURL      = "https://api.openai.com/v1"
	CompletionsEndpoint = "/chat/completions"
	DefaultModel        = "gpt-4o-mini"
)

var (
	ErrNoToken           = errors.New("no API token available")
	ErrMalformedResponse = errors.New("malformed completion response")
)

// StatusError is returned for non-2xx responses
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("completion API error: status %d, body: %s", e.StatusCode, e.Body)
}

// Message is one chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the subset of the chat completions request we send
type CompletionRequest struct {
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Messages    []Message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Completer returns the trimmed content of the first choice
type Completer interface {
	Complete(ctx context.Context, token string, req CompletionRequest) (string, error)
}

// Client talks to the completions endpoint. It holds no credentials; the
// token is passed per call.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimSuffix(u, "/")
		}
	}
}

func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a client for the default endpoint
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the model used when a request leaves it empty
func (c *Client) Model() string {
	return c.model
}

// Complete sends one request. No retries.
func (c *Client) Complete(ctx context.Context, token string, req CompletionRequest) (string, error) {
	if token == "" {
		return "", ErrNoToken
	}
	if req.Model == "" {
		req.Model = c.model
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := c.baseURL + CompletionsEndpoint
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	log.Debug().
		Str("endpoint", endpoint).
		Str("model", req.Model).
		Float64("temperature", req.Temperature).
		Int("max_tokens", req.MaxTokens).
		Msg("Making completion request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(b)}
	}

	var parsed completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	log.Debug().Int("status", resp.StatusCode).Int("chars", len(content)).Msg("Completion request successful")
	return content, nil
}

// ResolveToken picks the server-side secret first, then the session token
func ResolveToken(server, session string) string {
	if t := strings.TrimSpace(server); t != "" {
		return t
	}
	return strings.TrimSpace(session)
}
