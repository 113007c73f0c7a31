// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm is the boundary to the hosted chat-completion API. Callers
// build a Request and receive the first choice's text; everything about
// the wire format stays inside this package.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/studynotes/internal/httputil"
	"github.com/pdiddy/studynotes/pkg/types"
)

// DefaultBaseURL is the OpenAI API root.
const DefaultBaseURL = "https://api.openai.com/v1"

const defaultTimeout = 120 * time.Second

// Options tunes a single completion request.
type Options struct {
	Model       string
	Temperature float64

	// MaxTokens caps the response; zero omits the field.
	MaxTokens int

	// JSON constrains the response to a single JSON object.
	JSON bool
}

// OptionsFrom converts a per-task config block into request options.
func OptionsFrom(cfg types.CompletionConfig) Options {
	return Options{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}
}

// Request is one system+user exchange with the completion API.
type Request struct {
	System  string
	User    string
	Options Options
}

// Completer abstracts the completion API so tests can supply a fake.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// OpenAIClient calls an OpenAI-compatible /chat/completions endpoint.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	maxRetries int
	client     *http.Client
	logger     *slog.Logger
}

var _ Completer = (*OpenAIClient)(nil)

// NewOpenAIClient builds a client from cfg. An empty API key is a
// configuration error.
func NewOpenAIClient(cfg types.AIConfig, logger *slog.Logger) (*OpenAIClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: completion API key is required", types.ErrConfiguration)
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &OpenAIClient{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		maxRetries: cfg.MaxRetries,
		client:     &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends req and returns the first choice's message content. Every
// failure, including non-200 statuses and undecodable bodies, is returned
// wrapped in types.ErrTransport.
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	body := chatRequest{
		Model: req.Options.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		Temperature: req.Options.Temperature,
		MaxTokens:   req.Options.MaxTokens,
	}
	if req.Options.JSON {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("%w: marshaling request: %w", types.ErrTransport, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: creating request: %w", types.ErrTransport, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := httputil.DoWithRetry(ctx, c.client, httpReq, c.maxRetries, c.logger)
	if err != nil {
		return "", fmt.Errorf("%w: calling completion API: %w", types.ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %w", types.ErrTransport, err)
	}

	var chat chatResponse
	decodeErr := json.Unmarshal(raw, &chat)
	if decodeErr == nil && chat.Error != nil {
		return "", fmt.Errorf("%w: completion API returned %d: %s", types.ErrTransport, resp.StatusCode, chat.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: completion API returned %d: %s", types.ErrTransport, resp.StatusCode, truncate(string(raw), 512))
	}
	if decodeErr != nil {
		return "", fmt.Errorf("%w: decoding response: %w", types.ErrTransport, decodeErr)
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("%w: completion API returned no choices", types.ErrTransport)
	}

	c.logger.Debug("completion finished",
		"model", req.Options.Model,
		"json", req.Options.JSON,
		"prompt_tokens", chat.Usage.PromptTokens,
		"completion_tokens", chat.Usage.CompletionTokens,
		"finish_reason", chat.Choices[0].FinishReason,
		"elapsed", time.Since(start))

	return chat.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
