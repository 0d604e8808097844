// Package groq talks to an OpenAI-compatible chat-completions endpoint
// (Groq by default) with output forced to a single JSON object.
package groq

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/greenloop/ecoai-commerce/internal/core/domain"
	"github.com/greenloop/ecoai-commerce/internal/core/ports"
	"github.com/greenloop/ecoai-commerce/internal/infrastructure/resilience"
)

const (
	defaultTemperature = 0.2
	defaultMaxTokens   = 1024
)

type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	guard      *resilience.Guard
}

func New(cfg Config, guard *resilience.Guard) *Client {
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		guard:      guard,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
	ResponseFormat responseFormat `json:"response_format"`
	Messages       []chatMessage  `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete issues exactly one chat-completion request and returns the first
// choice's text. Every failure surfaces as a provider failure with the
// original cause preserved.
func (c *Client) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	payload := chatRequest{
		Model:          c.cfg.Model,
		Temperature:    c.cfg.Temperature,
		MaxTokens:      c.cfg.MaxTokens,
		ResponseFormat: responseFormat{Type: "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
	}
	if req.Model != "" {
		payload.Model = req.Model
	}
	if req.Temperature != 0 {
		payload.Temperature = req.Temperature
	}
	if req.MaxTokens != 0 {
		payload.MaxTokens = req.MaxTokens
	}

	var completion chatResponse
	err := c.guard.Do(ctx, "chat_completions", func(ctx context.Context) error {
		return c.postJSON(ctx, "/chat/completions", payload, &completion)
	})
	if err != nil {
		return "", domain.WrapError(domain.ErrProviderFailure, "chat completion", err)
	}

	if len(completion.Choices) == 0 {
		return "", domain.WrapError(domain.ErrProviderFailure, "chat completion",
			fmt.Errorf("response contains no choices"))
	}
	content := completion.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", domain.WrapError(domain.ErrProviderFailure, "chat completion",
			fmt.Errorf("response content is empty"))
	}
	return content, nil
}
