// Package llm is a client for OpenAI-compatible chat completion APIs.
package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/config"
	"storefront/internal/model"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const provider = "llm"

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	User     string        `json:"user,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Client sends single-turn completions.
type Client struct {
	http   *resty.Client
	model  string
	logger zerolog.Logger
}

// NewClient creates a client for cfg.BaseURL. The API key is sent as a bearer token.
func NewClient(cfg config.LLMConfig, logger zerolog.Logger) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		rc.SetAuthToken(cfg.APIKey)
	}

	return &Client{
		http:   rc,
		model:  cfg.Model,
		logger: logger.With().Str("component", "llm").Logger(),
	}
}

// Complete returns the first choice's text for req.
func (c *Client) Complete(ctx context.Context, req model.CompletionRequest) (string, error) {
	body := chatRequest{
		Model: c.model,
		User:  req.SessionID,
	}
	if req.SystemPrompt != "" {
		body.Messages = append(body.Messages, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	body.Messages = append(body.Messages, chatMessage{Role: "user", Content: req.Prompt})

	var (
		result  chatResponse
		failure apiError
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		SetError(&failure).
		Post("/chat/completions")
	if err != nil {
		c.logger.Error().Err(err).Str("session_id", req.SessionID).Msg("completion request failed")
		return "", &model.UpstreamError{Provider: provider, Message: "completion request failed", Err: err}
	}

	if resp.IsError() {
		msg := failure.Error.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		c.logger.Warn().
			Int("status", resp.StatusCode()).
			Str("session_id", req.SessionID).
			Msg("completion provider returned an error")
		return "", &model.UpstreamError{Provider: provider, StatusCode: resp.StatusCode(), Message: msg}
	}

	if len(result.Choices) == 0 {
		return "", &model.UpstreamError{
			Provider:   provider,
			StatusCode: resp.StatusCode(),
			Message:    "empty completion",
			Err:        errors.New("response has no choices"),
		}
	}

	c.logger.Debug().
		Str("session_id", req.SessionID).
		Dur("latency", resp.Time()).
		Int("chars", len(result.Choices[0].Message.Content)).
		Msg("completion received")

	return result.Choices[0].Message.Content, nil
}
