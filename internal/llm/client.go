// Package llm wraps the generative-language-model collaborator behind a
// single-shot completion interface.
package llm

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/run-bigpig/carpick/internal/config"
	"github.com/run-bigpig/carpick/internal/logger"
)

var log = logger.New("LLM")

// ErrNoClient is returned when no model backend is configured.
var ErrNoClient = errors.New("llm: no model backend configured")

// Completer is the generative-language-model contract: one prompt in, one
// text completion out. No streaming, no tools.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client is the OpenAI-compatible Completer.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient builds a Client from config. Returns nil when no API key is set;
// callers treat a nil Completer as an unavailable collaborator.
func NewClient(cfg config.OpenAIConfig) *Client {
	if cfg.APIKey == "" {
		return nil
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	return &Client{
		client: openai.NewClientWithConfig(oc),
		model:  cfg.Model,
	}
}

// NewEmbeddingClient builds the raw OpenAI client shared with the embedding
// provider, or nil when no key is configured.
func NewEmbeddingClient(cfg config.OpenAIConfig) *openai.Client {
	if cfg.APIKey == "" {
		return nil
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	return openai.NewClientWithConfig(oc)
}

// Complete performs one chat completion round.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", ErrNoClient
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("llm: empty completion")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	log.Debug("completion: %d chars", len(content))
	return content, nil
}

// IsRetryable reports whether a completion error is worth retrying.
// Timeouts, cancellation and configuration errors are not; transient network
// and API errors are.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, ErrNoClient) {
		return false
	}
	msg := err.Error()
	if strings.Contains(msg, "config") || strings.Contains(msg, "not found") {
		return false
	}
	return true
}
