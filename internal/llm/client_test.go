package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/run-bigpig/carpick/internal/config"
)

func TestNewClientWithoutKey(t *testing.T) {
	client := NewClient(config.OpenAIConfig{Model: "gpt-4o-mini"})
	if client != nil {
		t.Fatal("missing api key must yield a nil client")
	}

	// A nil *Client still satisfies Completer and fails cleanly.
	_, err := client.Complete(context.Background(), "안녕하세요")
	if !errors.Is(err, ErrNoClient) {
		t.Fatalf("err = %v, want ErrNoClient", err)
	}
}

func TestNewEmbeddingClientWithoutKey(t *testing.T) {
	if NewEmbeddingClient(config.OpenAIConfig{}) != nil {
		t.Fatal("missing api key must yield a nil embedding client")
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"deadline", context.DeadlineExceeded, false},
		{"canceled", context.Canceled, false},
		{"no client", ErrNoClient, false},
		{"config error", errors.New("invalid config: bad base url"), false},
		{"model not found", errors.New("model not found"), false},
		{"transient", errors.New("connection reset by peer"), true},
		{"rate limit", errors.New("429 too many requests"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRetryable(tc.err); got != tc.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
