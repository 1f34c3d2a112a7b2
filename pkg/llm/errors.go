package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable means no model backend is configured.
var ErrUnavailable = errors.New("llm provider is not configured")

// RateLimitError marks a quota or 429 response. It is the only error WithRetry retries.
type RateLimitError struct {
	Provider string
	Body     string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited: %s", e.Provider, e.Body)
}

func IsRateLimit(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// Unavailable stands in for a provider when credentials are missing.
type Unavailable struct{}

var _ LLMProvider = Unavailable{}

func (Unavailable) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	return "", ErrUnavailable
}

func (Unavailable) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return "", ErrUnavailable
}
