package llm

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

type RetryPolicy struct {
	MaxTries        uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// DefaultRetryPolicy waits 2s, 4s ... 64s between seven attempts.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxTries:        7,
		InitialInterval: 2 * time.Second,
		MaxInterval:     128 * time.Second,
		Multiplier:      2,
	}
}

type retryingProvider struct {
	next   LLMProvider
	policy RetryPolicy
	notify backoff.Notify
}

// WithRetry retries rate-limited calls of next with exponential backoff. Any
// other error is returned straight away. notify may be nil.
func WithRetry(next LLMProvider, policy RetryPolicy, notify func(error, time.Duration)) LLMProvider {
	if _, ok := next.(Unavailable); ok {
		return next
	}
	return &retryingProvider{next: next, policy: policy, notify: notify}
}

func (r *retryingProvider) backOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.policy.InitialInterval
	b.MaxInterval = r.policy.MaxInterval
	b.Multiplier = r.policy.Multiplier
	b.RandomizationFactor = 0
	return b
}

func (r *retryingProvider) do(ctx context.Context, call func() (string, error)) (string, error) {
	opts := []backoff.RetryOption{
		backoff.WithBackOff(r.backOff()),
		backoff.WithMaxTries(r.policy.MaxTries),
	}
	if r.notify != nil {
		opts = append(opts, backoff.WithNotify(r.notify))
	}

	return backoff.Retry(ctx, func() (string, error) {
		out, err := call()
		if err != nil && !IsRateLimit(err) {
			return "", backoff.Permanent(err)
		}
		return out, err
	}, opts...)
}

func (r *retryingProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	return r.do(ctx, func() (string, error) { return r.next.Chat(ctx, history, options...) })
}

func (r *retryingProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return r.do(ctx, func() (string, error) { return r.next.Generate(ctx, prompt, options...) })
}
