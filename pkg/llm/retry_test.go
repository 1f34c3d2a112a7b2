package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedProvider struct {
	errs  []error
	calls int
}

func (s *scriptedProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	return s.Generate(ctx, "")
}

func (s *scriptedProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	s.calls++
	if s.calls <= len(s.errs) {
		return "", s.errs[s.calls-1]
	}
	return "ok", nil
}

func fastPolicy() RetryPolicy {
	return RetryPolicy{MaxTries: 7, InitialInterval: time.Millisecond, MaxInterval: 4 * time.Millisecond, Multiplier: 2}
}

func TestWithRetryRecoversFromRateLimits(t *testing.T) {
	inner := &scriptedProvider{errs: []error{
		&RateLimitError{Provider: "gemini"},
		&RateLimitError{Provider: "gemini"},
	}}
	var waits []time.Duration

	out, err := WithRetry(inner, fastPolicy(), func(_ error, d time.Duration) { waits = append(waits, d) }).
		Generate(context.Background(), "hi")

	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 3, inner.calls)
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, waits)
}

func TestWithRetryGivesUpAfterMaxTries(t *testing.T) {
	errs := make([]error, 10)
	for i := range errs {
		errs[i] = &RateLimitError{Provider: "gemini"}
	}
	inner := &scriptedProvider{errs: errs}

	_, err := WithRetry(inner, fastPolicy(), nil).Generate(context.Background(), "hi")

	require.Error(t, err)
	assert.True(t, IsRateLimit(err))
	assert.Equal(t, 7, inner.calls)
}

func TestWithRetryDoesNotRetryOtherErrors(t *testing.T) {
	boom := errors.New("bad request")
	inner := &scriptedProvider{errs: []error{boom}}

	_, err := WithRetry(inner, fastPolicy(), nil).Chat(context.Background(), nil)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, inner.calls)
}

func TestUnavailableIsNotWrapped(t *testing.T) {
	p := WithRetry(Unavailable{}, DefaultRetryPolicy(), nil)
	_, err := p.Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrUnavailable)
}
