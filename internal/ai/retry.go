// Package ai holds shared plumbing for the OpenAI-backed generators.
package ai

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"

	"github.com/Abraxas-365/careerkit/pkg/logx"
)

const (
	// MaxAttempts is the total number of tries for a transient failure.
	MaxAttempts = 3

	// BaseDelay is the first backoff pause; it doubles per attempt (2s/4s/8s).
	BaseDelay = 2 * time.Second
)

// Transient reports whether err is a transient upstream failure worth
// retrying: rate limiting or a 5xx from the AI endpoint.
func Transient(err error) bool {
	var apierr *openai.Error
	if !errors.As(err, &apierr) {
		return false
	}
	switch apierr.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable:
		return true
	}
	return false
}

// Retry runs call up to attempts times, doubling baseDelay between tries.
// Non-transient errors and context cancellation stop the loop immediately.
func Retry[T any](ctx context.Context, attempts int, baseDelay time.Duration, call func(context.Context) (T, error)) (T, error) {
	var zero T
	delay := baseDelay

	for attempt := 1; ; attempt++ {
		out, err := call(ctx)
		if err == nil {
			return out, nil
		}
		if attempt >= attempts || !Transient(err) {
			return zero, err
		}

		logx.Warnf("transient AI failure (attempt %d/%d), retrying in %s: %v", attempt, attempts, delay, err)
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}
