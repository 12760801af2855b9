package idempotency

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// RetryStore wraps a Store and retries Admit on transient backend errors.
// A duplicate outcome is not an error and is never retried.
type RetryStore struct {
	inner      Store
	baseDelay  time.Duration
	maxRetries int
}

func NewRetryStore(inner Store, baseDelaySeconds, maxRetries int32) *RetryStore {
	return &RetryStore{
		inner:      inner,
		baseDelay:  time.Duration(baseDelaySeconds) * time.Second,
		maxRetries: int(maxRetries),
	}
}

// Admit with retry logic
func (r *RetryStore) Admit(ctx context.Context, key string) (bool, error) {
	var lastErr error

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
		}

		admitted, err := r.inner.Admit(ctx, key)
		if err == nil {
			return admitted, nil
		}

		lastErr = err

		if !isRetryable(err) {
			return false, err
		}

		if attempt < r.maxRetries-1 {
			time.Sleep(r.backoff(attempt))
		}
	}

	return false, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

// Helper: to check retryable errors
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	return true
}

// Backoff calculation with exponential delay and jitter
func (r *RetryStore) backoff(attempt int) time.Duration {
	base := r.baseDelay * time.Duration(1<<attempt)

	jitter := time.Duration(rand.Intn(1000)) * time.Millisecond

	return base + jitter
}
