package idempotency

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore fails a fixed number of times before delegating.
type flakyStore struct {
	inner    Store
	failures int
	calls    int
	err      error
}

func (f *flakyStore) Admit(ctx context.Context, key string) (bool, error) {
	f.calls++
	if f.calls <= f.failures {
		return false, f.err
	}
	return f.inner.Admit(ctx, key)
}

func TestRetryStore_SucceedsAfterTransientErrors(t *testing.T) {
	flaky := &flakyStore{
		inner:    NewMemoryStore(),
		failures: 2,
		err:      errors.New("connection reset"),
	}
	store := NewRetryStore(flaky, 0, 5)

	admitted, err := store.Admit(context.Background(), "key-1")
	require.NoError(t, err)
	assert.True(t, admitted)
	assert.Equal(t, 3, flaky.calls)

	admitted, err = store.Admit(context.Background(), "key-1")
	require.NoError(t, err)
	assert.False(t, admitted)
}

func TestRetryStore_ExhaustsRetries(t *testing.T) {
	flaky := &flakyStore{
		inner:    NewMemoryStore(),
		failures: 10,
		err:      errors.New("connection reset"),
	}
	store := NewRetryStore(flaky, 0, 3)

	_, err := store.Admit(context.Background(), "key-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum retries exceeded")
	assert.Equal(t, 3, flaky.calls)
}

func TestRetryStore_DoesNotRetryCanceledContext(t *testing.T) {
	flaky := &flakyStore{
		inner:    NewMemoryStore(),
		failures: 10,
		err:      context.Canceled,
	}
	store := NewRetryStore(flaky, 0, 5)

	_, err := store.Admit(context.Background(), "key-1")
	require.Error(t, err)
	assert.Equal(t, 1, flaky.calls)
}

func TestRetryStore_StopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewRetryStore(NewMemoryStore(), 0, 5)

	_, err := store.Admit(ctx, "key-1")
	require.ErrorIs(t, err, context.Canceled)
}
