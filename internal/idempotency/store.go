// Package idempotency gates duplicate processing of requests. A Store holds
// the set of keys already handled; Admit is the atomic check-then-insert
// every backend must provide.
package idempotency

import (
	"context"
	"sync"
)

// Store decides whether a request bearing a key should be processed.
type Store interface {
	// Admit records key as seen and reports true exactly once per key:
	// the first caller is admitted, every later caller is a duplicate.
	// The check and the insert are a single atomic step with respect to
	// concurrent calls.
	Admit(ctx context.Context, key string) (bool, error)
}

// MemoryStore is the process-wide in-memory Store. The key set has no
// eviction and grows for the life of the process; this is a documented
// limitation of the memory backend, not a defect.
type MemoryStore struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{seen: make(map[string]struct{})}
}

func (s *MemoryStore) Admit(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[key]; ok {
		return false, nil
	}
	s.seen[key] = struct{}{}
	return true, nil
}
