package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/femiolade/student-report-gateway/internal/idempotency"
)

type idempotencyStore struct {
	db *DB
}

// NewIdempotencyStore returns a Store backed by the idempotency_keys table.
// INSERT ... ON CONFLICT DO NOTHING gives the atomic check-then-insert.
func NewIdempotencyStore(db *DB) idempotency.Store {
	return &idempotencyStore{db: db}
}

// EnsureSchema creates the idempotency_keys table if it does not exist.
func EnsureSchema(ctx context.Context, db *DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS idempotency_keys (
			key     TEXT PRIMARY KEY,
			seen_at TIMESTAMPTZ NOT NULL
		)
	`

	if _, err := db.Pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create idempotency_keys table: %w", err)
	}

	return nil
}

func (s *idempotencyStore) Admit(ctx context.Context, key string) (bool, error) {
	query := `
		INSERT INTO idempotency_keys (key, seen_at)
		VALUES ($1, $2)
		ON CONFLICT (key) DO NOTHING
	`

	tag, err := s.db.Pool.Exec(ctx, query, key, time.Now())
	if err != nil {
		return false, fmt.Errorf("failed to record idempotency key: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}
