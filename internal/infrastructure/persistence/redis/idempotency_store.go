// Package redis implements the externally-backed idempotency store on top
// of Redis. SET NX carries the atomic check-then-insert, so concurrent
// gateway instances sharing one Redis agree on which request was first.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/femiolade/student-report-gateway/internal/config"
	"github.com/femiolade/student-report-gateway/internal/idempotency"
)

const keyPrefix = "gateway:idempotency:"

// NewClient builds a Redis client from configuration and verifies
// connectivity with a ping.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

type idempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore returns a Store backed by Redis. A zero ttl keeps
// keys forever, matching the memory backend's no-eviction contract; a
// positive ttl bounds the key set for long-running deployments.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) idempotency.Store {
	return &idempotencyStore{client: client, ttl: ttl}
}

func (s *idempotencyStore) Admit(ctx context.Context, key string) (bool, error) {
	admitted, err := s.client.SetNX(ctx, keyPrefix+key, 1, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to record idempotency key: %w", err)
	}

	return admitted, nil
}
