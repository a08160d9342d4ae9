package db

import (
	"context"
	"time"
)

// Store is the database facade combining the sub-interfaces the service needs.
type Store interface {
	Pinger
	HashStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashStore provides hash-based counter operations.
type HashStore interface {
	// HIncrByMulti adds delta to every field of the hash in one round-trip.
	HIncrByMulti(ctx context.Context, key string, fields []string, delta int64) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
}
