package preference

import (
	"context"
	"fmt"
	"strconv"

	dompref "github.com/boardka/boardka/internal/domain/preference"
)

const weightsKey = "preferences:tags"

// store is the consumer interface for preference weights (ISP).
type store interface {
	HIncrByMulti(ctx context.Context, key string, fields []string, delta int64) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
}

// Repo keeps preference weights in a single Redis/Valkey hash (tag -> weight).
type Repo struct {
	store  store
	prefix string
}

// New creates a hash-backed preference repository. prefix namespaces the key.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Increment adds one to the weight of every tag.
func (r *Repo) Increment(ctx context.Context, tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	if err := r.store.HIncrByMulti(ctx, r.key(), tags, 1); err != nil {
		return fmt.Errorf("increment preferences: %w", err)
	}
	return nil
}

// All returns every stored weight. Fields that are not integers are skipped.
func (r *Repo) All(ctx context.Context) (dompref.Weights, error) {
	raw, err := r.store.HGetAll(ctx, r.key())
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}

	out := make(dompref.Weights, len(raw))
	for tag, v := range raw {
		n, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		out[tag] = n
	}
	return out, nil
}

// Reset removes every stored weight.
func (r *Repo) Reset(ctx context.Context) error {
	if err := r.store.Del(ctx, r.key()); err != nil {
		return fmt.Errorf("reset preferences: %w", err)
	}
	return nil
}

func (r *Repo) key() string {
	return r.prefix + weightsKey
}
