package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/boardka/boardka/internal/db"
)

// HIncrByMulti increments every field of one hash in a single DoMulti round-trip.
func (s *Store) HIncrByMulti(ctx context.Context, key string, fields []string, delta int64) error {
	if len(fields) == 0 {
		return nil
	}

	cmds := make(rueidis.Commands, len(fields))
	for i, f := range fields {
		cmds[i] = s.b().Hincrby().Key(key).Field(f).Increment(delta).Build()
	}

	results := s.client.DoMulti(ctx, cmds...)
	for i, res := range results {
		if err := res.Error(); err != nil {
			return &db.Error{Op: db.OpHIncrBy, Err: fmt.Errorf("field %s: %w", fields[i], err)}
		}
	}
	return nil
}

// HGetAll returns all fields of a hash. A missing key yields an empty map.
func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	cmd := s.b().Hgetall().Key(key).Build()
	m, err := s.do(ctx, cmd).AsStrMap()
	if err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Err: err}
	}
	return m, nil
}

// Del deletes a key.
func (s *Store) Del(ctx context.Context, key string) error {
	cmd := s.b().Del().Key(key).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}
