package preference

import "context"

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hincrByMultiFn func(ctx context.Context, key string, fields []string, delta int64) error
	hgetAllFn      func(ctx context.Context, key string) (map[string]string, error)
	delFn          func(ctx context.Context, key string) error
}

func (m *mockStore) HIncrByMulti(ctx context.Context, key string, fields []string, delta int64) error {
	if m.hincrByMultiFn != nil {
		return m.hincrByMultiFn(ctx, key, fields, delta)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}
