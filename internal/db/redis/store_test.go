package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/boardka/boardka/internal/db"
)

// --- client.go tests ---

func TestNewStore_RequiresAddrs(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty addrs")
	}
}

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	err := s.Ping(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !isDBError(err) {
		t.Errorf("expected db.Error, got %T", err)
	}
}

// --- hash.go tests ---

func TestHIncrByMulti_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(),
			mock.Match("HINCRBY", "prefs", "전략", "1"),
			mock.Match("HINCRBY", "prefs", "카드", "1"),
		).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisInt64(3)),
			mock.Result(mock.RedisInt64(1)),
		})

	s := NewStoreForTest(c)
	if err := s.HIncrByMulti(context.Background(), "prefs", []string{"전략", "카드"}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHIncrByMulti_Empty(t *testing.T) {
	s := NewStoreForTest(nil) // client not called
	if err := s.HIncrByMulti(context.Background(), "prefs", nil, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHIncrByMulti_PartialError(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisInt64(1)),
			mock.ErrorResult(errors.New("WRONGTYPE")),
		})

	s := NewStoreForTest(c)
	err := s.HIncrByMulti(context.Background(), "prefs", []string{"a", "b"}, 1)
	if err == nil {
		t.Fatal("expected error")
	}
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpHIncrBy {
		t.Errorf("expected HINCRBY db.Error, got %v", err)
	}
}

func TestHGetAll_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("HGETALL", "prefs")).
		Return(mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{
			"전략": mock.RedisString("3"),
			"파티": mock.RedisString("1"),
		})))

	s := NewStoreForTest(c)
	m, err := s.HGetAll(context.Background(), "prefs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m["전략"] != "3" || m["파티"] != "1" {
		t.Errorf("unexpected map: %v", m)
	}
}

func TestHGetAll_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("HGETALL", "prefs")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if _, err := s.HGetAll(context.Background(), "prefs"); !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

func TestDel_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("DEL", "prefs")).
		Return(mock.Result(mock.RedisInt64(1)))

	s := NewStoreForTest(c)
	if err := s.Del(context.Background(), "prefs"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDel_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "DEL"
		})).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if err := s.Del(context.Background(), "prefs"); !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

// --- helpers ---

// isDBError is a test helper for checking wrapped db.Error.
func isDBError(err error) bool {
	var dbErr *db.Error
	return errors.As(err, &dbErr)
}
