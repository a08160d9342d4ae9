package preference

import (
	"context"

	"github.com/boardka/boardka/internal/domain/game"
	dompref "github.com/boardka/boardka/internal/domain/preference"
)

// Store persists tag preference weights.
type Store interface {
	Increment(ctx context.Context, tags []string) error
	All(ctx context.Context) (dompref.Weights, error)
	Reset(ctx context.Context) error
}

// GameReader resolves games from the current catalog.
type GameReader interface {
	Get(id string) (game.Game, error)
}
