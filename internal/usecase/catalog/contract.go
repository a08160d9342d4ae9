package catalog

import (
	"context"

	"github.com/boardka/boardka/internal/domain/game"
)

// Loader reads the full game list from its source.
type Loader interface {
	Load(ctx context.Context) ([]game.Game, error)
	Source() string
}
