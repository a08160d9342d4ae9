package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/boardka/boardka/internal/domain"
	domcat "github.com/boardka/boardka/internal/domain/catalog"
	"github.com/boardka/boardka/internal/domain/game"
	"github.com/boardka/boardka/internal/logger"
	"github.com/boardka/boardka/internal/metrics"
)

// Pagination defaults for List.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// DefaultMinTagCount hides rarely used tags from TagCounts.
const DefaultMinTagCount = 4

// Service owns the current catalog snapshot. Readers always see a complete
// snapshot; Reload swaps it atomically.
type Service struct {
	loader  Loader
	current atomic.Pointer[domcat.Catalog]
	reload  sync.Mutex
	now     func() time.Time
}

// New creates a catalog service. Call Reload before serving reads.
func New(loader Loader) *Service {
	return &Service{loader: loader, now: time.Now}
}

// Reload reads the catalog from the loader and replaces the snapshot.
// On failure the previous snapshot stays in place.
func (s *Service) Reload(ctx context.Context) (*domcat.Catalog, error) {
	s.reload.Lock()
	defer s.reload.Unlock()

	games, err := s.loader.Load(ctx)
	if err != nil {
		metrics.CatalogReloadsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("load catalog from %s: %w", s.loader.Source(), err)
	}

	c := domcat.New(games, s.loader.Source(), s.now())
	s.current.Store(c)

	metrics.CatalogReloadsTotal.WithLabelValues("ok").Inc()
	metrics.CatalogGames.Set(float64(c.Len()))
	log := logger.FromContext(ctx)
	if dropped := c.Dropped(); len(dropped) > 0 {
		log.Warn("duplicate game IDs dropped",
			zap.String("source", c.Source()),
			zap.Strings("ids", dropped),
		)
	}
	log.Info("catalog loaded",
		zap.String("source", c.Source()),
		zap.Int("games", c.Len()),
	)
	return c, nil
}

// Snapshot returns the current catalog.
func (s *Service) Snapshot() (*domcat.Catalog, error) {
	c := s.current.Load()
	if c == nil {
		return nil, domain.ErrCatalogNotLoaded
	}
	return c, nil
}

// Get returns a game by ID.
func (s *Service) Get(id string) (game.Game, error) {
	c, err := s.Snapshot()
	if err != nil {
		return game.Game{}, err
	}
	g, ok := c.Get(id)
	if !ok {
		return game.Game{}, fmt.Errorf("%w: %s", domain.ErrGameNotFound, id)
	}
	return g, nil
}

// List returns a page of games in catalog order. cursor is the ID of the last
// game of the previous page; the returned cursor is empty on the last page.
// A cursor naming no game in the current snapshot is ErrInvalidQuery.
func (s *Service) List(cursor string, limit int) ([]game.Game, string, error) {
	c, err := s.Snapshot()
	if err != nil {
		return nil, "", err
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	games := c.Games()
	start := 0
	if cursor != "" {
		i, ok := c.Index(cursor)
		if !ok {
			return nil, "", fmt.Errorf("%w: unknown cursor %q", domain.ErrInvalidQuery, cursor)
		}
		start = i + 1
	}
	end := start + limit
	if end > len(games) {
		end = len(games)
	}

	page := make([]game.Game, end-start)
	copy(page, games[start:end])

	next := ""
	if end < len(games) && len(page) > 0 {
		next = page[len(page)-1].ID()
	}
	return page, next, nil
}

// TagCounts returns tags used by at least minCount games, most common first.
// minCount <= 0 falls back to DefaultMinTagCount.
func (s *Service) TagCounts(minCount int) ([]domcat.TagCount, error) {
	c, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	if minCount <= 0 {
		minCount = DefaultMinTagCount
	}
	return c.TagCounts(minCount), nil
}
