package preference

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/boardka/boardka/internal/domain"
	"github.com/boardka/boardka/internal/domain/game"
	dompref "github.com/boardka/boardka/internal/domain/preference"
	"github.com/boardka/boardka/internal/logger"
	"github.com/boardka/boardka/internal/metrics"
)

// Service accumulates tag preferences from liked games.
type Service struct {
	store Store
	games GameReader
}

// New creates a preference service.
func New(store Store, games GameReader) *Service {
	return &Service{store: store, games: games}
}

// Like adds one to the weight of every tag of the given game and returns the game.
func (s *Service) Like(ctx context.Context, gameID string) (game.Game, error) {
	g, err := s.games.Get(gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("get game: %w", err)
	}
	if !g.HasTags() {
		return game.Game{}, fmt.Errorf("%w: %s", domain.ErrNoTags, g.Name())
	}

	if err := s.store.Increment(ctx, g.Tags()); err != nil {
		return game.Game{}, fmt.Errorf("%w: increment: %w", domain.ErrPreferenceStore, err)
	}

	metrics.PreferenceLikesTotal.Inc()
	logger.FromContext(ctx).Info("game liked",
		zap.String("game_id", g.ID()),
		zap.Strings("tags", g.Tags()),
	)
	return g, nil
}

// Weights returns all stored tag weights.
func (s *Service) Weights(ctx context.Context) (dompref.Weights, error) {
	w, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: read: %w", domain.ErrPreferenceStore, err)
	}
	return w, nil
}

// Top returns the n strongest preferred tags.
func (s *Service) Top(ctx context.Context, n int) ([]string, error) {
	w, err := s.Weights(ctx)
	if err != nil {
		return nil, err
	}
	return w.Top(n), nil
}

// Reset clears every stored preference.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		return fmt.Errorf("%w: reset: %w", domain.ErrPreferenceStore, err)
	}
	logger.FromContext(ctx).Info("preferences reset")
	return nil
}
