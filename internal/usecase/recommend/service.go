package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/boardka/boardka/internal/domain/recommend/query"
	"github.com/boardka/boardka/internal/domain/recommend/result"
	"github.com/boardka/boardka/internal/logger"
	"github.com/boardka/boardka/internal/metrics"
)

// DefaultPreferredTopN is how many stored preference tags feed a query.
const DefaultPreferredTopN = 5

// Request is the caller-facing recommendation input.
type Request struct {
	Players    int
	TargetTime *int
	Tags       []string
	// PreferredTags, when non-nil, is used as-is and stored preferences are not consulted.
	PreferredTags []string
	// UsePreferences derives preferred tags from the preference store when
	// PreferredTags is nil.
	UsePreferences bool
	Difficulty     *int
	Limit          int
}

// Recommendation is a ranked answer to a Request.
type Recommendation struct {
	ID            string
	Results       []result.Result
	PreferredTags []string
	Stats         Stats
}

// Service ranks the current catalog for a request.
type Service struct {
	engine  *Engine
	catalog CatalogReader
	prefs   PreferenceReader
	topN    int
	newID   func() string
}

// New creates a recommendation service. prefs may be nil (preferences disabled).
func New(engine *Engine, catalog CatalogReader, prefs PreferenceReader) *Service {
	return &Service{
		engine:  engine,
		catalog: catalog,
		prefs:   prefs,
		topN:    DefaultPreferredTopN,
		newID:   func() string { return uuid.NewString() },
	}
}

// WithPreferredTopN sets how many stored tags feed the preferred list.
func (s *Service) WithPreferredTopN(n int) *Service {
	if n > 0 {
		s.topN = n
	}
	return s
}

// Recommend validates the request, resolves preferred tags and ranks the catalog.
func (s *Service) Recommend(ctx context.Context, req *Request) (Recommendation, error) {
	rec, err := s.recommend(ctx, req)
	switch {
	case err != nil:
		metrics.RecommendRequestsTotal.WithLabelValues("error").Inc()
	case len(rec.Results) == 0:
		metrics.RecommendRequestsTotal.WithLabelValues("empty").Inc()
	default:
		metrics.RecommendRequestsTotal.WithLabelValues("ok").Inc()
	}
	return rec, err
}

func (s *Service) recommend(ctx context.Context, req *Request) (Recommendation, error) {
	cat, err := s.catalog.Snapshot()
	if err != nil {
		return Recommendation{}, fmt.Errorf("catalog snapshot: %w", err)
	}

	preferred := s.resolvePreferred(ctx, req)

	cfg := s.engine.Config()
	q, err := query.New(
		req.Players, req.TargetTime, req.Tags, preferred, req.Difficulty,
		req.Limit, cfg.DefaultResultCount, cfg.MaxResultCount,
	)
	if err != nil {
		return Recommendation{}, err
	}

	start := time.Now()
	results, stats := s.engine.Rank(cat.Games(), &q)
	elapsed := time.Since(start)

	metrics.RecommendDuration.Observe(elapsed.Seconds())
	metrics.RecommendResultSize.Observe(float64(len(results)))
	metrics.RecommendCandidatesRejectedTotal.WithLabelValues(rejectedPlayers.String()).
		Add(float64(stats.RejectedPlayers))
	metrics.RecommendCandidatesRejectedTotal.WithLabelValues(rejectedTime.String()).
		Add(float64(stats.RejectedTime))

	id := s.newID()
	logger.FromContext(ctx).Debug("recommendation ranked",
		zap.String("recommendation_id", id),
		zap.Int("players", q.Players()),
		zap.Strings("tags", q.SelectedTags()),
		zap.Strings("preferred_tags", q.PreferredTags()),
		zap.Int("considered", stats.Considered),
		zap.Int("rejected_players", stats.RejectedPlayers),
		zap.Int("rejected_time", stats.RejectedTime),
		zap.Int("returned", len(results)),
		zap.Duration("elapsed", elapsed),
	)

	return Recommendation{
		ID:            id,
		Results:       results,
		PreferredTags: q.PreferredTags(),
		Stats:         stats,
	}, nil
}

// resolvePreferred returns the preferred list for the query: explicit tags
// win, then stored preferences when enabled, otherwise nil (not supplied).
// A failing preference store degrades to no preferred tags.
func (s *Service) resolvePreferred(ctx context.Context, req *Request) []string {
	if req.PreferredTags != nil {
		return req.PreferredTags
	}
	if !req.UsePreferences || s.prefs == nil {
		return nil
	}

	top, err := s.prefs.Top(ctx, s.topN)
	if err != nil {
		logger.FromContext(ctx).Warn("preference lookup failed, ranking without preferred tags",
			zap.Error(err),
		)
		return nil
	}
	return top
}
