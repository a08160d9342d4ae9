package recommend

import (
	"sort"

	"github.com/boardka/boardka/internal/domain"
	"github.com/boardka/boardka/internal/domain/game"
	"github.com/boardka/boardka/internal/domain/recommend/query"
	"github.com/boardka/boardka/internal/domain/recommend/result"
)

// Engine filters, scores and ranks games. It holds no mutable state and is
// safe for concurrent use over a shared read-only catalog.
type Engine struct {
	cfg domain.ScoringConfig
}

// NewEngine creates an engine with the given weights.
func NewEngine(cfg domain.ScoringConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine weights.
func (e *Engine) Config() domain.ScoringConfig { return e.cfg }

// Stats counts what happened to the catalog during one ranking pass.
type Stats struct {
	Considered      int
	RejectedPlayers int
	RejectedTime    int
	Scored          int
}

// Rank scores every game that survives filtering and returns the best
// q.Limit() of them, highest score first. Equal scores keep catalog order.
func (e *Engine) Rank(games []game.Game, q *query.Query) ([]result.Result, Stats) {
	stats := Stats{Considered: len(games)}

	var targetTime *int
	if v, ok := q.TargetTime(); ok {
		targetTime = &v
	}
	var difficulty *int
	if v, ok := q.Difficulty(); ok {
		difficulty = &v
	}

	scored := make([]result.Result, 0, len(games))
	for i := range games {
		g := &games[i]

		penalty, r := e.filter(g, q.Players(), targetTime)
		switch r {
		case rejectedPlayers:
			stats.RejectedPlayers++
			continue
		case rejectedTime:
			stats.RejectedTime++
			continue
		}

		tags := g.Tags()
		b := result.Breakdown{
			Tag:        e.TagScore(tags, q.SelectedTags()),
			Preferred:  e.PreferredScore(tags, q.PreferredTags()),
			Difficulty: e.DifficultyScore(g.Difficulty(), difficulty),
			Penalty:    penalty,
		}
		scored = append(scored, result.New(*g, b.Base()*penalty, b))
	}
	stats.Scored = len(scored)

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score() > scored[j].Score()
	})

	if len(scored) > q.Limit() {
		scored = scored[:q.Limit()]
	}
	return scored, stats
}
