package query

import (
	"fmt"

	"github.com/boardka/boardka/internal/domain"
	"github.com/boardka/boardka/internal/domain/game"
)

// MaxTags bounds both the selected and the preferred tag lists.
const MaxTags = 64

// Query is a validated recommendation request.
type Query struct {
	players    int
	targetTime *int
	selected   []string
	preferred  []string
	difficulty *int
	limit      int
}

// New validates and normalizes recommendation parameters.
// targetTime and difficulty are optional (nil means "ignore this dimension").
// preferred == nil means "not supplied"; an empty slice scores the same.
// limit <= 0 falls back to defaultLimit; limit above maxLimit is clamped.
func New(
	players int,
	targetTime *int,
	selected, preferred []string,
	difficulty *int,
	limit, defaultLimit, maxLimit int,
) (Query, error) {
	if players < 1 {
		return Query{}, fmt.Errorf("%w: players must be at least 1, got %d", domain.ErrInvalidQuery, players)
	}
	if targetTime != nil && *targetTime < 1 {
		return Query{}, fmt.Errorf("%w: target time must be at least 1 minute, got %d",
			domain.ErrInvalidQuery, *targetTime)
	}
	if difficulty != nil && (*difficulty < game.MinDifficulty || *difficulty > game.MaxDifficulty) {
		return Query{}, fmt.Errorf("%w: difficulty must be between %d and %d, got %d",
			domain.ErrInvalidQuery, game.MinDifficulty, game.MaxDifficulty, *difficulty)
	}
	if len(selected) > MaxTags || len(preferred) > MaxTags {
		return Query{}, fmt.Errorf("%w: too many tags (max %d)", domain.ErrInvalidQuery, MaxTags)
	}
	if defaultLimit <= 0 {
		defaultLimit = domain.DefaultResultCount
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}

	q := Query{
		players:  players,
		selected: game.NormalizeTags(selected),
		limit:    limit,
	}
	if targetTime != nil {
		v := *targetTime
		q.targetTime = &v
	}
	if difficulty != nil {
		v := *difficulty
		q.difficulty = &v
	}
	if preferred != nil {
		q.preferred = game.NormalizeTags(preferred)
		if q.preferred == nil {
			q.preferred = []string{}
		}
	}
	return q, nil
}

// Players returns the target player count.
func (q *Query) Players() int { return q.players }

// TargetTime returns the desired play time in minutes, if any.
func (q *Query) TargetTime() (int, bool) {
	if q.targetTime == nil {
		return 0, false
	}
	return *q.targetTime, true
}

// SelectedTags returns the explicitly requested tags.
func (q *Query) SelectedTags() []string { return q.selected }

// PreferredTags returns the weaker preferred tags; nil when not supplied.
func (q *Query) PreferredTags() []string { return q.preferred }

// Difficulty returns the desired difficulty, if any.
func (q *Query) Difficulty() (int, bool) {
	if q.difficulty == nil {
		return 0, false
	}
	return *q.difficulty, true
}

// Limit returns K, the maximum number of results.
func (q *Query) Limit() int { return q.limit }
