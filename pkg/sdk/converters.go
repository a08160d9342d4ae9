package boardka

import (
	"fmt"

	"github.com/boardka/boardka/internal/domain"
	domcat "github.com/boardka/boardka/internal/domain/catalog"
	"github.com/boardka/boardka/internal/domain/game"
	"github.com/boardka/boardka/internal/domain/recommend/result"
	recommenduc "github.com/boardka/boardka/internal/usecase/recommend"
)

func gameFromDomain(g *game.Game) Game {
	return Game{
		ID:         g.ID(),
		Name:       g.Name(),
		MinPlayers: g.MinPlayers(),
		MaxPlayers: g.MaxPlayers(),
		MinTime:    g.MinTime(),
		MaxTime:    g.MaxTime(),
		Difficulty: g.Difficulty(),
		Tags:       g.Tags(),
	}
}

func gamesToDomain(games []Game) ([]game.Game, error) {
	out := make([]game.Game, 0, len(games))
	seen := make(map[string]int, len(games))
	for i := range games {
		g := &games[i]
		id := g.ID
		if id == "" {
			id = fmt.Sprintf("%d", i+1)
		}
		if first, dup := seen[id]; dup {
			return nil, fmt.Errorf("boardka: game %d: id %q already used by game %d", i, id, first)
		}
		seen[id] = i
		dg, err := game.New(id, g.Name, g.MinPlayers, g.MaxPlayers, g.MinTime, g.MaxTime, g.Difficulty, g.Tags)
		if err != nil {
			return nil, fmt.Errorf("boardka: game %d: %w", i, err)
		}
		out = append(out, dg)
	}
	return out, nil
}

func resultFromDomain(r *result.Result) Result {
	g := r.Game()
	b := r.Breakdown()
	return Result{
		Game:  gameFromDomain(&g),
		Score: r.Score(),
		Breakdown: Breakdown{
			Tag:        b.Tag,
			Preferred:  b.Preferred,
			Difficulty: b.Difficulty,
			Penalty:    b.Penalty,
		},
	}
}

func recommendationFromDomain(rec *recommenduc.Recommendation) Recommendation {
	results := make([]Result, len(rec.Results))
	for i := range rec.Results {
		results[i] = resultFromDomain(&rec.Results[i])
	}
	return Recommendation{
		ID:            rec.ID,
		Results:       results,
		PreferredTags: append([]string{}, rec.PreferredTags...),
		Considered:    rec.Stats.Considered,
	}
}

func requestToDomain(req *Request) *recommenduc.Request {
	return &recommenduc.Request{
		Players:        req.Players,
		TargetTime:     req.TargetTime,
		Tags:           req.Tags,
		PreferredTags:  req.PreferredTags,
		UsePreferences: req.UsePreferences,
		Difficulty:     req.Difficulty,
		Limit:          req.Limit,
	}
}

func tagCountsFromDomain(counts []domcat.TagCount) []TagCount {
	out := make([]TagCount, len(counts))
	for i, c := range counts {
		out[i] = TagCount{Tag: c.Tag, Count: c.Count}
	}
	return out
}

// DefaultScoring returns the default ranking weights. Start from it and
// change the fields to tune, since WithScoring uses every field as given.
func DefaultScoring() Scoring {
	d := domain.DefaultScoringConfig()
	return Scoring{
		MaxTagScore:          d.MaxTagScore,
		PreferredWeight:      d.PreferredWeight,
		MaxDifficultyScore:   d.MaxDifficultyScore,
		NearDifficultyFactor: d.NearDifficultyFactor,
		TimePenaltyThreshold: d.TimePenaltyThreshold,
		TimePenaltyFactor:    d.TimePenaltyFactor,
		DefaultResultCount:   d.DefaultResultCount,
		MaxResultCount:       d.MaxResultCount,
	}
}

// scoringToDomain copies the weights as given, so an explicit 0 disables a
// component. Result counts <= 0 take the defaults. A nil s means defaults.
func scoringToDomain(s *Scoring) domain.ScoringConfig {
	cfg := domain.DefaultScoringConfig()
	if s == nil {
		return cfg
	}
	cfg.MaxTagScore = s.MaxTagScore
	cfg.PreferredWeight = s.PreferredWeight
	cfg.MaxDifficultyScore = s.MaxDifficultyScore
	cfg.NearDifficultyFactor = s.NearDifficultyFactor
	cfg.TimePenaltyThreshold = s.TimePenaltyThreshold
	cfg.TimePenaltyFactor = s.TimePenaltyFactor
	if s.DefaultResultCount > 0 {
		cfg.DefaultResultCount = s.DefaultResultCount
	}
	if s.MaxResultCount > 0 {
		cfg.MaxResultCount = s.MaxResultCount
	}
	if cfg.DefaultResultCount > cfg.MaxResultCount {
		cfg.MaxResultCount = cfg.DefaultResultCount
	}
	return cfg
}
