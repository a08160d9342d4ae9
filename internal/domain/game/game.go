package game

import (
	"fmt"
	"strings"
)

// Difficulty scale bounds.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Game is a board game record (immutable value object).
type Game struct {
	id         string
	name       string
	minPlayers int
	maxPlayers int
	minTime    int
	maxTime    int
	difficulty int
	tags       []string
}

// New validates and creates a Game.
// Tags are trimmed, empty entries dropped and duplicates collapsed (first occurrence wins).
func New(
	id, name string,
	minPlayers, maxPlayers int,
	minTime, maxTime int,
	difficulty int,
	tags []string,
) (Game, error) {
	if id == "" {
		return Game{}, fmt.Errorf("game ID is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Game{}, fmt.Errorf("game %s: name is required", id)
	}
	if minPlayers < 0 || minPlayers > maxPlayers {
		return Game{}, fmt.Errorf("game %s: invalid player range %d-%d", id, minPlayers, maxPlayers)
	}
	if minTime < 0 || minTime > maxTime {
		return Game{}, fmt.Errorf("game %s: invalid play time range %d-%d", id, minTime, maxTime)
	}
	if difficulty < MinDifficulty || difficulty > MaxDifficulty {
		return Game{}, fmt.Errorf("game %s: difficulty must be between %d and %d, got %d",
			id, MinDifficulty, MaxDifficulty, difficulty)
	}

	return Game{
		id:         id,
		name:       name,
		minPlayers: minPlayers,
		maxPlayers: maxPlayers,
		minTime:    minTime,
		maxTime:    maxTime,
		difficulty: difficulty,
		tags:       NormalizeTags(tags),
	}, nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// Name returns the localized game name.
func (g *Game) Name() string { return g.name }

// MinPlayers returns the minimum supported player count.
func (g *Game) MinPlayers() int { return g.minPlayers }

// MaxPlayers returns the maximum supported player count.
func (g *Game) MaxPlayers() int { return g.maxPlayers }

// MinTime returns the minimum play time in minutes.
func (g *Game) MinTime() int { return g.minTime }

// MaxTime returns the maximum play time in minutes.
func (g *Game) MaxTime() int { return g.maxTime }

// Difficulty returns the 1-5 difficulty rating.
func (g *Game) Difficulty() int { return g.difficulty }

// Tags returns a copy of the game tags.
func (g *Game) Tags() []string {
	if len(g.tags) == 0 {
		return nil
	}
	out := make([]string, len(g.tags))
	copy(out, g.tags)
	return out
}

// HasTags reports whether the game carries at least one tag.
func (g *Game) HasTags() bool { return len(g.tags) > 0 }

// SupportsPlayers reports whether n players fit the game's player range.
func (g *Game) SupportsPlayers(n int) bool {
	return g.minPlayers <= n && n <= g.maxPlayers
}

// TimeDifference returns the distance in minutes from target to the play-time
// range, or 0 when target lies inside it.
func (g *Game) TimeDifference(target int) int {
	switch {
	case target < g.minTime:
		return g.minTime - target
	case target > g.maxTime:
		return target - g.maxTime
	default:
		return 0
	}
}

// NormalizeTags trims tags, drops empty ones and removes duplicates while
// keeping the original order.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
