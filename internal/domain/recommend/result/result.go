package result

import "github.com/boardka/boardka/internal/domain/game"

// Breakdown is the per-component contribution behind a final score.
type Breakdown struct {
	Tag        float64
	Preferred  float64
	Difficulty float64
	Penalty    float64
}

// Base returns the pre-penalty score.
func (b Breakdown) Base() float64 { return b.Tag + b.Preferred + b.Difficulty }

// Result is a single ranked recommendation.
type Result struct {
	game      game.Game
	score     float64
	breakdown Breakdown
}

// New creates a ranked result.
func New(g game.Game, score float64, breakdown Breakdown) Result {
	return Result{game: g, score: score, breakdown: breakdown}
}

// Game returns the recommended game.
func (r *Result) Game() game.Game { return r.game }

// Score returns the final (penalized) score.
func (r *Result) Score() float64 { return r.score }

// Breakdown returns the score components.
func (r *Result) Breakdown() Breakdown { return r.breakdown }
