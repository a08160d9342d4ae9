package recommend

import "github.com/boardka/boardka/internal/domain/game"

// rejection says why a candidate never reached scoring.
type rejection int

const (
	accepted rejection = iota
	rejectedPlayers
	rejectedTime
)

func (r rejection) String() string {
	switch r {
	case rejectedPlayers:
		return "players"
	case rejectedTime:
		return "time"
	default:
		return "accepted"
	}
}

// FilterAndPenalize applies the hard player filter and the time-proximity rule.
// It returns whether the game survives and the multiplicative penalty to apply.
// targetTime == nil skips the time rule.
func (e *Engine) FilterAndPenalize(g *game.Game, players int, targetTime *int) (bool, float64) {
	penalty, r := e.filter(g, players, targetTime)
	return r == accepted, penalty
}

func (e *Engine) filter(g *game.Game, players int, targetTime *int) (float64, rejection) {
	if !g.SupportsPlayers(players) {
		return 0, rejectedPlayers
	}
	if targetTime == nil {
		return 1.0, accepted
	}

	diff := g.TimeDifference(*targetTime)
	switch {
	case diff == 0:
		return 1.0, accepted
	case diff <= e.cfg.TimePenaltyThreshold:
		return e.cfg.TimePenaltyFactor, accepted
	default:
		return 0, rejectedTime
	}
}
