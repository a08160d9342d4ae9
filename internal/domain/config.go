package domain

// Scoring defaults.
const (
	DefaultMaxTagScore          = 60.0
	DefaultPreferredWeight      = 0.3
	DefaultMaxDifficultyScore   = 40.0
	DefaultNearDifficultyFactor = 0.4
	DefaultTimePenaltyThreshold = 30 // minutes
	DefaultTimePenaltyFactor    = 0.7
	DefaultResultCount          = 5
	DefaultMaxResultCount       = 100
)

// ScoringConfig holds the tunable weights of the ranking engine.
type ScoringConfig struct {
	// MaxTagScore is awarded when every selected tag is present on a game.
	MaxTagScore float64
	// PreferredWeight scales MaxTagScore for the preferred-tag contribution.
	PreferredWeight float64
	// MaxDifficultyScore is awarded on an exact difficulty match.
	MaxDifficultyScore float64
	// NearDifficultyFactor scales MaxDifficultyScore when difficulty is off by one.
	NearDifficultyFactor float64
	// TimePenaltyThreshold is the largest distance (minutes) from the play-time
	// range a game may have and still be recommended.
	TimePenaltyThreshold int
	// TimePenaltyFactor multiplies the score of games outside the range but within threshold.
	TimePenaltyFactor float64
	// DefaultResultCount is K when the caller does not ask for one.
	DefaultResultCount int
	// MaxResultCount caps K.
	MaxResultCount int
}

// DefaultScoringConfig returns the canonical additive capped-point weights.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		MaxTagScore:          DefaultMaxTagScore,
		PreferredWeight:      DefaultPreferredWeight,
		MaxDifficultyScore:   DefaultMaxDifficultyScore,
		NearDifficultyFactor: DefaultNearDifficultyFactor,
		TimePenaltyThreshold: DefaultTimePenaltyThreshold,
		TimePenaltyFactor:    DefaultTimePenaltyFactor,
		DefaultResultCount:   DefaultResultCount,
		MaxResultCount:       DefaultMaxResultCount,
	}
}

// MaxBaseScore is the highest pre-penalty score a game can reach.
func (c ScoringConfig) MaxBaseScore() float64 {
	return c.MaxTagScore + c.MaxTagScore*c.PreferredWeight + c.MaxDifficultyScore
}
