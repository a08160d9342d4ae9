package boardka

import "time"

// Game is a catalog entry.
type Game struct {
	ID         string
	Name       string
	MinPlayers int
	MaxPlayers int
	MinTime    int // minutes
	MaxTime    int // minutes
	Difficulty int // 1-5
	Tags       []string
}

// Request describes what the caller wants to play.
type Request struct {
	Players int
	// TargetTime is the desired play time in minutes. Nil ignores time.
	TargetTime *int
	Tags       []string
	// PreferredTags, when non-nil, is used as-is instead of the stored profile.
	PreferredTags []string
	// UsePreferences fills preferred tags from the stored profile when
	// PreferredTags is nil.
	UsePreferences bool
	// Difficulty is the desired difficulty 1-5. Nil ignores difficulty.
	Difficulty *int
	// Limit is K. Zero means the configured default.
	Limit int
}

// Int returns a pointer to v, for the optional Request fields.
func Int(v int) *int { return &v }

// Breakdown is the per-component contribution behind a score.
type Breakdown struct {
	Tag        float64
	Preferred  float64
	Difficulty float64
	Penalty    float64
}

// Result is one ranked game.
type Result struct {
	Game      Game
	Score     float64
	Breakdown Breakdown
}

// Recommendation is a ranked answer to a Request.
type Recommendation struct {
	ID            string
	Results       []Result
	PreferredTags []string
	Considered    int
}

// TagCount is the number of catalog games carrying a tag.
type TagCount struct {
	Tag   string
	Count int
}

// CatalogInfo describes the loaded catalog snapshot.
type CatalogInfo struct {
	Source   string
	Games    int
	LoadedAt time.Time
}

// Scoring holds the ranking weights.
type Scoring struct {
	MaxTagScore          float64
	PreferredWeight      float64
	MaxDifficultyScore   float64
	NearDifficultyFactor float64
	TimePenaltyThreshold int // minutes
	TimePenaltyFactor    float64
	DefaultResultCount   int
	MaxResultCount       int
}

// HealthStatus represents the aggregated client health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
	Games  int
}
