package chi

import (
	"time"

	domcat "github.com/boardka/boardka/internal/domain/catalog"
	"github.com/boardka/boardka/internal/domain/game"
	"github.com/boardka/boardka/internal/domain/recommend/result"
	recommenduc "github.com/boardka/boardka/internal/usecase/recommend"
)

// errorCode is the machine-readable error identifier in error responses.
type errorCode string

const (
	codeBadRequest        errorCode = "bad_request"
	codeValidationFailed  errorCode = "validation_failed"
	codeUnauthorized      errorCode = "unauthorized"
	codeNotFound          errorCode = "not_found"
	codeGameNotFound      errorCode = "game_not_found"
	codeNoTags            errorCode = "game_has_no_tags"
	codeCatalogNotLoaded  errorCode = "catalog_not_loaded"
	codeCatalogLoadFailed errorCode = "catalog_load_failed"
	codePreferenceStore   errorCode = "preference_store_unavailable"
	codeRateLimited       errorCode = "rate_limited"
	codeInternalError     errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type recommendationRequest struct {
	Players int      `json:"players" validate:"required,min=1"`
	Time    *int     `json:"time,omitempty" validate:"omitempty,min=1"`
	Tags    []string `json:"tags,omitempty" validate:"max=64,dive,max=100"`
	// PreferredTags: absent uses stored preferences, [] disables them.
	PreferredTags  []string `json:"preferred_tags,omitempty" validate:"omitempty,max=64,dive,max=100"`
	UsePreferences *bool    `json:"use_preferences,omitempty"`
	Difficulty     *int     `json:"difficulty,omitempty" validate:"omitempty,min=1,max=5"`
	Limit          int      `json:"limit,omitempty" validate:"omitempty,min=1"`
}

func (r *recommendationRequest) toUsecase() *recommenduc.Request {
	use := true
	if r.UsePreferences != nil {
		use = *r.UsePreferences
	}
	return &recommenduc.Request{
		Players:        r.Players,
		TargetTime:     r.Time,
		Tags:           r.Tags,
		PreferredTags:  r.PreferredTags,
		UsePreferences: use,
		Difficulty:     r.Difficulty,
		Limit:          r.Limit,
	}
}

type likeRequest struct {
	GameID string `json:"game_id" validate:"required,max=128"`
}

type gameResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	MinPlayers int      `json:"min_players"`
	MaxPlayers int      `json:"max_players"`
	MinTime    int      `json:"min_time"`
	MaxTime    int      `json:"max_time"`
	Difficulty int      `json:"difficulty"`
	Tags       []string `json:"tags"`
}

type breakdownResponse struct {
	Tag        float64 `json:"tag"`
	Preferred  float64 `json:"preferred"`
	Difficulty float64 `json:"difficulty"`
	Penalty    float64 `json:"penalty"`
}

type recommendationItem struct {
	Rank      int               `json:"rank"`
	Game      gameResponse      `json:"game"`
	Score     float64           `json:"score"`
	Breakdown breakdownResponse `json:"breakdown"`
}

type recommendationStats struct {
	Considered      int `json:"considered"`
	RejectedPlayers int `json:"rejected_players"`
	RejectedTime    int `json:"rejected_time"`
}

type recommendationResponse struct {
	ID            string               `json:"id"`
	Results       []recommendationItem `json:"results"`
	PreferredTags []string             `json:"preferred_tags"`
	Stats         recommendationStats  `json:"stats"`
}

type gameListResponse struct {
	Items      []gameResponse `json:"items"`
	HasMore    bool           `json:"has_more"`
	NextCursor *string        `json:"next_cursor,omitempty"`
}

type tagCountResponse struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type tagListResponse struct {
	Items    []tagCountResponse `json:"items"`
	MinCount int                `json:"min_count"`
}

type preferencesResponse struct {
	Weights map[string]int `json:"weights"`
	Top     []string       `json:"top"`
}

type likeResponse struct {
	Game          gameResponse `json:"game"`
	PreferredTags []string     `json:"preferred_tags"`
}

type reloadResponse struct {
	Source   string    `json:"source"`
	Games    int       `json:"games"`
	LoadedAt time.Time `json:"loaded_at"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
	Games  int               `json:"games"`
}

func gameToResponse(g *game.Game) gameResponse {
	tags := g.Tags()
	if tags == nil {
		tags = []string{}
	}
	return gameResponse{
		ID:         g.ID(),
		Name:       g.Name(),
		MinPlayers: g.MinPlayers(),
		MaxPlayers: g.MaxPlayers(),
		MinTime:    g.MinTime(),
		MaxTime:    g.MaxTime(),
		Difficulty: g.Difficulty(),
		Tags:       tags,
	}
}

func recommendationToResponse(rec *recommenduc.Recommendation) recommendationResponse {
	items := make([]recommendationItem, len(rec.Results))
	for i := range rec.Results {
		items[i] = resultToItem(i+1, &rec.Results[i])
	}
	preferred := rec.PreferredTags
	if preferred == nil {
		preferred = []string{}
	}
	return recommendationResponse{
		ID:            rec.ID,
		Results:       items,
		PreferredTags: preferred,
		Stats: recommendationStats{
			Considered:      rec.Stats.Considered,
			RejectedPlayers: rec.Stats.RejectedPlayers,
			RejectedTime:    rec.Stats.RejectedTime,
		},
	}
}

func resultToItem(rank int, r *result.Result) recommendationItem {
	g := r.Game()
	b := r.Breakdown()
	return recommendationItem{
		Rank:  rank,
		Game:  gameToResponse(&g),
		Score: r.Score(),
		Breakdown: breakdownResponse{
			Tag:        b.Tag,
			Preferred:  b.Preferred,
			Difficulty: b.Difficulty,
			Penalty:    b.Penalty,
		},
	}
}

func tagCountsToResponse(counts []domcat.TagCount, minCount int) tagListResponse {
	items := make([]tagCountResponse, len(counts))
	for i, c := range counts {
		items[i] = tagCountResponse{Tag: c.Tag, Count: c.Count}
	}
	return tagListResponse{Items: items, MinCount: minCount}
}
