package boardka

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Recommend ranks the current catalog for req, best first.
// No matching game is not an error: Results is empty.
func (c *Client) Recommend(ctx context.Context, req Request) (rec Recommendation, err error) {
	start := time.Now()
	defer func() { c.obs.observeRecommend(start, &rec, err) }()

	out, err := c.recommendSvc.Recommend(ctx, requestToDomain(&req))
	if err != nil {
		return Recommendation{}, fmt.Errorf("recommend: %w", err)
	}
	return recommendationFromDomain(&out), nil
}

// Games returns the whole catalog in catalog order.
func (c *Client) Games() ([]Game, error) {
	cat, err := c.catalogSvc.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("games: %w", err)
	}
	games := cat.Games()
	out := make([]Game, len(games))
	for i := range games {
		out[i] = gameFromDomain(&games[i])
	}
	return out, nil
}

// Game returns a single game by id.
func (c *Client) Game(id string) (Game, error) {
	g, err := c.catalogSvc.Get(id)
	if err != nil {
		return Game{}, fmt.Errorf("game: %w", err)
	}
	return gameFromDomain(&g), nil
}

// Tags returns tags carried by at least minCount games, most common first.
// minCount <= 0 uses the default of 4.
func (c *Client) Tags(minCount int) ([]TagCount, error) {
	counts, err := c.catalogSvc.TagCounts(minCount)
	if err != nil {
		return nil, fmt.Errorf("tags: %w", err)
	}
	return tagCountsFromDomain(counts), nil
}

// Like adds one to the preference weight of every tag of the game and
// returns the liked game. A game without tags returns ErrNoTags.
func (c *Client) Like(ctx context.Context, gameID string) (g Game, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opLike, start, err) }()

	liked, err := c.prefSvc.Like(ctx, gameID)
	if err != nil {
		return Game{}, fmt.Errorf("like: %w", err)
	}
	return gameFromDomain(&liked), nil
}

// Preferences returns the stored tag weights, strongest first.
func (c *Client) Preferences(ctx context.Context) (prefs []TagCount, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opPreferences, start, err) }()

	weights, err := c.prefSvc.Weights(ctx)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}
	prefs = make([]TagCount, 0, len(weights))
	for tag, w := range weights {
		prefs = append(prefs, TagCount{Tag: tag, Count: w})
	}
	sort.Slice(prefs, func(i, j int) bool {
		if prefs[i].Count != prefs[j].Count {
			return prefs[i].Count > prefs[j].Count
		}
		return prefs[i].Tag < prefs[j].Tag
	})
	return prefs, nil
}

// ResetPreferences clears the stored preference profile.
func (c *Client) ResetPreferences(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe(opResetPreferences, start, err) }()

	if err = c.prefSvc.Reset(ctx); err != nil {
		return fmt.Errorf("reset preferences: %w", err)
	}
	return nil
}
