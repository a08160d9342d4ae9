package catalog

import (
	"sort"
	"time"

	"github.com/boardka/boardka/internal/domain/game"
)

// TagCount is the number of games carrying a tag.
type TagCount struct {
	Tag   string
	Count int
}

// Catalog is an immutable snapshot of the game list for one load.
type Catalog struct {
	games    []game.Game
	byID     map[string]int
	dropped  []string
	source   string
	loadedAt time.Time
}

// New creates a Catalog. Catalog order is preserved. IDs are unique within a
// snapshot: a game repeating an earlier ID is dropped and reported by Dropped.
func New(games []game.Game, source string, loadedAt time.Time) *Catalog {
	c := &Catalog{
		games:    make([]game.Game, 0, len(games)),
		byID:     make(map[string]int, len(games)),
		source:   source,
		loadedAt: loadedAt,
	}
	for i := range games {
		id := games[i].ID()
		if _, ok := c.byID[id]; ok {
			c.dropped = append(c.dropped, id)
			continue
		}
		c.byID[id] = len(c.games)
		c.games = append(c.games, games[i])
	}
	return c
}

// Games returns the games in catalog order. Callers must not modify the slice.
func (c *Catalog) Games() []game.Game { return c.games }

// Len returns the number of games.
func (c *Catalog) Len() int { return len(c.games) }

// Source describes where the snapshot was loaded from.
func (c *Catalog) Source() string { return c.source }

// LoadedAt returns the snapshot load time.
func (c *Catalog) LoadedAt() time.Time { return c.loadedAt }

// Dropped returns the IDs of games discarded as duplicates, in input order.
func (c *Catalog) Dropped() []string { return c.dropped }

// Index returns the catalog position of the game with the given ID.
func (c *Catalog) Index(id string) (int, bool) {
	i, ok := c.byID[id]
	return i, ok
}

// Get looks up a game by ID.
func (c *Catalog) Get(id string) (game.Game, bool) {
	i, ok := c.byID[id]
	if !ok {
		return game.Game{}, false
	}
	return c.games[i], true
}

// TagCounts counts games per tag, keeping tags with at least minCount games.
// Sorted by count descending, then tag ascending.
func (c *Catalog) TagCounts(minCount int) []TagCount {
	counts := make(map[string]int)
	for i := range c.games {
		for _, t := range c.games[i].Tags() {
			counts[t]++
		}
	}

	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		if n < minCount {
			continue
		}
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}
