package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/boardka/boardka/internal/domain/game"
)

// record is one catalog row before normalization. Every cell is kept as text
// so spreadsheet and YAML sources share the same parsing rules.
type record struct {
	ID         string
	Name       string
	MinPlayers string
	MaxPlayers string
	MinTime    string
	MaxTime    string
	Difficulty string
	Tags       []string
}

// toGame normalizes a record into a Game. index is the 0-based position of the
// row among data rows and supplies the ID when the row has none.
//
// Rules: a row without a name or without an integer difficulty is rejected;
// min players default to 1 and max players to min players; min time defaults
// to 0 and max time to min time; reversed bounds are swapped back.
func (r *record) toGame(index int) (game.Game, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return game.Game{}, fmt.Errorf("row %d: name is empty", index+1)
	}

	difficulty, ok := parseInt(r.Difficulty)
	if !ok {
		return game.Game{}, fmt.Errorf("row %d (%s): difficulty %q is not a number", index+1, name, r.Difficulty)
	}

	minPlayers, ok := parseInt(r.MinPlayers)
	if !ok {
		minPlayers = 1
	}
	maxPlayers, ok := parseInt(r.MaxPlayers)
	if !ok {
		maxPlayers = minPlayers
	}
	minTime, ok := parseInt(r.MinTime)
	if !ok {
		minTime = 0
	}
	maxTime, ok := parseInt(r.MaxTime)
	if !ok {
		maxTime = minTime
	}
	if minPlayers > maxPlayers {
		minPlayers, maxPlayers = maxPlayers, minPlayers
	}
	if minTime > maxTime {
		minTime, maxTime = maxTime, minTime
	}

	g, err := game.New(r.id(index), name, minPlayers, maxPlayers, minTime, maxTime, difficulty, r.Tags)
	if err != nil {
		return game.Game{}, fmt.Errorf("row %d: %w", index+1, err)
	}
	return g, nil
}

// id returns the normalized row ID: integral numbers lose their fraction
// ("3.0" -> "3"), other text is kept as-is, empty falls back to index+1.
func (r *record) id(index int) string {
	raw := strings.TrimSpace(r.ID)
	if raw == "" {
		return strconv.Itoa(index + 1)
	}
	if n, ok := parseInt(raw); ok {
		return strconv.Itoa(n)
	}
	return raw
}

// parseInt reads an integer cell. Spreadsheet numbers may arrive as "3.0";
// fractions are truncated.
func parseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// splitTags splits a comma separated tag cell.
func splitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return game.NormalizeTags(strings.Split(s, ","))
}
