package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/boardka/boardka/internal/domain"
	"github.com/boardka/boardka/internal/domain/game"
	"github.com/boardka/boardka/internal/logger"
)

// Supported catalog formats.
const (
	FormatAuto = "auto"
	FormatXLSX = "xlsx"
	FormatYAML = "yaml"
)

// Loader reads a catalog source into games.
type Loader interface {
	Load(ctx context.Context) ([]game.Game, error)
	Source() string
}

// NewLoader picks a loader for path. FormatAuto (or empty) chooses by extension.
func NewLoader(path, format, sheet string) (Loader, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog path is required")
	}

	f, err := resolveFormat(path, format)
	if err != nil {
		return nil, err
	}
	switch f {
	case FormatXLSX:
		return NewXLSXLoader(path, sheet), nil
	default:
		return NewYAMLLoader(path), nil
	}
}

func resolveFormat(path, format string) (string, error) {
	switch strings.ToLower(format) {
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case "", FormatAuto:
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: cannot infer format of %s", domain.ErrUnsupportedFormat, path)
	}
}

// Static serves a fixed, already validated game list.
type Static struct {
	games  []game.Game
	source string
}

// NewStatic creates a loader over games.
func NewStatic(source string, games []game.Game) *Static {
	cp := make([]game.Game, len(games))
	copy(cp, games)
	return &Static{games: cp, source: source}
}

// Source returns the configured source label.
func (s *Static) Source() string { return s.source }

// Load returns a copy of the games.
func (s *Static) Load(context.Context) ([]game.Game, error) {
	out := make([]game.Game, len(s.games))
	copy(out, s.games)
	return out, nil
}

// normalize converts records into games, skipping rows that cannot form a
// valid game. Game IDs are unique: a repeated ID keeps its first row.
func normalize(ctx context.Context, source string, records []record) []game.Game {
	log := logger.FromContext(ctx)

	games := make([]game.Game, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	skipped, duplicates := 0, 0
	for i := range records {
		g, err := records[i].toGame(i)
		if err != nil {
			skipped++
			log.Debug("catalog row skipped", zap.String("source", source), zap.Error(err))
			continue
		}
		if _, dup := seen[g.ID()]; dup {
			duplicates++
			log.Warn("duplicate game id skipped",
				zap.String("source", source),
				zap.String("id", g.ID()),
				zap.Int("row", i+1),
			)
			continue
		}
		seen[g.ID()] = struct{}{}
		games = append(games, g)
	}

	if skipped > 0 || duplicates > 0 {
		log.Warn("catalog rows skipped",
			zap.String("source", source),
			zap.Int("skipped", skipped),
			zap.Int("duplicates", duplicates),
			zap.Int("loaded", len(games)),
		)
	}
	return games
}
