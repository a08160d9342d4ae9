package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/boardka/boardka/internal/domain"
	"github.com/boardka/boardka/internal/domain/game"
)

// yamlCatalog is the on-disk YAML layout:
//
//	games:
//	  - id: 1
//	    name: 스플렌더
//	    min_players: 2
//	    max_players: 4
//	    min_time: 30
//	    max_time: 40
//	    difficulty: 2
//	    tags: [전략, 엔진빌딩]
type yamlCatalog struct {
	Games []yamlGame `yaml:"games"`
}

type yamlGame struct {
	ID         scalar  `yaml:"id"`
	Name       scalar  `yaml:"name"`
	MinPlayers scalar  `yaml:"min_players"`
	MaxPlayers scalar  `yaml:"max_players"`
	MinTime    scalar  `yaml:"min_time"`
	MaxTime    scalar  `yaml:"max_time"`
	Difficulty scalar  `yaml:"difficulty"`
	Tags       tagList `yaml:"tags"`
}

// scalar keeps the raw text of any YAML scalar (number, string, null).
type scalar string

func (s *scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	if node.Tag == "!!null" {
		*s = ""
		return nil
	}
	*s = scalar(node.Value)
	return nil
}

// tagList accepts either a sequence of tags or one comma separated string.
type tagList []string

func (t *tagList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var tags []string
		if err := node.Decode(&tags); err != nil {
			return err
		}
		*t = game.NormalizeTags(tags)
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*t = nil
			return nil
		}
		*t = splitTags(node.Value)
	default:
		return fmt.Errorf("line %d: tags must be a list or a comma separated string", node.Line)
	}
	return nil
}

// YAMLLoader reads games from a YAML document.
type YAMLLoader struct {
	path string
}

// NewYAMLLoader creates a YAML loader.
func NewYAMLLoader(path string) *YAMLLoader {
	return &YAMLLoader{path: path}
}

// Source returns the file path.
func (l *YAMLLoader) Source() string { return l.path }

// Load reads and normalizes every entry.
func (l *YAMLLoader) Load(ctx context.Context) ([]game.Game, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrCatalogLoad, l.path, err)
	}

	var doc yamlCatalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrCatalogLoad, l.path, err)
	}

	records := make([]record, len(doc.Games))
	for i := range doc.Games {
		g := &doc.Games[i]
		records[i] = record{
			ID:         strings.TrimSpace(string(g.ID)),
			Name:       string(g.Name),
			MinPlayers: string(g.MinPlayers),
			MaxPlayers: string(g.MaxPlayers),
			MinTime:    string(g.MinTime),
			MaxTime:    string(g.MaxTime),
			Difficulty: string(g.Difficulty),
			Tags:       []string(g.Tags),
		}
	}
	return normalize(ctx, l.path, records), nil
}
