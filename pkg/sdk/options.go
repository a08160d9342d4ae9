package boardka

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	catalogPath   string
	catalogFormat string
	catalogSheet  string
	games         []Game
	gamesSet      bool

	prefDriver string // "file", "redis" or "valkey"
	prefPath   string
	addrs      []string
	password   string
	keyPrefix  string
	topN       int

	scoring *Scoring

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithCatalogFile loads the catalog from an xlsx or YAML file.
// The format is picked from the file extension.
func WithCatalogFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.catalogPath = path
		c.catalogFormat = ""
	})
}

// WithCatalogSheet selects the xlsx worksheet. Defaults to the first sheet.
func WithCatalogSheet(sheet string) Option {
	return optionFunc(func(c *clientConfig) {
		c.catalogSheet = sheet
	})
}

// WithCatalogFormat forces the catalog format ("xlsx" or "yaml").
func WithCatalogFormat(format string) Option {
	return optionFunc(func(c *clientConfig) {
		c.catalogFormat = format
	})
}

// WithGames serves a fixed in-memory catalog instead of a file.
func WithGames(games []Game) Option {
	return optionFunc(func(c *clientConfig) {
		c.games = append([]Game(nil), games...)
		c.gamesSet = true
	})
}

// WithPreferenceFile keeps the tag preference profile in a JSON file.
// This is the default, at data/user_prefs.json.
func WithPreferenceFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.prefDriver = driverFile
		c.prefPath = path
	})
}

// WithRedis keeps the tag preference profile in a Redis hash.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.prefDriver = driverRedis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithValkey keeps the tag preference profile in a Valkey hash.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.prefDriver = driverValkey
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix sets the Redis/Valkey key prefix. Default: "boardka:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithPreferredTopN sets how many stored preference tags feed a recommendation.
// Default: 5.
func WithPreferredTopN(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.topN = n
	})
}

// WithScoring overrides the ranking weights. Every weight is used as given,
// so start from DefaultScoring(). Zero result counts keep their defaults.
func WithScoring(s Scoring) Option {
	return optionFunc(func(c *clientConfig) {
		c.scoring = &s
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithMetrics registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithMetrics(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
