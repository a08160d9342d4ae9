package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/boardka/boardka/internal/domain"
)

// Config holds the boardka API configuration.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	CORS        CORSConfig        `yaml:"cors"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Auth        AuthConfig        `yaml:"auth"`
	Catalog     CatalogConfig     `yaml:"catalog"`
	Preferences PreferencesConfig `yaml:"preferences"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CORSConfig holds cross-origin settings for browser front-ends.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"` // empty disables CORS handling
	MaxAgeSec      int      `yaml:"max_age_sec"`
}

// RateLimitConfig holds per-IP request limits.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"` // 0 = unlimited
}

// CatalogConfig holds the game catalog source.
type CatalogConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // auto (default), xlsx, yaml
	Sheet  string `yaml:"sheet"`  // xlsx only; empty = first sheet
}

// PreferencesConfig holds the preference store settings.
type PreferencesConfig struct {
	Driver           string   `yaml:"driver"` // file (default), redis, valkey
	Path             string   `yaml:"path"`
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	TopN             int      `yaml:"top_n"`
	MinTagCount      int      `yaml:"min_tag_count"`
}

// ScoringConfig holds the ranking weights. Weights are pointers so an
// explicit 0 survives; only absent keys take the defaults. Limits <= 0 take
// the defaults.
type ScoringConfig struct {
	MaxTagScore          *float64 `yaml:"max_tag_score"`
	PreferredWeight      *float64 `yaml:"preferred_weight"`
	MaxDifficultyScore   *float64 `yaml:"max_difficulty_score"`
	NearDifficultyFactor *float64 `yaml:"near_difficulty_factor"`
	TimePenaltyThreshold *int     `yaml:"time_penalty_threshold_min"`
	TimePenaltyFactor    *float64 `yaml:"time_penalty_factor"`
	DefaultLimit         int      `yaml:"default_limit"`
	MaxLimit             int      `yaml:"max_limit"`
}

// Domain converts the scoring section into the engine configuration.
// Unset weights resolve to the defaults.
func (s ScoringConfig) Domain() domain.ScoringConfig {
	cfg := domain.DefaultScoringConfig()
	setFloat(&cfg.MaxTagScore, s.MaxTagScore)
	setFloat(&cfg.PreferredWeight, s.PreferredWeight)
	setFloat(&cfg.MaxDifficultyScore, s.MaxDifficultyScore)
	setFloat(&cfg.NearDifficultyFactor, s.NearDifficultyFactor)
	setFloat(&cfg.TimePenaltyFactor, s.TimePenaltyFactor)
	if s.TimePenaltyThreshold != nil {
		cfg.TimePenaltyThreshold = *s.TimePenaltyThreshold
	}
	if s.DefaultLimit > 0 {
		cfg.DefaultResultCount = s.DefaultLimit
	}
	if s.MaxLimit > 0 {
		cfg.MaxResultCount = s.MaxLimit
	}
	return cfg
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration, substituting ${VAR} references, then
// applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.CORS.MaxAgeSec <= 0 {
		c.CORS.MaxAgeSec = 300
	}
	if c.Catalog.Format == "" {
		c.Catalog.Format = "auto"
	}
	if c.Preferences.Driver == "" {
		c.Preferences.Driver = "file"
	}
	if c.Preferences.Path == "" {
		c.Preferences.Path = "data/user_prefs.json"
	}
	if c.Preferences.KeyPrefix == "" {
		c.Preferences.KeyPrefix = "boardka:"
	}
	if c.Preferences.ReadinessTimeout <= 0 {
		c.Preferences.ReadinessTimeout = 10
	}
	if c.Preferences.TopN <= 0 {
		c.Preferences.TopN = 5
	}
	if c.Preferences.MinTagCount <= 0 {
		c.Preferences.MinTagCount = 4
	}
	c.Scoring.applyDefaults()
}

func (s *ScoringConfig) applyDefaults() {
	d := domain.DefaultScoringConfig()
	s.MaxTagScore = floatOr(s.MaxTagScore, d.MaxTagScore)
	s.PreferredWeight = floatOr(s.PreferredWeight, d.PreferredWeight)
	s.MaxDifficultyScore = floatOr(s.MaxDifficultyScore, d.MaxDifficultyScore)
	s.NearDifficultyFactor = floatOr(s.NearDifficultyFactor, d.NearDifficultyFactor)
	s.TimePenaltyFactor = floatOr(s.TimePenaltyFactor, d.TimePenaltyFactor)
	if s.TimePenaltyThreshold == nil {
		v := d.TimePenaltyThreshold
		s.TimePenaltyThreshold = &v
	}
	if s.DefaultLimit <= 0 {
		s.DefaultLimit = d.DefaultResultCount
	}
	if s.MaxLimit <= 0 {
		s.MaxLimit = d.MaxResultCount
	}
}

func floatOr(v *float64, def float64) *float64 {
	if v != nil {
		return v
	}
	return &def
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must not be negative, got %d", c.RateLimit.RequestsPerMinute)
	}
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog.path is required")
	}
	switch c.Catalog.Format {
	case "auto", "xlsx", "yaml":
	default:
		return fmt.Errorf("catalog.format must be \"auto\", \"xlsx\" or \"yaml\", got %q", c.Catalog.Format)
	}
	switch c.Preferences.Driver {
	case "file":
	case "redis", "valkey":
		if len(c.Preferences.Addrs) == 0 {
			return fmt.Errorf("preferences.addrs is required for driver %q", c.Preferences.Driver)
		}
	default:
		return fmt.Errorf("preferences.driver must be \"file\", \"redis\" or \"valkey\", got %q", c.Preferences.Driver)
	}
	if err := c.Scoring.validate(); err != nil {
		return err
	}
	if c.Scoring.DefaultLimit > c.Scoring.MaxLimit {
		return fmt.Errorf("scoring.default_limit (%d) exceeds scoring.max_limit (%d)",
			c.Scoring.DefaultLimit, c.Scoring.MaxLimit)
	}
	return nil
}

func (s *ScoringConfig) validate() error {
	sc := s.Domain()
	for _, w := range []struct {
		key string
		v   float64
	}{
		{"max_tag_score", sc.MaxTagScore},
		{"preferred_weight", sc.PreferredWeight},
		{"max_difficulty_score", sc.MaxDifficultyScore},
		{"near_difficulty_factor", sc.NearDifficultyFactor},
		{"time_penalty_factor", sc.TimePenaltyFactor},
	} {
		if w.v < 0 {
			return fmt.Errorf("scoring.%s must not be negative, got %v", w.key, w.v)
		}
	}
	if sc.TimePenaltyThreshold < 0 {
		return fmt.Errorf("scoring.time_penalty_threshold_min must not be negative, got %d", sc.TimePenaltyThreshold)
	}
	if sc.TimePenaltyFactor > 1 {
		return fmt.Errorf("scoring.time_penalty_factor must be at most 1, got %v", sc.TimePenaltyFactor)
	}
	if sc.NearDifficultyFactor > 1 {
		return fmt.Errorf("scoring.near_difficulty_factor must be at most 1, got %v", sc.NearDifficultyFactor)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
