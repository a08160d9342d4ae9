package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/boardka/boardka/internal/domain"
)

func validConfig() Config {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 8080},
		Catalog: CatalogConfig{Path: "data/GameList.xlsx"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingCatalogPath(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.Path = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing catalog path")
	}
}

func TestValidate_InvalidCatalogFormat(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.Format = "csv"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid catalog format")
	}
	expected := `catalog.format must be "auto", "xlsx" or "yaml", got "csv"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_PreferenceDrivers(t *testing.T) {
	tests := []struct {
		driver  string
		addrs   []string
		wantErr bool
	}{
		{"file", nil, false},
		{"redis", []string{"localhost:6379"}, false},
		{"valkey", []string{"localhost:6379"}, false},
		{"redis", nil, true},
		{"valkey", nil, true},
		{"sqlite", nil, true},
	}
	for _, tc := range tests {
		t.Run("driver="+tc.driver, func(t *testing.T) {
			cfg := validConfig()
			cfg.Preferences.Driver = tc.driver
			cfg.Preferences.Addrs = tc.addrs

			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidate_ScoringBounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ScoringConfig)
	}{
		{"penalty factor above 1", func(s *ScoringConfig) { s.TimePenaltyFactor = floatPtr(1.5) }},
		{"near factor above 1", func(s *ScoringConfig) { s.NearDifficultyFactor = floatPtr(2) }},
		{"negative preferred weight", func(s *ScoringConfig) { s.PreferredWeight = floatPtr(-0.1) }},
		{"negative threshold", func(s *ScoringConfig) { s.TimePenaltyThreshold = intPtr(-1) }},
		{"default above max", func(s *ScoringConfig) { s.DefaultLimit = 20; s.MaxLimit = 10 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg.Scoring)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestValidate_NegativeRateLimit(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.RequestsPerMinute = -1

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative rate limit")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Catalog.Format != "auto" {
		t.Errorf("expected Format=auto, got %q", cfg.Catalog.Format)
	}
	if cfg.Preferences.Driver != "file" {
		t.Errorf("expected Driver=file, got %q", cfg.Preferences.Driver)
	}
	if cfg.Preferences.Path != "data/user_prefs.json" {
		t.Errorf("expected Path=data/user_prefs.json, got %q", cfg.Preferences.Path)
	}
	if cfg.Preferences.KeyPrefix != "boardka:" {
		t.Errorf("expected KeyPrefix='boardka:', got %q", cfg.Preferences.KeyPrefix)
	}
	if cfg.Preferences.TopN != 5 {
		t.Errorf("expected TopN=5, got %d", cfg.Preferences.TopN)
	}
	if cfg.Preferences.MinTagCount != 4 {
		t.Errorf("expected MinTagCount=4, got %d", cfg.Preferences.MinTagCount)
	}
	if got := cfg.Scoring.Domain(); !reflect.DeepEqual(got, domain.DefaultScoringConfig()) {
		t.Errorf("scoring defaults = %+v, want %+v", got, domain.DefaultScoringConfig())
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:        HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Preferences: PreferencesConfig{Driver: "redis", KeyPrefix: "custom:", TopN: 3},
		Scoring:     ScoringConfig{MaxTagScore: floatPtr(100), TimePenaltyThreshold: intPtr(15)},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Preferences.Driver != "redis" || cfg.Preferences.KeyPrefix != "custom:" || cfg.Preferences.TopN != 3 {
		t.Errorf("preferences overridden: %+v", cfg.Preferences)
	}
	sc := cfg.Scoring.Domain()
	if sc.MaxTagScore != 100 || sc.TimePenaltyThreshold != 15 {
		t.Errorf("scoring overridden: %+v", sc)
	}
	if sc.TimePenaltyFactor != domain.DefaultTimePenaltyFactor {
		t.Errorf("expected default TimePenaltyFactor, got %v", sc.TimePenaltyFactor)
	}
}

func TestParse_ExpandsEnvVars(t *testing.T) {
	t.Setenv("BOARDKA_PORT", "9090")
	t.Setenv("BOARDKA_API_KEY", "secret")

	data := []byte(`
http:
  port: ${BOARDKA_PORT}
auth:
  api_keys: ["${BOARDKA_API_KEY}"]
catalog:
  path: ${BOARDKA_CATALOG:-data/GameList.xlsx}
scoring:
  max_limit: 50
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.HTTP.Port)
	}
	if !reflect.DeepEqual(cfg.Auth.APIKeys, []string{"secret"}) {
		t.Errorf("APIKeys = %v", cfg.Auth.APIKeys)
	}
	if cfg.Catalog.Path != "data/GameList.xlsx" {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
	if cfg.Scoring.MaxLimit != 50 || cfg.Scoring.DefaultLimit != 5 {
		t.Errorf("limits = %d/%d", cfg.Scoring.DefaultLimit, cfg.Scoring.MaxLimit)
	}
}

func TestParse_ExplicitZeroWeightsSurvive(t *testing.T) {
	data := []byte(`
http:
  port: 8080
catalog:
  path: data/games.yaml
scoring:
  preferred_weight: 0
  time_penalty_threshold_min: 0
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sc := cfg.Scoring.Domain()
	if sc.PreferredWeight != 0 {
		t.Errorf("PreferredWeight = %v, want 0", sc.PreferredWeight)
	}
	if sc.TimePenaltyThreshold != 0 {
		t.Errorf("TimePenaltyThreshold = %d, want 0", sc.TimePenaltyThreshold)
	}
	if sc.MaxTagScore != domain.DefaultMaxTagScore {
		t.Errorf("MaxTagScore = %v, want default", sc.MaxTagScore)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := Parse([]byte("http:\n  port: 8080\n")); err == nil {
		t.Fatal("expected validation error for missing catalog path")
	}
}

func TestLoad_BundledConfigs(t *testing.T) {
	for _, env := range []string{"local", "prod"} {
		t.Run(env, func(t *testing.T) {
			path := findConfigPath(env)
			if _, err := os.Stat(filepath.Clean(path)); err != nil {
				t.Skipf("config file %s not found: %v", path, err)
			}
			if _, err := Load(env); err != nil {
				t.Fatalf("Load(%q): %v", env, err)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, want prod", got)
	}
}
