package boardka

import (
	"context"
	"errors"
	"fmt"
	"time"

	dbRedis "github.com/boardka/boardka/internal/db/redis"
	"github.com/boardka/boardka/internal/domain"
	domcat "github.com/boardka/boardka/internal/domain/catalog"
	"github.com/boardka/boardka/internal/domain/game"
	dompref "github.com/boardka/boardka/internal/domain/preference"
	catalogrepo "github.com/boardka/boardka/internal/repository/catalog"
	preferencerepo "github.com/boardka/boardka/internal/repository/preference"
	cataloguc "github.com/boardka/boardka/internal/usecase/catalog"
	healthuc "github.com/boardka/boardka/internal/usecase/health"
	preferenceuc "github.com/boardka/boardka/internal/usecase/preference"
	recommenduc "github.com/boardka/boardka/internal/usecase/recommend"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultPreferencePath   = "data/user_prefs.json"
	defaultKeyPrefix        = "boardka:"
	inMemorySource          = "memory"

	driverFile   = "file"
	driverRedis  = "redis"
	driverValkey = "valkey"
)

// Internal interfaces for substitution in tests.
type catalogUseCase interface {
	Reload(ctx context.Context) (*domcat.Catalog, error)
	Snapshot() (*domcat.Catalog, error)
	Get(id string) (game.Game, error)
	TagCounts(minCount int) ([]domcat.TagCount, error)
}

type recommendUseCase interface {
	Recommend(ctx context.Context, req *recommenduc.Request) (recommenduc.Recommendation, error)
}

type preferenceUseCase interface {
	Like(ctx context.Context, gameID string) (game.Game, error)
	Weights(ctx context.Context) (dompref.Weights, error)
	Reset(ctx context.Context) error
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// closer releases the preference store connection, if any.
type closer interface {
	Close()
}

// Client is the boardka SDK entry point. It is safe for concurrent use.
type Client struct {
	store        closer
	catalogSvc   catalogUseCase
	recommendSvc recommendUseCase
	prefSvc      preferenceUseCase
	healthSvc    healthUseCase
	obs          *observer
}

// New creates a Client, loads the catalog and connects the preference store.
// The provided context is used for the initial load and readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		prefDriver: driverFile,
		prefPath:   defaultPreferencePath,
		keyPrefix:  defaultKeyPrefix,
		topN:       recommenduc.DefaultPreferredTopN,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	scoring := scoringToDomain(cfg.scoring)
	if err := validateScoring(scoring); err != nil {
		return nil, err
	}

	loader, err := createLoader(cfg)
	if err != nil {
		return nil, err
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	catalogSvc := cataloguc.New(loader)
	if _, err := catalogSvc.Reload(ctx); err != nil {
		return nil, fmt.Errorf("boardka: %w", err)
	}

	prefStore, pinger, store, err := createPreferenceStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	engine := recommenduc.NewEngine(scoring)
	prefSvc := preferenceuc.New(prefStore, catalogSvc)
	recommendSvc := recommenduc.New(engine, catalogSvc, prefSvc).WithPreferredTopN(cfg.topN)

	return &Client{
		store:        store,
		catalogSvc:   catalogSvc,
		recommendSvc: recommendSvc,
		prefSvc:      prefSvc,
		healthSvc:    healthuc.New(catalogSvc, pinger),
		obs:          obs,
	}, nil
}

func createLoader(cfg *clientConfig) (cataloguc.Loader, error) {
	if cfg.gamesSet {
		games, err := gamesToDomain(cfg.games)
		if err != nil {
			return nil, err
		}
		return catalogrepo.NewStatic(inMemorySource, games), nil
	}
	if cfg.catalogPath == "" {
		return nil, errors.New("boardka: catalog required (use WithCatalogFile or WithGames)")
	}
	loader, err := catalogrepo.NewLoader(cfg.catalogPath, cfg.catalogFormat, cfg.catalogSheet)
	if err != nil {
		return nil, fmt.Errorf("boardka: %w", err)
	}
	return loader, nil
}

// createPreferenceStore returns the store, its health pinger (nil for files)
// and the connection to close (nil for files).
func createPreferenceStore(
	ctx context.Context, cfg *clientConfig,
) (preferenceuc.Store, healthuc.StorePinger, closer, error) {
	switch cfg.prefDriver {
	case driverFile:
		if cfg.prefPath == "" {
			return nil, nil, nil, errors.New("boardka: preference file path required")
		}
		return preferencerepo.NewFileStore(cfg.prefPath), nil, nil, nil
	case driverRedis, driverValkey:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("boardka: create %s store: %w", cfg.prefDriver, err)
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, nil, nil, fmt.Errorf("boardka: %s not ready: %w", cfg.prefDriver, err)
		}
		return preferencerepo.New(s, cfg.keyPrefix), s, s, nil
	default:
		return nil, nil, nil, fmt.Errorf("boardka: unknown preference driver %q", cfg.prefDriver)
	}
}

func validateScoring(cfg domain.ScoringConfig) error {
	for _, w := range []struct {
		name string
		v    float64
	}{
		{"max tag score", cfg.MaxTagScore},
		{"preferred weight", cfg.PreferredWeight},
		{"max difficulty score", cfg.MaxDifficultyScore},
		{"near difficulty factor", cfg.NearDifficultyFactor},
		{"time penalty factor", cfg.TimePenaltyFactor},
	} {
		if w.v < 0 {
			return fmt.Errorf("boardka: %s must not be negative, got %g", w.name, w.v)
		}
	}
	if cfg.PreferredWeight > 1 || cfg.NearDifficultyFactor > 1 || cfg.TimePenaltyFactor > 1 {
		return fmt.Errorf("boardka: preferred weight and factors must be <= 1")
	}
	if cfg.TimePenaltyThreshold < 0 {
		return fmt.Errorf("boardka: time penalty threshold must not be negative, got %d", cfg.TimePenaltyThreshold)
	}
	return nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Reload re-reads the catalog source. On failure the previous catalog stays
// in place.
func (c *Client) Reload(ctx context.Context) (info CatalogInfo, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opReload, start, err) }()

	cat, err := c.catalogSvc.Reload(ctx)
	if err != nil {
		return CatalogInfo{}, fmt.Errorf("reload: %w", err)
	}
	return catalogInfo(cat), nil
}

// Catalog describes the current catalog snapshot.
func (c *Client) Catalog() (CatalogInfo, error) {
	cat, err := c.catalogSvc.Snapshot()
	if err != nil {
		return CatalogInfo{}, fmt.Errorf("catalog: %w", err)
	}
	return catalogInfo(cat), nil
}

func catalogInfo(cat *domcat.Catalog) CatalogInfo {
	return CatalogInfo{
		Source:   cat.Source(),
		Games:    cat.Len(),
		LoadedAt: cat.LoadedAt(),
	}
}

// Health checks the health of all components.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
		Games:  report.Games,
	}
}
