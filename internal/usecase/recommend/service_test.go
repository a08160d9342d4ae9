package recommend

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/boardka/boardka/internal/domain"
	domcat "github.com/boardka/boardka/internal/domain/catalog"
	"github.com/boardka/boardka/internal/domain/game"
)

// --- Mocks ---

type mockCatalog struct {
	cat *domcat.Catalog
	err error
}

func (m *mockCatalog) Snapshot() (*domcat.Catalog, error) { return m.cat, m.err }

type mockPrefs struct {
	top    []string
	err    error
	called bool
	lastN  int
}

func (m *mockPrefs) Top(_ context.Context, n int) ([]string, error) {
	m.called = true
	m.lastN = n
	return m.top, m.err
}

func newService(t *testing.T, prefs PreferenceReader, games ...game.Game) *Service {
	t.Helper()
	cat := domcat.New(games, "test", time.Now())
	svc := New(newEngine(), &mockCatalog{cat: cat}, prefs)
	svc.newID = func() string { return "rec-1" }
	return svc
}

// --- Tests ---

func TestRecommend_Basic(t *testing.T) {
	svc := newService(t, nil, strategyGame(t))

	rec, err := svc.Recommend(context.Background(), &Request{
		Players: 3, TargetTime: intPtr(45), Tags: []string{"전략"}, Difficulty: intPtr(3),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != "rec-1" {
		t.Errorf("ID = %q, want rec-1", rec.ID)
	}
	if len(rec.Results) != 1 || !approx(rec.Results[0].Score(), 100) {
		t.Fatalf("unexpected results: %+v", rec.Results)
	}
	if rec.PreferredTags != nil {
		t.Errorf("PreferredTags = %v, want nil", rec.PreferredTags)
	}
}

func TestRecommend_UsesStoredPreferences(t *testing.T) {
	prefs := &mockPrefs{top: []string{"전략"}}
	svc := newService(t, prefs, strategyGame(t)).WithPreferredTopN(3)

	rec, err := svc.Recommend(context.Background(), &Request{Players: 3, UsePreferences: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !prefs.called || prefs.lastN != 3 {
		t.Errorf("preferences not consulted correctly: called=%v n=%d", prefs.called, prefs.lastN)
	}
	if !reflect.DeepEqual(rec.PreferredTags, []string{"전략"}) {
		t.Errorf("PreferredTags = %v", rec.PreferredTags)
	}
	if !approx(rec.Results[0].Score(), 18) {
		t.Errorf("score = %v, want 18", rec.Results[0].Score())
	}
}

func TestRecommend_ExplicitPreferredWins(t *testing.T) {
	prefs := &mockPrefs{top: []string{"파티"}}
	svc := newService(t, prefs, strategyGame(t))

	rec, err := svc.Recommend(context.Background(), &Request{
		Players: 3, PreferredTags: []string{"전략"}, UsePreferences: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefs.called {
		t.Error("store should not be consulted when preferred tags are explicit")
	}
	if !approx(rec.Results[0].Score(), 18) {
		t.Errorf("score = %v, want 18", rec.Results[0].Score())
	}
}

func TestRecommend_PreferencesDisabled(t *testing.T) {
	prefs := &mockPrefs{top: []string{"전략"}}
	svc := newService(t, prefs, strategyGame(t))

	rec, err := svc.Recommend(context.Background(), &Request{Players: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefs.called {
		t.Error("store consulted although preferences are disabled")
	}
	if rec.Results[0].Score() != 0 {
		t.Errorf("score = %v, want 0", rec.Results[0].Score())
	}
}

func TestRecommend_PreferenceStoreFailureDegrades(t *testing.T) {
	prefs := &mockPrefs{err: errors.New("redis down")}
	svc := newService(t, prefs, strategyGame(t))

	rec, err := svc.Recommend(context.Background(), &Request{Players: 3, UsePreferences: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Results) != 1 || rec.PreferredTags != nil {
		t.Errorf("expected ranking without preferred tags, got %+v", rec)
	}
}

func TestRecommend_InvalidQuery(t *testing.T) {
	svc := newService(t, nil, strategyGame(t))
	_, err := svc.Recommend(context.Background(), &Request{Players: 0})
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestRecommend_CatalogNotLoaded(t *testing.T) {
	svc := New(newEngine(), &mockCatalog{err: domain.ErrCatalogNotLoaded}, nil)
	_, err := svc.Recommend(context.Background(), &Request{Players: 2})
	if !errors.Is(err, domain.ErrCatalogNotLoaded) {
		t.Fatalf("expected ErrCatalogNotLoaded, got %v", err)
	}
}

func TestRecommend_DefaultLimitFromConfig(t *testing.T) {
	var games []game.Game
	for _, id := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		games = append(games, newGame(t, id, 1, 4, 10, 60, 2))
	}
	svc := newService(t, nil, games...)

	rec, err := svc.Recommend(context.Background(), &Request{Players: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Results) != domain.DefaultResultCount {
		t.Errorf("len = %d, want %d", len(rec.Results), domain.DefaultResultCount)
	}
	if rec.Stats.Considered != 7 {
		t.Errorf("Considered = %d, want 7", rec.Stats.Considered)
	}
}

func TestRecommend_NoSurvivorsIsNotAnError(t *testing.T) {
	svc := newService(t, nil, strategyGame(t))
	rec, err := svc.Recommend(context.Background(), &Request{Players: 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Results) != 0 {
		t.Errorf("expected empty results, got %d", len(rec.Results))
	}
}
