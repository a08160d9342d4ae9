package recommend

import (
	"math"
	"testing"

	"github.com/boardka/boardka/internal/domain"
	"github.com/boardka/boardka/internal/domain/game"
	"github.com/boardka/boardka/internal/domain/recommend/query"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < eps }

func intPtr(v int) *int { return &v }

func newGame(t *testing.T, id string, minP, maxP, minT, maxT, difficulty int, tags ...string) game.Game {
	t.Helper()
	g, err := game.New(id, "game-"+id, minP, maxP, minT, maxT, difficulty, tags)
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	return g
}

// strategyGame is the single-game catalog used by the reference scenarios:
// players 2-4, time 30-60, difficulty 3, tags {전략}.
func strategyGame(t *testing.T) game.Game {
	return newGame(t, "1", 2, 4, 30, 60, 3, "전략")
}

func newQuery(
	t *testing.T, players int, targetTime *int, selected, preferred []string, difficulty *int, limit int,
) query.Query {
	t.Helper()
	q, err := query.New(players, targetTime, selected, preferred, difficulty, limit, 5, 100)
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	return q
}

func newEngine() *Engine { return NewEngine(domain.DefaultScoringConfig()) }

func TestRank_PerfectMatch(t *testing.T) {
	e := newEngine()
	q := newQuery(t, 3, intPtr(45), []string{"전략"}, nil, intPtr(3), 5)

	res, stats := e.Rank([]game.Game{strategyGame(t)}, &q)
	if len(res) != 1 {
		t.Fatalf("expected 1 result, got %d", len(res))
	}
	b := res[0].Breakdown()
	if !approx(b.Penalty, 1.0) || !approx(b.Tag, 60) || !approx(b.Difficulty, 40) || !approx(b.Preferred, 0) {
		t.Errorf("unexpected breakdown: %+v", b)
	}
	if !approx(res[0].Score(), 100) {
		t.Errorf("score = %v, want 100", res[0].Score())
	}
	if stats.Considered != 1 || stats.Scored != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestRank_PlayerFilterExcludes(t *testing.T) {
	e := newEngine()
	q := newQuery(t, 5, intPtr(45), []string{"전략"}, nil, intPtr(3), 5)

	res, stats := e.Rank([]game.Game{strategyGame(t)}, &q)
	if len(res) != 0 {
		t.Fatalf("expected no results, got %d", len(res))
	}
	if stats.RejectedPlayers != 1 {
		t.Errorf("RejectedPlayers = %d, want 1", stats.RejectedPlayers)
	}
}

func TestRank_FarOutsideTimeExcludes(t *testing.T) {
	e := newEngine()
	q := newQuery(t, 3, intPtr(95), []string{"전략"}, nil, intPtr(3), 5)

	res, stats := e.Rank([]game.Game{strategyGame(t)}, &q)
	if len(res) != 0 {
		t.Fatalf("expected no results, got %d", len(res))
	}
	if stats.RejectedTime != 1 {
		t.Errorf("RejectedTime = %d, want 1", stats.RejectedTime)
	}
}

func TestRank_NearTimePenalized(t *testing.T) {
	e := newEngine()
	q := newQuery(t, 3, intPtr(75), []string{"전략"}, nil, intPtr(3), 5)

	res, _ := e.Rank([]game.Game{strategyGame(t)}, &q)
	if len(res) != 1 {
		t.Fatalf("expected 1 result, got %d", len(res))
	}
	if !approx(res[0].Breakdown().Penalty, 0.7) {
		t.Errorf("penalty = %v, want 0.7", res[0].Breakdown().Penalty)
	}
	if !approx(res[0].Score(), 70) {
		t.Errorf("score = %v, want 70", res[0].Score())
	}
}

func TestRank_NoPreferencesStillRanked(t *testing.T) {
	e := newEngine()
	q := newQuery(t, 3, nil, nil, nil, nil, 5)

	res, _ := e.Rank([]game.Game{strategyGame(t)}, &q)
	if len(res) != 1 {
		t.Fatalf("expected 1 result, got %d", len(res))
	}
	b := res[0].Breakdown()
	if !approx(res[0].Score(), 0) || !approx(b.Penalty, 1) || b.Tag != 0 || b.Difficulty != 0 || b.Preferred != 0 {
		t.Errorf("unexpected result: score=%v breakdown=%+v", res[0].Score(), b)
	}
}

func TestFilterAndPenalize_TimeThreshold(t *testing.T) {
	e := newEngine()
	g := strategyGame(t)

	tests := []struct {
		name        string
		players     int
		target      *int
		wantAccept  bool
		wantPenalty float64
	}{
		{"no target", 3, nil, true, 1.0},
		{"inside range", 3, intPtr(45), true, 1.0},
		{"lower bound", 3, intPtr(30), true, 1.0},
		{"upper bound", 3, intPtr(60), true, 1.0},
		{"diff 1 below", 3, intPtr(29), true, 0.7},
		{"diff 30 above", 3, intPtr(90), true, 0.7},
		{"diff 31 above", 3, intPtr(91), false, 0},
		{"diff 30 below", 3, intPtr(1), true, 0.7},
		{"too few players", 1, nil, false, 0},
		{"too many players", 5, intPtr(45), false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, penalty := e.FilterAndPenalize(&g, tt.players, tt.target)
			if ok != tt.wantAccept {
				t.Fatalf("accept = %v, want %v", ok, tt.wantAccept)
			}
			if ok && !approx(penalty, tt.wantPenalty) {
				t.Errorf("penalty = %v, want %v", penalty, tt.wantPenalty)
			}
		})
	}
}

func TestFilterAndPenalize_PlayerGateIsHard(t *testing.T) {
	e := newEngine()
	g := newGame(t, "x", 3, 6, 10, 20, 2)
	for p := 1; p <= 8; p++ {
		ok, _ := e.FilterAndPenalize(&g, p, nil)
		if want := p >= 3 && p <= 6; ok != want {
			t.Errorf("players=%d accept=%v, want %v", p, ok, want)
		}
	}
}

func TestTagScore(t *testing.T) {
	e := newEngine()
	tests := []struct {
		name     string
		gameTags []string
		selected []string
		want     float64
	}{
		{"empty selected", []string{"전략"}, nil, 0},
		{"empty game tags", nil, []string{"전략"}, 0},
		{"whitespace-only selected", []string{"전략"}, []string{" ", ""}, 0},
		{"full overlap", []string{"전략", "엔진빌딩"}, []string{"전략"}, 60},
		{"half overlap", []string{"전략"}, []string{"전략", "파티"}, 30},
		{"third overlap", []string{"전략", "협력"}, []string{"전략", "파티", "추리"}, 20},
		{"no overlap", []string{"협력"}, []string{"전략"}, 0},
		{"trimmed match", []string{" 전략 "}, []string{"전략  "}, 60},
		{"duplicates collapse", []string{"전략"}, []string{"전략", "전략", "파티"}, 30},
		{"case sensitive", []string{"Strategy"}, []string{"strategy"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.TagScore(tt.gameTags, tt.selected)
			if !approx(got, tt.want) {
				t.Errorf("TagScore = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 60 {
				t.Errorf("TagScore %v out of [0, 60]", got)
			}
		})
	}
}

func TestPreferredScore(t *testing.T) {
	e := newEngine()
	if got := e.PreferredScore([]string{"전략"}, nil); got != 0 {
		t.Errorf("absent preferred = %v, want 0", got)
	}
	if got := e.PreferredScore([]string{"전략"}, []string{}); got != 0 {
		t.Errorf("empty preferred = %v, want 0", got)
	}
	if got := e.PreferredScore([]string{"전략"}, []string{"전략"}); !approx(got, 18) {
		t.Errorf("full preferred = %v, want 18", got)
	}
	got := e.PreferredScore([]string{"전략", "파티"}, []string{"전략", "협력", "추리", "파티"})
	if !approx(got, 0.3*60*0.5) {
		t.Errorf("half preferred = %v, want 9", got)
	}
}

func TestDifficultyScore(t *testing.T) {
	e := newEngine()
	if got := e.DifficultyScore(3, nil); got != 0 {
		t.Errorf("ignored difficulty = %v, want 0", got)
	}
	for d := 1; d <= 5; d++ {
		exact := e.DifficultyScore(d, intPtr(d))
		if !approx(exact, 40) {
			t.Errorf("DifficultyScore(%d,%d) = %v, want 40", d, d, exact)
		}
		for _, off := range []int{-1, 1} {
			if d+off < 1 || d+off > 5 {
				continue
			}
			if got := e.DifficultyScore(d, intPtr(d+off)); !approx(got, 16) {
				t.Errorf("DifficultyScore(%d,%d) = %v, want 16", d, d+off, got)
			}
		}
		for _, off := range []int{-2, 2, 3, -3, 4} {
			if d+off < 1 || d+off > 5 {
				continue
			}
			if got := e.DifficultyScore(d, intPtr(d+off)); got != 0 {
				t.Errorf("DifficultyScore(%d,%d) = %v, want 0", d, d+off, got)
			}
		}
	}
}

func TestRank_OrderingAndTruncation(t *testing.T) {
	e := newEngine()
	games := []game.Game{
		newGame(t, "a", 2, 4, 30, 60, 1, "파티"),       // 0
		newGame(t, "b", 2, 4, 30, 60, 3, "전략"),       // 60 + 40
		newGame(t, "c", 2, 4, 30, 60, 2, "전략", "파티"), // 60 + 16
		newGame(t, "d", 2, 4, 70, 80, 3, "전략"),       // (60 + 40) * 0.7
		newGame(t, "e", 5, 6, 30, 60, 3, "전략"),       // excluded by players
	}
	q := newQuery(t, 3, intPtr(45), []string{"전략"}, nil, intPtr(3), 3)

	res, stats := e.Rank(games, &q)
	if len(res) != 3 {
		t.Fatalf("expected 3 results, got %d", len(res))
	}
	wantIDs := []string{"b", "c", "d"}
	wantScores := []float64{100, 76, 70}
	for i := range res {
		g := res[i].Game()
		if g.ID() != wantIDs[i] {
			t.Errorf("res[%d] = %s, want %s", i, g.ID(), wantIDs[i])
		}
		if !approx(res[i].Score(), wantScores[i]) {
			t.Errorf("res[%d] score = %v, want %v", i, res[i].Score(), wantScores[i])
		}
	}
	for i := 1; i < len(res); i++ {
		if res[i-1].Score() < res[i].Score() {
			t.Errorf("results not descending at %d", i)
		}
	}
	if stats.Considered != 5 || stats.RejectedPlayers != 1 || stats.Scored != 4 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestRank_TiesKeepCatalogOrder(t *testing.T) {
	e := newEngine()
	var games []game.Game
	for _, id := range []string{"z", "y", "x", "w", "v", "u"} {
		games = append(games, newGame(t, id, 1, 8, 10, 90, 2))
	}
	q := newQuery(t, 4, nil, nil, nil, nil, 10)

	for run := 0; run < 5; run++ {
		res, _ := e.Rank(games, &q)
		if len(res) != len(games) {
			t.Fatalf("expected %d results, got %d", len(games), len(res))
		}
		for i := range res {
			g := res[i].Game()
			if g.ID() != games[i].ID() {
				t.Fatalf("run %d: res[%d] = %s, want %s", run, i, g.ID(), games[i].ID())
			}
		}
	}
}

func TestRank_EmptyCatalog(t *testing.T) {
	e := newEngine()
	q := newQuery(t, 2, nil, nil, nil, nil, 5)
	res, stats := e.Rank(nil, &q)
	if res == nil || len(res) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", res)
	}
	if stats.Considered != 0 {
		t.Errorf("Considered = %d, want 0", stats.Considered)
	}
}

func TestRank_SelectedAndPreferredDoubleCount(t *testing.T) {
	e := newEngine()
	q := newQuery(t, 3, nil, []string{"전략"}, []string{"전략"}, nil, 5)
	res, _ := e.Rank([]game.Game{strategyGame(t)}, &q)
	if len(res) != 1 || !approx(res[0].Score(), 78) {
		t.Fatalf("expected single result with score 78, got %+v", res)
	}
}

func TestRank_ScoreIsBaseTimesPenalty(t *testing.T) {
	e := newEngine()
	games := []game.Game{
		newGame(t, "1", 1, 6, 20, 40, 2, "전략", "협력"),
		newGame(t, "2", 1, 6, 50, 70, 4, "협력"),
		newGame(t, "3", 1, 6, 5, 15, 3, "파티", "전략"),
	}
	q := newQuery(t, 2, intPtr(35), []string{"전략", "협력"}, []string{"파티"}, intPtr(3), 10)
	res, _ := e.Rank(games, &q)
	for i := range res {
		b := res[i].Breakdown()
		if b.Penalty != 1.0 && b.Penalty != 0.7 {
			t.Errorf("penalty %v not in {1.0, 0.7}", b.Penalty)
		}
		if !approx(res[i].Score(), b.Base()*b.Penalty) {
			t.Errorf("score %v != base %v × penalty %v", res[i].Score(), b.Base(), b.Penalty)
		}
		if b.Base() > e.Config().MaxBaseScore()+eps {
			t.Errorf("base %v exceeds max %v", b.Base(), e.Config().MaxBaseScore())
		}
	}
}

func TestRank_CustomWeights(t *testing.T) {
	cfg := domain.DefaultScoringConfig()
	cfg.MaxTagScore = 10
	cfg.TimePenaltyThreshold = 5
	cfg.TimePenaltyFactor = 0.5
	e := NewEngine(cfg)

	g := strategyGame(t)
	q := newQuery(t, 3, intPtr(65), []string{"전략"}, nil, nil, 5)
	res, _ := e.Rank([]game.Game{g}, &q)
	if len(res) != 1 || !approx(res[0].Score(), 5) {
		t.Fatalf("expected score 5, got %+v", res)
	}

	q = newQuery(t, 3, intPtr(66), []string{"전략"}, nil, nil, 5)
	res, _ = e.Rank([]game.Game{g}, &q)
	if len(res) != 0 {
		t.Fatalf("expected exclusion beyond custom threshold, got %d results", len(res))
	}
}
