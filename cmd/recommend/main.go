// Command recommend ranks a catalog file once and prints the top matches.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/boardka/boardka/internal/domain"
	"github.com/boardka/boardka/internal/domain/recommend/query"
	"github.com/boardka/boardka/internal/domain/recommend/result"
	logpkg "github.com/boardka/boardka/internal/logger"
	catalogrepo "github.com/boardka/boardka/internal/repository/catalog"
	recommenduc "github.com/boardka/boardka/internal/usecase/recommend"
	"github.com/boardka/boardka/internal/version"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// defaultCatalogPath is the sample catalog shipped with the repository.
const defaultCatalogPath = "data/games.yaml"

type options struct {
	data       string
	format     string
	sheet      string
	players    int
	time       int
	difficulty int
	tags       string
	topK       int
	logLevel   string
	version    bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("recommend", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.data, "data", defaultCatalogPath, "catalog file (.xlsx, .yaml)")
	fs.StringVar(&o.format, "format", catalogrepo.FormatAuto, "catalog format: auto, xlsx, yaml")
	fs.StringVar(&o.sheet, "sheet", "", "spreadsheet sheet name (default: first sheet)")
	fs.IntVar(&o.players, "players", 0, "number of players (required)")
	fs.IntVar(&o.time, "time", 0, "target play time in minutes (0 = any)")
	fs.IntVar(&o.difficulty, "difficulty", 0, "desired difficulty 1-5 (0 = any)")
	fs.StringVar(&o.tags, "tags", "", "comma separated tags")
	fs.IntVar(&o.topK, "top-k", domain.DefaultResultCount, "number of games to show")
	fs.StringVar(&o.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	fs.BoolVar(&o.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.version {
		return o, nil
	}
	if o.players < 1 {
		return o, errors.New("--players is required and must be at least 1")
	}
	if o.time < 0 {
		return o, errors.New("--time must not be negative")
	}
	if o.difficulty != 0 && (o.difficulty < 1 || o.difficulty > 5) {
		return o, errors.New("--difficulty must be between 1 and 5")
	}
	if o.topK < 1 {
		return o, errors.New("--top-k must be at least 1")
	}
	return o, nil
}

// buildQuery maps flags to a query; zero time and difficulty mean "not given".
func (o *options) buildQuery(cfg domain.ScoringConfig) (query.Query, error) {
	var targetTime, difficulty *int
	if o.time > 0 {
		t := o.time
		targetTime = &t
	}
	if o.difficulty > 0 {
		d := o.difficulty
		difficulty = &d
	}
	var tags []string
	if strings.TrimSpace(o.tags) != "" {
		tags = strings.Split(o.tags, ",")
	}
	return query.New(o.players, targetTime, tags, nil, difficulty, o.topK, cfg.DefaultResultCount, cfg.MaxResultCount)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	if opts.version {
		fmt.Fprintln(stdout, "recommend", version.String())
		return 0
	}

	logger, err := logpkg.NewLogger("local", opts.logLevel)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	defer func() { _ = logger.Sync() }()
	ctx = logpkg.ContextWithLogger(ctx, logger)

	loader, err := catalogrepo.NewLoader(opts.data, opts.format, opts.sheet)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	games, err := loader.Load(ctx)
	if err != nil {
		logger.Debug("catalog load failed", zap.String("path", opts.data), zap.Error(err))
		fmt.Fprintf(stderr, "데이터 파일을 불러올 수 없습니다: %s (%v)\n", opts.data, err)
		return 1
	}

	cfg := domain.DefaultScoringConfig()
	cfg.MaxResultCount = max(cfg.MaxResultCount, opts.topK)
	q, err := opts.buildQuery(cfg)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}

	results, _ := recommenduc.NewEngine(cfg).Rank(games, &q)
	printResults(stdout, results)
	return 0
}

func printResults(w io.Writer, results []result.Result) {
	fmt.Fprintln(w, "\n=== 추천 결과 ===")
	if len(results) == 0 {
		fmt.Fprintln(w, "조건에 맞는 게임이 없습니다.")
		return
	}

	for i := range results {
		g := results[i].Game()
		tags := "(태그 없음)"
		if g.HasTags() {
			tags = strings.Join(g.Tags(), ", ")
		}
		fmt.Fprintf(w, "[%d] %s\n", i+1, g.Name())
		fmt.Fprintf(w, "    인원: %d~%d명, 시간: %d~%d분, 난이도: %d/5\n",
			g.MinPlayers(), g.MaxPlayers(), g.MinTime(), g.MaxTime(), g.Difficulty())
		fmt.Fprintf(w, "    태그: %s\n", tags)
		fmt.Fprintf(w, "    점수: %.3f\n", results[i].Score())
		fmt.Fprintln(w)
	}
}
