package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"simlab/internal/adapters/observability"
	"simlab/internal/domain"
	"simlab/internal/render"
)

// Report summarises one generation run.
type Report struct {
	RunID       string
	Reviews     int
	Comparisons int
	Rankings    int
	Skipped     int // comparison pairs with an unknown plan
	Duplicates  int // repeated comparison pairs
	Collisions  int // pages dropped because an earlier page took the same file name
	Total       int
}

type GenerateService struct {
	src  domain.CatalogSource
	out  domain.PageWriter
	opts render.Options
}

func NewGenerateService(src domain.CatalogSource, out domain.PageWriter, opts render.Options) *GenerateService {
	return &GenerateService{src: src, out: out, opts: opts}
}

// Plan builds every page of the site in memory. It has no side effects besides metrics, so the
// same catalog and options always yield the same pages in the same order.
func (s *GenerateService) Plan(cat *domain.Catalog) ([]domain.Page, Report) {
	var (
		pages []domain.Page
		rep   Report
	)
	// keyed case-insensitively: A.html and a.html are one file on some filesystems
	taken := make(map[string]struct{})
	add := func(kind, path string, build func() string) bool {
		key := strings.ToLower(path)
		if _, dup := taken[key]; dup {
			rep.Collisions++
			observability.ObserveSkip(kind, "path_collision")
			log.Warn().Str("kind", kind).Str("path", path).Msg("page skipped: file name already used")
			return false
		}
		taken[key] = struct{}{}
		pages = append(pages, domain.Page{Kind: kind, Path: path, HTML: build()})
		return true
	}

	for _, p := range cat.Plans {
		if add(domain.KindReview, render.ReviewPath(p.ID), func() string { return render.Review(p, cat, s.opts) }) {
			rep.Reviews++
		}
	}

	unique := cat.UniquePairs()
	if d := len(cat.Pairs) - len(unique); d > 0 {
		rep.Duplicates = d
		for range d {
			observability.ObserveSkip(domain.KindComparison, "duplicate")
		}
		log.Debug().Int("count", d).Msg("duplicate comparison pairs ignored")
	}
	for _, pair := range unique {
		a, b, ok := cat.ResolvePair(pair)
		if !ok {
			rep.Skipped++
			observability.ObserveSkip(domain.KindComparison, "unknown_plan")
			log.Debug().Str("a", pair.A()).Str("b", pair.B()).Msg("comparison skipped: unknown plan")
			continue
		}
		if add(domain.KindComparison, render.ComparePath(pair), func() string { return render.Comparison(a, b, cat, s.opts) }) {
			rep.Comparisons++
		}
	}

	for _, r := range cat.Rankings {
		if add(domain.KindRanking, render.RankingPath(r), func() string { return render.Ranking(r, cat, s.opts) }) {
			rep.Rankings++
		}
	}

	add(domain.KindGuide, render.GuidePath, func() string { return render.Guide(s.opts) })
	add(domain.KindTable, render.TablePath, func() string { return render.ComparisonTable(cat, s.opts) })
	add(domain.KindIndex, render.IndexPath, func() string { return render.Index(cat, s.opts) })

	rep.Total = len(pages)
	return pages, rep
}

// Generate loads the catalog, builds the site and writes it out.
func (s *GenerateService) Generate(ctx context.Context) (Report, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := log.With().Str("run", runID).Logger()

	cat, err := s.src.LoadCatalog(ctx)
	if err != nil {
		return Report{RunID: runID}, fmt.Errorf("load catalog: %w", err)
	}
	logger.Info().Int("plans", len(cat.Plans)).Int("pairs", len(cat.Pairs)).Int("rankings", len(cat.Rankings)).
		Msg("catalog loaded")

	pages, rep := s.Plan(&cat)
	rep.RunID = runID

	if err := s.out.WritePages(ctx, pages); err != nil {
		return rep, fmt.Errorf("write pages: %w", err)
	}
	for _, p := range pages {
		observability.ObservePage(p.Kind)
	}

	logger.Info().Int("count", rep.Reviews).Msg("review pages written")
	logger.Info().Int("count", rep.Comparisons).Int("skipped", rep.Skipped).Msg("comparison pages written")
	logger.Info().Int("count", rep.Rankings).Msg("ranking pages written")
	logger.Info().Msg("guide, comparison table and index written")

	elapsed := time.Since(start)
	observability.ObserveGenerate(elapsed.Seconds())
	logger.Info().Int("total", rep.Total).Dur("elapsed", elapsed).Msg("generation completed")
	return rep, nil
}
