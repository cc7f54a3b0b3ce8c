package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"simlab/internal/adapters/observability"
	"simlab/internal/domain"
)

type ImportService struct {
	src   domain.CatalogSource
	store domain.CatalogStore
}

func NewImportService(src domain.CatalogSource, store domain.CatalogStore) *ImportService {
	return &ImportService{src: src, store: store}
}

// Import copies a validated catalog into the store, replacing its pairs and rankings.
func (s *ImportService) Import(ctx context.Context) (domain.Catalog, error) {
	cat, err := s.src.LoadCatalog(ctx)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("load catalog: %w", err)
	}
	if err := s.store.UpsertCatalog(ctx, cat); err != nil {
		return domain.Catalog{}, fmt.Errorf("upsert catalog: %w", err)
	}
	log.Info().Int("plans", len(cat.Plans)).Int("pairs", len(cat.Pairs)).Int("rankings", len(cat.Rankings)).
		Msg("catalog imported")
	return cat, nil
}

// LinkResult is the outcome of checking one affiliate URL.
type LinkResult struct {
	PlanID string
	Kind   string // affiliate|pixel
	URL    string
	Status int
	Err    error
}

func (r LinkResult) OK() bool { return r.Err == nil }

type LinkAudit struct {
	checker domain.LinkChecker
	workers int
}

func NewLinkAudit(c domain.LinkChecker, workers int) *LinkAudit {
	if workers <= 0 {
		workers = 1
	}
	return &LinkAudit{checker: c, workers: workers}
}

// Run checks every affiliate URL and tracking pixel in the catalog. Results keep catalog order.
func (a *LinkAudit) Run(ctx context.Context, cat domain.Catalog) ([]LinkResult, error) {
	var targets []LinkResult
	for _, p := range cat.Plans {
		targets = append(targets, LinkResult{PlanID: p.ID, Kind: "affiliate", URL: p.AffiliateURL})
		if p.AffiliatePixel != "" {
			targets = append(targets, LinkResult{PlanID: p.ID, Kind: "pixel", URL: p.AffiliatePixel})
		}
	}

	sem := semaphore.NewWeighted(int64(a.workers))
	var wg sync.WaitGroup
	for i := range targets {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(r *LinkResult) {
			defer wg.Done()
			defer sem.Release(1)

			r.Status, r.Err = a.checker.Check(ctx, r.URL)
			switch {
			case r.Err == nil:
				observability.ObserveLinkCheck("ok")
				log.Debug().Str("plan", r.PlanID).Str("url", r.URL).Int("status", r.Status).Msg("link ok")
			case errors.Is(r.Err, domain.ErrBrokenLink):
				observability.ObserveLinkCheck("broken")
				log.Warn().Str("plan", r.PlanID).Str("kind", r.Kind).Str("url", r.URL).Int("status", r.Status).Msg("broken link")
			default:
				observability.ObserveLinkCheck("error")
				log.Warn().Str("plan", r.PlanID).Str("kind", r.Kind).Str("url", r.URL).Err(r.Err).Msg("link check failed")
			}
		}(&targets[i])
	}
	wg.Wait()
	return targets, nil
}
