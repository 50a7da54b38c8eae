package sched

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/regradar/compliance-cli/internal/model"
	"github.com/regradar/compliance-cli/internal/store"
)

// Enricher re-runs enrichment for a single company.
type Enricher interface {
	Enrich(ctx context.Context, req model.EnrichRequest) (*model.CompanyProfile, error)
}

// RefreshJob re-enriches profiles whose last scrape is older than MaxAge.
type RefreshJob struct {
	Store    store.Store
	Enricher Enricher
	MaxAge   time.Duration
	Limit    int
}

func (j *RefreshJob) Name() string { return "profile-refresh" }

// Run refreshes up to Limit stale profiles. Individual failures are logged
// and skipped so one broken site does not stall the batch.
func (j *RefreshJob) Run(ctx context.Context) error {
	stale, err := j.Store.ListStaleProfiles(ctx, j.MaxAge, j.Limit)
	if err != nil {
		return eris.Wrap(err, "refresh: list stale profiles")
	}
	if len(stale) == 0 {
		return nil
	}

	zap.L().Info("refreshing stale profiles", zap.Int("count", len(stale)))

	refreshed := 0
	for _, p := range stale {
		profile, err := j.Enricher.Enrich(ctx, model.EnrichRequest{
			CompanyName:  p.CompanyName,
			WebsiteURL:   p.WebsiteURL,
			WikipediaURL: p.WikipediaURL,
		})
		if err != nil {
			zap.L().Warn("profile refresh failed",
				zap.String("company", p.CompanyName),
				zap.Error(err))
			continue
		}
		if _, err := j.Store.UpsertProfile(ctx, profile); err != nil {
			zap.L().Warn("profile refresh save failed",
				zap.String("company", p.CompanyName),
				zap.Error(err))
			continue
		}
		refreshed++
	}

	zap.L().Info("stale profile refresh complete",
		zap.Int("refreshed", refreshed),
		zap.Int("failed", len(stale)-refreshed))
	return nil
}
