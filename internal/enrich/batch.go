package enrich

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/regradar/compliance-cli/internal/model"
)

var titleCaser = cases.Title(language.English)

// EnrichBatch enriches one profile per URL. Items run concurrently under a
// bounded worker pool; one item's failure lands in the error list and never
// aborts or delays the rest. URLs that fail before any extraction (no
// parseable host) produce a BatchError instead of a profile.
func (a *Assembler) EnrichBatch(ctx context.Context, urls []string, concurrency int) *model.BatchResult {
	if concurrency <= 0 {
		concurrency = 5
	}

	zap.L().Info("enrich: batch starting",
		zap.Int("urls", len(urls)),
		zap.Int("concurrency", concurrency),
	)

	result := &model.BatchResult{}
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, raw := range urls {
		g.Go(func() error {
			name, err := CompanyNameFromURL(raw)
			if err != nil {
				mu.Lock()
				result.Errors = append(result.Errors, model.BatchError{URL: raw, Error: err.Error()})
				mu.Unlock()
				return nil
			}

			profile, err := a.Enrich(gCtx, model.EnrichRequest{
				CompanyName: name,
				WebsiteURL:  raw,
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors = append(result.Errors, model.BatchError{URL: raw, Error: err.Error()})
				return nil
			}
			result.Profiles = append(result.Profiles, *profile)
			return nil
		})
	}
	_ = g.Wait()

	zap.L().Info("enrich: batch complete",
		zap.Int("profiles", len(result.Profiles)),
		zap.Int("errors", len(result.Errors)),
	)

	return result
}

// CompanyNameFromURL derives a display name from a URL: strip "www.", take
// the host's first label, title-case it.
func CompanyNameFromURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", errInvalidURL(raw)
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil || u.Hostname() == "" {
		return "", errInvalidURL(raw)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	label, _, _ := strings.Cut(host, ".")
	if label == "" {
		return "", errInvalidURL(raw)
	}

	return titleCaser.String(label), nil
}

func errInvalidURL(raw string) error {
	return eris.Errorf("batch: no parseable host in %q", raw)
}
