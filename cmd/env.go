package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/regradar/compliance-cli/internal/classify"
	"github.com/regradar/compliance-cli/internal/enrich"
	"github.com/regradar/compliance-cli/internal/extract"
	"github.com/regradar/compliance-cli/internal/store"
	anthropicpkg "github.com/regradar/compliance-cli/pkg/anthropic"
)

// enrichEnv holds the initialized store and pipeline needed by the enrich,
// batch, and serve commands.
type enrichEnv struct {
	Store     store.Store
	Assembler *enrich.Assembler
}

// Close releases resources held by the environment.
func (e *enrichEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "compliance.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initEnrichment sets up the store, fetchers, classifier, and assembler.
// Callers should defer env.Close().
func initEnrichment(ctx context.Context) (*enrichEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	fetchTimeout := time.Duration(cfg.Scrape.TimeoutSecs) * time.Second
	fetcher := extract.NewHTTPFetcher(fetchTimeout, cfg.Scrape.RatePerSec)

	// Website page strategy: plain HTTP by default, headless browser when
	// configured for JavaScript-heavy sites.
	var pages extract.PageExtractor
	switch cfg.Scrape.Strategy {
	case "", "static":
		pages = extract.NewStaticPage(fetcher)
	case "rendered":
		pages = extract.NewRenderedPage(time.Duration(cfg.Scrape.RenderTimeoutSecs) * time.Second)
	default:
		_ = st.Close()
		return nil, eris.Errorf("unsupported scrape strategy: %s", cfg.Scrape.Strategy)
	}

	// Topic classifier: Claude primary with keyword fallback, keyword-only
	// when no API key is configured.
	var primary classify.Classifier
	if cfg.Anthropic.Key != "" {
		client := anthropicpkg.NewClient(cfg.Anthropic.Key)
		primary = classify.NewLLMClassifier(client, cfg.Anthropic.Model,
			time.Duration(cfg.Anthropic.TimeoutSecs)*time.Second)
	} else {
		zap.L().Warn("REGRADAR_ANTHROPIC_KEY not set, using keyword classifier only")
	}
	classifier := classify.NewTiered(primary)

	wiki := extract.NewWikipediaExtractor(fetcher, classifier)
	website := extract.NewWebsiteExtractor(pages, classifier)

	return &enrichEnv{
		Store:     st,
		Assembler: enrich.NewAssembler(wiki, website, classifier),
	}, nil
}
