// Package enrich drives the profile enrichment pipeline: it runs the
// available extractors, merges their field sets, classifies the merged
// result, and stamps the completion status.
package enrich

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/regradar/compliance-cli/internal/classify"
	"github.com/regradar/compliance-cli/internal/model"
)

// WikiExtractor is the encyclopedia-page extraction dependency.
type WikiExtractor interface {
	Extract(ctx context.Context, url string) (*model.FieldSet, error)
}

// SiteExtractor is the corporate-website extraction dependency.
type SiteExtractor interface {
	Extract(ctx context.Context, url string) (*model.FieldSet, error)
}

// Assembler runs the enrichment pipeline for one company identity. Extractor
// and classifier failures become profile data; the only error Enrich returns
// is input validation before any extraction is attempted.
type Assembler struct {
	wiki       WikiExtractor
	website    SiteExtractor
	classifier classify.Classifier
}

// NewAssembler wires the pipeline dependencies.
func NewAssembler(wiki WikiExtractor, website SiteExtractor, classifier classify.Classifier) *Assembler {
	return &Assembler{wiki: wiki, website: website, classifier: classifier}
}

// Enrich builds a fresh profile for the request. The two extractors run
// concurrently on independent inputs and join before the merge; the merged
// field set is classified once more so cross-source evidence can refine the
// topic set.
func (a *Assembler) Enrich(ctx context.Context, req model.EnrichRequest) (*model.CompanyProfile, error) {
	if req.CompanyName == "" {
		return nil, eris.New("enrich: company_name is required")
	}

	log := zap.L().With(zap.String("company", req.CompanyName))
	log.Info("enrich: starting",
		zap.String("website_url", req.WebsiteURL),
		zap.String("wikipedia_url", req.WikipediaURL),
	)

	profile := &model.CompanyProfile{
		CompanyName:  req.CompanyName,
		WebsiteURL:   req.WebsiteURL,
		WikipediaURL: req.WikipediaURL,
		ScrapeStatus: model.ScrapeStatusPending,
	}

	var (
		wikiFields, webFields *model.FieldSet
		wikiErr, webErr       error
	)

	g, gCtx := errgroup.WithContext(ctx)

	if req.WikipediaURL != "" {
		g.Go(func() error {
			wikiFields, wikiErr = a.wiki.Extract(gCtx, req.WikipediaURL)
			if wikiErr != nil {
				log.Warn("enrich: wikipedia extraction failed", zap.Error(wikiErr))
			}
			return nil
		})
	}
	if req.WebsiteURL != "" {
		g.Go(func() error {
			webFields, webErr = a.website.Extract(gCtx, req.WebsiteURL)
			if webErr != nil {
				log.Warn("enrich: website extraction failed", zap.Error(webErr))
			}
			return nil
		})
	}
	_ = g.Wait()

	// The encyclopedia attempt comes first in reference order, so its error
	// is the one recorded; a later website error never overwrites it.
	if wikiErr != nil {
		profile.ScrapeError = wikiErr.Error()
	} else if webErr != nil {
		profile.ScrapeError = webErr.Error()
	}

	merged := Merge(wikiFields, webFields)

	// One more classification pass over the merged field set.
	if topics, err := a.classifier.Classify(ctx, merged); err == nil {
		merged.Topics = topics
	} else {
		log.Warn("enrich: merged classification failed", zap.Error(err))
	}

	applyFields(profile, merged)
	profile.SourceType = sourceType(wikiFields != nil, webFields != nil)
	profile.ScrapeStatus = deriveStatus(profile)

	now := time.Now().UTC()
	profile.LastScrapedAt = &now

	log.Info("enrich: complete",
		zap.String("status", string(profile.ScrapeStatus)),
		zap.String("source_type", string(profile.SourceType)),
		zap.Int("topics", len(profile.RegulatoryTopics)),
	)

	return profile, nil
}

// applyFields copies the merged field set onto the profile.
func applyFields(p *model.CompanyProfile, f *model.FieldSet) {
	p.Industry = f.Industry
	p.Description = f.Description
	p.FoundedYear = f.FoundedYear
	p.Headquarters = f.Headquarters
	p.EmployeeCount = f.EmployeeCount
	p.ProductsServices = f.ProductsServices
	p.TechnologiesUsed = f.TechnologiesUsed
	p.Keywords = f.Keywords
	p.Categories = f.Categories
	p.RegulatoryTopics = f.Topics
}

// deriveStatus is the terminal-state rule: failed without an informative
// field, success or partial depending on whether any source degraded.
func deriveStatus(p *model.CompanyProfile) model.ScrapeStatus {
	if p.Description == "" && p.Industry == "" {
		return model.ScrapeStatusFailed
	}
	if p.ScrapeError != "" {
		return model.ScrapeStatusPartial
	}
	return model.ScrapeStatusSuccess
}
