package enrich

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regradar/compliance-cli/internal/classify"
	"github.com/regradar/compliance-cli/internal/model"
)

// stubExtractor returns fixed fields or a fixed error for every URL.
type stubExtractor struct {
	fields *model.FieldSet
	err    error
	calls  int
}

func (s *stubExtractor) Extract(_ context.Context, _ string) (*model.FieldSet, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.fields, nil
}

func newAssembler(wiki, web *stubExtractor) *Assembler {
	return NewAssembler(wiki, web, classify.NewTiered(nil))
}

func TestEnrich_BothSourcesSucceed(t *testing.T) {
	wiki := &stubExtractor{fields: &model.FieldSet{
		Industry:    "Financial technology",
		Description: "We process card payment data for merchants.",
		FoundedYear: 1998,
	}}
	web := &stubExtractor{fields: &model.FieldSet{
		Description: "Website copy.",
		Keywords:    []string{"Payments"},
	}}

	profile, err := newAssembler(wiki, web).Enrich(context.Background(), model.EnrichRequest{
		CompanyName:  "Acme Pay",
		WebsiteURL:   "https://acme.example",
		WikipediaURL: "https://en.wikipedia.org/wiki/Acme_Pay",
	})
	require.NoError(t, err)

	assert.Equal(t, model.ScrapeStatusSuccess, profile.ScrapeStatus)
	assert.Equal(t, model.SourceCombined, profile.SourceType)
	assert.Equal(t, "Financial technology", profile.Industry)
	assert.Equal(t, "We process card payment data for merchants.", profile.Description)
	assert.Equal(t, []string{"Payments"}, profile.Keywords)
	assert.Empty(t, profile.ScrapeError)
	assert.NotNil(t, profile.LastScrapedAt)

	// Keyword classification over the merged fields: payment and data terms.
	assert.Equal(t, []model.Topic{model.TopicBaFin, model.TopicGDPR}, profile.RegulatoryTopics)

	assert.Equal(t, 1, wiki.calls)
	assert.Equal(t, 1, web.calls)
}

func TestEnrich_WikipediaFails_WebsiteCarries(t *testing.T) {
	wiki := &stubExtractor{err: eris.New("fetch wiki: status 404")}
	web := &stubExtractor{fields: &model.FieldSet{
		Description: "Sustainability reporting software.",
	}}

	profile, err := newAssembler(wiki, web).Enrich(context.Background(), model.EnrichRequest{
		CompanyName:  "GreenCo",
		WebsiteURL:   "https://greenco.example",
		WikipediaURL: "https://en.wikipedia.org/wiki/GreenCo",
	})
	require.NoError(t, err)

	assert.Equal(t, model.ScrapeStatusPartial, profile.ScrapeStatus)
	assert.Equal(t, model.SourceWebsite, profile.SourceType)
	assert.Contains(t, profile.ScrapeError, "status 404")
	assert.Equal(t, "Sustainability reporting software.", profile.Description)
}

func TestEnrich_WikipediaErrorTakesPrecedence(t *testing.T) {
	wiki := &stubExtractor{err: eris.New("wiki down")}
	web := &stubExtractor{err: eris.New("site down")}

	profile, err := newAssembler(wiki, web).Enrich(context.Background(), model.EnrichRequest{
		CompanyName:  "Gone GmbH",
		WebsiteURL:   "https://gone.example",
		WikipediaURL: "https://en.wikipedia.org/wiki/Gone",
	})
	require.NoError(t, err)

	assert.Equal(t, model.ScrapeStatusFailed, profile.ScrapeStatus)
	assert.Equal(t, model.SourceNone, profile.SourceType)
	assert.Contains(t, profile.ScrapeError, "wiki down")
	assert.NotContains(t, profile.ScrapeError, "site down")
}

func TestEnrich_OnlyWebsiteURL(t *testing.T) {
	wiki := &stubExtractor{fields: &model.FieldSet{Industry: "never called"}}
	web := &stubExtractor{fields: &model.FieldSet{Industry: "Retail"}}

	profile, err := newAssembler(wiki, web).Enrich(context.Background(), model.EnrichRequest{
		CompanyName: "ShopCo",
		WebsiteURL:  "https://shopco.example",
	})
	require.NoError(t, err)

	assert.Equal(t, model.SourceWebsite, profile.SourceType)
	assert.Equal(t, "Retail", profile.Industry)
	assert.Equal(t, model.ScrapeStatusSuccess, profile.ScrapeStatus)
	assert.Equal(t, 0, wiki.calls)
	assert.Equal(t, 1, web.calls)
}

func TestEnrich_NoURLs(t *testing.T) {
	wiki := &stubExtractor{}
	web := &stubExtractor{}

	profile, err := newAssembler(wiki, web).Enrich(context.Background(), model.EnrichRequest{
		CompanyName: "Nameless AG",
	})
	require.NoError(t, err)

	assert.Equal(t, model.ScrapeStatusFailed, profile.ScrapeStatus)
	assert.Equal(t, model.SourceNone, profile.SourceType)
	assert.Empty(t, profile.ScrapeError)
	assert.Equal(t, 0, wiki.calls)
	assert.Equal(t, 0, web.calls)
}

func TestEnrich_MissingCompanyName(t *testing.T) {
	_, err := newAssembler(&stubExtractor{}, &stubExtractor{}).Enrich(context.Background(), model.EnrichRequest{
		WebsiteURL: "https://acme.example",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "company_name")
}

func TestEnrich_PartialWithDegradedSecondSource(t *testing.T) {
	// An informative field plus a recorded error is partial, not success.
	wiki := &stubExtractor{fields: &model.FieldSet{Industry: "Banking"}}
	web := &stubExtractor{err: eris.New("timeout")}

	profile, err := newAssembler(wiki, web).Enrich(context.Background(), model.EnrichRequest{
		CompanyName:  "Bank AG",
		WebsiteURL:   "https://bank.example",
		WikipediaURL: "https://en.wikipedia.org/wiki/Bank_AG",
	})
	require.NoError(t, err)

	assert.Equal(t, model.ScrapeStatusPartial, profile.ScrapeStatus)
	assert.Equal(t, model.SourceWikipedia, profile.SourceType)
	assert.Contains(t, profile.ScrapeError, "timeout")
}
