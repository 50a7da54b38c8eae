package enrich

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regradar/compliance-cli/internal/model"
)

func TestCompanyNameFromURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"plain domain", "acme.com", "Acme", true},
		{"with scheme", "https://acme.com", "Acme", true},
		{"strips www", "https://www.acme.com/about", "Acme", true},
		{"uppercase host", "HTTPS://WWW.ACME.COM", "Acme", true},
		{"multi label", "shop.acme.co.uk", "Shop", true},
		{"hyphenated", "https://green-energy.de", "Green-Energy", true},
		{"empty", "", "", false},
		{"whitespace", "   ", "", false},
		{"no host", "https://", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompanyNameFromURL(tt.input)
			if !tt.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnrichBatch(t *testing.T) {
	web := &stubExtractor{fields: &model.FieldSet{Description: "A payment provider."}}
	a := newAssembler(&stubExtractor{}, web)

	result := a.EnrichBatch(context.Background(), []string{
		"https://acme.example",
		"https://beta.example",
		"   ",
	}, 2)

	assert.Len(t, result.Profiles, 2)
	assert.Len(t, result.Errors, 1)

	names := map[string]bool{}
	for _, p := range result.Profiles {
		names[p.CompanyName] = true
		assert.Equal(t, model.SourceWebsite, p.SourceType)
		assert.Equal(t, model.ScrapeStatusSuccess, p.ScrapeStatus)
	}
	assert.True(t, names["Acme"])
	assert.True(t, names["Beta"])

	assert.Equal(t, "   ", result.Errors[0].URL)
	assert.Contains(t, result.Errors[0].Error, "no parseable host")
}

func TestEnrichBatch_FailedScrapeStaysInProfiles(t *testing.T) {
	// A site that fails to scrape still yields a profile with status
	// failed; the error list is only for items that produced none.
	web := &stubExtractor{err: assert.AnError}
	a := newAssembler(&stubExtractor{}, web)

	result := a.EnrichBatch(context.Background(), []string{"https://one.example"}, 1)

	require.Len(t, result.Profiles, 1)
	assert.Empty(t, result.Errors)
	assert.Equal(t, model.ScrapeStatusFailed, result.Profiles[0].ScrapeStatus)
	assert.NotEmpty(t, result.Profiles[0].ScrapeError)
}

func TestEnrichBatch_DefaultConcurrency(t *testing.T) {
	a := newAssembler(&stubExtractor{}, &stubExtractor{fields: &model.FieldSet{Description: "x"}})

	result := a.EnrichBatch(context.Background(), []string{"https://acme.example"}, 0)
	assert.Len(t, result.Profiles, 1)
}

func TestEnrichBatch_Empty(t *testing.T) {
	a := newAssembler(&stubExtractor{}, &stubExtractor{})

	result := a.EnrichBatch(context.Background(), nil, 3)
	assert.Empty(t, result.Profiles)
	assert.Empty(t, result.Errors)
}
