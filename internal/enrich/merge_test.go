package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/regradar/compliance-cli/internal/model"
)

func TestMerge_FirstSourceWins(t *testing.T) {
	wiki := &model.FieldSet{
		Industry:    "Financial technology",
		Description: "Encyclopedia description.",
		FoundedYear: 1998,
	}
	web := &model.FieldSet{
		Industry:    "Payments",
		Description: "Website description.",
		FoundedYear: 2001,
		Keywords:    []string{"Invoicing"},
	}

	merged := Merge(wiki, web)

	assert.Equal(t, "Financial technology", merged.Industry)
	assert.Equal(t, "Encyclopedia description.", merged.Description)
	assert.Equal(t, 1998, merged.FoundedYear)
	// Unset on the first source, filled from the second.
	assert.Equal(t, []string{"Invoicing"}, merged.Keywords)
}

func TestMerge_FillsGapsPerField(t *testing.T) {
	wiki := &model.FieldSet{
		Headquarters: "Berlin, Germany",
	}
	web := &model.FieldSet{
		Description:      "Website description.",
		Headquarters:     "Munich office",
		TechnologiesUsed: []string{"AWS"},
	}

	merged := Merge(wiki, web)

	assert.Equal(t, "Berlin, Germany", merged.Headquarters)
	assert.Equal(t, "Website description.", merged.Description)
	assert.Equal(t, []string{"AWS"}, merged.TechnologiesUsed)
}

func TestMerge_NilInputs(t *testing.T) {
	web := &model.FieldSet{Description: "only source"}

	assert.Equal(t, "only source", Merge(nil, web).Description)
	assert.Equal(t, "only source", Merge(web, nil).Description)
	assert.True(t, Merge(nil, nil).IsEmpty())
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	wiki := &model.FieldSet{Industry: "Software"}
	web := &model.FieldSet{Description: "desc"}

	_ = Merge(wiki, web)

	assert.Equal(t, "", wiki.Description)
	assert.Equal(t, "", web.Industry)
}

func TestMerge_TopicsNilVsEmpty(t *testing.T) {
	// A nil topic slice means "no basis to decide" and is fillable; a
	// non-nil empty slice is a real classification and is kept.
	web := &model.FieldSet{Topics: []model.Topic{model.TopicGDPR}}

	merged := Merge(&model.FieldSet{Topics: nil}, web)
	assert.Equal(t, []model.Topic{model.TopicGDPR}, merged.Topics)

	merged = Merge(&model.FieldSet{Topics: []model.Topic{}}, web)
	assert.NotNil(t, merged.Topics)
	assert.Empty(t, merged.Topics)
}

func TestSourceType(t *testing.T) {
	assert.Equal(t, model.SourceCombined, sourceType(true, true))
	assert.Equal(t, model.SourceWikipedia, sourceType(true, false))
	assert.Equal(t, model.SourceWebsite, sourceType(false, true))
	assert.Equal(t, model.SourceNone, sourceType(false, false))
}
