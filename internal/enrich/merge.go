package enrich

import "github.com/regradar/compliance-cli/internal/model"

// Merge combines the encyclopedia field set a with the website field set b
// under first-non-empty precedence: a field populated from a is never
// overwritten by b. Either input may be nil.
func Merge(a, b *model.FieldSet) *model.FieldSet {
	if a == nil {
		a = &model.FieldSet{}
	}
	if b == nil {
		b = &model.FieldSet{}
	}

	merged := *a

	if merged.Industry == "" {
		merged.Industry = b.Industry
	}
	if merged.Description == "" {
		merged.Description = b.Description
	}
	if merged.FoundedYear == 0 {
		merged.FoundedYear = b.FoundedYear
	}
	if merged.Headquarters == "" {
		merged.Headquarters = b.Headquarters
	}
	if merged.EmployeeCount == "" {
		merged.EmployeeCount = b.EmployeeCount
	}
	if len(merged.ProductsServices) == 0 {
		merged.ProductsServices = b.ProductsServices
	}
	if len(merged.TechnologiesUsed) == 0 {
		merged.TechnologiesUsed = b.TechnologiesUsed
	}
	if len(merged.Keywords) == 0 {
		merged.Keywords = b.Keywords
	}
	if len(merged.Categories) == 0 {
		merged.Categories = b.Categories
	}
	if merged.Topics == nil {
		merged.Topics = b.Topics
	}

	return &merged
}

// sourceType derives provenance from which extractions succeeded. Combined
// requires both sources to have contributed; a single surviving source keeps
// its own label.
func sourceType(wikiOK, websiteOK bool) model.SourceType {
	switch {
	case wikiOK && websiteOK:
		return model.SourceCombined
	case wikiOK:
		return model.SourceWikipedia
	case websiteOK:
		return model.SourceWebsite
	default:
		return model.SourceNone
	}
}
