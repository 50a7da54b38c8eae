package model

// FieldSet is the flat collection of attributes produced by one extractor
// invocation. Zero values mean "unset": empty string, zero FoundedYear, nil
// slice. The distinction matters for the merge precedence rule — an unset
// field may still be filled by a later source, a set one never is.
//
// Topics is nullable: nil means the classifier had no basis to decide, which
// is different from a non-nil empty slice (classified, nothing applicable).
type FieldSet struct {
	Industry         string   `json:"industry,omitempty"`
	Description      string   `json:"description,omitempty"`
	FoundedYear      int      `json:"founded_year,omitempty"`
	Headquarters     string   `json:"headquarters,omitempty"`
	EmployeeCount    string   `json:"employee_count,omitempty"`
	ProductsServices []string `json:"products_services,omitempty"`
	TechnologiesUsed []string `json:"technologies_used,omitempty"`
	Keywords         []string `json:"keywords,omitempty"`
	Categories       []string `json:"categories,omitempty"`
	Topics           []Topic  `json:"regulatory_topics,omitempty"`
}

// IsEmpty reports whether no descriptive field was extracted. Topics alone
// do not count: they are derived, not extracted.
func (f *FieldSet) IsEmpty() bool {
	if f == nil {
		return true
	}
	return f.Industry == "" &&
		f.Description == "" &&
		f.FoundedYear == 0 &&
		f.Headquarters == "" &&
		f.EmployeeCount == "" &&
		len(f.ProductsServices) == 0 &&
		len(f.TechnologiesUsed) == 0 &&
		len(f.Keywords) == 0 &&
		len(f.Categories) == 0
}
