package model

import "time"

// ScrapeStatus is the terminal completion state of one enrichment run.
type ScrapeStatus string

const (
	ScrapeStatusPending ScrapeStatus = "pending"
	ScrapeStatusSuccess ScrapeStatus = "success"
	ScrapeStatusPartial ScrapeStatus = "partial"
	ScrapeStatusFailed  ScrapeStatus = "failed"
)

// SourceType records which upstream source(s) contributed to a profile.
type SourceType string

const (
	SourceNone      SourceType = ""
	SourceWikipedia SourceType = "wikipedia"
	SourceWebsite   SourceType = "website"
	SourceCombined  SourceType = "combined"
)

// EnrichRequest is the single-identity input to the assembler.
type EnrichRequest struct {
	CompanyName  string `json:"company_name"`
	WebsiteURL   string `json:"website_url,omitempty"`
	WikipediaURL string `json:"wikipedia_url,omitempty"`
}

// CompanyProfile is the enriched output of one pipeline run. A profile is
// constructed fresh on every invocation and never mutated afterwards;
// identity and versioning live in the store, not here.
type CompanyProfile struct {
	ID        string     `json:"id,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	CompanyName  string `json:"company_name"`
	WebsiteURL   string `json:"website_url,omitempty"`
	WikipediaURL string `json:"wikipedia_url,omitempty"`

	Industry         string   `json:"industry,omitempty"`
	Description      string   `json:"description,omitempty"`
	FoundedYear      int      `json:"founded_year,omitempty"`
	Headquarters     string   `json:"headquarters,omitempty"`
	EmployeeCount    string   `json:"employee_count,omitempty"`
	ProductsServices []string `json:"products_services,omitempty"`
	TechnologiesUsed []string `json:"technologies_used,omitempty"`
	Keywords         []string `json:"keywords,omitempty"`
	Categories       []string `json:"categories,omitempty"`

	// RegulatoryTopics is nil when there was no basis to classify; an empty
	// non-nil slice means classified with nothing applicable.
	RegulatoryTopics []Topic `json:"regulatory_topics,omitempty"`

	SourceType    SourceType   `json:"source_type,omitempty"`
	ScrapeStatus  ScrapeStatus `json:"scrape_status"`
	ScrapeError   string       `json:"scrape_error,omitempty"`
	LastScrapedAt *time.Time   `json:"last_scraped_at,omitempty"`
}

// BatchError reports a batch item that failed outright before producing any
// profile. This is distinct from a profile whose own ScrapeStatus is failed.
type BatchError struct {
	URL   string `json:"url"`
	Error string `json:"error_message"`
}

// BatchResult pairs the profiles produced by a batch run with the parallel
// error list for items that produced none.
type BatchResult struct {
	Profiles []CompanyProfile `json:"profiles"`
	Errors   []BatchError     `json:"errors,omitempty"`
}
