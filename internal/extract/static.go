package extract

import "context"

// StaticPage fetches corporate pages with a plain HTTP GET, no JavaScript
// execution. It is the default strategy; use RenderedPage for sites that
// only produce content after script execution.
type StaticPage struct {
	fetcher *HTTPFetcher
}

// NewStaticPage creates the static-fetch strategy on top of the shared fetcher.
func NewStaticPage(fetcher *HTTPFetcher) *StaticPage {
	return &StaticPage{fetcher: fetcher}
}

func (s *StaticPage) Name() string { return "static" }

// FetchHTML fetches the raw page body.
func (s *StaticPage) FetchHTML(ctx context.Context, url string) (string, error) {
	return s.fetcher.Get(ctx, url)
}
