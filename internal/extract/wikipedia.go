// Package extract parses encyclopedia and corporate-website pages into flat
// field sets. Extractors are heuristic: missing markup yields a partial field
// set, not an error.
package extract

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/regradar/compliance-cli/internal/classify"
	"github.com/regradar/compliance-cli/internal/model"
)

const (
	maxDescriptionLen = 1000
	maxProducts       = 10
	maxCategories     = 15
)

var (
	foundedYearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	citationRe    = regexp.MustCompile(`\[\d+\]`)
)

// WikipediaExtractor parses a single encyclopedia page into a field set and
// derives regulatory topics from its partial view.
type WikipediaExtractor struct {
	fetcher    *HTTPFetcher
	classifier classify.Classifier
}

// NewWikipediaExtractor wires the extractor with its fetcher and classifier.
func NewWikipediaExtractor(fetcher *HTTPFetcher, classifier classify.Classifier) *WikipediaExtractor {
	return &WikipediaExtractor{fetcher: fetcher, classifier: classifier}
}

// Extract fetches and parses the page. Only fetch failures are errors;
// absent infobox rows or paragraphs just leave fields unset.
func (e *WikipediaExtractor) Extract(ctx context.Context, url string) (*model.FieldSet, error) {
	html, err := e.fetcher.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ParseError{URL: url, Err: err}
	}

	fields := &model.FieldSet{}
	parseInfobox(doc, fields)

	if desc := firstParagraph(doc); desc != "" {
		fields.Description = truncate(citationRe.ReplaceAllString(desc, ""), maxDescriptionLen)
	}

	doc.Find(`a[href*="/wiki/Category:"]`).EachWithBreak(func(i int, link *goquery.Selection) bool {
		if i >= maxCategories {
			return false
		}
		if label := strings.TrimSpace(link.Text()); label != "" {
			fields.Categories = append(fields.Categories, label)
		}
		return true
	})

	// Topics derived from the partial view; the merge re-classifies later.
	topics, err := e.classifier.Classify(ctx, fields)
	if err != nil {
		zap.L().Warn("wikipedia: topic classification failed", zap.String("url", url), zap.Error(err))
	} else {
		fields.Topics = topics
	}

	return fields, nil
}

// parseInfobox routes infobox rows by case-insensitive substring match on the
// header text. Later rows overwrite earlier ones, matching how an article
// with both "Type" and "Industry" rows resolves.
func parseInfobox(doc *goquery.Document, fields *model.FieldSet) {
	doc.Find("table.infobox tr").Each(func(_ int, row *goquery.Selection) {
		header := strings.ToLower(strings.TrimSpace(row.Find("th").First().Text()))
		if header == "" {
			return
		}
		value := strings.TrimSpace(row.Find("td").First().Text())
		if value == "" {
			return
		}

		switch {
		case strings.Contains(header, "industry") || strings.Contains(header, "type"):
			fields.Industry = value
		case strings.Contains(header, "founded"):
			// First in-range 4-digit token wins, even when an unrelated
			// number precedes the actual founding year.
			if m := foundedYearRe.FindString(value); m != "" {
				fields.FoundedYear, _ = strconv.Atoi(m)
			}
		case strings.Contains(header, "headquarters") || strings.Contains(header, "hq"):
			fields.Headquarters = value
		case strings.Contains(header, "employee"):
			fields.EmployeeCount = value
		case strings.Contains(header, "product") || strings.Contains(header, "service"):
			fields.ProductsServices = splitProducts(value)
		}
	})
}

// firstParagraph returns the text of the first non-empty body paragraph,
// skipping the placeholder paragraphs MediaWiki emits.
func firstParagraph(doc *goquery.Document) string {
	var text string
	doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		if class, _ := p.Attr("class"); strings.Contains(class, "mw-empty-elt") {
			return true
		}
		if t := strings.TrimSpace(p.Text()); t != "" {
			text = t
			return false
		}
		return true
	})
	return text
}

func splitProducts(value string) []string {
	var products []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			products = append(products, p)
		}
		if len(products) == maxProducts {
			break
		}
	}
	return products
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
