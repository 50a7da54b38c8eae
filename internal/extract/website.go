package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/regradar/compliance-cli/internal/classify"
	"github.com/regradar/compliance-cli/internal/model"
)

const (
	maxSectionChars    = 500
	maxWordsPerSection = 5
	maxKeywords        = 20
)

// techVocabulary is the fixed set of technology terms matched verbatim
// against the page's visible text.
var techVocabulary = []string{
	"AI", "ML", "Cloud", "AWS", "Azure", "React", "Python",
	"Kubernetes", "Docker", "API", "SaaS", "IoT", "Blockchain",
}

var (
	sectionClassRe = regexp.MustCompile(`(?i)(about|company|products|services|technology)`)
	capitalWordRe  = regexp.MustCompile(`\b[A-Z][a-z]{3,}\b`)
)

// PageExtractor fetches the HTML of a single corporate page. The static and
// rendered strategies are interchangeable behind this interface; selection
// happens at configuration time.
type PageExtractor interface {
	FetchHTML(ctx context.Context, url string) (string, error)
	Name() string
}

// WebsiteExtractor parses a corporate page into a field set using whichever
// page strategy it was configured with.
type WebsiteExtractor struct {
	pages      PageExtractor
	classifier classify.Classifier
}

// NewWebsiteExtractor wires the extractor with a page strategy and classifier.
func NewWebsiteExtractor(pages PageExtractor, classifier classify.Classifier) *WebsiteExtractor {
	return &WebsiteExtractor{pages: pages, classifier: classifier}
}

// Extract fetches the page and applies the heuristic field extraction. Only
// fetch failures are errors.
func (e *WebsiteExtractor) Extract(ctx context.Context, url string) (*model.FieldSet, error) {
	html, err := e.pages.FetchHTML(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ParseError{URL: url, Err: err}
	}

	fields := &model.FieldSet{}

	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok && strings.TrimSpace(desc) != "" {
		fields.Description = truncate(strings.TrimSpace(desc), maxDescriptionLen)
	}

	fields.Keywords = extractKeywords(doc)
	fields.TechnologiesUsed = extractTechnologies(doc)

	topics, err := e.classifier.Classify(ctx, fields)
	if err != nil {
		zap.L().Warn("website: topic classification failed", zap.String("url", url), zap.Error(err))
	} else {
		fields.Topics = topics
	}

	return fields, nil
}

// extractKeywords scans sections whose class matches the about/company/
// products/services/technology pattern and pulls capitalized words from the
// first 500 characters of each, at most 5 per section, 20 total.
func extractKeywords(doc *goquery.Document) []string {
	var keywords []string
	seen := make(map[string]bool)

	doc.Find("section, div").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		if !sectionClassRe.MatchString(class) {
			return
		}

		text := truncate(strings.TrimSpace(s.Text()), maxSectionChars)
		words := capitalWordRe.FindAllString(text, -1)
		if len(words) > maxWordsPerSection {
			words = words[:maxWordsPerSection]
		}
		for _, w := range words {
			if !seen[w] {
				seen[w] = true
				keywords = append(keywords, w)
			}
		}
	})

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

// extractTechnologies returns every vocabulary term that appears verbatim in
// the page text.
func extractTechnologies(doc *goquery.Document) []string {
	text := doc.Text()
	var found []string
	for _, tech := range techVocabulary {
		if strings.Contains(text, tech) {
			found = append(found, tech)
		}
	}
	return found
}
