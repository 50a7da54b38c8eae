package classify

import (
	"context"
	"strings"

	"github.com/regradar/compliance-cli/internal/model"
)

// topicKeywords maps each topic to its trigger keywords. A topic is included
// when any keyword appears as a substring of the lower-cased composite text.
var topicKeywords = map[model.Topic][]string{
	model.TopicAIAct:         {"ai", "artificial intelligence", "machine learning", "ml", "algorithm", "neural", "deep learning"},
	model.TopicGDPR:          {"data", "privacy", "gdpr", "personal", "information", "data protection", "consent"},
	model.TopicCybersecurity: {"security", "cyber", "encryption", "authentication", "firewall", "threat", "vulnerability"},
	model.TopicBaFin:         {"finance", "banking", "payment", "fintech", "financial", "investment", "trading", "broker"},
	model.TopicAMLR:          {"anti-money laundering", "aml", "amlr", "money laundering", "financial crime", "compliance", "transaction monitoring", "kyc", "know your customer", "identity verification", "customer verification", "onboarding", "due diligence"},
	model.TopicESG:           {"environmental", "social", "governance", "esg", "sustainability", "climate", "green", "carbon", "renewable"},
}

// KeywordClassifier is the deterministic fallback tier. It is side-effect
// free, needs no network, and never returns an error.
type KeywordClassifier struct{}

// NewKeywordClassifier creates the fallback classifier.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

// Classify matches the keyword table against the lower-cased composite text.
// Returns nil when no keyword matches.
func (c *KeywordClassifier) Classify(_ context.Context, fields *model.FieldSet) ([]model.Topic, error) {
	text := strings.ToLower(BuildComposite(fields))
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var topics []model.Topic
	for _, topic := range model.AllTopics() {
		for _, kw := range topicKeywords[topic] {
			if strings.Contains(text, kw) {
				topics = append(topics, topic)
				break
			}
		}
	}

	return topics, nil
}
