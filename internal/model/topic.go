package model

import "strings"

// Topic is one entry in the closed regulatory-topic vocabulary. The string
// values match the database enum, not the Go identifiers.
type Topic string

const (
	TopicAIAct         Topic = "AI Act"
	TopicBaFin         Topic = "BaFin"
	TopicCybersecurity Topic = "Cybersecurity"
	TopicGDPR          Topic = "GDPR"
	TopicAMLR          Topic = "AMLR"
	TopicESG           Topic = "ESG"
)

// AllTopics returns the closed vocabulary in stable order.
func AllTopics() []Topic {
	return []Topic{TopicAIAct, TopicBaFin, TopicCybersecurity, TopicGDPR, TopicAMLR, TopicESG}
}

// ParseTopic matches a raw string against the vocabulary, case-insensitively
// and ignoring surrounding whitespace. Returns ("", false) for anything
// outside the vocabulary; invalid classifier output is discarded, never kept.
func ParseTopic(s string) (Topic, bool) {
	s = strings.TrimSpace(s)
	for _, t := range AllTopics() {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return "", false
}

// TopicVocabulary returns the vocabulary as a comma-separated string for
// inclusion in classifier prompts.
func TopicVocabulary() string {
	all := AllTopics()
	parts := make([]string, len(all))
	for i, t := range all {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
