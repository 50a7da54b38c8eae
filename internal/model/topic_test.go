package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTopic(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Topic
		ok    bool
	}{
		{"exact", "GDPR", TopicGDPR, true},
		{"lowercase", "gdpr", TopicGDPR, true},
		{"mixed case", "BaFin", TopicBaFin, true},
		{"uppercase variant", "BAFIN", TopicBaFin, true},
		{"spaced name", "AI Act", TopicAIAct, true},
		{"spaced lowercase", "ai act", TopicAIAct, true},
		{"surrounding whitespace", "  ESG  ", TopicESG, true},
		{"amlr", "AMLR", TopicAMLR, true},
		{"cybersecurity", "Cybersecurity", TopicCybersecurity, true},
		{"unknown", "MiFID", Topic(""), false},
		{"empty", "", Topic(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTopic(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllTopics_Order(t *testing.T) {
	// Order is part of the contract: classifier output is emitted in this
	// sequence so results are deterministic.
	assert.Equal(t, []Topic{
		TopicAIAct,
		TopicBaFin,
		TopicCybersecurity,
		TopicGDPR,
		TopicAMLR,
		TopicESG,
	}, AllTopics())
}

func TestTopicVocabulary(t *testing.T) {
	vocab := TopicVocabulary()
	assert.Contains(t, vocab, "AI Act")
	assert.Contains(t, vocab, "AMLR")
	assert.Len(t, AllTopics(), 6)
}
