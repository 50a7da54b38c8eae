package classify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/regradar/compliance-cli/internal/model"
	"github.com/regradar/compliance-cli/pkg/anthropic"
)

const classifySystemPrompt = `You are an expert in EU regulations and compliance. You help identify which regulatory topics are relevant to different companies.`

const classifyUserPrompt = `Based on the following company information, determine which EU regulatory topics are most relevant.

Company Information:
%s

Available regulatory topics:
%s

CRITICAL RULES (must follow):
1. Financial services (banking, fintech, payments, trading, investment): MUST include BaFin, GDPR, AMLR
2. GDPR applies to almost ALL companies - include it unless the company clearly does NOT handle any customer/user data
3. AI/ML companies: MUST include AI Act, GDPR
4. Any online service, platform, or SaaS: MUST include GDPR
5. Sustainability/climate focus: include ESG
6. Cybersecurity/security services: include Cybersecurity

Instructions:
- Return topics as a comma-separated list
- Be inclusive - when in doubt, include the topic
- GDPR should be included for 90%%+ of companies

Example responses:
- Fintech: "BaFin, GDPR, AMLR"
- AI startup: "AI Act, GDPR"
- SaaS platform: "GDPR, Cybersecurity"
- Bank: "BaFin, GDPR, AMLR"
- Green tech: "ESG, GDPR"

Response (comma-separated topics only):`

// LLMClassifier is the primary classifier tier. It issues one low-temperature,
// token-capped completion per call. The model's compliance with the prompt
// rules is best-effort: output is validated against the vocabulary only.
type LLMClassifier struct {
	client  anthropic.Client
	model   string
	timeout time.Duration
}

// NewLLMClassifier creates the primary tier backed by the given client.
func NewLLMClassifier(client anthropic.Client, modelID string, timeout time.Duration) *LLMClassifier {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &LLMClassifier{client: client, model: modelID, timeout: timeout}
}

// Classify builds the labeled composite text and asks the model for a
// comma-separated topic list. Entries outside the vocabulary are silently
// dropped; the literal response "none" yields nil.
func (c *LLMClassifier) Classify(ctx context.Context, fields *model.FieldSet) ([]model.Topic, error) {
	composite := BuildComposite(fields)
	if strings.TrimSpace(composite) == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	temp := 0.3
	resp, err := c.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       c.model,
		MaxTokens:   100,
		System:      classifySystemPrompt,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf(classifyUserPrompt, composite, model.TopicVocabulary())},
		},
	})
	if err != nil {
		return nil, &ClassifierError{Err: eris.Wrap(err, "create message")}
	}

	return parseTopicList(resp.Text()), nil
}

// parseTopicList parses a comma-separated topic response, dropping anything
// outside the closed vocabulary. "none" (or nothing valid) yields nil.
func parseTopicList(text string) []model.Topic {
	text = strings.TrimSpace(text)
	if strings.EqualFold(text, "none") {
		return nil
	}

	var topics []model.Topic
	seen := make(map[model.Topic]bool)
	for _, part := range strings.Split(text, ",") {
		if t, ok := model.ParseTopic(part); ok && !seen[t] {
			seen[t] = true
			topics = append(topics, t)
		}
	}
	return topics
}
