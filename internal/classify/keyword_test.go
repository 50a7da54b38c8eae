package classify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regradar/compliance-cli/internal/model"
)

func TestKeywordClassifier_PaymentProcessor(t *testing.T) {
	c := NewKeywordClassifier()

	topics, err := c.Classify(context.Background(), &model.FieldSet{
		Description: "We process card payment data for merchants.",
	})
	require.NoError(t, err)
	assert.Equal(t, []model.Topic{model.TopicBaFin, model.TopicGDPR}, topics)
}

func TestKeywordClassifier_NoMatch(t *testing.T) {
	c := NewKeywordClassifier()

	topics, err := c.Classify(context.Background(), &model.FieldSet{
		Description: "We bake sourdough bread.",
	})
	require.NoError(t, err)
	assert.Nil(t, topics)
}

func TestKeywordClassifier_EmptyFields(t *testing.T) {
	c := NewKeywordClassifier()

	topics, err := c.Classify(context.Background(), &model.FieldSet{})
	require.NoError(t, err)
	assert.Nil(t, topics)

	topics, err = c.Classify(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, topics)
}

func TestKeywordClassifier_SubstringMatch(t *testing.T) {
	// Matching is plain substring containment, so "sustainable" triggers
	// the short "ai" keyword.
	c := NewKeywordClassifier()

	topics, err := c.Classify(context.Background(), &model.FieldSet{
		Description: "Sustainable packaging supplier.",
	})
	require.NoError(t, err)
	assert.Contains(t, topics, model.TopicAIAct)
}

func TestKeywordClassifier_Deterministic(t *testing.T) {
	c := NewKeywordClassifier()
	fields := &model.FieldSet{
		Description: "AML compliance and KYC onboarding for banks",
		Industry:    "Financial technology",
		Keywords:    []string{"security", "cloud"},
	}

	first, err := c.Classify(context.Background(), fields)
	require.NoError(t, err)
	for range 10 {
		again, err := c.Classify(context.Background(), fields)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestKeywordClassifier_FieldOtherThanDescription(t *testing.T) {
	c := NewKeywordClassifier()

	topics, err := c.Classify(context.Background(), &model.FieldSet{
		Industry: "Renewable energy",
	})
	require.NoError(t, err)
	assert.Contains(t, topics, model.TopicESG)
}

func TestBuildComposite(t *testing.T) {
	fields := &model.FieldSet{
		Description:      "Cloud accounting software.",
		Industry:         "Software",
		ProductsServices: []string{"Invoicing", "Payroll"},
		Keywords:         []string{"saas"},
	}

	got := BuildComposite(fields)
	assert.Equal(t,
		"Description: Cloud accounting software.\n"+
			"Industry: Software\n"+
			"Products/Services: Invoicing, Payroll\n"+
			"Keywords: saas",
		got)
}

func TestBuildComposite_Empty(t *testing.T) {
	assert.Equal(t, "", BuildComposite(nil))
	assert.Equal(t, "", BuildComposite(&model.FieldSet{}))
}
