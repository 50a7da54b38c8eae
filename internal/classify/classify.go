// Package classify maps an extracted field set to a subset of the closed
// regulatory-topic vocabulary. The primary tier asks an LLM; a deterministic
// keyword matcher backs it up so classification never fails the pipeline.
package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/regradar/compliance-cli/internal/model"
)

// Classifier maps a field set to regulatory topics. A nil topic slice means
// "no basis to decide" and is distinct from a non-nil empty slice.
type Classifier interface {
	Classify(ctx context.Context, fields *model.FieldSet) ([]model.Topic, error)
}

// ClassifierError indicates the primary classifier tier was unavailable or
// returned a malformed response. Callers fall back; they never surface it.
type ClassifierError struct {
	Err error
}

func (e *ClassifierError) Error() string {
	return fmt.Sprintf("classifier: %v", e.Err)
}

func (e *ClassifierError) Unwrap() error {
	return e.Err
}

// BuildComposite concatenates the labeled descriptive fields the classifier
// reasons over. Fields without a value are omitted entirely; an all-empty
// field set yields "".
func BuildComposite(fields *model.FieldSet) string {
	if fields == nil {
		return ""
	}

	var lines []string
	add := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			lines = append(lines, label+": "+value)
		}
	}

	add("Description", fields.Description)
	add("Industry", fields.Industry)
	add("Products/Services", strings.Join(fields.ProductsServices, ", "))
	add("Technologies", strings.Join(fields.TechnologiesUsed, ", "))
	add("Keywords", strings.Join(fields.Keywords, ", "))

	return strings.Join(lines, "\n")
}
