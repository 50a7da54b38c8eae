package classify

import (
	"context"

	"go.uber.org/zap"

	"github.com/regradar/compliance-cli/internal/model"
)

// Tiered runs the primary classifier and falls through to the deterministic
// keyword matcher on any error. It never returns an error itself: a degraded
// classifier must not fail an enrichment run.
type Tiered struct {
	primary  Classifier // nil when no API key is configured
	fallback *KeywordClassifier
}

// NewTiered wires the two tiers. Pass a nil primary to run fallback-only.
func NewTiered(primary Classifier) *Tiered {
	return &Tiered{
		primary:  primary,
		fallback: NewKeywordClassifier(),
	}
}

// Classify attempts the primary tier, then the fallback. The fallback path is
// an explicit result check, not error-driven control flow in the caller.
func (t *Tiered) Classify(ctx context.Context, fields *model.FieldSet) ([]model.Topic, error) {
	if t.primary != nil {
		topics, err := t.primary.Classify(ctx, fields)
		if err == nil {
			return topics, nil
		}
		zap.L().Warn("classify: primary tier failed, using keyword fallback", zap.Error(err))
	}

	return t.fallback.Classify(ctx, fields)
}
