package vectorize

import (
	"context"

	"github.com/emosense-cloud/emosense/internal/domain"
)

// Classifier produces a full-taxonomy multi-label emotion vector.
type Classifier interface {
	Classify(ctx context.Context, text string) (domain.EmotionVector, error)
}

// Loader is one strategy for acquiring a classifier. Loaders are tried in
// order; the first success wins and its name is surfaced for observability.
type Loader struct {
	Name string
	Load func() (Classifier, error)
}
