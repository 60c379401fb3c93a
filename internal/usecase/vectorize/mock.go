package vectorize

import (
	"context"
	"hash/fnv"
	"math/rand"
	"strings"

	"github.com/emosense-cloud/emosense/internal/domain"
)

// MockClassifier is the degraded last-resort predictor. It produces plausible
// full-taxonomy probabilities seeded by the text hash, so repeated calls for
// the same text agree. Output from this predictor must always be flagged
// degraded by the caller.
type MockClassifier struct{}

// NewMockClassifier creates the fallback predictor.
func NewMockClassifier() *MockClassifier { return &MockClassifier{} }

// Classify returns a deterministic pseudo-random vector over the full
// taxonomy. Empty or near-empty text yields a low-confidence neutral-leaning
// distribution instead.
func (m *MockClassifier) Classify(_ context.Context, text string) (domain.EmotionVector, error) {
	vector := make(domain.EmotionVector, len(domain.Taxonomy))

	if len(strings.Fields(text)) == 0 {
		for _, label := range domain.Taxonomy {
			vector[label] = 0.02
		}
		vector["neutral"] = 0.45
		return vector, nil
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	// A few leading emotions score high, a handful medium, the rest low,
	// mirroring what a real multi-label classifier tends to emit.
	for i, label := range domain.Taxonomy {
		switch {
		case i < 3:
			vector[label] = 0.4 + rng.Float64()*0.5
		case i < 8:
			vector[label] = 0.2 + rng.Float64()*0.3
		default:
			vector[label] = 0.05 + rng.Float64()*0.25
		}
	}
	return vector, nil
}
