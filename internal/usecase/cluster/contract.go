package cluster

import (
	"github.com/emosense-cloud/emosense/internal/domain"
)

// Comment is one analyzed comment entering clustering: its text and the
// emotion vector already predicted for it. Emotions may be nil when the
// caller clusters raw text only.
type Comment struct {
	Text     string
	Emotions domain.EmotionVector
}

// Embedder is re-exported narrow so the service depends only on what it
// calls. Batch-capable implementations are detected at runtime.
type Embedder = domain.Embedder
