package domain

import "context"

// Classifier produces a multi-label emotion vector for one text.
// The returned vector is keyed by the full Taxonomy; every probability
// is an independent sigmoid output in [0, 1].
type Classifier interface {
	Classify(ctx context.Context, text string) (EmotionVector, error)
}

// Prediction is a classification result annotated with degradation state.
type Prediction struct {
	// Emotions holds the full-taxonomy probability map after any boosting.
	Emotions EmotionVector
	// Predicted lists labels whose probability met the threshold.
	Predicted []string
	// Degraded is true when the prediction came from a fallback predictor
	// rather than the real classifier. Downstream quality claims must not
	// be made on degraded output.
	Degraded bool
	// Source names the loader that produced the classifier in use.
	Source string
}
