package summary

import (
	"context"

	"github.com/emosense-cloud/emosense/internal/domain"
)

// Summarizer condenses text through a hosted summarization model.
type Summarizer interface {
	Summarize(ctx context.Context, text string, maxLength, minLength int) (string, error)
}

// Predictor produces the emotion prediction the summary is combined with.
type Predictor interface {
	Predict(ctx context.Context, text string) (domain.Prediction, error)
}
