package summary

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/emosense-cloud/emosense/internal/domain"
)

const (
	minWords = 10
	maxWords = 1024

	summaryMaxLength = 130
	summaryMinLength = 30
)

// Result is the emotional summary of one text: the condensed narrative plus
// the emotion read and a suggested response.
type Result struct {
	Summary          string               `json:"summary"`
	DominantEmotion  string               `json:"dominant_emotion"`
	Emotions         domain.EmotionVector `json:"all_emotions"`
	Confidence       float64              `json:"confidence"`
	Reasoning        string               `json:"reasoning"`
	SuggestedAction  string               `json:"suggested_action"`
	DetectedKeywords []string             `json:"detected_keywords"`
	Degraded         bool                 `json:"degraded"`
}

// Service produces emotional summaries: clean, validate, summarize through
// the hosted model, then fold in the emotion prediction.
type Service struct {
	summarizer Summarizer
	predictor  Predictor
	logger     *zap.Logger
}

// NewService creates the summary service.
func NewService(summarizer Summarizer, predictor Predictor, logger *zap.Logger) *Service {
	return &Service{
		summarizer: summarizer,
		predictor:  predictor,
		logger:     logger,
	}
}

// Summarize condenses the text and combines it with emotion analysis.
func (s *Service) Summarize(ctx context.Context, text string) (Result, error) {
	cleaned := CleanText(text)
	if err := validate(cleaned); err != nil {
		return Result{}, err
	}

	summaryText, err := s.summarizer.Summarize(ctx, cleaned, summaryMaxLength, summaryMinLength)
	if err != nil {
		return Result{}, fmt.Errorf("summarize text: %w", err)
	}

	pred, err := s.predictor.Predict(ctx, text)
	if err != nil {
		return Result{}, fmt.Errorf("predict emotions: %w", err)
	}

	dominant, confidence := pred.Emotions.Dominant()
	if dominant == "" {
		dominant = "neutral"
	}

	s.logger.Debug("Emotional summary produced",
		zap.String("dominant_emotion", dominant),
		zap.Bool("degraded", pred.Degraded),
	)

	return Result{
		Summary:          summaryText,
		DominantEmotion:  dominant,
		Emotions:         pred.Emotions,
		Confidence:       confidence,
		Reasoning:        buildReasoning(summaryText, dominant, pred.Emotions),
		SuggestedAction:  suggestedAction(dominant),
		DetectedKeywords: matchedKeywords(text, dominant, 5),
		Degraded:         pred.Degraded,
	}, nil
}

// validate enforces the summarization model's useful input range.
func validate(cleaned string) error {
	words := len(strings.Fields(cleaned))
	switch {
	case words == 0:
		return fmt.Errorf("%w: text cannot be empty", domain.ErrInvalidInput)
	case words < minWords:
		return fmt.Errorf("%w: text too short for meaningful summary (minimum %d words required)",
			domain.ErrInvalidInput, minWords)
	case words > maxWords:
		return fmt.Errorf("%w: text too long for summarization (maximum ~%d words)",
			domain.ErrInvalidInput, maxWords)
	}
	return nil
}
