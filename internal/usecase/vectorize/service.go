package vectorize

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/emosense-cloud/emosense/internal/domain"
	"github.com/emosense-cloud/emosense/internal/emoji"
	"github.com/emosense-cloud/emosense/internal/metrics"
)

// Service turns raw comment text into an emotion prediction. Emoji signals
// are folded into the classifier output before thresholding.
type Service struct {
	classifier    Classifier
	fallback      Classifier
	source        string
	threshold     float64
	boostFactor   float64
	allowDegraded bool
	logger        *zap.Logger
}

// Config holds vectorize service settings.
type Config struct {
	// Source names the loader that produced the classifier, e.g. "api"
	// or "mock". Predictions from the mock source are always degraded.
	Source        string
	Threshold     float64
	BoostFactor   float64
	AllowDegraded bool
}

// NewService creates the vectorization service. The fallback mock is used
// when the primary classifier errors at inference time and degraded output
// is allowed.
func NewService(classifier Classifier, cfg Config, logger *zap.Logger) *Service {
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = 0.3
	}
	boost := cfg.BoostFactor
	if boost <= 0 {
		boost = emoji.DefaultBoostFactor
	}
	return &Service{
		classifier:    classifier,
		fallback:      NewMockClassifier(),
		source:        cfg.Source,
		threshold:     threshold,
		boostFactor:   boost,
		allowDegraded: cfg.AllowDegraded,
		logger:        logger,
	}
}

// Predict classifies one comment. The returned prediction carries the full
// boosted vector, the labels above threshold sorted by descending score, and
// whether the result came from a degraded source.
func (s *Service) Predict(ctx context.Context, text string) (domain.Prediction, error) {
	vector, err := s.classifier.Classify(ctx, text)
	degraded := s.source == "mock"
	source := s.source
	if err != nil {
		if !s.allowDegraded {
			return domain.Prediction{}, err
		}
		s.logger.Warn("Classifier failed, falling back to degraded predictor",
			zap.String("source", s.source),
			zap.Error(err),
		)
		vector, err = s.fallback.Classify(ctx, text)
		if err != nil {
			return domain.Prediction{}, err
		}
		degraded = true
		source = "mock"
	}
	if degraded {
		metrics.ClassifierDegradedTotal.Inc()
	}

	boosted := s.applyEmojiBoost(text, vector)

	return domain.Prediction{
		Emotions:  boosted,
		Predicted: predictedLabels(boosted, s.threshold),
		Degraded:  degraded,
		Source:    source,
	}, nil
}

// applyEmojiBoost raises scores of emotions signalled by emoji in the text.
// Boosting never introduces labels the classifier did not score.
func (s *Service) applyEmojiBoost(text string, vector domain.EmotionVector) domain.EmotionVector {
	scores := emoji.Analyze(text)
	if len(scores) == 0 {
		return vector
	}
	return emoji.Boost(vector, scores, s.boostFactor)
}

// predictedLabels returns labels at or above the threshold, strongest first.
// Ties break alphabetically so output is stable.
func predictedLabels(vector domain.EmotionVector, threshold float64) []string {
	var labels []string
	for label, p := range vector {
		if p >= threshold {
			labels = append(labels, label)
		}
	}
	sort.Slice(labels, func(i, j int) bool {
		if vector[labels[i]] != vector[labels[j]] {
			return vector[labels[i]] > vector[labels[j]]
		}
		return labels[i] < labels[j]
	})
	return labels
}
