package analyze

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emosense-cloud/emosense/internal/domain"
	"github.com/emosense-cloud/emosense/internal/usecase/cluster"
	"github.com/emosense-cloud/emosense/internal/usecase/rootcause"
)

const batchThemeCount = 10

// Service runs the full feedback pipeline over one comment batch:
// per-comment emotion vectors, thematic clusters, batch themes, and
// optionally root-cause synthesis.
type Service struct {
	predictor   Predictor
	clusterer   Clusterer
	synthesizer Synthesizer
	logger      *zap.Logger
}

// NewService creates the orchestrator. synthesizer can be nil when no
// generation provider is configured; root causes are then skipped.
func NewService(predictor Predictor, clusterer Clusterer, synthesizer Synthesizer, logger *zap.Logger) *Service {
	return &Service{
		predictor:   predictor,
		clusterer:   clusterer,
		synthesizer: synthesizer,
		logger:      logger,
	}
}

// Run analyzes one batch. Input is deduplicated and stripped first. A batch
// too small to cluster still returns per-comment emotions with an empty
// cluster set; a failed synthesis call is reported in the result rather than
// discarding the completed stages.
func (s *Service) Run(ctx context.Context, req Request) (Result, error) {
	comments := domain.CleanComments(req.Comments)
	if len(comments) == 0 {
		return Result{}, fmt.Errorf("%w: no comments to analyze", domain.ErrInvalidInput)
	}

	results := make([]CommentResult, len(comments))
	clusterInput := make([]cluster.Comment, len(comments))
	vectors := make([]domain.EmotionVector, len(comments))
	var degraded bool

	for i, text := range comments {
		pred, err := s.predictor.Predict(ctx, text)
		if err != nil {
			return Result{}, fmt.Errorf("predict comment %d: %w", i, err)
		}
		results[i] = CommentResult{Text: text, Emotions: pred.Emotions, Predicted: pred.Predicted}
		clusterInput[i] = cluster.Comment{Text: text, Emotions: pred.Emotions}
		vectors[i] = pred.Emotions
		degraded = degraded || pred.Degraded
	}

	overall := domain.AverageEmotions(vectors)
	themes := cluster.TopKeywords(comments, batchThemeCount)

	clusterSet, err := s.clusterer.Build(ctx, clusterInput)
	if err != nil {
		if !errors.Is(err, domain.ErrInsufficientData) {
			return Result{}, fmt.Errorf("cluster comments: %w", err)
		}
		clusterSet = domain.ClusterSet{TotalComments: len(comments)}
	}

	result := Result{
		AnalysisID:      uuid.NewString(),
		TotalComments:   len(comments),
		Comments:        results,
		OverallEmotions: overall,
		Themes:          themes,
		Clusters:        clusterSet,
		Degraded:        degraded,
	}

	if req.IncludeRootCauses && s.synthesizer != nil && len(clusterSet.Clusters) > 0 {
		analysis, err := s.synthesizer.Analyze(ctx, rootcause.Input{
			Clusters:      clusterSet.Clusters,
			Emotions:      overall,
			Themes:        themes,
			TotalComments: len(comments),
		})
		if err != nil {
			s.logger.Warn("Root cause synthesis failed", zap.Error(err))
			result.RootCauseError = err.Error()
		} else {
			result.RootCauses = &analysis
		}
	}

	s.logger.Info("Batch analyzed",
		zap.String("analysis_id", result.AnalysisID),
		zap.Int("comments", len(comments)),
		zap.Int("clusters", len(clusterSet.Clusters)),
		zap.Bool("degraded", degraded),
	)
	return result, nil
}
