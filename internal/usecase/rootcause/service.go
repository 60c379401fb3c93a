package rootcause

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/emosense-cloud/emosense/internal/domain"
)

// Service infers why each cluster's pain or praise pattern exists, using one
// generation call for the whole batch and a lenient parse of the response.
type Service struct {
	generator Generator
	maxTokens int
	logger    *zap.Logger
}

// Config holds synthesis settings.
type Config struct {
	MaxTokens int
}

// NewService creates the root-cause synthesizer.
func NewService(generator Generator, cfg Config, logger *zap.Logger) *Service {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1500
	}
	return &Service{
		generator: generator,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

// Analyze synthesizes root causes for every cluster in the input. Without
// clusters there is nothing to analyze; a failed generation call aborts the
// whole batch since no partial output exists to salvage.
func (s *Service) Analyze(ctx context.Context, in Input) (domain.RootCauseAnalysis, error) {
	if len(in.Clusters) == 0 {
		return domain.RootCauseAnalysis{}, fmt.Errorf("%w: no clusters provided for analysis", domain.ErrInvalidInput)
	}

	res, err := s.generator.Generate(ctx, domain.GenerationRequest{
		System:      systemPrompt,
		Prompt:      buildPrompt(in),
		Temperature: 0.5,
		MaxTokens:   s.maxTokens,
	})
	if err != nil {
		return domain.RootCauseAnalysis{}, fmt.Errorf("root cause analysis failed: %w", err)
	}

	records := parseAnalysis(res.Text, in.Clusters)
	s.logger.Debug("Root causes synthesized",
		zap.Int("clusters", len(in.Clusters)),
		zap.Int("records", len(records)),
		zap.Int("tokens_used", res.TotalTokens),
	)

	return domain.RootCauseAnalysis{
		RootCauses:       records,
		ClustersAnalyzed: len(in.Clusters),
		Model:            res.Model,
		TokensUsed:       res.TotalTokens,
	}, nil
}
