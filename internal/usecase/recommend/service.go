package recommend

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/emosense-cloud/emosense/internal/domain"
)

// Service generates business recommendations from an analyzed comment
// thread. A failed model call degrades to a non-enhanced notice instead of
// an error, so the surrounding analysis still renders.
type Service struct {
	generator Generator
	maxTokens int
	logger    *zap.Logger
}

// Config holds recommendation settings.
type Config struct {
	MaxTokens int
}

// NewService creates the recommendation service.
func NewService(generator Generator, cfg Config, logger *zap.Logger) *Service {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 500
	}
	return &Service{
		generator: generator,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

// Generate produces the recommendation for one analyzed thread.
func (s *Service) Generate(ctx context.Context, in Input) Recommendation {
	res, err := s.generator.Generate(ctx, domain.GenerationRequest{
		System:      systemPrompt,
		Prompt:      buildPrompt(in),
		Temperature: 0.7,
		MaxTokens:   s.maxTokens,
	})
	if err != nil {
		s.logger.Warn("Recommendation generation failed", zap.Error(err))
		return Recommendation{
			Text:     "AI recommendation unavailable: " + err.Error(),
			Enhanced: false,
			Sources:  []ResearchDoc{},
		}
	}

	return Recommendation{
		Text:       strings.TrimSpace(res.Text),
		Enhanced:   true,
		Sources:    sourcesOf(in.Research),
		Model:      res.Model,
		TokensUsed: res.TotalTokens,
	}
}

// sourcesOf lists the research documents that informed the prompt.
func sourcesOf(docs []ResearchDoc) []ResearchDoc {
	out := make([]ResearchDoc, len(docs))
	copy(out, docs)
	return out
}
