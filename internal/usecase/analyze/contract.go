package analyze

import (
	"context"

	"github.com/emosense-cloud/emosense/internal/domain"
	"github.com/emosense-cloud/emosense/internal/usecase/cluster"
	"github.com/emosense-cloud/emosense/internal/usecase/rootcause"
)

// Predictor vectorizes one comment.
type Predictor interface {
	Predict(ctx context.Context, text string) (domain.Prediction, error)
}

// Clusterer groups analyzed comments into themes.
type Clusterer interface {
	Build(ctx context.Context, comments []cluster.Comment) (domain.ClusterSet, error)
}

// Synthesizer infers root causes for a cluster set.
type Synthesizer interface {
	Analyze(ctx context.Context, in rootcause.Input) (domain.RootCauseAnalysis, error)
}

// Request is one batch analysis call.
type Request struct {
	Comments          []string `json:"comments"`
	IncludeRootCauses bool     `json:"include_root_causes"`
}

// CommentResult is the per-comment emotion read.
type CommentResult struct {
	Text      string               `json:"text"`
	Emotions  domain.EmotionVector `json:"emotions"`
	Predicted []string             `json:"predicted"`
}

// Result is the full outcome of one batch analysis. RootCauseError carries a
// synthesis failure without invalidating the earlier stages.
type Result struct {
	AnalysisID      string                    `json:"analysis_id"`
	TotalComments   int                       `json:"total_comments"`
	Comments        []CommentResult           `json:"comments"`
	OverallEmotions domain.EmotionVector      `json:"overall_emotions"`
	Themes          []string                  `json:"themes"`
	Clusters        domain.ClusterSet         `json:"clusters"`
	RootCauses      *domain.RootCauseAnalysis `json:"root_causes,omitempty"`
	RootCauseError  string                    `json:"root_cause_error,omitempty"`
	Degraded        bool                      `json:"degraded"`
}
