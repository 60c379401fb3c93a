package recommend

import (
	"github.com/emosense-cloud/emosense/internal/domain"
)

// Generator is the text-generation contract this service consumes.
type Generator = domain.Generator

// ResearchDoc is one retrieved market-research document offered to the model
// as grounding context.
type ResearchDoc struct {
	Title     string  `json:"title"`
	Category  string  `json:"category"`
	Content   string  `json:"-"`
	Relevance float64 `json:"relevance"`
}

// CategoryContext carries an optional content-category detection result.
type CategoryContext struct {
	Category   string
	Confidence float64
	Guidance   string
}

// Input is the analysis state a recommendation is generated from.
type Input struct {
	Summary         string
	DominantEmotion string
	Emotions        domain.EmotionVector
	Confidence      float64
	Research        []ResearchDoc
	Category        *CategoryContext
}

// Recommendation is the generated business advice. Enhanced is false when
// the model call failed and the text is a degraded notice instead.
type Recommendation struct {
	Text       string        `json:"recommendation"`
	Enhanced   bool          `json:"enhanced"`
	Sources    []ResearchDoc `json:"sources"`
	Model      string        `json:"model,omitempty"`
	TokensUsed int           `json:"tokens_used,omitempty"`
}
