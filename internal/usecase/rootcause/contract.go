package rootcause

import (
	"github.com/emosense-cloud/emosense/internal/domain"
)

// Generator is the text-generation contract this service consumes.
type Generator = domain.Generator

// Input is everything the synthesizer needs to reason about one batch:
// the clusters plus the batch-level context woven into the prompt.
type Input struct {
	Clusters      []domain.Cluster
	Emotions      domain.EmotionVector
	Themes        []string
	MacroSummary  string
	TotalComments int
}
