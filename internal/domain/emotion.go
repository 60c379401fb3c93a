package domain

import "sort"

// Taxonomy is the fixed closed set of emotion labels the classifier outputs
// (the 28 GoEmotions categories). Classifier outputs are keyed by exactly
// this set; probabilities are independent per label, not a distribution.
var Taxonomy = []string{
	"admiration", "amusement", "anger", "annoyance", "approval", "caring",
	"confusion", "curiosity", "desire", "disappointment", "disapproval",
	"disgust", "embarrassment", "excitement", "fear", "gratitude", "grief",
	"joy", "love", "nervousness", "optimism", "pride", "realization",
	"relief", "remorse", "sadness", "surprise", "neutral",
}

// PositiveEmotions and NegativeEmotions are the fixed label sets used for
// cluster sentiment scoring. Labels in neither set count as neutral.
var (
	PositiveEmotions = []string{
		"joy", "love", "gratitude", "admiration", "excitement",
		"optimism", "pride", "relief",
	}
	NegativeEmotions = []string{
		"anger", "sadness", "fear", "disappointment", "disgust",
		"annoyance", "disapproval", "embarrassment", "confusion",
	}
)

// EmotionVector maps emotion label to an independent probability in [0, 1].
type EmotionVector map[string]float64

// Clone returns a copy of the vector.
func (v EmotionVector) Clone() EmotionVector {
	out := make(EmotionVector, len(v))
	for k, p := range v {
		out[k] = p
	}
	return out
}

// Dominant returns the label with the highest probability and its score.
// Ties break alphabetically so the result is deterministic.
func (v EmotionVector) Dominant() (string, float64) {
	best, bestScore := "", -1.0
	for _, label := range sortedLabels(v) {
		if v[label] > bestScore {
			best, bestScore = label, v[label]
		}
	}
	if best == "" {
		return "", 0
	}
	return best, bestScore
}

// AboveThreshold returns labels whose probability meets the threshold,
// in taxonomy order for classifier output and alphabetical otherwise.
func (v EmotionVector) AboveThreshold(threshold float64) []string {
	var out []string
	for _, label := range sortedLabels(v) {
		if v[label] >= threshold {
			out = append(out, label)
		}
	}
	return out
}

// TopN returns the n highest-scoring labels as a new vector.
func (v EmotionVector) TopN(n int) EmotionVector {
	labels := sortedLabels(v)
	sort.SliceStable(labels, func(i, j int) bool {
		return v[labels[i]] > v[labels[j]]
	})
	if n > len(labels) {
		n = len(labels)
	}
	out := make(EmotionVector, n)
	for _, label := range labels[:n] {
		out[label] = v[label]
	}
	return out
}

// AverageEmotions averages a list of vectors label-wise. Labels missing from
// a vector contribute zero. Empty input yields an empty vector.
func AverageEmotions(vectors []EmotionVector) EmotionVector {
	if len(vectors) == 0 {
		return EmotionVector{}
	}
	sums := make(map[string]float64)
	for _, v := range vectors {
		for label, p := range v {
			sums[label] += p
		}
	}
	out := make(EmotionVector, len(sums))
	for label, s := range sums {
		out[label] = s / float64(len(vectors))
	}
	return out
}

func sortedLabels(v EmotionVector) []string {
	labels := make([]string, 0, len(v))
	for label := range v {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
