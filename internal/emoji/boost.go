package emoji

import "github.com/emosense-cloud/emosense/internal/domain"

// DefaultBoostFactor is the fraction of an emoji score added to an aligned
// classifier probability.
const DefaultBoostFactor = 0.15

// Boost raises classifier probabilities confirmed by emoji signals:
// boosted = min(original + emojiScore*factor, 1.0). Emotions absent from the
// original vector are never added. The input vector is not mutated.
func Boost(original domain.EmotionVector, emojiScores map[string]float64, factor float64) domain.EmotionVector {
	if len(emojiScores) == 0 {
		return original
	}

	boosted := original.Clone()
	for emotion, score := range emojiScores {
		orig, ok := boosted[emotion]
		if !ok {
			continue
		}
		b := orig + score*factor
		if b > 1.0 {
			b = 1.0
		}
		boosted[emotion] = b
	}
	return boosted
}

// Summary is a human-oriented view of the emoji signals in one text.
type Summary struct {
	Emojis          []string           `json:"emojis_found"`
	Count           int                `json:"emoji_count"`
	Emotions        map[string]float64 `json:"emoji_emotions"`
	DominantEmotion string             `json:"dominant_emoji_emotion,omitempty"`
	Confidence      float64            `json:"emoji_confidence"`
}

// Summarize extracts emoji and their emotion distribution from text.
func Summarize(text string) Summary {
	found := Extract(text)
	emotions := Analyze(text)

	s := Summary{
		Emojis:   found,
		Count:    len(found),
		Emotions: emotions,
	}
	for emotion, score := range emotions {
		if score > s.Confidence || (score == s.Confidence && emotion < s.DominantEmotion) {
			s.DominantEmotion = emotion
			s.Confidence = score
		}
	}
	return s
}
