package summary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emosense-cloud/emosense/internal/domain"
)

// emotionKeywords are surface-language cues per emotion, used to explain why
// a detection is plausible for the given text.
var emotionKeywords = map[string][]string{
	"anger":          {"delay", "frustration", "annoying", "irritating", "upset", "furious", "angry", "mad"},
	"sadness":        {"lonely", "tired", "overwhelmed", "depressed", "sad", "unhappy", "miserable", "hopeless"},
	"joy":            {"happy", "excited", "great", "wonderful", "amazing", "love", "fantastic", "delighted"},
	"fear":           {"worried", "anxious", "scared", "nervous", "terrified", "panic", "afraid"},
	"confusion":      {"confused", "unclear", "don't understand", "puzzled", "uncertain", "perplexed"},
	"disappointment": {"disappointed", "let down", "failed", "unmet expectations", "dissatisfied"},
}

// emotionActions suggest a response per dominant emotion.
var emotionActions = map[string]string{
	"anger":          "**De-escalation Recommended**: Take a deep breath, step away if possible, and address the issue when calm.",
	"sadness":        "**Grounding Exercise**: Practice mindfulness, reach out to support networks, or engage in self-care activities.",
	"joy":            "**Positive Reinforcement**: Celebrate this moment! Share your happiness and acknowledge what went well.",
	"fear":           "**Reassurance Needed**: Identify specific concerns, gather information, and create an action plan.",
	"confusion":      "**Clarification Required**: Break down the issue into smaller parts, ask questions, and seek clear explanations.",
	"disappointment": "**Reflection & Reset**: Acknowledge the feeling, learn from the experience, and set new realistic goals.",
	"excitement":     "**Channel Energy**: Use this momentum productively and share your enthusiasm with others.",
	"nervousness":    "**Calm & Prepare**: Practice relaxation techniques and focus on preparation rather than worry.",
	"optimism":       "**Maintain Momentum**: Keep this positive outlook and use it to inspire action and perseverance.",
	"gratitude":      "**Express Appreciation**: Share your gratitude with others and reflect on what you're thankful for.",
	"neutral":        "**Balanced State**: Continue with your current approach and monitor for any emotional shifts.",
}

const defaultAction = "**Reflect**: Take a moment to understand your emotional state and respond accordingly."

// suggestedAction maps the dominant emotion to a response suggestion.
func suggestedAction(emotion string) string {
	if action, ok := emotionActions[emotion]; ok {
		return action
	}
	return defaultAction
}

// matchedKeywords returns up to limit emotion cues found in the text.
func matchedKeywords(text, emotion string, limit int) []string {
	cues, ok := emotionKeywords[emotion]
	if !ok {
		return nil
	}
	lower := strings.ToLower(text)
	var matched []string
	for _, cue := range cues {
		if strings.Contains(lower, cue) {
			matched = append(matched, cue)
			if len(matched) == limit {
				break
			}
		}
	}
	return matched
}

// buildReasoning explains the detection: matched cue words, confidence tier,
// and a secondary emotion when one scores above 0.3.
func buildReasoning(summaryText, dominant string, emotions domain.EmotionVector) string {
	var parts []string

	if cues := matchedKeywords(summaryText, dominant, 3); len(cues) > 0 {
		quoted := make([]string, len(cues))
		for i, c := range cues {
			quoted[i] = "'" + c + "'"
		}
		parts = append(parts, fmt.Sprintf("The text contains language suggesting %s (%s)",
			dominant, strings.Join(quoted, ", ")))
	}

	confidence := emotions[dominant]
	switch {
	case confidence > 0.8:
		parts = append(parts, fmt.Sprintf("Strong confidence (%.0f%%) in %s detection", confidence*100, dominant))
	case confidence > 0.5:
		parts = append(parts, fmt.Sprintf("Moderate confidence (%.0f%%) indicates %s", confidence*100, dominant))
	default:
		parts = append(parts, fmt.Sprintf("Detected %s with %.0f%% confidence", dominant, confidence*100))
	}

	if second, score := secondaryEmotion(emotions, dominant); second != "" && score > 0.3 {
		parts = append(parts, fmt.Sprintf("Secondary emotion of %s (%.0f%%) also present", second, score*100))
	}

	return strings.Join(parts, ". ") + "."
}

// secondaryEmotion is the strongest label after the dominant one.
func secondaryEmotion(emotions domain.EmotionVector, dominant string) (string, float64) {
	labels := make([]string, 0, len(emotions))
	for label := range emotions {
		if label != dominant {
			labels = append(labels, label)
		}
	}
	if len(labels) == 0 {
		return "", 0
	}
	sort.Slice(labels, func(i, j int) bool {
		if emotions[labels[i]] != emotions[labels[j]] {
			return emotions[labels[i]] > emotions[labels[j]]
		}
		return labels[i] < labels[j]
	})
	return labels[0], emotions[labels[0]]
}
