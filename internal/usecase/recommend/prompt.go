package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emosense-cloud/emosense/internal/domain"
)

const systemPrompt = `You are an expert social media strategist and customer sentiment analyst.
Generate actionable business recommendations based on customer emotion analysis and market research.
Be specific, data-driven, and practical. Focus on ROI and measurable outcomes.`

// sentimentCategory buckets the dominant emotion using the fixed label sets.
func sentimentCategory(dominant string) string {
	for _, label := range domain.PositiveEmotions {
		if label == dominant {
			return "Positive"
		}
	}
	for _, label := range domain.NegativeEmotions {
		if label == dominant {
			return "Negative"
		}
	}
	return "Neutral/Mixed"
}

// buildPrompt renders the recommendation prompt: emotional analysis first,
// optional category and research sections, then the task instructions.
func buildPrompt(in Input) string {
	var b strings.Builder

	b.WriteString("\n**Customer Feedback Analysis:**\n\n")
	fmt.Fprintf(&b, "**Summary of Comment Thread:** %s\n", in.Summary)

	if in.Category != nil {
		fmt.Fprintf(&b, "\n**Content Category:** %s (%.0f%% confidence)\n",
			in.Category.Category, in.Category.Confidence*100)
		if in.Category.Guidance != "" {
			fmt.Fprintf(&b, "**Analysis Focus:** %s\n", in.Category.Guidance)
		}
	}

	b.WriteString("\n**Emotional Analysis:**\n")
	fmt.Fprintf(&b, "- Overall Sentiment: %s\n", sentimentCategory(in.DominantEmotion))
	fmt.Fprintf(&b, "- Dominant Emotion: %s (%.0f%% confidence)\n",
		capitalize(in.DominantEmotion), in.Confidence*100)
	fmt.Fprintf(&b, "- Top Emotions: %s\n", topEmotions(in.Emotions, 3))

	if len(in.Research) > 0 {
		b.WriteString("\n**Relevant Market Research Context:**\n")
		docs := in.Research
		if len(docs) > 3 {
			docs = docs[:3]
		}
		for i, doc := range docs {
			content := doc.Content
			if len(content) > 300 {
				content = content[:300] + "..."
			}
			fmt.Fprintf(&b, "\n%d. From '%s':\n%s\n", i+1, doc.Title, content)
		}
	}

	b.WriteString(`
**Your Task:**
Analyze the comment thread summary above and generate strategic business recommendations that DIRECTLY address the specific issues, complaints, praises, or requests mentioned in the comment thread.

**CRITICAL INSTRUCTIONS:**
- Base ALL recommendations on ACTUAL content from the comment thread
- If commenters mention specific problems (e.g., bugs, pricing, features), address THOSE specific issues
- If commenters praise specific aspects, recommend ways to amplify THOSE strengths
- DO NOT suggest generic improvements unrelated to the actual comment thread
- Quote or reference specific themes from the comment thread

**Required Output Format:**

1. **Key Insight** (What are commenters actually saying? What specific patterns or themes emerge from their comments?)

2. **Recommended Actions** (3-5 specific steps that directly address the issues or opportunities mentioned in the comment thread)
   - Each action should reference a specific commenter concern or praise from the thread
   - Be actionable and specific, not generic

3. **Expected Impact** (How will addressing these specific commenter concerns improve your business?)

Be concise, professional, and laser-focused on the ACTUAL comment thread content.
`)
	return b.String()
}

// topEmotions formats the n strongest emotions as "Label (NN%)".
func topEmotions(v domain.EmotionVector, n int) string {
	labels := make([]string, 0, len(v))
	for label := range v {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if v[labels[i]] != v[labels[j]] {
			return v[labels[i]] > v[labels[j]]
		}
		return labels[i] < labels[j]
	})
	if len(labels) > n {
		labels = labels[:n]
	}
	parts := make([]string, len(labels))
	for i, label := range labels {
		parts[i] = fmt.Sprintf("%s (%.0f%%)", capitalize(label), v[label]*100)
	}
	return strings.Join(parts, ", ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
