package rootcause

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emosense-cloud/emosense/internal/domain"
)

const divider = "═══════════════════════════════════════════════════════════════"

// systemPrompt pins the analyst persona and the grounding rules. Quoting
// actual comments is demanded up front so the parser downstream has
// verbatim evidence lines to extract.
const systemPrompt = `You are a SENIOR ROOT CAUSE ANALYST with deep expertise in:
- Customer psychology and behavioral patterns
- Product-market fit analysis
- UX research and pain point identification
- Cause-and-effect reasoning
- Business problem diagnosis

Your ONLY job: Identify the TRUE UNDERLYING CAUSE behind customer feedback patterns.

CRITICAL RULES:
1. Every root cause MUST be grounded in actual customer comments
2. Identify WHY customers feel what they feel (not just WHAT they feel)
3. Use cause-and-effect logic
4. Quote specific customer comments as evidence
5. Distinguish between symptoms and root causes
6. Never make assumptions not supported by data
7. Be specific, not generic

Examples of GOOD root cause analysis:

BAD (symptom): "Users are confused"
GOOD (root cause): "Users are confused because the onboarding flow doesn't explain how pricing tiers work, leading to uncertainty about which plan to choose"

BAD (vague): "Product has issues"
GOOD (specific): "Export feature crashes in sessions longer than 30 minutes because users mention 'crashes when exporting large files', suggesting a memory management issue"

Your output MUST identify:
- The underlying cause (WHY this pain exists)
- Evidence from actual comments
- The connection between cause and effect`

// buildPrompt renders the full user prompt: batch context first, then the
// per-cluster task with the exact output format the parser expects.
func buildPrompt(in Input) string {
	var b strings.Builder

	b.WriteString("\n" + divider + "\n")
	b.WriteString("CUSTOMER FEEDBACK ANALYSIS CONTEXT\n")
	b.WriteString(divider + "\n\n")

	b.WriteString("**MACRO SUMMARY:**\n")
	if in.MacroSummary != "" {
		b.WriteString(in.MacroSummary + "\n\n")
	} else {
		b.WriteString("Not available\n\n")
	}

	b.WriteString("**OVERALL EMOTIONS:**\n")
	b.WriteString(formatEmotions(in.Emotions, 8))
	b.WriteString("\n**KEY THEMES:**\n")
	if len(in.Themes) > 0 {
		themes := in.Themes
		if len(themes) > 15 {
			themes = themes[:15]
		}
		b.WriteString(strings.Join(themes, ", ") + "\n")
	} else {
		b.WriteString("No themes extracted\n")
	}

	b.WriteString("\n**PAIN POINT CLUSTERS:**\n")
	for i, c := range in.Clusters {
		writeClusterContext(&b, i+1, c)
	}

	fmt.Fprintf(&b, "\n**TOTAL COMMENTS ANALYZED:** %d\n\n", in.TotalComments)
	b.WriteString(divider + "\n")
	b.WriteString("YOUR TASK: ROOT CAUSE ANALYSIS\n")
	b.WriteString(divider + "\n\n")
	b.WriteString(`For EACH cluster above, identify the ROOT CAUSE behind that pain point or praise pattern.

Use this exact format for EACH cluster:

---
## Cluster [ID]: [Theme Name]

**Root Cause:**
[Explain WHY customers experience this pain/praise - what's the underlying reason?]

**Cause-Effect Logic:**
[Explain the connection: Because [root cause], customers experience [symptom/feeling]]

**Evidence from Comments:**
- "[Quote supporting comment 1]"
- "[Quote supporting comment 2]"
- "[Quote supporting comment 3]"

**Actionable Insight:**
[What specific action would address this ROOT CAUSE (not just the symptom)?]
---

CRITICAL INSTRUCTIONS:
1. Identify the UNDERLYING cause, not surface-level symptoms
2. Use actual customer quotes as evidence
3. Explain cause-and-effect clearly
4. Be specific and actionable
5. Focus on WHY, not just WHAT
6. Never make up information not in the comments

Analyze ALL clusters now:
`)
	return b.String()
}

func writeClusterContext(b *strings.Builder, ordinal int, c domain.Cluster) {
	fmt.Fprintf(b, "\nCLUSTER %d: %s\n", ordinal, c.ThemeName)
	fmt.Fprintf(b, "- Size: %d comments (%.1f%% of total)\n", c.Size, c.Percentage)
	fmt.Fprintf(b, "- Keywords: %s\n", strings.Join(c.ThemeKeywords, ", "))
	fmt.Fprintf(b, "- Sentiment: %s (%.0f%% negative, %.0f%% positive)\n",
		c.Sentiment.Status, c.Sentiment.Negative*100, c.Sentiment.Positive*100)

	var tops []string
	for _, label := range rankedLabels(c.EmotionDistribution) {
		tops = append(tops, fmt.Sprintf("%s: %.0f%%", capitalize(label), c.EmotionDistribution[label]*100))
	}
	fmt.Fprintf(b, "- Top Emotions: %s\n", strings.Join(tops, ", "))

	b.WriteString("\nExample Comments:\n")
	examples := c.CommentExamples
	if len(examples) > 3 {
		examples = examples[:3]
	}
	for _, comment := range examples {
		fmt.Fprintf(b, "  - %q\n", comment)
	}
}

func formatEmotions(v domain.EmotionVector, n int) string {
	labels := rankedLabels(v)
	if len(labels) > n {
		labels = labels[:n]
	}
	var b strings.Builder
	for _, label := range labels {
		fmt.Fprintf(&b, "  - %s: %.1f%%\n", capitalize(label), v[label]*100)
	}
	return b.String()
}

// rankedLabels sorts labels by descending score, alphabetical on ties.
func rankedLabels(v domain.EmotionVector) []string {
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
	return labels
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
