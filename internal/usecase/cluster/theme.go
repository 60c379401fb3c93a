package cluster

import (
	"strings"

	"github.com/emosense-cloud/emosense/internal/domain"
)

// themePatterns maps keyword triggers to business theme names, checked in
// order. Pricing is special-cased on sentiment below.
var themePatterns = []struct {
	triggers []string
	name     string
}{
	{[]string{"feature", "add", "want", "need", "request", "wish"}, "Feature Requests"},
	{[]string{"bug", "crash", "error", "broken", "not working", "issue", "problem"}, "Technical Issues"},
	{[]string{"ui", "ux", "design", "interface", "confusing", "hard", "difficult"}, "UX/Design Feedback"},
	{[]string{"ship", "delivery", "shipping", "arrived", "delay"}, "Shipping & Delivery"},
	{[]string{"support", "help", "customer service", "response", "reply"}, "Customer Support"},
	{[]string{"quality", "product", "material", "build"}, "Product Quality"},
	{[]string{"love", "amazing", "great", "excellent", "best", "perfect"}, "Customer Praise"},
	{[]string{"dark mode", "theme", "customization", "customize"}, "Customization Requests"},
}

var pricingTriggers = []string{"price", "expensive", "cost", "pricing", "cheap", "money"}

// themeName turns cluster keywords and sentiment into a readable label.
// Without keywords it falls back to "<Sentiment> Feedback"; without a pattern
// match, to "<Top keyword> Discussion".
func themeName(keywords []string, sentiment string) string {
	if len(keywords) == 0 {
		return sentiment + " Feedback"
	}

	has := func(triggers []string) bool {
		for _, kw := range keywords {
			for _, t := range triggers {
				if kw == t {
					return true
				}
			}
		}
		return false
	}

	if has(pricingTriggers) {
		if sentiment == "Negative" {
			return "Pricing Concerns"
		}
		return "Pricing Feedback"
	}
	for _, p := range themePatterns {
		if has(p.triggers) {
			return p.name
		}
	}
	return capitalize(keywords[0]) + " Discussion"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// sentimentOf scores a cluster by emotion score mass: positive-label mass
// versus negative-label mass across all member vectors, normalized so the
// fractions plus neutral remainder sum to 1.
func sentimentOf(vectors []domain.EmotionVector) domain.SentimentSummary {
	if len(vectors) == 0 {
		return domain.SentimentSummary{Status: "Unknown"}
	}

	var positive, negative float64
	for _, v := range vectors {
		for _, label := range domain.PositiveEmotions {
			positive += v[label]
		}
		for _, label := range domain.NegativeEmotions {
			negative += v[label]
		}
	}

	var posPct, negPct float64
	if total := positive + negative; total > 0 {
		posPct = positive / total
		negPct = negative / total
	}
	neutral := 1.0 - posPct - negPct
	if neutral < 0 {
		neutral = 0
	}

	status := "Neutral"
	switch {
	case posPct > negPct:
		status = "Positive"
	case negPct > posPct:
		status = "Negative"
	}
	return domain.SentimentSummary{
		Positive: posPct,
		Negative: negPct,
		Neutral:  neutral,
		Status:   status,
	}
}
