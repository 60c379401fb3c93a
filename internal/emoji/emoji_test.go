package emoji

import (
	"math"
	"testing"

	"github.com/emosense-cloud/emosense/internal/domain"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"no emoji", "just plain text", 0},
		{"single", "love it 😍", 1},
		{"repeated", "I love this so much!! 😍😍", 2},
		{"mixed with text", "fire 🔥 content 🚀", 2},
		{"zwj sequence", "🤷‍♂️ no idea", 1},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if len(got) != tt.want {
				t.Errorf("Extract(%q) = %v, want %d graphemes", tt.text, got, tt.want)
			}
		})
	}
}

func TestAnalyze_NoEmoji(t *testing.T) {
	got := Analyze("plain text only")
	if len(got) != 0 {
		t.Errorf("expected empty distribution, got %v", got)
	}
}

func TestAnalyze_SingleUnambiguous(t *testing.T) {
	got := Analyze("😡")
	if math.Abs(got["anger"]-1.0) > 1e-9 {
		t.Errorf("expected anger=1.0, got %v", got)
	}
}

func TestAnalyze_AmbiguousSplitsWeights(t *testing.T) {
	// Fire maps to admiration, excitement, anger with halving weights.
	got := Analyze("🔥🔥🔥")

	want := map[string]float64{
		"admiration": 4.0 / 7.0,
		"excitement": 2.0 / 7.0,
		"anger":      1.0 / 7.0,
	}
	for emotion, w := range want {
		if math.Abs(got[emotion]-w) > 1e-9 {
			t.Errorf("expected %s=%f, got %f", emotion, w, got[emotion])
		}
	}

	total := 0.0
	for _, w := range got {
		total += w
	}
	if math.Abs(total-1.0) > 1e-9 {
		t.Errorf("distribution should sum to 1.0, got %f", total)
	}
}

func TestAnalyze_DistributionSumsToOne(t *testing.T) {
	got := Analyze("😍😍 great 🔥 but also 😡")
	total := 0.0
	for _, w := range got {
		total += w
	}
	if math.Abs(total-1.0) > 1e-9 {
		t.Errorf("distribution should sum to 1.0, got %f", total)
	}
}

func TestBoost_NeverDecreasesAndAddsNoLabels(t *testing.T) {
	original := domain.EmotionVector{"love": 0.7, "joy": 0.5, "neutral": 0.1}
	emojiScores := Analyze("😍😍")

	boosted := Boost(original, emojiScores, DefaultBoostFactor)

	if len(boosted) != len(original) {
		t.Fatalf("boosting changed the label set: %v vs %v", boosted, original)
	}
	for emotion, orig := range original {
		if boosted[emotion] < orig {
			t.Errorf("boosting decreased %s: %f < %f", emotion, boosted[emotion], orig)
		}
	}
	if _, ok := boosted["desire"]; ok {
		t.Error("boosting must not introduce labels absent from the original vector")
	}
	if boosted["love"] <= original["love"] {
		t.Error("aligned emotion should have been boosted")
	}
}

func TestBoost_CappedAtOne(t *testing.T) {
	original := domain.EmotionVector{"anger": 0.95}
	boosted := Boost(original, map[string]float64{"anger": 1.0}, 0.5)
	if boosted["anger"] > 1.0 {
		t.Errorf("boosted probability exceeds 1.0: %f", boosted["anger"])
	}
	if boosted["anger"] != 1.0 {
		t.Errorf("expected cap at 1.0, got %f", boosted["anger"])
	}
}

func TestBoost_EmptySignalReturnsOriginal(t *testing.T) {
	original := domain.EmotionVector{"joy": 0.4}
	boosted := Boost(original, nil, DefaultBoostFactor)
	if boosted["joy"] != 0.4 {
		t.Errorf("expected unchanged vector, got %v", boosted)
	}
}

func TestBoost_DoesNotMutateOriginal(t *testing.T) {
	original := domain.EmotionVector{"love": 0.5}
	_ = Boost(original, map[string]float64{"love": 1.0}, 0.15)
	if original["love"] != 0.5 {
		t.Errorf("original vector was mutated: %v", original)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize("I love this!! 😍😍")
	if s.Count != 2 {
		t.Fatalf("expected 2 emoji, got %d", s.Count)
	}
	if s.DominantEmotion != "love" {
		t.Errorf("expected dominant love, got %q", s.DominantEmotion)
	}
	if s.Confidence <= 0 {
		t.Errorf("expected positive confidence, got %f", s.Confidence)
	}
}

func TestSummarize_NoEmoji(t *testing.T) {
	s := Summarize("nothing here")
	if s.Count != 0 || s.DominantEmotion != "" {
		t.Errorf("expected empty summary, got %+v", s)
	}
}
