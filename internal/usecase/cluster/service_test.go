package cluster

import (
	"context"
	"errors"
	"hash/fnv"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/emosense-cloud/emosense/internal/domain"
)

// fakeEmbedder maps comments onto one of three topic axes with a small
// text-derived offset, so topically similar comments land close together.
type fakeEmbedder struct{}

func (fakeEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	vec := make([]float32, 3)
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "price") || strings.Contains(lower, "expensive"):
		vec[0] = 10
	case strings.Contains(lower, "bug") || strings.Contains(lower, "crash"):
		vec[1] = 10
	default:
		vec[2] = 10
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(text))
	jitter := float32(h.Sum32()%100) / 1000
	for i := range vec {
		vec[i] += jitter
	}
	return domain.EmbeddingResult{Embedding: vec, TotalTokens: 1}, nil
}

func negativeVector(label string) domain.EmotionVector {
	return domain.EmotionVector{label: 0.8, "neutral": 0.1}
}

func TestBuild_InsufficientData(t *testing.T) {
	svc := NewService(fakeEmbedder{}, Config{}, zap.NewNop())

	_, err := svc.Build(context.Background(), []Comment{{Text: "only one"}})
	if !errors.Is(err, domain.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestBuild_SmallDatasetGroupsByTopic(t *testing.T) {
	comments := []Comment{
		{Text: "The price is way too expensive for me", Emotions: negativeVector("disappointment")},
		{Text: "Too expensive, lower the price please", Emotions: negativeVector("annoyance")},
		{Text: "Can't justify this price point at all", Emotions: negativeVector("disapproval")},
		{Text: "App keeps crashing with a bug on startup", Emotions: negativeVector("anger")},
		{Text: "Found a bug, it crashes every time", Emotions: negativeVector("annoyance")},
		{Text: "Another crash bug after the update", Emotions: negativeVector("disappointment")},
	}
	svc := NewService(fakeEmbedder{}, Config{}, zap.NewNop())

	set, err := svc.Build(context.Background(), comments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Method != "agglomerative" {
		t.Errorf("expected agglomerative for small dataset, got %q", set.Method)
	}
	if set.TotalComments != len(comments) {
		t.Errorf("expected %d total comments, got %d", len(comments), set.TotalComments)
	}
	if len(set.Clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(set.Clusters))
	}

	var sawPricing, sawTechnical bool
	for _, c := range set.Clusters {
		if c.Size != 3 {
			t.Errorf("expected cluster of 3, got %d", c.Size)
		}
		if c.Percentage != 50 {
			t.Errorf("expected 50%%, got %f", c.Percentage)
		}
		if c.Sentiment.Status != "Negative" {
			t.Errorf("expected Negative sentiment, got %q", c.Sentiment.Status)
		}
		switch c.ThemeName {
		case "Pricing Concerns":
			sawPricing = true
		case "Technical Issues":
			sawTechnical = true
		}
	}
	if !sawPricing || !sawTechnical {
		t.Errorf("expected pricing and technical themes, got %+v", themeNames(set))
	}
}

func TestBuild_MediumDatasetDeterministic(t *testing.T) {
	var comments []Comment
	pricing := []string{
		"price is expensive", "too expensive price", "lower the price",
		"expensive subscription price", "price gouging is real",
		"expensive for what it does", "price doubled overnight",
	}
	bugs := []string{
		"bug crashes the app", "crash on login bug", "constant bug crash loop",
		"crash after update bug", "bug makes it crash daily",
		"new bug crash on save", "crash report bug again", "bug then crash",
	}
	for _, text := range append(pricing, bugs...) {
		comments = append(comments, Comment{Text: text})
	}
	svc := NewService(fakeEmbedder{}, Config{}, zap.NewNop())

	first, err := svc.Build(context.Background(), comments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Method != "kmeans" {
		t.Errorf("expected kmeans for medium dataset, got %q", first.Method)
	}

	second, err := svc.Build(context.Background(), comments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first.Clusters) != len(second.Clusters) {
		t.Fatalf("non-deterministic cluster count: %d vs %d", len(first.Clusters), len(second.Clusters))
	}
	for i := range first.Clusters {
		if first.Clusters[i].Size != second.Clusters[i].Size {
			t.Errorf("non-deterministic cluster %d size: %d vs %d",
				i, first.Clusters[i].Size, second.Clusters[i].Size)
		}
	}
}

func TestDescribe_DropsUndersizedClusters(t *testing.T) {
	svc := NewService(fakeEmbedder{}, Config{MinClusterSize: 2}, zap.NewNop())
	comments := []Comment{
		{Text: "one"}, {Text: "two"}, {Text: "three"}, {Text: "lonely"},
	}
	labels := []int{0, 0, 0, 1}

	set := svc.describe(comments, labels, "kmeans")
	if len(set.Clusters) != 1 {
		t.Fatalf("expected singleton cluster dropped, got %d clusters", len(set.Clusters))
	}
	if set.Clusters[0].Size != 3 {
		t.Errorf("expected surviving cluster of 3, got %d", set.Clusters[0].Size)
	}
}

func TestDescribe_NoisePointsExcluded(t *testing.T) {
	svc := NewService(fakeEmbedder{}, Config{}, zap.NewNop())
	comments := []Comment{
		{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "outlier"},
	}
	labels := []int{0, 0, 0, noiseLabel}

	set := svc.describe(comments, labels, "dbscan")
	if len(set.Clusters) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(set.Clusters))
	}
	for _, idx := range set.Clusters[0].MemberIndices {
		if idx == 3 {
			t.Error("noise point must not join a cluster")
		}
	}
}

func TestDescribe_UnknownSentimentWithoutEmotions(t *testing.T) {
	svc := NewService(fakeEmbedder{}, Config{}, zap.NewNop())
	comments := []Comment{{Text: "alpha beta"}, {Text: "alpha gamma"}}
	labels := []int{0, 0}

	set := svc.describe(comments, labels, "kmeans")
	if set.Clusters[0].Sentiment.Status != "Unknown" {
		t.Errorf("expected Unknown sentiment, got %q", set.Clusters[0].Sentiment.Status)
	}
	if len(set.Clusters[0].EmotionDistribution) != 0 {
		t.Errorf("expected empty distribution, got %v", set.Clusters[0].EmotionDistribution)
	}
}

func themeNames(set domain.ClusterSet) []string {
	out := make([]string, len(set.Clusters))
	for i, c := range set.Clusters {
		out[i] = c.ThemeName
	}
	return out
}
