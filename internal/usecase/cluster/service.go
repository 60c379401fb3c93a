package cluster

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/emosense-cloud/emosense/internal/domain"
)

// Tier boundaries for algorithm selection by dataset size.
const (
	smallDatasetMax  = 10
	mediumDatasetMax = 30
	maxNoiseFraction = 0.3
)

// Service groups comments into business themes: embed, cluster by a
// size-appropriate algorithm, then annotate each cluster with keywords, a
// theme name, sentiment, and emotion distribution.
type Service struct {
	embedder       Embedder
	minClusterSize int
	maxClusters    int
	logger         *zap.Logger
}

// Config holds clustering settings.
type Config struct {
	MinClusterSize int
	MaxClusters    int
}

// NewService creates the clustering service.
func NewService(embedder Embedder, cfg Config, logger *zap.Logger) *Service {
	minSize := cfg.MinClusterSize
	if minSize < 2 {
		minSize = 2
	}
	maxClusters := cfg.MaxClusters
	if maxClusters <= 0 {
		maxClusters = 8
	}
	return &Service{
		embedder:       embedder,
		minClusterSize: minSize,
		maxClusters:    maxClusters,
		logger:         logger,
	}
}

// Build clusters the comment batch. Fewer than two comments cannot form a
// cluster and yields ErrInsufficientData.
func (s *Service) Build(ctx context.Context, comments []Comment) (domain.ClusterSet, error) {
	n := len(comments)
	if n < 2 {
		return domain.ClusterSet{}, domain.ErrInsufficientData
	}

	texts := make([]string, n)
	for i, c := range comments {
		texts[i] = c.Text
	}
	embedded, err := domain.EmbedAll(ctx, s.embedder, texts)
	if err != nil {
		return domain.ClusterSet{}, fmt.Errorf("embed comments: %w", err)
	}
	vectors := make([][]float64, n)
	for i, e := range embedded.Embeddings {
		vectors[i] = toFloat64(e)
	}

	labels, method := s.assign(vectors)
	s.logger.Debug("Comments clustered",
		zap.Int("comments", n),
		zap.String("method", method),
	)

	return s.describe(comments, labels, method), nil
}

// assign picks the algorithm by dataset size and returns per-comment labels.
func (s *Service) assign(vectors [][]float64) ([]int, string) {
	n := len(vectors)
	switch {
	case n < smallDatasetMax:
		k := min(3, max(2, n/3))
		return agglomerative(vectors, k), "agglomerative"

	case n < mediumDatasetMax:
		k := min(5, max(2, n/5))
		return kMeans(vectors, k), "kmeans"

	default:
		minPts := max(s.minClusterSize, n/10)
		labels := dbscan(vectors, minPts)
		if noiseFraction(labels) > maxNoiseFraction {
			k := min(s.maxClusters, max(3, n/8))
			return kMeans(vectors, k), "kmeans"
		}
		return labels, "dbscan"
	}
}

// describe turns raw assignments into annotated clusters: undersized groups
// and noise points are dropped, the rest are sorted largest first.
func (s *Service) describe(comments []Comment, labels []int, method string) domain.ClusterSet {
	n := len(comments)

	membersByLabel := make(map[int][]int)
	for i, label := range labels {
		if label == noiseLabel {
			continue
		}
		membersByLabel[label] = append(membersByLabel[label], i)
	}
	ids := make([]int, 0, len(membersByLabel))
	for id := range membersByLabel {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	clusters := make([]domain.Cluster, 0, len(ids))
	for _, id := range ids {
		members := membersByLabel[id]
		if len(members) < s.minClusterSize {
			continue
		}

		docs := make([]string, len(members))
		var vectors []domain.EmotionVector
		for i, idx := range members {
			docs[i] = comments[idx].Text
			if comments[idx].Emotions != nil {
				vectors = append(vectors, comments[idx].Emotions)
			}
		}

		keywords := TopKeywords(docs, 5)
		sentiment := sentimentOf(vectors)

		examples := docs
		if len(examples) > 5 {
			examples = examples[:5]
		}

		clusters = append(clusters, domain.Cluster{
			ID:                  id,
			ThemeName:           themeName(keywords, sentiment.Status),
			ThemeKeywords:       keywords,
			CommentExamples:     examples,
			EmotionDistribution: domain.AverageEmotions(vectors).TopN(5),
			Sentiment:           sentiment,
			Size:                len(members),
			Percentage:          float64(len(members)) / float64(n) * 100,
			MemberIndices:       members,
		})
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Size > clusters[j].Size
	})

	return domain.ClusterSet{
		Clusters:      clusters,
		TotalComments: n,
		Method:        method,
	}
}
