package domain

// SentimentSummary holds per-cluster sentiment fractions. Positive, Negative,
// and Neutral sum to 1 for any non-empty member set; Status is "Positive",
// "Negative", "Neutral", or "Unknown" when no emotion data was available.
type SentimentSummary struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Status   string  `json:"status"`
}

// Cluster is a group of semantically similar comments. Built once per
// analysis run, never mutated after creation, never persisted.
type Cluster struct {
	ID                  int              `json:"cluster_id"`
	ThemeName           string           `json:"theme_name"`
	ThemeKeywords       []string         `json:"theme_keywords"`
	CommentExamples     []string         `json:"comment_examples"`
	EmotionDistribution EmotionVector    `json:"emotion_distribution"`
	Sentiment           SentimentSummary `json:"sentiment_summary"`
	Size                int              `json:"size"`
	Percentage          float64          `json:"percentage"`

	// MemberIndices are positions into the analyzed comment batch.
	MemberIndices []int `json:"-"`
}

// ClusterSet is the outcome of one clustering run.
type ClusterSet struct {
	Clusters      []Cluster `json:"clusters"`
	TotalComments int       `json:"total_comments"`
	Method        string    `json:"clustering_method"`
}
