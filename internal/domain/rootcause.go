package domain

// ParseConfidence states how much of the expected structure was recovered
// from the generator's free-text response.
type ParseConfidence string

const (
	// ParseFull means every expected field was found.
	ParseFull ParseConfidence = "full"
	// ParsePartial means some labeled fields were missing.
	ParsePartial ParseConfidence = "partial"
	// ParseFallback means no labeled fields matched and the raw section
	// text was stored as the narrative.
	ParseFallback ParseConfidence = "fallback"
)

// RootCauseRecord is the parsed root-cause analysis for one cluster.
type RootCauseRecord struct {
	ClusterID         int             `json:"cluster_id"`
	ThemeName         string          `json:"theme_name"`
	RootCause         string          `json:"root_cause"`
	Evidence          []string        `json:"evidence"`
	ActionableInsight string          `json:"actionable_insight"`
	ClusterSize       int             `json:"cluster_size"`
	Confidence        ParseConfidence `json:"parse_confidence"`
}

// RootCauseAnalysis is the outcome of one synthesis call.
type RootCauseAnalysis struct {
	RootCauses       []RootCauseRecord `json:"root_causes"`
	ClustersAnalyzed int               `json:"total_clusters_analyzed"`
	Model            string            `json:"model"`
	TokensUsed       int               `json:"tokens_used"`
}
