package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/emosense-cloud/emosense/internal/domain"
	analyzeuc "github.com/emosense-cloud/emosense/internal/usecase/analyze"
	clusteruc "github.com/emosense-cloud/emosense/internal/usecase/cluster"
	healthuc "github.com/emosense-cloud/emosense/internal/usecase/health"
	recommenduc "github.com/emosense-cloud/emosense/internal/usecase/recommend"
	summaryuc "github.com/emosense-cloud/emosense/internal/usecase/summary"
)

// --- Mocks ---

type stubPredictor struct {
	err error
}

func (s *stubPredictor) Predict(_ context.Context, _ string) (domain.Prediction, error) {
	if s.err != nil {
		return domain.Prediction{}, s.err
	}
	return domain.Prediction{
		Emotions:  domain.EmotionVector{"joy": 0.7, "neutral": 0.2},
		Predicted: []string{"joy"},
		Source:    "api",
	}, nil
}

type stubEmbedder struct{}

func (stubEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	vec := []float32{float32(len(text)), 1}
	return domain.EmbeddingResult{Embedding: vec}, nil
}

type stubClusterer struct {
	set domain.ClusterSet
	err error
}

func (s *stubClusterer) Build(_ context.Context, comments []clusteruc.Comment) (domain.ClusterSet, error) {
	if s.err != nil {
		return domain.ClusterSet{}, s.err
	}
	s.set.TotalComments = len(comments)
	return s.set, nil
}

type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) Generate(_ context.Context, _ domain.GenerationRequest) (domain.GenerationResult, error) {
	if s.err != nil {
		return domain.GenerationResult{}, s.err
	}
	return domain.GenerationResult{Text: s.text, Model: "gpt-4o-mini", TotalTokens: 42}, nil
}

type stubSummarizer struct{}

func (stubSummarizer) Summarize(_ context.Context, _ string, _, _ int) (string, error) {
	return "a short summary", nil
}

func newTestServer(t *testing.T, pred Predictor) *Server {
	t.Helper()
	logger := zap.NewNop()

	clusterer := clusteruc.NewService(stubEmbedder{}, clusteruc.Config{}, logger)
	analyzer := analyzeuc.NewService(pred, &stubClusterer{set: domain.ClusterSet{
		Clusters: []domain.Cluster{{ID: 0, ThemeName: "Customer Praise", Size: 2}},
		Method:   "kmeans",
	}}, nil, logger)
	summarySvc := summaryuc.NewService(stubSummarizer{}, pred, logger)
	recommendSvc := recommenduc.NewService(&stubGenerator{text: "do things"}, recommenduc.Config{}, logger)
	healthSvc := healthuc.New(nil, nil, nil, false)

	return NewServer(analyzer, pred, clusterer, summarySvc, recommendSvc, healthSvc, logger)
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestAnalyzeEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubPredictor{})
	rec := doJSON(t, srv.Routes(), http.MethodPost, "/v1/analyze",
		`{"comments": ["love it", "really love it", "best app ever"]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res analyzeuc.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if res.AnalysisID == "" || res.TotalComments != 3 {
		t.Errorf("unexpected result: %+v", res)
	}
	if len(res.Clusters.Clusters) != 1 {
		t.Errorf("expected cluster carried through, got %+v", res.Clusters)
	}
}

func TestAnalyzeEndpoint_EmptyComments(t *testing.T) {
	srv := newTestServer(t, &stubPredictor{})
	rec := doJSON(t, srv.Routes(), http.MethodPost, "/v1/analyze", `{"comments": []}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAnalyzeEndpoint_BadJSON(t *testing.T) {
	srv := newTestServer(t, &stubPredictor{})
	rec := doJSON(t, srv.Routes(), http.MethodPost, "/v1/analyze", `{not json`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEmotionsEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubPredictor{})
	rec := doJSON(t, srv.Routes(), http.MethodPost, "/v1/emotions", `{"text": "great stuff 😂"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res emotionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if res.Emotions["joy"] != 0.7 {
		t.Errorf("expected emotions in response, got %+v", res)
	}
	if len(res.Emoji) == 0 {
		t.Error("expected emoji signals for text with emoji")
	}
	if res.Source != "api" {
		t.Errorf("expected source api, got %q", res.Source)
	}
}

func TestEmotionsEndpoint_RateLimited(t *testing.T) {
	srv := newTestServer(t, &stubPredictor{err: domain.ErrRateLimited})
	rec := doJSON(t, srv.Routes(), http.MethodPost, "/v1/emotions", `{"text": "hi"}`)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	var res errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if res.Code != codeRateLimited {
		t.Errorf("expected %q, got %q", codeRateLimited, res.Code)
	}
}

func TestClustersEndpoint_InsufficientData(t *testing.T) {
	srv := newTestServer(t, &stubPredictor{})
	rec := doJSON(t, srv.Routes(), http.MethodPost, "/v1/clusters", `{"comments": ["only one comment"]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with error payload, got %d", rec.Code)
	}
	var res clustersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(res.Clusters) != 0 {
		t.Errorf("expected no clusters, got %d", len(res.Clusters))
	}
	if !strings.Contains(res.Error, "minimum 2 required") {
		t.Errorf("expected insufficient-data message, got %q", res.Error)
	}
}

func TestClustersEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubPredictor{})
	rec := doJSON(t, srv.Routes(), http.MethodPost, "/v1/clusters",
		`{"comments": ["love the app", "love this app so much", "great app overall", "the app is great"]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res clustersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if res.Error != "" {
		t.Errorf("unexpected error: %q", res.Error)
	}
	if res.TotalComments != 4 {
		t.Errorf("expected 4 total comments, got %d", res.TotalComments)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubPredictor{})
	rec := doJSON(t, srv.Routes(), http.MethodPost, "/v1/summary",
		`{"text": "this product has honestly changed how I work every single day for the better"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res summaryuc.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if res.Summary != "a short summary" || res.DominantEmotion != "joy" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestSummaryEndpoint_TooShort(t *testing.T) {
	srv := newTestServer(t, &stubPredictor{})
	rec := doJSON(t, srv.Routes(), http.MethodPost, "/v1/summary", `{"text": "too short"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSummaryEndpoint_NotConfigured(t *testing.T) {
	srv := newTestServer(t, &stubPredictor{})
	srv.summary = nil
	rec := doJSON(t, srv.Routes(), http.MethodPost, "/v1/summary", `{"text": "whatever"}`)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestRecommendationsEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubPredictor{})
	rec := doJSON(t, srv.Routes(), http.MethodPost, "/v1/recommendations",
		`{"summary": "customers love the app", "dominant_emotion": "joy", "all_emotions": {"joy": 0.8}, "confidence": 0.8}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res recommenduc.Recommendation
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !res.Enhanced || res.Text != "do things" {
		t.Errorf("unexpected recommendation: %+v", res)
	}
}

func TestRecommendationsEndpoint_MissingSummary(t *testing.T) {
	srv := newTestServer(t, &stubPredictor{})
	rec := doJSON(t, srv.Routes(), http.MethodPost, "/v1/recommendations", `{"dominant_emotion": "joy"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubPredictor{})
	rec := doJSON(t, srv.Routes(), http.MethodGet, "/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthEndpoint_Degraded(t *testing.T) {
	srv := newTestServer(t, &stubPredictor{})
	srv.health = healthuc.New(nil, nil, nil, true)
	rec := doJSON(t, srv.Routes(), http.MethodGet, "/health", "")

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
