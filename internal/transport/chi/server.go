package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/emosense-cloud/emosense/internal/domain"
	"github.com/emosense-cloud/emosense/internal/emoji"
	analyzeuc "github.com/emosense-cloud/emosense/internal/usecase/analyze"
	clusteruc "github.com/emosense-cloud/emosense/internal/usecase/cluster"
	healthuc "github.com/emosense-cloud/emosense/internal/usecase/health"
	recommenduc "github.com/emosense-cloud/emosense/internal/usecase/recommend"
	summaryuc "github.com/emosense-cloud/emosense/internal/usecase/summary"
)

const maxBatchComments = 500

// Error response codes.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeRateLimited      = "rate_limited"
	codeProviderError    = "provider_error"
	codeUnavailable      = "dependency_unavailable"
	codeInternalError    = "internal_error"
)

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Predictor vectorizes one text for the /emotions endpoint.
type Predictor = summaryuc.Predictor

// Server exposes the feedback analysis pipeline over HTTP.
type Server struct {
	analyze       *analyzeuc.Service
	predictor     Predictor
	clusterer     *clusteruc.Service
	summary       *summaryuc.Service
	recommend     *recommenduc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. summary and recommend can be nil
// when their providers are not configured; the routes then report the
// dependency unavailable.
func NewServer(
	analyze *analyzeuc.Service,
	predictor Predictor,
	clusterer *clusteruc.Service,
	summary *summaryuc.Service,
	recommend *recommenduc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		analyze:   analyze,
		predictor: predictor,
		clusterer: clusterer,
		summary:   summary,
		recommend: recommend,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited),
		sentinelHandler(domain.ErrProviderFailure, http.StatusBadGateway, codeProviderError),
		sentinelHandler(domain.ErrDependencyUnavailable, http.StatusServiceUnavailable, codeUnavailable),
	}
	return s
}

// Routes mounts all handlers on a fresh router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		r.Post("/analyze", s.Analyze)
		r.Post("/emotions", s.Emotions)
		r.Post("/clusters", s.Clusters)
		r.Post("/summary", s.Summary)
		r.Post("/recommendations", s.Recommendations)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	return r
}

// Analyze handles POST /v1/analyze.
func (s *Server) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeuc.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Comments) == 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "comments are required")
		return
	}
	if len(req.Comments) > maxBatchComments {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "too many comments in one batch")
		return
	}

	res, err := s.analyze.Run(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// emotionsRequest is the body of POST /v1/emotions.
type emotionsRequest struct {
	Text string `json:"text"`
}

// emotionsResponse is the per-text emotion read.
type emotionsResponse struct {
	Emotions  domain.EmotionVector `json:"emotions"`
	Predicted []string             `json:"predicted"`
	Emoji     domain.EmotionVector `json:"emoji_signals,omitempty"`
	Degraded  bool                 `json:"degraded"`
	Source    string               `json:"source"`
}

// Emotions handles POST /v1/emotions.
func (s *Server) Emotions(w http.ResponseWriter, r *http.Request) {
	var req emotionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	pred, err := s.predictor.Predict(r.Context(), req.Text)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, emotionsResponse{
		Emotions:  pred.Emotions,
		Predicted: pred.Predicted,
		Emoji:     emoji.Analyze(req.Text),
		Degraded:  pred.Degraded,
		Source:    pred.Source,
	})
}

// clustersRequest is the body of POST /v1/clusters.
type clustersRequest struct {
	Comments []string `json:"comments"`
}

// clustersResponse wraps the cluster set; Error is set instead of a non-2xx
// status when the batch is simply too small to cluster.
type clustersResponse struct {
	Clusters      []domain.Cluster `json:"clusters"`
	TotalComments int              `json:"total_comments,omitempty"`
	Method        string           `json:"clustering_method,omitempty"`
	Error         string           `json:"error,omitempty"`
}

// Clusters handles POST /v1/clusters.
func (s *Server) Clusters(w http.ResponseWriter, r *http.Request) {
	var req clustersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	comments := domain.CleanComments(req.Comments)
	if len(comments) > maxBatchComments {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "too many comments in one batch")
		return
	}

	input := make([]clusteruc.Comment, len(comments))
	for i, text := range comments {
		pred, err := s.predictor.Predict(r.Context(), text)
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		input[i] = clusteruc.Comment{Text: text, Emotions: pred.Emotions}
	}

	set, err := s.clusterer.Build(r.Context(), input)
	if err != nil {
		// Too few comments is an expected outcome, not a request failure.
		if errors.Is(err, domain.ErrInsufficientData) {
			writeJSON(w, http.StatusOK, clustersResponse{
				Clusters: []domain.Cluster{},
				Error:    domain.ErrInsufficientData.Error(),
			})
			return
		}
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, clustersResponse{
		Clusters:      set.Clusters,
		TotalComments: set.TotalComments,
		Method:        set.Method,
	})
}

// summaryRequest is the body of POST /v1/summary.
type summaryRequest struct {
	Text string `json:"text"`
}

// Summary handles POST /v1/summary.
func (s *Server) Summary(w http.ResponseWriter, r *http.Request) {
	if s.summary == nil {
		writeError(w, http.StatusServiceUnavailable, codeUnavailable, "summarization provider not configured")
		return
	}

	var req summaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	res, err := s.summary.Summarize(r.Context(), req.Text)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// recommendationRequest is the body of POST /v1/recommendations.
type recommendationRequest struct {
	Summary         string                    `json:"summary"`
	DominantEmotion string                    `json:"dominant_emotion"`
	Emotions        domain.EmotionVector      `json:"all_emotions"`
	Confidence      float64                   `json:"confidence"`
	Research        []recommenduc.ResearchDoc `json:"research_context,omitempty"`
}

// Recommendations handles POST /v1/recommendations.
func (s *Server) Recommendations(w http.ResponseWriter, r *http.Request) {
	if s.recommend == nil {
		writeError(w, http.StatusServiceUnavailable, codeUnavailable, "generation provider not configured")
		return
	}

	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Summary == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "summary is required")
		return
	}

	rec := s.recommend.Generate(r.Context(), recommenduc.Input{
		Summary:         req.Summary,
		DominantEmotion: req.DominantEmotion,
		Emotions:        req.Emotions,
		Confidence:      req.Confidence,
		Research:        req.Research,
	})
	writeJSON(w, http.StatusOK, rec)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidInput,
		domain.ErrInsufficientData,
		domain.ErrRateLimited,
		domain.ErrProviderFailure,
		domain.ErrDependencyUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
