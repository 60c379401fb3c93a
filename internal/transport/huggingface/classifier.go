// Package huggingface implements the emotion classifier and summarizer over
// the HuggingFace inference API. There is no official Go SDK; requests are
// plain JSON over HTTP against the hosted model endpoints.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/emosense-cloud/emosense/internal/domain"
	"github.com/emosense-cloud/emosense/internal/metrics"
)

const defaultBaseURL = "https://api-inference.huggingface.co/models/"

// maxInputRunes approximates the classifier's context window; longer inputs
// are truncated client-side so the API does not reject them.
const maxInputRunes = 2000

// Classifier calls a hosted multi-label emotion model. The model emits one
// sigmoid score per taxonomy label; scores are independent, not a softmax.
type Classifier struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	logger     *zap.Logger
}

// ClassifierConfig holds hosted classifier settings.
type ClassifierConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewClassifier creates a hosted emotion classifier.
// Returns an error when no API key is configured, so the loader chain can
// move on to the next strategy.
func NewClassifier(cfg *ClassifierConfig) (*Classifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("huggingface api key missing: %w", domain.ErrDependencyUnavailable)
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Classifier{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		logger:     cfg.Logger,
	}, nil
}

// inferenceRequest is the hosted inference API request body.
type inferenceRequest struct {
	Inputs  string           `json:"inputs"`
	Options inferenceOptions `json:"options"`
}

type inferenceOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

// labelScore is one entry of the classification response.
type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify implements domain.Classifier. The returned vector is keyed by the
// full taxonomy; labels the model did not report are zero-filled.
func (c *Classifier) Classify(ctx context.Context, text string) (domain.EmotionVector, error) {
	if runes := []rune(text); len(runes) > maxInputRunes {
		text = string(runes[:maxInputRunes])
	}

	body, err := c.post(ctx, c.model, inferenceRequest{
		Inputs:  text,
		Options: inferenceOptions{WaitForModel: true},
	})
	if err != nil {
		return nil, err
	}

	// Response shape: [[{"label": "...", "score": ...}, ...]]
	var nested [][]labelScore
	if err := json.Unmarshal(body, &nested); err != nil || len(nested) == 0 {
		// Some deployments return the flat form.
		var flat []labelScore
		if err2 := json.Unmarshal(body, &flat); err2 != nil || len(flat) == 0 {
			return nil, fmt.Errorf("unexpected classification response: %w", domain.ErrProviderFailure)
		}
		nested = [][]labelScore{flat}
	}

	vector := make(domain.EmotionVector, len(domain.Taxonomy))
	for _, label := range domain.Taxonomy {
		vector[label] = 0
	}
	for _, ls := range nested[0] {
		if _, known := vector[ls.Label]; known {
			vector[ls.Label] = clamp01(ls.Score)
		}
	}
	return vector, nil
}

// HealthCheck verifies the model endpoint responds.
func (c *Classifier) HealthCheck(ctx context.Context) error {
	_, err := c.post(ctx, c.model, inferenceRequest{
		Inputs:  "ok",
		Options: inferenceOptions{WaitForModel: true},
	})
	return err
}

func (c *Classifier) post(ctx context.Context, model string, payload any) ([]byte, error) {
	return post(ctx, c.httpClient, c.baseURL+model, c.apiKey, payload)
}

// post issues one authenticated inference call and maps HTTP failures to
// domain errors.
func post(ctx context.Context, client *http.Client, url, apiKey string, payload any) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()

	resp, err := client.Do(req)

	duration := time.Since(start)

	if err != nil {
		metrics.ClassifierRequestsTotal.WithLabelValues("huggingface", "error").Inc()
		return nil, fmt.Errorf("inference call: %w: %v", domain.ErrProviderFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ClassifierRequestsTotal.WithLabelValues("huggingface", "error").Inc()
		return nil, fmt.Errorf("read inference response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		metrics.ClassifierRequestsTotal.WithLabelValues("huggingface", "error").Inc()
		return nil, fmt.Errorf("inference API: %w", domain.ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		metrics.ClassifierRequestsTotal.WithLabelValues("huggingface", "error").Inc()
		return nil, domain.NewProviderError("huggingface", resp.StatusCode, string(body))
	}

	metrics.ClassifierRequestsTotal.WithLabelValues("huggingface", "success").Inc()
	metrics.ClassifierRequestDuration.WithLabelValues("huggingface").Observe(duration.Seconds())

	return body, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
