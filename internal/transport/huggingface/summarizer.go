package huggingface

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Summarizer calls a hosted summarization model (BART by default).
type Summarizer struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	logger     *zap.Logger
}

// SummarizerConfig holds hosted summarizer settings.
type SummarizerConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewSummarizer creates a hosted summarization provider.
func NewSummarizer(cfg *SummarizerConfig) (*Summarizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("huggingface api key missing")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = "facebook/bart-large-cnn"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Summarizer{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		model:      model,
		logger:     cfg.Logger,
	}, nil
}

// summaryRequest is the summarization request body.
type summaryRequest struct {
	Inputs     string            `json:"inputs"`
	Parameters summaryParameters `json:"parameters"`
	Options    inferenceOptions  `json:"options"`
}

type summaryParameters struct {
	MaxLength int  `json:"max_length,omitempty"`
	MinLength int  `json:"min_length,omitempty"`
	DoSample  bool `json:"do_sample"`
}

// Summarize condenses text via the hosted model.
func (s *Summarizer) Summarize(ctx context.Context, text string, maxLength, minLength int) (string, error) {
	body, err := post(ctx, s.httpClient, s.baseURL+s.model, s.apiKey, summaryRequest{
		Inputs: text,
		Parameters: summaryParameters{
			MaxLength: maxLength,
			MinLength: minLength,
			DoSample:  false,
		},
		Options: inferenceOptions{WaitForModel: true},
	})
	if err != nil {
		return "", err
	}

	// Response shape: [{"summary_text": "..."}]
	var parsed []struct {
		SummaryText string `json:"summary_text"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed) == 0 {
		return "", fmt.Errorf("unexpected summarization response: %s", truncate(string(body), 200))
	}
	return parsed[0].SummaryText, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
