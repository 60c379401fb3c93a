package domain

import "context"

// Generator produces a free-text completion from a system instruction and a
// user prompt. Output carries no structural guarantee; callers parse leniently.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error)
}

// GenerationRequest describes one chat-completion call.
type GenerationRequest struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// GenerationResult carries the completion text and token usage.
type GenerationResult struct {
	Text        string
	Model       string
	TotalTokens int
}
