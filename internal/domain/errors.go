package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientData signals a batch too small to cluster.
	ErrInsufficientData = errors.New("not enough comments to cluster (minimum 2 required)")
	// ErrDependencyUnavailable signals a missing or failed model dependency.
	ErrDependencyUnavailable = errors.New("required dependency unavailable")
	// ErrProviderFailure signals a failed external API call.
	ErrProviderFailure = errors.New("provider failure")
	// ErrParseAmbiguity signals generator output that does not match the expected structure.
	ErrParseAmbiguity = errors.New("response does not match expected structure")
	// ErrInvalidInput signals a malformed request payload.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRateLimited signals a rate limit hit on an external provider.
	ErrRateLimited = errors.New("rate limited")
)

// ProviderError wraps ErrProviderFailure with the provider name and HTTP status.
type ProviderError struct {
	Provider string
	Status   int
	Message  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s returned %d: %s",
		ErrProviderFailure.Error(), e.Provider, e.Status, e.Message)
}

func (e *ProviderError) Unwrap() error { return ErrProviderFailure }

// NewProviderError creates a provider failure error.
func NewProviderError(provider string, status int, message string) error {
	return &ProviderError{Provider: provider, Status: status, Message: message}
}
