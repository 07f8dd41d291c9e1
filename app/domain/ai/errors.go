package ai

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigError means a backend is misconfigured (missing credentials, unknown
// provider name, invalid settings). It is raised before any network call and
// is never retried.
type ConfigError struct {
	Provider string
	Reason   string
}

func (e *ConfigError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("provider configuration error: %s", e.Reason)
	}
	return fmt.Sprintf("provider %s configuration error: %s", e.Provider, e.Reason)
}

// RateLimitError means admission for a backend was denied.
type RateLimitError struct {
	Provider string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for provider %s", e.Provider)
}

// CommunicationError means every transport attempt failed. It wraps the last
// underlying failure.
type CommunicationError struct {
	Provider string
	Err      error
}

func (e *CommunicationError) Error() string {
	return fmt.Sprintf("communication with provider %s failed: %v", e.Provider, e.Err)
}

func (e *CommunicationError) Unwrap() error {
	return e.Err
}

// APIError means the backend answered but signaled failure, or returned a
// payload missing the expected shape.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider %s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider %s API error: %s", e.Provider, e.Message)
}

// Attempt records one failed backend try during fallback orchestration.
type Attempt struct {
	Provider string
	Err      error
}

// FallbackError is the aggregate failure raised when every backend in the
// chain has been tried without success. Its message names every attempted
// backend and its reason, in attempt order.
type FallbackError struct {
	Operation string
	Attempts  []Attempt
}

func (e *FallbackError) Error() string {
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("no AI provider is available for %s", e.Operation)
	}
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = fmt.Sprintf("%s: %v", a.Provider, a.Err)
	}
	return fmt.Sprintf("all providers failed for %s (%s)", e.Operation, strings.Join(parts, "; "))
}

func (e *FallbackError) Unwrap() []error {
	errs := make([]error, len(e.Attempts))
	for i, a := range e.Attempts {
		errs[i] = a.Err
	}
	return errs
}

// IsRetryable reports whether an error is worth trying on another backend or
// at a later time. Configuration problems are terminal until fixed.
func IsRetryable(err error) bool {
	var cfgErr *ConfigError
	return !errors.As(err, &cfgErr)
}
