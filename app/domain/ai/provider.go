package ai

import (
	"context"

	"github.com/RumenDamyanov/go-seo/app/domain/analysis"
)

// Known backend identifiers. Identifiers are stable lowercase strings and are
// the map keys for rate limiter buckets and adapter instances.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
)

// Options carries per-call generation tuning as a string-keyed mapping.
// Recognized keys are "model", "max_tokens" and "temperature"; adapters
// ignore keys they do not understand. Options participate in cache key
// derivation, so two calls with equal options share a cache entry.
type Options map[string]any

func (o Options) String(key string) (string, bool) {
	if v, ok := o[key].(string); ok && v != "" {
		return v, true
	}
	return "", false
}

func (o Options) Int(key string) (int, bool) {
	switch v := o[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	}
	return 0, false
}

func (o Options) Float(key string) (float64, bool) {
	switch v := o[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// ProviderConfig is the resolved configuration one adapter is built from.
type ProviderConfig struct {
	APIKey            string
	BaseURL           string
	Model             string
	MaxRetries        int
	TimeoutSeconds    int
	RequestsPerMinute int
}

// Provider is the capability contract every backend adapter satisfies. Only
// the Generate methods perform network I/O; Available and ValidateConfig are
// pure checks.
type Provider interface {
	// Name returns the stable backend identifier.
	Name() string

	// Available reports whether required credentials and configuration are
	// present. It must not perform network calls.
	Available() bool

	// ValidateConfig structurally checks a candidate configuration. The
	// factory calls it before trusting a backend.
	ValidateConfig(cfg ProviderConfig) error

	// Generate performs a free-form completion.
	Generate(ctx context.Context, prompt string, opts Options) (string, error)

	GenerateTitle(ctx context.Context, a *analysis.ContentAnalysis, opts Options) (string, error)
	GenerateDescription(ctx context.Context, a *analysis.ContentAnalysis, opts Options) (string, error)
	GenerateKeywords(ctx context.Context, a *analysis.ContentAnalysis, opts Options) ([]string, error)
}

// Factory builds adapters from backend identifiers.
type Factory interface {
	CreateProvider(name string) (Provider, error)
	SupportedProviders() []string
}

// AdmissionController is the rate limiter surface the executor depends on.
type AdmissionController interface {
	Acquire(backend string) (bool, error)
	CanAcquire(backend string) bool
	Reset(backend string)
	ResetAll()
}

// ProviderSummary describes one backend for listing endpoints.
type ProviderSummary struct {
	Name      string
	Available bool
	InChain   bool
}
