package aiprovider

import (
	"fmt"
	"strings"

	"github.com/RumenDamyanov/go-seo/app/domain/ai"
	"github.com/RumenDamyanov/go-seo/config"
)

// ProviderFactory builds backend adapters from configuration. Construction
// is structural only; no network calls happen until a Generate method runs.
type ProviderFactory struct {
	cfg      *config.Config
	executor *Executor
}

var _ ai.Factory = (*ProviderFactory)(nil)

// NewProviderFactory creates a factory bound to one executor
func NewProviderFactory(cfg *config.Config, executor *Executor) *ProviderFactory {
	return &ProviderFactory{cfg: cfg, executor: executor}
}

// CreateProvider builds the adapter for a backend identifier. Unknown names
// and configurations that fail the adapter's structural check are rejected
// with a ConfigError.
func (f *ProviderFactory) CreateProvider(name string) (ai.Provider, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	pc := f.providerConfig(name)

	var provider ai.Provider
	switch name {
	case ai.ProviderOpenAI:
		provider = NewOpenAIProvider(pc, f.executor)
	case ai.ProviderAnthropic:
		provider = NewAnthropicProvider(pc, f.executor)
	case ai.ProviderGemini:
		provider = NewGeminiProvider(pc, f.executor)
	case ai.ProviderOllama:
		provider = NewOllamaProvider(pc, f.executor)
	default:
		return nil, &ai.ConfigError{
			Provider: name,
			Reason:   fmt.Sprintf("unknown provider, supported: %s", strings.Join(f.SupportedProviders(), ", ")),
		}
	}

	if err := provider.ValidateConfig(pc); err != nil {
		return nil, err
	}
	return provider, nil
}

// SupportedProviders lists every backend identifier this factory can build
func (f *ProviderFactory) SupportedProviders() []string {
	return []string{ai.ProviderOpenAI, ai.ProviderAnthropic, ai.ProviderGemini, ai.ProviderOllama}
}

func (f *ProviderFactory) providerConfig(name string) ai.ProviderConfig {
	settings := f.cfg.ProviderSettings(name)
	return ai.ProviderConfig{
		APIKey:            settings.APIKey,
		BaseURL:           settings.BaseURL,
		Model:             settings.Model,
		MaxRetries:        settings.MaxRetries,
		TimeoutSeconds:    settings.TimeoutSeconds,
		RequestsPerMinute: settings.RequestsPerMinute,
	}
}
