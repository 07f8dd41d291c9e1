package ai

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/RumenDamyanov/go-seo/app/domain/analysis"
	"github.com/RumenDamyanov/go-seo/app/infrastructure/cache"
	"github.com/RumenDamyanov/go-seo/app/utils/functional"
	"github.com/RumenDamyanov/go-seo/app/utils/logger"
	"github.com/RumenDamyanov/go-seo/config"
)

// Registry orchestrates generation across an ordered fallback chain of
// backends. Adapters are created lazily through the factory, one instance
// per identifier, and reused for the registry's lifetime. Chain order is
// authoritative: failures never reorder it and no state is kept across
// calls.
type Registry struct {
	mu       sync.RWMutex
	chain    []string
	adapters map[string]Provider

	factory Factory
	cache   *cache.ResponseCache
}

// NewRegistry creates a registry with the configured fallback chain
func NewRegistry(factory Factory, responseCache *cache.ResponseCache, cfg *config.Config) *Registry {
	r := &Registry{
		factory:  factory,
		cache:    responseCache,
		adapters: map[string]Provider{},
	}
	r.SetFallbackChain(cfg.Chain())
	return r
}

// SetFallbackChain replaces the chain. Names are lowercased and trimmed,
// empty entries dropped. Duplicates are kept; they are permitted, only
// wasteful.
func (r *Registry) SetFallbackChain(names []string) {
	normalized := functional.Map(names, func(name string) string {
		return strings.ToLower(strings.TrimSpace(name))
	})
	normalized = functional.Filter(normalized, func(name string) bool { return name != "" })

	r.mu.Lock()
	r.chain = normalized
	r.mu.Unlock()
}

// FallbackChainNames returns the configured chain order
func (r *Registry) FallbackChainNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.chain...)
}

// FallbackChain resolves the chain to adapters, skipping entries that fail
// construction or report themselves unavailable. Configured order is
// preserved among the survivors.
func (r *Registry) FallbackChain() []Provider {
	var available []Provider
	for _, name := range r.FallbackChainNames() {
		p, err := r.ensureAdapter(name)
		if err != nil {
			logger.GetLogger().Warnf("Skipping provider %s: %v", name, err)
			continue
		}
		if !p.Available() {
			logger.GetLogger().Warnf("Skipping provider %s: not available", name)
			continue
		}
		available = append(available, p)
	}
	return available
}

// HasAvailableProvider reports whether at least one chain entry resolves
func (r *Registry) HasAvailableProvider() bool {
	return len(r.FallbackChain()) > 0
}

// ProviderSummaries describes every known backend: chain members first in
// chain order, then the remaining supported ones.
func (r *Registry) ProviderSummaries() []ProviderSummary {
	chain := r.FallbackChainNames()
	inChain := make(map[string]bool, len(chain))
	for _, name := range chain {
		inChain[name] = true
	}

	names := functional.Distinct(append(chain, r.factory.SupportedProviders()...))
	summaries := make([]ProviderSummary, 0, len(names))
	for _, name := range names {
		available := false
		if p, err := r.ensureAdapter(name); err == nil {
			available = p.Available()
		}
		summaries = append(summaries, ProviderSummary{
			Name:      name,
			Available: available,
			InChain:   inChain[name],
		})
	}
	return summaries
}

// GenerateWithFallback runs a free-form completion through the chain
func (r *Registry) GenerateWithFallback(ctx context.Context, prompt string, opts Options) (string, error) {
	inputs := map[string]any{"prompt": prompt}
	return r.textWithFallback(ctx, cache.OpFreeform, inputs, opts, func(ctx context.Context, p Provider) (string, error) {
		return p.Generate(ctx, prompt, opts)
	})
}

// GenerateTitleWithFallback generates a page title through the chain
func (r *Registry) GenerateTitleWithFallback(ctx context.Context, a *analysis.ContentAnalysis, opts Options) (string, error) {
	return r.textWithFallback(ctx, cache.OpTitle, a.KeyInputs(), opts, func(ctx context.Context, p Provider) (string, error) {
		return p.GenerateTitle(ctx, a, opts)
	})
}

// GenerateDescriptionWithFallback generates a meta description through the
// chain
func (r *Registry) GenerateDescriptionWithFallback(ctx context.Context, a *analysis.ContentAnalysis, opts Options) (string, error) {
	return r.textWithFallback(ctx, cache.OpDescription, a.KeyInputs(), opts, func(ctx context.Context, p Provider) (string, error) {
		return p.GenerateDescription(ctx, a, opts)
	})
}

// GenerateKeywordsWithFallback generates keywords through the chain
func (r *Registry) GenerateKeywordsWithFallback(ctx context.Context, a *analysis.ContentAnalysis, opts Options) ([]string, error) {
	chain := r.FallbackChain()
	if len(chain) == 0 {
		return nil, &FallbackError{Operation: cache.OpKeywords}
	}

	attempts := make([]Attempt, 0, len(chain))
	for _, p := range chain {
		out, err := r.rememberListCall(ctx, p, a, opts)
		if err == nil {
			return out, nil
		}
		r.logAttemptFailure(p, cache.OpKeywords, err)
		attempts = append(attempts, Attempt{Provider: p.Name(), Err: err})
	}
	return nil, &FallbackError{Operation: cache.OpKeywords, Attempts: attempts}
}

// textWithFallback tries each available adapter in order and returns the
// first success. Every attempt is wrapped in the response cache, so a hit
// short-circuits before any provider call.
func (r *Registry) textWithFallback(ctx context.Context, operation string, inputs map[string]any, opts Options, call func(context.Context, Provider) (string, error)) (string, error) {
	chain := r.FallbackChain()
	if len(chain) == 0 {
		return "", &FallbackError{Operation: operation}
	}

	attempts := make([]Attempt, 0, len(chain))
	for _, p := range chain {
		out, err := r.rememberCall(ctx, p, operation, inputs, opts, call)
		if err == nil {
			return out, nil
		}
		r.logAttemptFailure(p, operation, err)
		attempts = append(attempts, Attempt{Provider: p.Name(), Err: err})
	}
	return "", &FallbackError{Operation: operation, Attempts: attempts}
}

func (r *Registry) rememberCall(ctx context.Context, p Provider, operation string, inputs map[string]any, opts Options, call func(context.Context, Provider) (string, error)) (string, error) {
	if r.cache == nil {
		return call(ctx, p)
	}
	key := r.cache.Keys().ProviderResponseKey(p.Name(), operation, inputs, opts)
	return r.cache.Remember(ctx, key, func(ctx context.Context) (string, error) {
		return call(ctx, p)
	})
}

func (r *Registry) rememberListCall(ctx context.Context, p Provider, a *analysis.ContentAnalysis, opts Options) ([]string, error) {
	if r.cache == nil {
		return p.GenerateKeywords(ctx, a, opts)
	}
	key := r.cache.Keys().ProviderResponseKey(p.Name(), cache.OpKeywords, a.KeyInputs(), opts)
	return r.cache.RememberList(ctx, key, func(ctx context.Context) ([]string, error) {
		return p.GenerateKeywords(ctx, a, opts)
	})
}

func (r *Registry) logAttemptFailure(p Provider, operation string, err error) {
	logger.GetLogger().WithFields(logrus.Fields{
		"provider":  p.Name(),
		"operation": operation,
	}).Warnf("Provider attempt failed: %v", err)
}

func (r *Registry) ensureAdapter(name string) (Provider, error) {
	r.mu.RLock()
	p, ok := r.adapters[name]
	r.mu.RUnlock()
	if ok {
		return p, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.adapters[name]; ok {
		return p, nil
	}
	p, err := r.factory.CreateProvider(name)
	if err != nil {
		return nil, err
	}
	r.adapters[name] = p
	return p, nil
}
