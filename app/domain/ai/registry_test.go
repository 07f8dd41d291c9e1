package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RumenDamyanov/go-seo/app/domain/analysis"
	"github.com/RumenDamyanov/go-seo/app/infrastructure/cache"
	"github.com/RumenDamyanov/go-seo/config"
)

type mockProvider struct {
	name      string
	available bool
	response  string
	keywords  []string
	err       error
	calls     int
}

func (m *mockProvider) Name() string                            { return m.name }
func (m *mockProvider) Available() bool                         { return m.available }
func (m *mockProvider) ValidateConfig(cfg ProviderConfig) error { return nil }

func (m *mockProvider) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockProvider) GenerateTitle(ctx context.Context, a *analysis.ContentAnalysis, opts Options) (string, error) {
	return m.Generate(ctx, "", opts)
}

func (m *mockProvider) GenerateDescription(ctx context.Context, a *analysis.ContentAnalysis, opts Options) (string, error) {
	return m.Generate(ctx, "", opts)
}

func (m *mockProvider) GenerateKeywords(ctx context.Context, a *analysis.ContentAnalysis, opts Options) ([]string, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.keywords, nil
}

type mockFactory struct {
	providers map[string]*mockProvider
	failures  map[string]error
	created   []string
}

func (f *mockFactory) CreateProvider(name string) (Provider, error) {
	f.created = append(f.created, name)
	if err, ok := f.failures[name]; ok {
		return nil, err
	}
	if p, ok := f.providers[name]; ok {
		return p, nil
	}
	return nil, &ConfigError{Provider: name, Reason: "unknown provider"}
}

func (f *mockFactory) SupportedProviders() []string {
	return []string{"alpha", "beta", "gamma"}
}

func newTestRegistry(chain []string, factory Factory, withCache bool) *Registry {
	cfg := config.Default()
	cfg.DefaultProvider = ""
	cfg.FallbackChain = chain

	var rc *cache.ResponseCache
	if withCache {
		rc = cache.NewResponseCache(cache.NewMemoryStore(), cache.NewKeyGenerator("test"), cfg)
	}
	return NewRegistry(factory, rc, cfg)
}

func pageAnalysis() *analysis.ContentAnalysis {
	return &analysis.ContentAnalysis{URL: "https://example.com", Title: "Example"}
}

func TestFallbackTriesChainInOrderUntilSuccess(t *testing.T) {
	alpha := &mockProvider{name: "alpha", available: true, err: errors.New("boom-a")}
	beta := &mockProvider{name: "beta", available: true, err: errors.New("boom-b")}
	gamma := &mockProvider{name: "gamma", available: true, response: "from gamma"}
	f := &mockFactory{providers: map[string]*mockProvider{"alpha": alpha, "beta": beta, "gamma": gamma}}

	r := newTestRegistry([]string{"alpha", "beta", "gamma"}, f, false)
	out, err := r.GenerateTitleWithFallback(context.Background(), pageAnalysis(), nil)

	require.NoError(t, err)
	assert.Equal(t, "from gamma", out)
	assert.Equal(t, 1, alpha.calls)
	assert.Equal(t, 1, beta.calls)
	assert.Equal(t, 1, gamma.calls)
}

func TestFallbackShortCircuitsOnFirstSuccess(t *testing.T) {
	alpha := &mockProvider{name: "alpha", available: true, response: "from alpha"}
	beta := &mockProvider{name: "beta", available: true, response: "from beta"}
	f := &mockFactory{providers: map[string]*mockProvider{"alpha": alpha, "beta": beta}}

	r := newTestRegistry([]string{"alpha", "beta"}, f, false)
	out, err := r.GenerateWithFallback(context.Background(), "prompt", nil)

	require.NoError(t, err)
	assert.Equal(t, "from alpha", out)
	assert.Equal(t, 0, beta.calls, "later chain entries must not be touched after a success")
}

func TestFallbackAggregateErrorNamesEveryAttempt(t *testing.T) {
	alpha := &mockProvider{name: "alpha", available: true, err: errors.New("boom-a")}
	beta := &mockProvider{name: "beta", available: true, err: errors.New("boom-b")}
	f := &mockFactory{providers: map[string]*mockProvider{"alpha": alpha, "beta": beta}}

	r := newTestRegistry([]string{"alpha", "beta"}, f, false)
	_, err := r.GenerateDescriptionWithFallback(context.Background(), pageAnalysis(), nil)

	var fbErr *FallbackError
	require.ErrorAs(t, err, &fbErr)
	require.Len(t, fbErr.Attempts, 2)
	assert.Equal(t, "alpha", fbErr.Attempts[0].Provider)
	assert.Equal(t, "beta", fbErr.Attempts[1].Provider)
	assert.Contains(t, err.Error(), "alpha")
	assert.Contains(t, err.Error(), "boom-a")
	assert.Contains(t, err.Error(), "beta")
	assert.Contains(t, err.Error(), "boom-b")
}

func TestFallbackSkipsUnavailableProviders(t *testing.T) {
	alpha := &mockProvider{name: "alpha", available: false, response: "never"}
	beta := &mockProvider{name: "beta", available: true, response: "from beta"}
	f := &mockFactory{providers: map[string]*mockProvider{"alpha": alpha, "beta": beta}}

	r := newTestRegistry([]string{"alpha", "beta"}, f, false)
	out, err := r.GenerateWithFallback(context.Background(), "prompt", nil)

	require.NoError(t, err)
	assert.Equal(t, "from beta", out)
	assert.Equal(t, 0, alpha.calls)
}

func TestFallbackSkipsConstructionFailures(t *testing.T) {
	beta := &mockProvider{name: "beta", available: true, response: "from beta"}
	f := &mockFactory{
		providers: map[string]*mockProvider{"beta": beta},
		failures:  map[string]error{"alpha": &ConfigError{Provider: "alpha", Reason: "api_key is required"}},
	}

	r := newTestRegistry([]string{"alpha", "beta"}, f, false)
	out, err := r.GenerateWithFallback(context.Background(), "prompt", nil)

	require.NoError(t, err)
	assert.Equal(t, "from beta", out)
}

func TestFallbackEmptyChainFailsWithoutAttempts(t *testing.T) {
	f := &mockFactory{}

	r := newTestRegistry(nil, f, false)
	_, err := r.GenerateWithFallback(context.Background(), "prompt", nil)

	var fbErr *FallbackError
	require.ErrorAs(t, err, &fbErr)
	assert.Empty(t, fbErr.Attempts)
	assert.Contains(t, err.Error(), "no AI provider is available")
}

func TestAdaptersAreInstantiatedOncePerBackend(t *testing.T) {
	alpha := &mockProvider{name: "alpha", available: true, response: "ok"}
	f := &mockFactory{providers: map[string]*mockProvider{"alpha": alpha}}

	r := newTestRegistry([]string{"alpha"}, f, false)
	for i := 0; i < 3; i++ {
		_, err := r.GenerateWithFallback(context.Background(), "prompt", nil)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"alpha"}, f.created)
}

func TestCacheHitShortCircuitsProviderCall(t *testing.T) {
	alpha := &mockProvider{name: "alpha", available: true, response: "cached title"}
	f := &mockFactory{providers: map[string]*mockProvider{"alpha": alpha}}

	r := newTestRegistry([]string{"alpha"}, f, true)
	a := pageAnalysis()

	first, err := r.GenerateTitleWithFallback(context.Background(), a, nil)
	require.NoError(t, err)
	second, err := r.GenerateTitleWithFallback(context.Background(), a, nil)
	require.NoError(t, err)

	assert.Equal(t, "cached title", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, alpha.calls, "second call must be served from cache")
}

func TestKeywordsFallbackAndCaching(t *testing.T) {
	alpha := &mockProvider{name: "alpha", available: true, err: errors.New("boom")}
	beta := &mockProvider{name: "beta", available: true, keywords: []string{"seo", "golang"}}
	f := &mockFactory{providers: map[string]*mockProvider{"alpha": alpha, "beta": beta}}

	r := newTestRegistry([]string{"alpha", "beta"}, f, true)
	a := pageAnalysis()

	keywords, err := r.GenerateKeywordsWithFallback(context.Background(), a, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"seo", "golang"}, keywords)

	again, err := r.GenerateKeywordsWithFallback(context.Background(), a, nil)
	require.NoError(t, err)
	assert.Equal(t, keywords, again)
	assert.Equal(t, 1, beta.calls, "second call must be served from cache")
}

func TestSetFallbackChainNormalizesNames(t *testing.T) {
	f := &mockFactory{}
	r := newTestRegistry(nil, f, false)

	r.SetFallbackChain([]string{" Alpha ", "", "BETA", "beta"})

	assert.Equal(t, []string{"alpha", "beta", "beta"}, r.FallbackChainNames())
}

func TestHasAvailableProvider(t *testing.T) {
	alpha := &mockProvider{name: "alpha", available: false}
	beta := &mockProvider{name: "beta", available: true}
	f := &mockFactory{providers: map[string]*mockProvider{"alpha": alpha, "beta": beta}}

	r := newTestRegistry([]string{"alpha"}, f, false)
	assert.False(t, r.HasAvailableProvider())

	r.SetFallbackChain([]string{"alpha", "beta"})
	assert.True(t, r.HasAvailableProvider())
}

func TestProviderSummaries(t *testing.T) {
	beta := &mockProvider{name: "beta", available: true}
	f := &mockFactory{providers: map[string]*mockProvider{"beta": beta}}

	r := newTestRegistry([]string{"beta"}, f, false)
	summaries := r.ProviderSummaries()

	require.Len(t, summaries, 3)
	assert.Equal(t, ProviderSummary{Name: "beta", Available: true, InChain: true}, summaries[0])
	assert.Equal(t, ProviderSummary{Name: "alpha", Available: false, InChain: false}, summaries[1])
	assert.Equal(t, ProviderSummary{Name: "gamma", Available: false, InChain: false}, summaries[2])
}
