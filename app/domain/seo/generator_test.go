package seo

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RumenDamyanov/go-seo/app/domain/ai"
	"github.com/RumenDamyanov/go-seo/app/domain/analysis"
	"github.com/RumenDamyanov/go-seo/app/domain/generationlog"
	"github.com/RumenDamyanov/go-seo/app/infrastructure/cache"
	"github.com/RumenDamyanov/go-seo/config"
)

type stubProvider struct {
	name     string
	text     string
	keywords []string
	err      error

	mu      sync.Mutex
	calls   int
	prompts []string
}

func (p *stubProvider) Name() string                           { return p.name }
func (p *stubProvider) Available() bool                        { return true }
func (p *stubProvider) ValidateConfig(ai.ProviderConfig) error { return nil }

func (p *stubProvider) Generate(_ context.Context, prompt string, _ ai.Options) (string, error) {
	p.mu.Lock()
	p.calls++
	p.prompts = append(p.prompts, prompt)
	p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	return p.text, nil
}

func (p *stubProvider) GenerateTitle(ctx context.Context, _ *analysis.ContentAnalysis, opts ai.Options) (string, error) {
	return p.Generate(ctx, "title", opts)
}

func (p *stubProvider) GenerateDescription(ctx context.Context, _ *analysis.ContentAnalysis, opts ai.Options) (string, error) {
	return p.Generate(ctx, "description", opts)
}

func (p *stubProvider) GenerateKeywords(_ context.Context, _ *analysis.ContentAnalysis, _ ai.Options) ([]string, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	return p.keywords, nil
}

func (p *stubProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func (p *stubProvider) promptAt(i int) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i >= len(p.prompts) {
		return ""
	}
	return p.prompts[i]
}

type stubFactory struct {
	provider *stubProvider
}

func (f *stubFactory) CreateProvider(name string) (ai.Provider, error) {
	if f.provider == nil || f.provider.name != name {
		return nil, &ai.ConfigError{Provider: name, Reason: "unknown provider"}
	}
	return f.provider, nil
}

func (f *stubFactory) SupportedProviders() []string { return []string{"stub"} }

type countingAnalyzer struct {
	inner analysis.Analyzer
	calls int32
}

func (c *countingAnalyzer) Analyze(ctx context.Context, content string, metadata map[string]string) (*analysis.ContentAnalysis, error) {
	atomic.AddInt32(&c.calls, 1)
	return c.inner.Analyze(ctx, content, metadata)
}

func (c *countingAnalyzer) callCount() int32 { return atomic.LoadInt32(&c.calls) }

type recordingRepo struct {
	mu      sync.Mutex
	records []*generationlog.Record
}

func (r *recordingRepo) Create(_ context.Context, rec *generationlog.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

func (r *recordingRepo) Recent(context.Context, int) ([]*generationlog.Record, error) {
	return nil, nil
}

func (r *recordingRepo) DeleteOlderThan(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func (r *recordingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func (r *recordingRepo) first() *generationlog.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.records) == 0 {
		return nil
	}
	return r.records[0]
}

type generatorFixture struct {
	generator *Generator
	analyzer  *countingAnalyzer
	store     *cache.MemoryStore
	repo      *recordingRepo
	cfg       *config.Config
}

func newGeneratorFixture(t *testing.T, engine string, provider *stubProvider) *generatorFixture {
	t.Helper()
	cfg := config.Default()
	cfg.Engine = engine
	cfg.DefaultProvider = "stub"
	cfg.FallbackChain = []string{"stub"}

	store := cache.NewMemoryStore()
	responseCache := cache.NewResponseCache(store, cache.NewKeyGenerator("test"), cfg)
	registry := ai.NewRegistry(&stubFactory{provider: provider}, responseCache, cfg)
	az := &countingAnalyzer{inner: analysis.NewHTMLAnalyzer()}
	repo := &recordingRepo{}

	return &generatorFixture{
		generator: NewGenerator(registry, responseCache, az, generationlog.NewService(repo), cfg),
		analyzer:  az,
		store:     store,
		repo:      repo,
		cfg:       cfg,
	}
}

const testContent = `<html><head><title>Go Caching Guide</title></head>` +
	`<body><h1>Intro</h1><p>Caching caching caching redis redis latency.</p></body></html>`

var testMetadata = map[string]string{
	"url":       "https://example.com/guide",
	"site_name": "ExampleCo",
	"language":  "en",
}

func TestGeneratorStaticTitle(t *testing.T) {
	fx := newGeneratorFixture(t, EngineStatic, nil)

	got, err := fx.generator.GenerateTitle(context.Background(), testContent, testMetadata, nil)

	require.NoError(t, err)
	assert.Equal(t, "Go Caching Guide | ExampleCo", got)
}

func TestGeneratorAnalysisCachedAcrossCalls(t *testing.T) {
	fx := newGeneratorFixture(t, EngineStatic, nil)
	ctx := context.Background()

	first, err := fx.generator.GenerateTitle(ctx, testContent, testMetadata, nil)
	require.NoError(t, err)
	second, err := fx.generator.GenerateTitle(ctx, testContent, testMetadata, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), fx.analyzer.callCount())
}

func TestGeneratorUsesAIWhenConfigured(t *testing.T) {
	provider := &stubProvider{name: "stub", text: "AI Crafted Title"}
	fx := newGeneratorFixture(t, EngineAI, provider)
	ctx := context.Background()

	got, err := fx.generator.GenerateTitle(ctx, testContent, testMetadata, nil)
	require.NoError(t, err)
	assert.Equal(t, "AI Crafted Title", got)

	// Second call is a cache hit, never reaching the provider
	_, err = fx.generator.GenerateTitle(ctx, testContent, testMetadata, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, provider.callCount())
}

func TestGeneratorFallsBackToTemplatesOnAIFailure(t *testing.T) {
	provider := &stubProvider{name: "stub", err: errors.New("model overloaded")}
	fx := newGeneratorFixture(t, EngineAI, provider)

	got, err := fx.generator.GenerateTitle(context.Background(), testContent, testMetadata, nil)

	require.NoError(t, err)
	assert.Equal(t, "Go Caching Guide | ExampleCo", got)
}

func TestGeneratorPropagatesAIFailureWhenFallbackDisabled(t *testing.T) {
	provider := &stubProvider{name: "stub", err: errors.New("model overloaded")}
	fx := newGeneratorFixture(t, EngineAI, provider)
	fx.cfg.FallbackEnabled = false
	ctx := context.Background()

	_, err := fx.generator.GenerateTitle(ctx, testContent, testMetadata, nil)

	var fallbackErr *ai.FallbackError
	require.ErrorAs(t, err, &fallbackErr)

	// Failures are never cached, so the next call tries the provider again
	_, err = fx.generator.GenerateTitle(ctx, testContent, testMetadata, nil)
	require.Error(t, err)
	assert.Equal(t, 2, provider.callCount())
}

func TestGeneratorStaticKeywords(t *testing.T) {
	fx := newGeneratorFixture(t, EngineStatic, nil)

	got, err := fx.generator.GenerateKeywords(context.Background(), testContent, testMetadata, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"caching", "redis", "guide", "intro", "latency"}, got)
}

func TestGeneratorAIKeywordsCached(t *testing.T) {
	provider := &stubProvider{name: "stub", keywords: []string{"alpha", "beta"}}
	fx := newGeneratorFixture(t, EngineAI, provider)
	ctx := context.Background()

	first, err := fx.generator.GenerateKeywords(ctx, testContent, testMetadata, nil)
	require.NoError(t, err)
	second, err := fx.generator.GenerateKeywords(ctx, testContent, testMetadata, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "beta"}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.callCount())
}

func TestGeneratorMetaTags(t *testing.T) {
	fx := newGeneratorFixture(t, EngineStatic, nil)
	ctx := context.Background()

	tags, err := fx.generator.GenerateMetaTags(ctx, testContent, testMetadata, nil)

	require.NoError(t, err)
	assert.Equal(t, "Go Caching Guide | ExampleCo", tags.Title)
	assert.NotEmpty(t, tags.Description)
	assert.Equal(t, "https://example.com/guide", tags.Canonical)
	assert.Equal(t, "index, follow", tags.Robots)
	assert.Equal(t, "ExampleCo", tags.OpenGraph["og:site_name"])
	assert.Equal(t, tags.Title, tags.Twitter["twitter:title"])

	// Composed result is cached as one unit
	again, err := fx.generator.GenerateMetaTags(ctx, testContent, testMetadata, nil)
	require.NoError(t, err)
	assert.Equal(t, tags, again)
	assert.Equal(t, int32(1), fx.analyzer.callCount())
}

func TestGeneratorImageAltStatic(t *testing.T) {
	fx := newGeneratorFixture(t, EngineStatic, nil)

	got, err := fx.generator.GenerateImageAlt(context.Background(), "https://cdn.example.com/img/golden-retriever-puppy.jpg", "", nil)

	require.NoError(t, err)
	assert.Equal(t, "Golden retriever puppy", got)
}

func TestGeneratorImageAltPromptCarriesContext(t *testing.T) {
	provider := &stubProvider{name: "stub", text: `"A golden retriever puppy on grass"`}
	fx := newGeneratorFixture(t, EngineAI, provider)

	got, err := fx.generator.GenerateImageAlt(context.Background(), "https://cdn.example.com/dog.jpg", "adoption day photos", nil)

	require.NoError(t, err)
	assert.Equal(t, "A golden retriever puppy on grass", got)
	assert.Contains(t, provider.promptAt(0), "https://cdn.example.com/dog.jpg")
	assert.Contains(t, provider.promptAt(0), "adoption day photos")
}

func TestGeneratorImageAltRequiresURL(t *testing.T) {
	fx := newGeneratorFixture(t, EngineStatic, nil)

	_, err := fx.generator.GenerateImageAlt(context.Background(), "   ", "", nil)

	require.Error(t, err)
}

func TestGeneratorInvalidateContentDropsAnalysis(t *testing.T) {
	fx := newGeneratorFixture(t, EngineStatic, nil)
	ctx := context.Background()

	_, err := fx.generator.GenerateTitle(ctx, testContent, testMetadata, nil)
	require.NoError(t, err)
	require.Equal(t, int32(1), fx.analyzer.callCount())

	fx.generator.InvalidateContent(ctx, testContent, testMetadata)

	_, err = fx.generator.GenerateTitle(ctx, testContent, testMetadata, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), fx.analyzer.callCount())
}

func TestGeneratorInvalidateAllClearsStore(t *testing.T) {
	fx := newGeneratorFixture(t, EngineStatic, nil)
	ctx := context.Background()

	_, err := fx.generator.GenerateTitle(ctx, testContent, testMetadata, nil)
	require.NoError(t, err)
	require.NotZero(t, fx.store.Len())

	fx.generator.InvalidateAll(ctx)

	assert.Zero(t, fx.store.Len())
}

func TestGeneratorReanalyzesOnCorruptCacheEntry(t *testing.T) {
	fx := newGeneratorFixture(t, EngineStatic, nil)
	ctx := context.Background()

	key := fx.generator.keys().AnalysisKey(testContent, testMetadata)
	require.NoError(t, fx.store.Set(ctx, key, "{not json", time.Minute))

	a, err := fx.generator.Analyze(ctx, testContent, testMetadata)

	require.NoError(t, err)
	assert.Equal(t, "Go Caching Guide", a.Title)
	assert.Equal(t, int32(1), fx.analyzer.callCount())
}

func TestGeneratorRecordsHistory(t *testing.T) {
	fx := newGeneratorFixture(t, EngineStatic, nil)

	got, err := fx.generator.GenerateTitle(context.Background(), testContent, testMetadata, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return fx.repo.count() == 1 }, time.Second, 10*time.Millisecond)
	rec := fx.repo.first()
	assert.Equal(t, "title", rec.Operation)
	assert.Equal(t, EngineStatic, rec.Engine)
	assert.Equal(t, "https://example.com/guide", rec.URL)
	assert.Equal(t, got, rec.Output)
}
