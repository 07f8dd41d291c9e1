package seo

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/RumenDamyanov/go-seo/app/domain/ai"
	"github.com/RumenDamyanov/go-seo/app/domain/analysis"
	"github.com/RumenDamyanov/go-seo/app/domain/generationlog"
	"github.com/RumenDamyanov/go-seo/app/infrastructure/cache"
	"github.com/RumenDamyanov/go-seo/app/utils/logger"
	"github.com/RumenDamyanov/go-seo/app/utils/metrics"
	"github.com/RumenDamyanov/go-seo/config"
)

// Engines a result can come from. engineCache marks results served from
// the response cache without recomputation.
const (
	EngineAI     = "ai"
	EngineStatic = "static"
	engineCache  = "cache"
)

// Generator is the service facade for metadata generation. It analyzes
// content, routes through the AI provider chain or the static templates
// per configuration, caches results and records history.
type Generator struct {
	registry *ai.Registry
	cache    *cache.ResponseCache
	analyzer analysis.Analyzer
	history  *generationlog.Service
	cfg      *config.Config
}

// NewGenerator creates the generation facade. The response cache must be
// non-nil; a disabled cache passes everything through.
func NewGenerator(registry *ai.Registry, responseCache *cache.ResponseCache, analyzer analysis.Analyzer, history *generationlog.Service, cfg *config.Config) *Generator {
	return &Generator{
		registry: registry,
		cache:    responseCache,
		analyzer: analyzer,
		history:  history,
		cfg:      cfg,
	}
}

// Analyze extracts page facts from raw content, cached by content hash
func (g *Generator) Analyze(ctx context.Context, content string, metadata map[string]string) (*analysis.ContentAnalysis, error) {
	key := g.keys().AnalysisKey(content, metadata)
	raw, err := g.cache.Remember(ctx, key, func(ctx context.Context) (string, error) {
		a, err := g.analyzer.Analyze(ctx, content, metadata)
		if err != nil {
			return "", err
		}
		data, err := json.Marshal(a)
		if err != nil {
			return "", err
		}
		return string(data), nil
	})
	if err != nil {
		return nil, err
	}
	var a analysis.ContentAnalysis
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		// A corrupt entry behaves like a miss
		g.cache.Forget(ctx, key)
		return g.analyzer.Analyze(ctx, content, metadata)
	}
	return &a, nil
}

// GenerateTitle produces an SEO title for the given content
func (g *Generator) GenerateTitle(ctx context.Context, content string, metadata map[string]string, opts ai.Options) (string, error) {
	a, err := g.Analyze(ctx, content, metadata)
	if err != nil {
		return "", err
	}
	engine := engineCache
	out, err := g.cache.Remember(ctx, g.keys().TitleKey(a.KeyInputs(), opts), func(ctx context.Context) (string, error) {
		value, used, err := g.titleFor(ctx, a, opts)
		engine = used
		return value, err
	})
	g.finish(cache.OpTitle, engine, a.URL, out, err)
	return out, err
}

// GenerateDescription produces an SEO meta description
func (g *Generator) GenerateDescription(ctx context.Context, content string, metadata map[string]string, opts ai.Options) (string, error) {
	a, err := g.Analyze(ctx, content, metadata)
	if err != nil {
		return "", err
	}
	engine := engineCache
	out, err := g.cache.Remember(ctx, g.keys().DescriptionKey(a.KeyInputs(), opts), func(ctx context.Context) (string, error) {
		value, used, err := g.descriptionFor(ctx, a, opts)
		engine = used
		return value, err
	})
	g.finish(cache.OpDescription, engine, a.URL, out, err)
	return out, err
}

// GenerateKeywords produces SEO keywords
func (g *Generator) GenerateKeywords(ctx context.Context, content string, metadata map[string]string, opts ai.Options) ([]string, error) {
	a, err := g.Analyze(ctx, content, metadata)
	if err != nil {
		return nil, err
	}
	engine := engineCache
	out, err := g.cache.RememberList(ctx, g.keys().KeywordsKey(a.KeyInputs(), opts), func(ctx context.Context) ([]string, error) {
		values, used, err := g.keywordsFor(ctx, a, opts)
		engine = used
		return values, err
	})
	g.finish(cache.OpKeywords, engine, a.URL, strings.Join(out, ", "), err)
	return out, err
}

// GenerateMetaTags produces the full tag set: title, description, keywords
// and the social graph tags derived from them
func (g *Generator) GenerateMetaTags(ctx context.Context, content string, metadata map[string]string, opts ai.Options) (*MetaTags, error) {
	a, err := g.Analyze(ctx, content, metadata)
	if err != nil {
		return nil, err
	}
	engine := engineCache
	key := g.keys().MetaTagsKey(a.KeyInputs(), opts)
	raw, err := g.cache.Remember(ctx, key, func(ctx context.Context) (string, error) {
		tags, used, err := g.metaTagsFor(ctx, a, opts)
		if err != nil {
			return "", err
		}
		engine = used
		data, err := json.Marshal(tags)
		if err != nil {
			return "", err
		}
		return string(data), nil
	})
	if err != nil {
		return nil, err
	}
	var tags MetaTags
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		g.cache.Forget(ctx, key)
		return nil, err
	}
	g.finish(cache.OpMetaTags, engine, a.URL, tags.Title, nil)
	return &tags, nil
}

// GenerateImageAlt produces alt text for an image URL, optionally guided
// by surrounding page context
func (g *Generator) GenerateImageAlt(ctx context.Context, imageURL, contextHint string, opts ai.Options) (string, error) {
	if strings.TrimSpace(imageURL) == "" {
		return "", errors.New("image url is required")
	}

	keyOpts := ai.Options{}
	for k, v := range opts {
		keyOpts[k] = v
	}
	if contextHint != "" {
		keyOpts["context"] = contextHint
	}

	engine := engineCache
	out, err := g.cache.Remember(ctx, g.keys().ImageAltKey(imageURL, keyOpts), func(ctx context.Context) (string, error) {
		value, used, err := g.imageAltFor(ctx, imageURL, contextHint, opts)
		engine = used
		return value, err
	})
	g.finish(cache.OpImageAlt, engine, imageURL, out, err)
	return out, err
}

// InvalidateContent drops the cached analysis for one piece of content
func (g *Generator) InvalidateContent(ctx context.Context, content string, metadata map[string]string) {
	g.cache.InvalidateContent(ctx, content, metadata)
}

// InvalidateAll clears the whole response cache
func (g *Generator) InvalidateAll(ctx context.Context) {
	g.cache.InvalidateAll(ctx)
}

// Providers lists every known backend with its availability
func (g *Generator) Providers() []ai.ProviderSummary {
	return g.registry.ProviderSummaries()
}

func (g *Generator) titleFor(ctx context.Context, a *analysis.ContentAnalysis, opts ai.Options) (string, string, error) {
	if g.cfg.Engine == EngineAI {
		out, err := g.registry.GenerateTitleWithFallback(ctx, a, opts)
		if err == nil {
			return out, EngineAI, nil
		}
		if !g.cfg.FallbackEnabled {
			return "", EngineAI, err
		}
		logger.GetLogger().Warnf("AI title generation failed, using template fallback: %v", err)
	}
	return TitleFromAnalysis(a), EngineStatic, nil
}

func (g *Generator) descriptionFor(ctx context.Context, a *analysis.ContentAnalysis, opts ai.Options) (string, string, error) {
	if g.cfg.Engine == EngineAI {
		out, err := g.registry.GenerateDescriptionWithFallback(ctx, a, opts)
		if err == nil {
			return out, EngineAI, nil
		}
		if !g.cfg.FallbackEnabled {
			return "", EngineAI, err
		}
		logger.GetLogger().Warnf("AI description generation failed, using template fallback: %v", err)
	}
	return DescriptionFromAnalysis(a), EngineStatic, nil
}

func (g *Generator) keywordsFor(ctx context.Context, a *analysis.ContentAnalysis, opts ai.Options) ([]string, string, error) {
	if g.cfg.Engine == EngineAI {
		out, err := g.registry.GenerateKeywordsWithFallback(ctx, a, opts)
		if err == nil {
			return out, EngineAI, nil
		}
		if !g.cfg.FallbackEnabled {
			return nil, EngineAI, err
		}
		logger.GetLogger().Warnf("AI keyword generation failed, using template fallback: %v", err)
	}
	return KeywordsFromAnalysis(a), EngineStatic, nil
}

func (g *Generator) imageAltFor(ctx context.Context, imageURL, hint string, opts ai.Options) (string, string, error) {
	if g.cfg.Engine == EngineAI {
		out, err := g.registry.GenerateWithFallback(ctx, imageAltPrompt(imageURL, hint), opts)
		if err == nil {
			return strings.Trim(strings.TrimSpace(out), `"'`), EngineAI, nil
		}
		if !g.cfg.FallbackEnabled {
			return "", EngineAI, err
		}
		logger.GetLogger().Warnf("AI alt text generation failed, using file name fallback: %v", err)
	}
	return ImageAltFromURL(imageURL), EngineStatic, nil
}

func (g *Generator) metaTagsFor(ctx context.Context, a *analysis.ContentAnalysis, opts ai.Options) (*MetaTags, string, error) {
	title, titleEngine, err := g.titleFor(ctx, a, opts)
	if err != nil {
		return nil, titleEngine, err
	}
	description, descEngine, err := g.descriptionFor(ctx, a, opts)
	if err != nil {
		return nil, descEngine, err
	}
	keywords, kwEngine, err := g.keywordsFor(ctx, a, opts)
	if err != nil {
		return nil, kwEngine, err
	}

	engine := EngineStatic
	if titleEngine == EngineAI || descEngine == EngineAI || kwEngine == EngineAI {
		engine = EngineAI
	}
	tags := BuildMetaTags(a, title, description, keywords)
	return &tags, engine, nil
}

func (g *Generator) keys() *cache.KeyGenerator {
	return g.cache.Keys()
}

// finish records metrics for every outcome and history for fresh results
func (g *Generator) finish(operation, engine, url, output string, err error) {
	metrics.RecordGeneration(operation, engine, err == nil)
	if err == nil && engine != engineCache {
		g.history.Log(operation, engine, url, output)
	}
}

func imageAltPrompt(imageURL, hint string) string {
	var b strings.Builder
	b.WriteString("Write one short, descriptive alt text for the image at the URL below. Describe what the image likely shows; do not start with the words \"image of\". Respond with the alt text only.\n\n")
	b.WriteString("Image URL: " + imageURL)
	if hint != "" {
		b.WriteString("\nPage context: " + hint)
	}
	return b.String()
}
