package aiprovider

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/RumenDamyanov/go-seo/app/domain/ai"
	"github.com/RumenDamyanov/go-seo/app/domain/analysis"
)

// Google exposes an OpenAI-compatible surface for Gemini, so this adapter
// reuses the chat completion payload and parser.
const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	defaultGeminiModel   = "gemini-2.0-flash"
)

// GeminiProvider generates SEO content through the Gemini API
type GeminiProvider struct {
	cfg      ai.ProviderConfig
	executor *Executor
}

var _ ai.Provider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a Gemini adapter
func NewGeminiProvider(cfg ai.ProviderConfig, executor *Executor) *GeminiProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultGeminiBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultGeminiModel
	}
	return &GeminiProvider{cfg: cfg, executor: executor}
}

func (p *GeminiProvider) Name() string {
	return ai.ProviderGemini
}

func (p *GeminiProvider) Available() bool {
	return p.cfg.APIKey != ""
}

func (p *GeminiProvider) ValidateConfig(cfg ai.ProviderConfig) error {
	if cfg.APIKey == "" {
		return &ai.ConfigError{Provider: ai.ProviderGemini, Reason: "api_key is required"}
	}
	return nil
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string, opts ai.Options) (string, error) {
	return p.executor.Execute(ctx, CallSpec{
		Backend:    ai.ProviderGemini,
		Available:  p.Available,
		MaxRetries: p.cfg.MaxRetries,
		Timeout:    time.Duration(p.cfg.TimeoutSeconds) * time.Second,
		Build: func() (*Request, error) {
			return &Request{
				Method: http.MethodPost,
				URL:    strings.TrimRight(p.cfg.BaseURL, "/") + "/chat/completions",
				Headers: map[string]string{
					"Authorization": "Bearer " + p.cfg.APIKey,
				},
				Body: chatCompletionBody(p.cfg.Model, prompt, opts),
			}, nil
		},
		Parse: parseChatCompletion,
	})
}

func (p *GeminiProvider) GenerateTitle(ctx context.Context, a *analysis.ContentAnalysis, opts ai.Options) (string, error) {
	out, err := p.Generate(ctx, titlePrompt(a), opts)
	if err != nil {
		return "", err
	}
	return sanitizeLine(out), nil
}

func (p *GeminiProvider) GenerateDescription(ctx context.Context, a *analysis.ContentAnalysis, opts ai.Options) (string, error) {
	out, err := p.Generate(ctx, descriptionPrompt(a), opts)
	if err != nil {
		return "", err
	}
	return sanitizeLine(out), nil
}

func (p *GeminiProvider) GenerateKeywords(ctx context.Context, a *analysis.ContentAnalysis, opts ai.Options) ([]string, error) {
	out, err := p.Generate(ctx, keywordsPrompt(a), opts)
	if err != nil {
		return nil, err
	}
	return parseKeywordList(out), nil
}
