package aiprovider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/RumenDamyanov/go-seo/app/domain/ai"
	"github.com/RumenDamyanov/go-seo/app/domain/analysis"
)

const (
	defaultOllamaBaseURL = "http://localhost:11434"
	defaultOllamaModel   = "llama3.2"
)

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	System  string        `json:"system,omitempty"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// OllamaProvider generates SEO content through a local Ollama instance. No
// API key is needed; availability means a base URL is configured.
type OllamaProvider struct {
	cfg      ai.ProviderConfig
	executor *Executor
}

var _ ai.Provider = (*OllamaProvider)(nil)

// NewOllamaProvider creates an Ollama adapter
func NewOllamaProvider(cfg ai.ProviderConfig, executor *Executor) *OllamaProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOllamaBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultOllamaModel
	}
	return &OllamaProvider{cfg: cfg, executor: executor}
}

func (p *OllamaProvider) Name() string {
	return ai.ProviderOllama
}

func (p *OllamaProvider) Available() bool {
	return p.cfg.BaseURL != ""
}

func (p *OllamaProvider) ValidateConfig(cfg ai.ProviderConfig) error {
	// An empty base_url is valid, the local default applies
	if cfg.BaseURL == "" {
		return nil
	}
	if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return &ai.ConfigError{Provider: ai.ProviderOllama, Reason: "base_url must be an http(s) URL"}
	}
	return nil
}

func (p *OllamaProvider) Generate(ctx context.Context, prompt string, opts ai.Options) (string, error) {
	return p.executor.Execute(ctx, CallSpec{
		Backend:    ai.ProviderOllama,
		Available:  p.Available,
		MaxRetries: p.cfg.MaxRetries,
		Timeout:    time.Duration(p.cfg.TimeoutSeconds) * time.Second,
		Build: func() (*Request, error) {
			model := p.cfg.Model
			if m, ok := opts.String("model"); ok {
				model = m
			}
			body := ollamaRequest{
				Model:  model,
				Prompt: prompt,
				System: systemPrompt,
				Stream: false,
			}
			if v, ok := opts.Float("temperature"); ok {
				body.Options.Temperature = v
			}
			if v, ok := opts.Int("max_tokens"); ok && v > 0 {
				body.Options.NumPredict = v
			}
			return &Request{
				Method: http.MethodPost,
				URL:    strings.TrimRight(p.cfg.BaseURL, "/") + "/api/generate",
				Body:   body,
			}, nil
		},
		Parse: parseOllamaResponse,
	})
}

func (p *OllamaProvider) GenerateTitle(ctx context.Context, a *analysis.ContentAnalysis, opts ai.Options) (string, error) {
	out, err := p.Generate(ctx, titlePrompt(a), opts)
	if err != nil {
		return "", err
	}
	return sanitizeLine(out), nil
}

func (p *OllamaProvider) GenerateDescription(ctx context.Context, a *analysis.ContentAnalysis, opts ai.Options) (string, error) {
	out, err := p.Generate(ctx, descriptionPrompt(a), opts)
	if err != nil {
		return "", err
	}
	return sanitizeLine(out), nil
}

func (p *OllamaProvider) GenerateKeywords(ctx context.Context, a *analysis.ContentAnalysis, opts ai.Options) ([]string, error) {
	out, err := p.Generate(ctx, keywordsPrompt(a), opts)
	if err != nil {
		return nil, err
	}
	return parseKeywordList(out), nil
}

func parseOllamaResponse(body []byte) (string, error) {
	var resp ollamaResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decoding generate response: %w", err)
	}
	out := strings.TrimSpace(resp.Response)
	if out == "" {
		return "", errors.New("response contains empty content")
	}
	return out, nil
}
