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
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	defaultAnthropicModel   = "claude-3-5-haiku-latest"
	anthropicVersion        = "2023-06-01"
)

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Temperature float64            `json:"temperature,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// AnthropicProvider generates SEO content through the Anthropic messages
// API
type AnthropicProvider struct {
	cfg      ai.ProviderConfig
	executor *Executor
}

var _ ai.Provider = (*AnthropicProvider)(nil)

// NewAnthropicProvider creates an Anthropic adapter
func NewAnthropicProvider(cfg ai.ProviderConfig, executor *Executor) *AnthropicProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultAnthropicBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultAnthropicModel
	}
	return &AnthropicProvider{cfg: cfg, executor: executor}
}

func (p *AnthropicProvider) Name() string {
	return ai.ProviderAnthropic
}

func (p *AnthropicProvider) Available() bool {
	return p.cfg.APIKey != ""
}

func (p *AnthropicProvider) ValidateConfig(cfg ai.ProviderConfig) error {
	if cfg.APIKey == "" {
		return &ai.ConfigError{Provider: ai.ProviderAnthropic, Reason: "api_key is required"}
	}
	return nil
}

func (p *AnthropicProvider) Generate(ctx context.Context, prompt string, opts ai.Options) (string, error) {
	return p.executor.Execute(ctx, CallSpec{
		Backend:    ai.ProviderAnthropic,
		Available:  p.Available,
		MaxRetries: p.cfg.MaxRetries,
		Timeout:    time.Duration(p.cfg.TimeoutSeconds) * time.Second,
		Build: func() (*Request, error) {
			model := p.cfg.Model
			if m, ok := opts.String("model"); ok {
				model = m
			}
			maxTokens := defaultMaxTokens
			if v, ok := opts.Int("max_tokens"); ok && v > 0 {
				maxTokens = v
			}
			body := anthropicRequest{
				Model:     model,
				MaxTokens: maxTokens,
				System:    systemPrompt,
				Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
			}
			if v, ok := opts.Float("temperature"); ok {
				body.Temperature = v
			}
			return &Request{
				Method: http.MethodPost,
				URL:    strings.TrimRight(p.cfg.BaseURL, "/") + "/v1/messages",
				Headers: map[string]string{
					"x-api-key":         p.cfg.APIKey,
					"anthropic-version": anthropicVersion,
				},
				Body: body,
			}, nil
		},
		Parse: parseAnthropicMessage,
	})
}

func (p *AnthropicProvider) GenerateTitle(ctx context.Context, a *analysis.ContentAnalysis, opts ai.Options) (string, error) {
	out, err := p.Generate(ctx, titlePrompt(a), opts)
	if err != nil {
		return "", err
	}
	return sanitizeLine(out), nil
}

func (p *AnthropicProvider) GenerateDescription(ctx context.Context, a *analysis.ContentAnalysis, opts ai.Options) (string, error) {
	out, err := p.Generate(ctx, descriptionPrompt(a), opts)
	if err != nil {
		return "", err
	}
	return sanitizeLine(out), nil
}

func (p *AnthropicProvider) GenerateKeywords(ctx context.Context, a *analysis.ContentAnalysis, opts ai.Options) ([]string, error) {
	out, err := p.Generate(ctx, keywordsPrompt(a), opts)
	if err != nil {
		return nil, err
	}
	return parseKeywordList(out), nil
}

// parseAnthropicMessage reads the first text block of a messages reply
func parseAnthropicMessage(body []byte) (string, error) {
	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decoding message response: %w", err)
	}
	for _, block := range resp.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			return strings.TrimSpace(block.Text), nil
		}
	}
	return "", errors.New("response contains no text content")
}
