package aiprovider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/RumenDamyanov/go-seo/app/domain/ai"
	"github.com/RumenDamyanov/go-seo/app/domain/analysis"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o-mini"
)

// OpenAIProvider generates SEO content through the OpenAI chat completions
// API
type OpenAIProvider struct {
	cfg      ai.ProviderConfig
	executor *Executor
}

var _ ai.Provider = (*OpenAIProvider)(nil)

// NewOpenAIProvider creates an OpenAI adapter
func NewOpenAIProvider(cfg ai.ProviderConfig, executor *Executor) *OpenAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenAIBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultOpenAIModel
	}
	return &OpenAIProvider{cfg: cfg, executor: executor}
}

func (p *OpenAIProvider) Name() string {
	return ai.ProviderOpenAI
}

func (p *OpenAIProvider) Available() bool {
	return p.cfg.APIKey != ""
}

func (p *OpenAIProvider) ValidateConfig(cfg ai.ProviderConfig) error {
	if cfg.APIKey == "" {
		return &ai.ConfigError{Provider: ai.ProviderOpenAI, Reason: "api_key is required"}
	}
	return nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ai.Options) (string, error) {
	return p.executor.Execute(ctx, CallSpec{
		Backend:    ai.ProviderOpenAI,
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

func (p *OpenAIProvider) GenerateTitle(ctx context.Context, a *analysis.ContentAnalysis, opts ai.Options) (string, error) {
	out, err := p.Generate(ctx, titlePrompt(a), opts)
	if err != nil {
		return "", err
	}
	return sanitizeLine(out), nil
}

func (p *OpenAIProvider) GenerateDescription(ctx context.Context, a *analysis.ContentAnalysis, opts ai.Options) (string, error) {
	out, err := p.Generate(ctx, descriptionPrompt(a), opts)
	if err != nil {
		return "", err
	}
	return sanitizeLine(out), nil
}

func (p *OpenAIProvider) GenerateKeywords(ctx context.Context, a *analysis.ContentAnalysis, opts ai.Options) ([]string, error) {
	out, err := p.Generate(ctx, keywordsPrompt(a), opts)
	if err != nil {
		return nil, err
	}
	return parseKeywordList(out), nil
}

// chatCompletionBody builds the request payload shared by the OpenAI
// compatible endpoints
func chatCompletionBody(model, prompt string, opts ai.Options) openai.ChatCompletionRequest {
	if m, ok := opts.String("model"); ok {
		model = m
	}
	maxTokens := defaultMaxTokens
	if v, ok := opts.Int("max_tokens"); ok && v > 0 {
		maxTokens = v
	}
	temperature := defaultTemperature
	if v, ok := opts.Float("temperature"); ok {
		temperature = v
	}
	return openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: float32(temperature),
	}
}

// parseChatCompletion reads the first choice of a chat completion reply
func parseChatCompletion(body []byte) (string, error) {
	var resp openai.ChatCompletionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decoding chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("response contains no choices")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("response contains empty content")
	}
	return content, nil
}
