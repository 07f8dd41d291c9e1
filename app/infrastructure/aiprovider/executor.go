package aiprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"resty.dev/v3"

	"github.com/RumenDamyanov/go-seo/app/domain/ai"
	"github.com/RumenDamyanov/go-seo/app/utils/httpclients"
	"github.com/RumenDamyanov/go-seo/app/utils/logger"
	"github.com/RumenDamyanov/go-seo/app/utils/metrics"
	"github.com/RumenDamyanov/go-seo/config"
)

var RestyClient *resty.Client

func Init() {
	RestyClient = httpclients.NewClient("AIProviderClient")
}

const (
	defaultMaxRetries = 3
	defaultTimeout    = 30 * time.Second
)

// Request describes one transport call to a backend API. It is built once
// per logical call and reused across retry attempts.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    any
}

// CallSpec parameterizes the executor with the backend-specific pieces of a
// call: how to build the request and how to read the reply. Retry, backoff
// and admission control live in the executor so they are written once.
type CallSpec struct {
	// Backend is the stable identifier used for rate limiting and errors.
	Backend string

	// Available reports whether the backend is configured. A nil func is
	// treated as available.
	Available func() bool

	// MaxRetries and Timeout override the executor defaults when positive.
	MaxRetries int
	Timeout    time.Duration

	// Build constructs the request. It runs before any network I/O.
	Build func() (*Request, error)

	// Parse extracts the generated text from a successful response body.
	Parse func(body []byte) (string, error)
}

// Executor turns one logical remote call into a reliable operation:
// availability check, rate limiter admission, bounded retries with
// exponential backoff, and error envelope extraction.
type Executor struct {
	limiter    ai.AdmissionController
	maxRetries int
	timeout    time.Duration

	// backoff returns the pause after a failed attempt; injectable so
	// tests run without real sleeps.
	backoff func(attempt int) time.Duration
}

// NewExecutor creates an executor with the given defaults
func NewExecutor(limiter ai.AdmissionController, maxRetries int, timeout time.Duration) *Executor {
	if maxRetries < 1 {
		maxRetries = defaultMaxRetries
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Executor{
		limiter:    limiter,
		maxRetries: maxRetries,
		timeout:    timeout,
		backoff:    exponentialBackoff,
	}
}

// NewExecutorFromConfig creates an executor tuned from configuration
func NewExecutorFromConfig(cfg *config.Config, limiter ai.AdmissionController) *Executor {
	return NewExecutor(limiter, cfg.MaxRetries, time.Duration(cfg.TimeoutSeconds)*time.Second)
}

// exponentialBackoff doubles the wait after each failed attempt: 1s, 2s, 4s.
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * time.Second
}

// Execute runs one logical call against a backend. Transport failures are
// retried with backoff; HTTP error statuses and unparseable payloads are
// terminal because the transport itself succeeded.
func (e *Executor) Execute(ctx context.Context, spec CallSpec) (string, error) {
	backend := spec.Backend

	if spec.Available != nil && !spec.Available() {
		return "", &ai.ConfigError{Provider: backend, Reason: "provider is not configured"}
	}

	if e.limiter != nil {
		ok, err := e.limiter.Acquire(backend)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", &ai.RateLimitError{Provider: backend}
		}
	}

	req, err := spec.Build()
	if err != nil {
		return "", &ai.ConfigError{Provider: backend, Reason: fmt.Sprintf("building request failed: %v", err)}
	}

	attempts := spec.MaxRetries
	if attempts < 1 {
		attempts = e.maxRetries
	}
	timeout := spec.Timeout
	if timeout <= 0 {
		timeout = e.timeout
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		resp, err := e.do(ctx, req, timeout)
		if err != nil {
			lastErr = err
			logger.GetLogger().Warnf("Provider %s attempt %d/%d failed: %v", backend, attempt, attempts, err)
			if attempt < attempts {
				metrics.RecordProviderRetry(backend)
				if serr := e.wait(ctx, e.backoff(attempt)); serr != nil {
					metrics.RecordProviderRequest(backend, "transport_error", 0)
					return "", &ai.CommunicationError{Provider: backend, Err: serr}
				}
			}
			continue
		}

		status := resp.StatusCode()
		body := resp.Bytes()

		if status >= 400 {
			metrics.RecordProviderRequest(backend, "api_error", resp.Duration().Seconds())
			return "", &ai.APIError{
				Provider:   backend,
				StatusCode: status,
				Message:    extractErrorMessage(status, body),
			}
		}

		out, perr := spec.Parse(body)
		if perr != nil {
			metrics.RecordProviderRequest(backend, "parse_error", resp.Duration().Seconds())
			return "", &ai.APIError{
				Provider:   backend,
				StatusCode: status,
				Message:    fmt.Sprintf("unexpected response shape: %v", perr),
			}
		}

		metrics.RecordProviderRequest(backend, "success", resp.Duration().Seconds())
		return out, nil
	}

	metrics.RecordProviderRequest(backend, "transport_error", 0)
	return "", &ai.CommunicationError{Provider: backend, Err: lastErr}
}

// do performs a single transport attempt under its own timeout
func (e *Executor) do(ctx context.Context, req *Request, timeout time.Duration) (*resty.Response, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	r := RestyClient.R().
		SetContext(attemptCtx).
		SetHeader("Content-Type", "application/json")
	for k, v := range req.Headers {
		r.SetHeader(k, v)
	}
	if req.Body != nil {
		r.SetBody(req.Body)
	}
	return r.Execute(req.Method, req.URL)
}

func (e *Executor) wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// extractErrorMessage reads the conventional error envelope used by the
// supported vendors, checking error.message, then error, then message.
func extractErrorMessage(statusCode int, body []byte) string {
	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err == nil {
		if errObj, ok := envelope["error"].(map[string]any); ok {
			if msg, ok := errObj["message"].(string); ok && msg != "" {
				return msg
			}
		}
		if msg, ok := envelope["error"].(string); ok && msg != "" {
			return msg
		}
		if msg, ok := envelope["message"].(string); ok && msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("provider returned HTTP status %d", statusCode)
}
