package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	providerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seo_provider_requests_total",
			Help: "Total AI provider requests by backend and outcome.",
		},
		[]string{"provider", "outcome"},
	)

	providerRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seo_provider_request_duration_seconds",
			Help:    "AI provider request latency in seconds.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"provider"},
	)

	providerRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seo_provider_retries_total",
			Help: "Transport retries per backend.",
		},
		[]string{"provider"},
	)

	cacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seo_cache_lookups_total",
			Help: "Response cache lookups by result (hit or miss).",
		},
		[]string{"result"},
	)

	rateLimitDeniedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seo_rate_limit_denied_total",
			Help: "Admissions denied by the rate limiter per backend.",
		},
		[]string{"provider"},
	)

	generationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seo_generations_total",
			Help: "Metadata generations by operation, engine and status.",
		},
		[]string{"operation", "engine", "status"},
	)

	providersAvailable = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "seo_providers_available",
			Help: "Number of AI backends currently able to serve requests.",
		},
	)
)

// RecordProviderRequest tracks one finished provider call.
func RecordProviderRequest(provider, outcome string, seconds float64) {
	providerRequestsTotal.WithLabelValues(provider, outcome).Inc()
	providerRequestDuration.WithLabelValues(provider).Observe(seconds)
}

// RecordProviderRetry tracks one transport retry for a backend.
func RecordProviderRetry(provider string) {
	providerRetriesTotal.WithLabelValues(provider).Inc()
}

// RecordCacheHit tracks a response cache hit.
func RecordCacheHit() {
	cacheLookupsTotal.WithLabelValues("hit").Inc()
}

// RecordCacheMiss tracks a response cache miss.
func RecordCacheMiss() {
	cacheLookupsTotal.WithLabelValues("miss").Inc()
}

// RecordRateLimitDenied tracks a denied admission for a backend.
func RecordRateLimitDenied(provider string) {
	rateLimitDeniedTotal.WithLabelValues(provider).Inc()
}

// RecordGeneration tracks one metadata generation outcome.
func RecordGeneration(operation, engine string, success bool) {
	status := "ok"
	if !success {
		status = "error"
	}
	generationsTotal.WithLabelValues(operation, engine, status).Inc()
}

// SetProvidersAvailable records how many backends passed the last sweep.
func SetProvidersAvailable(count int) {
	providersAvailable.Set(float64(count))
}
