package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the console
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Business Metrics
	ValidationsTotal    *prometheus.CounterVec
	ValidationWarnings  prometheus.Counter
	SiteSelectionsTotal *prometheus.CounterVec
	AssignmentBatchSize prometheus.Histogram
	RateLimitedTotal    prometheus.Counter

	// Dependency Metrics
	DependencyUp *prometheus.GaugeVec
}

// NewMetricsRegistry registers every metric with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wcconsole_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wcconsole_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "wcconsole_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wcconsole_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wcconsole_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		ValidationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wcconsole_client_validations_total",
				Help: "Client configuration validations by outcome (valid, invalid)",
			},
			[]string{"outcome"},
		),
		ValidationWarnings: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "wcconsole_client_validation_warnings_total",
				Help: "Total warnings produced by client configuration validation",
			},
		),
		SiteSelectionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wcconsole_site_selections_total",
				Help: "Site selections by result (matched, unmatched)",
			},
			[]string{"result"},
		),
		AssignmentBatchSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "wcconsole_assignment_batch_size",
				Help:    "Number of employees per bulk assignment request",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		RateLimitedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "wcconsole_rate_limited_total",
				Help: "Requests rejected by the per-IP rate limiter",
			},
		),

		// Dependency Metrics
		DependencyUp: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "wcconsole_dependency_up",
				Help: "Whether a backing dependency answered its last ping (1 up, 0 down)",
			},
			[]string{"dependency"},
		),
	}
}

// ObserveValidation records one validation run.
func (m *MetricsRegistry) ObserveValidation(valid bool, warnings int) {
	if m == nil {
		return
	}
	outcome := "invalid"
	if valid {
		outcome = "valid"
	}
	m.ValidationsTotal.WithLabelValues(outcome).Inc()
	m.ValidationWarnings.Add(float64(warnings))
}

// ObserveSelection records one site selection.
func (m *MetricsRegistry) ObserveSelection(matched bool) {
	if m == nil {
		return
	}
	result := "unmatched"
	if matched {
		result = "matched"
	}
	m.SiteSelectionsTotal.WithLabelValues(result).Inc()
}

// ObserveCache records a cache lookup for the given key pattern.
func (m *MetricsRegistry) ObserveCache(pattern string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.WithLabelValues(pattern).Inc()
		return
	}
	m.CacheMissesTotal.WithLabelValues(pattern).Inc()
}

// SetDependencyUp records the latest ping result for a dependency.
func (m *MetricsRegistry) SetDependencyUp(name string, up bool) {
	if m == nil {
		return
	}
	v := 0.0
	if up {
		v = 1
	}
	m.DependencyUp.WithLabelValues(name).Set(v)
}
