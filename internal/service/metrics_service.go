package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Eligibility outcomes recorded by ObserveEligibility.
const (
	EligibilityPassed     = "passed"
	EligibilityFailed     = "failed"
	EligibilityOverridden = "overridden"
)

// MetricsService encapsulates Prometheus instrumentation for the API.
type MetricsService struct {
	registry            *prometheus.Registry
	handler             http.Handler
	requestDuration     *prometheus.HistogramVec
	requestTotal        *prometheus.CounterVec
	voucherTransitions  *prometheus.CounterVec
	voucherRejections   *prometheus.CounterVec
	eligibilityOutcomes *prometheus.CounterVec
	cacheLatency        prometheus.Observer
	cacheWrite          prometheus.Observer
	cacheHitRatio       prometheus.Gauge
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter

	cacheHitCount  uint64
	cacheMissCount uint64
}

// NewMetricsService registers the collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	voucherTransitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "voucher_transitions_total",
		Help: "Voucher lifecycle transitions by resulting status",
	}, []string{"status"})

	voucherRejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "voucher_rejections_total",
		Help: "Voucher operations refused by the lifecycle rules",
	}, []string{"operation", "code"})

	eligibilityOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "voucher_eligibility_checks_total",
		Help: "Eligibility evaluations at voucher creation by outcome",
	}, []string{"outcome"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache lookups",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache set operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cache_hit_ratio",
		Help: "Ratio of cache hits to total cache lookups",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, voucherTransitions, voucherRejections, eligibilityOutcomes,
		cacheLatency, cacheWrite, cacheHitRatio, cacheHits, cacheMisses, goroutines)

	return &MetricsService{
		registry:            registry,
		handler:             promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:     requestDuration,
		requestTotal:        requestTotal,
		voucherTransitions:  voucherTransitions,
		voucherRejections:   voucherRejections,
		eligibilityOutcomes: eligibilityOutcomes,
		cacheLatency:        cacheLatency,
		cacheWrite:          cacheWrite,
		cacheHitRatio:       cacheHitRatio,
		cacheHits:           cacheHits,
		cacheMisses:         cacheMisses,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry returns the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordVoucherTransition counts a voucher entering status.
func (m *MetricsService) RecordVoucherTransition(status string) {
	if m == nil {
		return
	}
	m.voucherTransitions.WithLabelValues(status).Inc()
}

// RecordVoucherRejection counts a refused voucher operation by error code.
func (m *MetricsService) RecordVoucherRejection(operation, code string) {
	if m == nil {
		return
	}
	m.voucherRejections.WithLabelValues(operation, code).Inc()
}

// ObserveEligibility counts an eligibility outcome at voucher creation.
func (m *MetricsService) ObserveEligibility(outcome string) {
	if m == nil {
		return
	}
	m.eligibilityOutcomes.WithLabelValues(outcome).Inc()
}

// RecordCacheOperation records cache hit/miss metrics and updates hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	total := hits + atomic.LoadUint64(&m.cacheMissCount)
	if total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}
