package service

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/landgov/landadmin-api/internal/models"
)

// MetricsService tracks request, cache and database counters. Everything is
// exported to Prometheus; Snapshot additionally serves the lightweight
// diagnostics endpoint without scraping.
type MetricsService struct {
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	dbQueries      prometheus.Counter
	dbDuration     prometheus.Histogram
	openRequests   prometheus.Gauge
	overdueGauge   prometheus.Gauge

	requestCount    atomic.Uint64
	requestNanos    atomic.Uint64
	cacheHitCount   atomic.Uint64
	cacheMissCount  atomic.Uint64
	dbQueryCount    atomic.Uint64
	dbQueryNanos    atomic.Uint64
}

// NewMetricsService registers collectors on the default registry.
func NewMetricsService() *MetricsService {
	return &MetricsService{
		httpRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "landadmin_http_requests_total",
			Help: "HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		httpDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "landadmin_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "landadmin_cache_hits_total",
			Help: "Cache hits.",
		}),
		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "landadmin_cache_misses_total",
			Help: "Cache misses.",
		}),
		dbQueries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "landadmin_db_queries_total",
			Help: "Database queries issued.",
		}),
		dbDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "landadmin_db_query_duration_seconds",
			Help:    "Database query latency.",
			Buckets: prometheus.DefBuckets,
		}),
		openRequests: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "landadmin_legal_requests_open",
			Help: "Legal requests not yet completed or closed.",
		}),
		overdueGauge: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "landadmin_legal_requests_overdue",
			Help: "Open legal requests past their due date.",
		}),
	}
}

// ObserveHTTP records one served request.
func (m *MetricsService) ObserveHTTP(method, path, status string, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, path, status).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.requestCount.Add(1)
	m.requestNanos.Add(uint64(duration.Nanoseconds()))
}

// ObserveCache records a cache lookup outcome.
func (m *MetricsService) ObserveCache(hit bool) {
	if hit {
		m.cacheHits.Inc()
		m.cacheHitCount.Add(1)
		return
	}
	m.cacheMisses.Inc()
	m.cacheMissCount.Add(1)
}

// ObserveDBQuery records one database query.
func (m *MetricsService) ObserveDBQuery(duration time.Duration) {
	m.dbQueries.Inc()
	m.dbDuration.Observe(duration.Seconds())
	m.dbQueryCount.Add(1)
	m.dbQueryNanos.Add(uint64(duration.Nanoseconds()))
}

// SetWorkloadGauges updates the open and overdue request gauges.
func (m *MetricsService) SetWorkloadGauges(open, overdue int) {
	m.openRequests.Set(float64(open))
	m.overdueGauge.Set(float64(overdue))
}

// Snapshot returns current aggregate counters.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	hits := m.cacheHitCount.Load()
	misses := m.cacheMissCount.Load()
	requests := m.requestCount.Load()
	queries := m.dbQueryCount.Load()

	snapshot := models.SystemMetrics{
		CacheHits:     hits,
		CacheMisses:   misses,
		RequestsTotal: requests,
		DBQueryCount:  queries,
		Goroutines:    runtime.NumGoroutine(),
		GeneratedAt:   time.Now().UTC(),
	}
	if total := hits + misses; total > 0 {
		snapshot.CacheHitRatio = float64(hits) / float64(total)
	}
	if requests > 0 {
		snapshot.AverageRequestDurationMs = float64(m.requestNanos.Load()) / float64(requests) / 1e6
	}
	if queries > 0 {
		snapshot.AverageDBQueryDurationMs = float64(m.dbQueryNanos.Load()) / float64(queries) / 1e6
	}
	return snapshot
}
