package server

import (
	"github.com/ppiankov/campaignkit/internal/cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics are the service's Prometheus collectors. Each server owns its
// registry so tests can build servers side by side.
type Metrics struct {
	Registry *prometheus.Registry

	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	drafts    *prometheus.CounterVec
	readiness prometheus.Histogram
	cache     *prometheus.CounterVec
}

// NewMetrics registers the collectors on a fresh registry
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campaignkit",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "campaignkit",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		drafts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campaignkit",
			Name:      "drafts_total",
			Help:      "Campaign drafts assembled by platform.",
		}, []string{"platform"}),
		readiness: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "campaignkit",
			Name:      "readiness_index",
			Help:      "Readiness index of processed submissions.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campaignkit",
			Name:      "cache_lookups_total",
			Help:      "Result cache lookups by outcome.",
		}, []string{"result"}),
	}

	m.Registry.MustRegister(
		m.requests, m.latency, m.drafts, m.readiness, m.cache,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// watchCache exports the result cache's size and eviction count
func (m *Metrics) watchCache(c *cache.ResultCache) {
	m.Registry.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "campaignkit",
			Name:      "cache_entries",
			Help:      "Entries held by the result cache.",
		}, func() float64 { return float64(c.Stats().Entries) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "campaignkit",
			Name:      "cache_evictions_total",
			Help:      "Result cache entries removed by expiry.",
		}, func() float64 { return float64(c.Stats().Evicted) }),
	)
}
