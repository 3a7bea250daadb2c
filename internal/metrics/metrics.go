// Package metrics defines Prometheus metrics for catalog-browser.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cb"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last liveness probe succeeded, 0 otherwise.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last readiness probe succeeded, 0 otherwise.",
	})
)

// Catalog API metrics.
var (
	CatalogRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_requests_total",
		Help:      "Total number of catalog page requests by outcome.",
	}, []string{"outcome"})

	CatalogRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "catalog_request_duration_seconds",
		Help:      "Duration of catalog page requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Pagination metrics.
var (
	PagerLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pager_loads_total",
		Help:      "Total number of page loads by kind (first, next) and outcome.",
	}, []string{"kind", "outcome"})

	PagerSkippedTriggersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pager_skipped_triggers_total",
		Help:      "Total number of load triggers ignored, by reason (busy, exhausted, initialized).",
	}, []string{"reason"})

	PagerProductsLoaded = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pager_products_per_page",
		Help:      "Number of products returned per loaded page.",
		Buckets:   prometheus.LinearBuckets(0, 10, 11),
	})
)

// Session metrics.
var (
	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Number of browsing sessions currently held in memory.",
	})

	SessionsExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_expired_total",
		Help:      "Total number of sessions removed by the idle sweeper.",
	})
)
