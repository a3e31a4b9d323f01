// Package metrics 定义 Prometheus 指标
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movietracker_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movietracker_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movietracker_auth_attempts_total",
			Help: "Register/login attempts by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	WatchListMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movietracker_watchlist_mutations_total",
			Help: "Watch-list mutations by operation",
		},
		[]string{"op"},
	)

	CatalogCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movietracker_catalog_cache_lookups_total",
			Help: "Catalog search cache lookups by result (hit|miss)",
		},
		[]string{"result"},
	)
)

// RecordHTTPRequest 记录一次 HTTP 请求
func RecordHTTPRequest(method, route, status string, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordAuth 记录认证结果
func RecordAuth(action, outcome string) {
	AuthAttempts.WithLabelValues(action, outcome).Inc()
}

// RecordWatchListMutation 记录清单变更
func RecordWatchListMutation(op string) {
	WatchListMutations.WithLabelValues(op).Inc()
}

// RecordCacheLookup 记录目录搜索缓存命中
func RecordCacheLookup(hit bool) {
	if hit {
		CatalogCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	CatalogCacheLookups.WithLabelValues("miss").Inc()
}
