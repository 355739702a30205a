// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "job_search_cache_hits_total",
			Help: "Total number of search requests served from cache",
		},
	)

	SearchCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "job_search_cache_misses_total",
			Help: "Total number of search requests that queried the index",
		},
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "job_search_duration_seconds",
			Help: "Duration of search request processing in seconds",
		},
	)

	IndexSyncFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_index_sync_failures_total",
			Help: "Total number of failed index writes after relational commits",
		},
		[]string{"operation"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"method", "path", "status"},
	)
)
