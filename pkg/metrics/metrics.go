package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Buckets tuned for interactive API round-trips (milliseconds to tens of seconds)
	apiCallBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34}

	// Outbound API call metrics
	APICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_client_request_duration_seconds",
			Help:    "Outbound API request duration in seconds",
			Buckets: apiCallBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	APICallTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_client_request_total",
			Help: "Total number of outbound API requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	// Cache metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)
)

// RecordAPICall records duration and outcome of one outbound request.
// A status of 0 means the request never produced an HTTP response.
func RecordAPICall(method, route string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	APICallDuration.WithLabelValues(method, route, code).Observe(duration.Seconds())
	APICallTotal.WithLabelValues(method, route, code).Inc()
}

// RecordCacheHit increments the hit counter for a named cache.
func RecordCacheHit(name string) {
	CacheHits.WithLabelValues(name).Inc()
}

// RecordCacheMiss increments the miss counter for a named cache.
func RecordCacheMiss(name string) {
	CacheMisses.WithLabelValues(name).Inc()
}

// Handler returns the HTTP handler that exposes all registered metrics in
// Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
