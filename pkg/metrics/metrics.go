// Package metrics provides the centralized Prometheus registry reference
// for the scraper. Metrics are defined in their respective packages
// (client, cache, ratelimit) to maintain modularity.
//
// This package documents all available metric families.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registerer used by the scraper.
// All metrics are automatically registered via promauto in their
// respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - ratings_requests_total{status} (Counter): Total requests by HTTP status
//   - ratings_request_duration_seconds (Histogram): Request duration
//   - ratings_errors_total{class} (Counter): Errors by class (client, server, network)
//
// Cache Metrics (pkg/cache):
//   - ratings_cache_hits_total{layer} (Counter): Page cache hits by layer (disk, redis)
//   - ratings_cache_misses_total{layer} (Counter): Page cache misses by layer
//   - ratings_cache_errors_total{layer, operation} (Counter): Cache operation errors
//
// Pacing Metrics (pkg/ratelimit):
//   - ratings_throttles_total (Counter): Requests delayed by the pacer
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(ratings_cache_hits_total[5m])) /
//   (sum(rate(ratings_cache_hits_total[5m])) + sum(rate(ratings_cache_misses_total[5m])))
//
//   # Request Error Rate
//   rate(ratings_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(ratings_request_duration_seconds_bucket[5m]))
