// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package metrics registers the Prometheus collectors for the recommender
// service and provides small recording helpers.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values for Recommendation* metrics.
const (
	ModeHybrid    = "hybrid"
	ModeColdStart = "cold_start"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Recommendation Metrics
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "End-to-end duration of a recommendation request, including poster enrichment",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"mode"},
	)

	RecommendationResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_result_size",
			Help:    "Number of items returned per recommendation request",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
		[]string{"mode"},
	)

	RecommendationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_errors_total",
			Help: "Recommendation requests that returned an error",
		},
		[]string{"mode", "error_type"}, // unknown_user, invalid_index, internal
	)

	RecommendationSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_items_skipped_total",
			Help: "Items dropped while building a recommendation list",
		},
		[]string{"reason"}, // title_not_found, not_in_catalog, untitled, not_in_embeddings, favorite_failed
	)

	// Poster Lookup Metrics
	PosterLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poster_lookups_total",
			Help: "Poster image lookups by outcome",
		},
		[]string{"outcome"}, // success, cache_hit, placeholder
	)

	PosterLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "poster_lookup_duration_seconds",
			Help:    "Duration of upstream poster API calls, including rate limiter wait",
			Buckets: prometheus.DefBuckets,
		},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	// Snapshot Reload Metrics
	SnapshotReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_reloads_total",
			Help: "Data and embedding snapshot reload attempts",
		},
		[]string{"source", "result"}, // source: embeddings, catalog; result: success, failure
	)

	SnapshotRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "snapshot_rows",
			Help: "Rows held by the current snapshot",
		},
		[]string{"table"}, // ratings, anime, synopsis, user_embeddings, anime_embeddings
	)

	EmbeddingNormViolations = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "embedding_norm_violations",
			Help: "Rows whose L2 norm is outside tolerance in the current embedding snapshot",
		},
		[]string{"kind"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records one API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records a completed recommendation request.
func RecordRecommendation(mode string, duration time.Duration, results int) {
	RecommendationDuration.WithLabelValues(mode).Observe(duration.Seconds())
	RecommendationResults.WithLabelValues(mode).Observe(float64(results))
}

// RecordRecommendationError records a failed recommendation request.
func RecordRecommendationError(mode, errorType string) {
	RecommendationErrors.WithLabelValues(mode, errorType).Inc()
}

// RecordSkipped records an item dropped from a recommendation list.
func RecordSkipped(reason string) {
	RecommendationSkipped.WithLabelValues(reason).Inc()
}

// RecordPosterLookup records a poster lookup outcome.
func RecordPosterLookup(outcome string) {
	PosterLookups.WithLabelValues(outcome).Inc()
}

// RecordCacheAccess records a hit or miss for the named cache.
func RecordCacheAccess(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
		return
	}
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordSnapshotReload records a reload attempt for source.
func RecordSnapshotReload(source string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	SnapshotReloads.WithLabelValues(source, result).Inc()
}
