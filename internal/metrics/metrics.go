// Package metrics exposes Prometheus collectors for the recommender and the
// poster resolver.
//
// Usage:
//
//	metrics.RecordRecommendation(true, 3, 150*time.Microsecond)
//	metrics.RecordPosterLookup("timeout", 5*time.Second)
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendRequestsTotal counts recommendation requests by whether the title was found.
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movierec_recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"found"},
	)

	// RecommendDuration tracks in-memory ranking latency.
	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "movierec_recommend_duration_seconds",
			Help:    "Duration of similarity ranking in seconds",
			Buckets: []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	// RecommendResults tracks how many results each request returned.
	RecommendResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "movierec_recommend_results",
			Help:    "Number of recommendations returned per request",
			Buckets: []float64{0, 1, 3, 5, 10, 20, 50},
		},
	)

	// PosterLookupsTotal counts poster lookups by tagged outcome.
	PosterLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movierec_poster_lookups_total",
			Help: "Total number of poster lookups by outcome",
		},
		[]string{"outcome"},
	)

	// PosterLookupDuration tracks remote poster lookup latency.
	PosterLookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movierec_poster_lookup_duration_seconds",
			Help:    "Duration of poster lookups in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	// PosterBreakerState is 0 closed, 1 half-open, 2 open.
	PosterBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movierec_poster_breaker_state",
			Help: "Poster resolver circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// CatalogMovies is the number of movies in the loaded catalog.
	CatalogMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movierec_catalog_movies",
			Help: "Number of movies in the loaded catalog",
		},
	)

	// VocabularyTerms is the size of the fitted TF-IDF vocabulary.
	VocabularyTerms = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movierec_vocabulary_terms",
			Help: "Number of terms in the TF-IDF vocabulary",
		},
	)

	// HTTPRequestsTotal counts API requests by route and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movierec_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks API latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movierec_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// EngineBuildDuration records how long the last engine build took.
	EngineBuildDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movierec_engine_build_seconds",
			Help: "Duration of the last recommender build in seconds",
		},
	)
)

// RecordRecommendation records one ranking request.
func RecordRecommendation(found bool, results int, d time.Duration) {
	RecommendRequestsTotal.WithLabelValues(strconv.FormatBool(found)).Inc()
	RecommendDuration.Observe(d.Seconds())
	RecommendResults.Observe(float64(results))
}

// RecordPosterLookup records one poster lookup outcome.
func RecordPosterLookup(outcome string, d time.Duration) {
	PosterLookupsTotal.WithLabelValues(outcome).Inc()
	PosterLookupDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// SetBreakerState publishes the poster circuit breaker state.
func SetBreakerState(state int) {
	PosterBreakerState.Set(float64(state))
}

// RecordEngine publishes the catalog and vocabulary sizes after a build.
func RecordEngine(movies, vocabulary int, build time.Duration) {
	CatalogMovies.Set(float64(movies))
	VocabularyTerms.Set(float64(vocabulary))
	EngineBuildDuration.Set(build.Seconds())
}

// RecordHTTPRequest records one served API request.
func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
