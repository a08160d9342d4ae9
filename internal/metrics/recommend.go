package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recommendation Prometheus metrics.
var (
	RecommendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommend_requests_total",
			Help:      "Total number of recommendation requests",
		},
		[]string{"status"}, // ok / empty / error
	)

	RecommendCandidatesRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommend_candidates_rejected_total",
			Help:      "Catalog games excluded before scoring",
		},
		[]string{"reason"}, // players / time
	)

	RecommendResultSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommend_result_size",
			Help:      "Number of games returned per recommendation",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20, 50, 100},
		},
	)

	RecommendDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommend_duration_seconds",
			Help:      "Time spent ranking the catalog",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
	)

	CatalogGames = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_games",
			Help:      "Number of games in the current catalog snapshot",
		},
	)

	CatalogReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_reloads_total",
			Help:      "Catalog load attempts",
		},
		[]string{"status"},
	)

	PreferenceLikesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preference_likes_total",
			Help:      "Games liked into the tag preference profile",
		},
	)
)

var recommendMetricsRegistered bool

// RegisterRecommendMetrics registers the domain metrics. Must be called once from main.
func RegisterRecommendMetrics() {
	if recommendMetricsRegistered {
		return
	}
	prometheus.MustRegister(RecommendRequestsTotal)
	prometheus.MustRegister(RecommendCandidatesRejectedTotal)
	prometheus.MustRegister(RecommendResultSize)
	prometheus.MustRegister(RecommendDuration)
	prometheus.MustRegister(CatalogGames)
	prometheus.MustRegister(CatalogReloadsTotal)
	prometheus.MustRegister(PreferenceLikesTotal)
	recommendMetricsRegistered = true
}
