package metrics

import "github.com/prometheus/client_golang/prometheus"

// Backend Prometheus metrics for the retrieval and generation clients.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "askdex",
			Name:      "search_requests_total",
			Help:      "Total number of search backend requests",
		},
		[]string{"index", "status"},
	)

	SearchRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "askdex",
			Name:      "search_request_duration_seconds",
			Help:      "Search backend request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"index"},
	)

	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "askdex",
			Name:      "generation_requests_total",
			Help:      "Total number of completion backend requests",
		},
		[]string{"model", "status"},
	)

	GenerationRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "askdex",
			Name:      "generation_request_duration_seconds",
			Help:      "Completion backend request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"model"},
	)

	GenerationTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "askdex",
			Name:      "generation_tokens_total",
			Help:      "Total completion tokens consumed",
		},
		[]string{"model", "type"}, // type: "prompt" / "completion"
	)

	FacetCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "askdex",
			Name:      "facet_cache_total",
			Help:      "Facet value cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var backendMetricsRegistered bool

// RegisterBackendMetrics registers Prometheus backend metrics. Must be called once from main.
func RegisterBackendMetrics() {
	if backendMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchRequestDuration)
	prometheus.MustRegister(GenerationRequestsTotal)
	prometheus.MustRegister(GenerationRequestDuration)
	prometheus.MustRegister(GenerationTokensTotal)
	prometheus.MustRegister(FacetCacheTotal)
	backendMetricsRegistered = true
}
