package retriever

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SearchesTotal counts retrieval operations.
	// Labels: result (success, error)
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "advisord",
			Subsystem: "retriever",
			Name:      "searches_total",
			Help:      "Total number of retrieval operations",
		},
		[]string{"result"},
	)

	// SearchDuration tracks how long retrieval operations take.
	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "advisord",
			Subsystem: "retriever",
			Name:      "search_duration_seconds",
			Help:      "Duration of retrieval operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func observeSearch(d time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	SearchesTotal.WithLabelValues(result).Inc()
	SearchDuration.Observe(d.Seconds())
}
