// Package metrics provides Prometheus instrumentation for the dispatch
// surface. Scrape /metrics to see action volumes and latencies per action
// and outcome.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// actionTotal counts dispatched actions by name and outcome
	// (success, rejected, error).
	actionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gourmetgo",
			Subsystem: "dispatch",
			Name:      "actions_total",
			Help:      "Total number of dispatched actions.",
		},
		[]string{"action", "outcome"},
	)

	// actionDuration tracks how long each action takes.
	actionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gourmetgo",
			Subsystem: "dispatch",
			Name:      "action_duration_seconds",
			Help:      "Duration of dispatched actions in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"action"},
	)
)

// ObserveAction records one dispatched action.
func ObserveAction(action, outcome string, elapsed time.Duration) {
	actionTotal.WithLabelValues(action, outcome).Inc()
	actionDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
