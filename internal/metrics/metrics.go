// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics holds the Prometheus collectors for trademark searches.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Source call outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
)

// Search outcomes.
const (
	SearchComplete = "complete"
	SearchPartial  = "partial"
	SearchDegraded = "degraded"
	SearchInvalid  = "invalid"
)

// Metrics records per-source and per-search telemetry. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	sourceRequests *prometheus.CounterVec
	sourceDuration *prometheus.HistogramVec
	sourceResults  *prometheus.CounterVec
	searches       *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		sourceRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "trademark_source_requests_total",
			Help: "Source search calls by source and outcome.",
		}, []string{"source", "outcome"}),
		sourceDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trademark_source_duration_seconds",
			Help:    "Time spent in each source search call.",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		sourceResults: f.NewCounterVec(prometheus.CounterOpts{
			Name: "trademark_source_results_total",
			Help: "Results returned by each source.",
		}, []string{"source"}),
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "trademark_searches_total",
			Help: "Aggregated searches by outcome.",
		}, []string{"outcome"}),
	}
}

// ObserveSource records one source call.
func (m *Metrics) ObserveSource(source, outcome string, results int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.sourceRequests.WithLabelValues(source, outcome).Inc()
	m.sourceDuration.WithLabelValues(source).Observe(elapsed.Seconds())
	if results > 0 {
		m.sourceResults.WithLabelValues(source).Add(float64(results))
	}
}

// ObserveSearch records the outcome of one aggregated search.
func (m *Metrics) ObserveSearch(outcome string) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(outcome).Inc()
}
