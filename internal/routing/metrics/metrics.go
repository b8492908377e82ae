package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the routing engine.
type Metrics struct {
	// Routing decisions by source (missing_subject, static, lookup) and unit
	Decisions *prometheus.CounterVec

	// Organizational lookup outcomes by outcome and error category
	LookupOutcome *prometheus.CounterVec

	// Lookup latency, including cache hits
	LookupLatency prometheus.Histogram

	// Categories that had no static table entry
	UnmappedCategories *prometheus.CounterVec
}

// New creates routing metrics registered on reg. A nil reg uses the default
// Prometheus registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fordeling_routing_decisions_total",
			Help: "Total routing decisions by decision source and unit",
		}, []string{"source", "unit"}),

		LookupOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fordeling_norg_lookup_total",
			Help: "Organizational lookup outcomes by outcome and error category",
		}, []string{"outcome", "category"}), // outcome: match, no_match, error, cache_hit

		LookupLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fordeling_norg_lookup_duration_seconds",
			Help:    "Duration of organizational lookups",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		UnmappedCategories: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fordeling_routing_unmapped_category_total",
			Help: "Routing requests whose category had no static rule entry",
		}, []string{"category"}),
	}
}

// IncrementDecision records a routing decision.
func (m *Metrics) IncrementDecision(source, unit string) {
	if m != nil {
		m.Decisions.WithLabelValues(source, unit).Inc()
	}
}

// IncrementLookup records a lookup outcome. category is empty unless the
// outcome is an error.
func (m *Metrics) IncrementLookup(outcome, category string) {
	if m != nil {
		m.LookupOutcome.WithLabelValues(outcome, category).Inc()
	}
}

// ObserveLookupLatency records the duration of one lookup.
func (m *Metrics) ObserveLookupLatency(d time.Duration) {
	if m != nil {
		m.LookupLatency.Observe(d.Seconds())
	}
}

// IncrementUnmapped records a category without a static rule entry.
func (m *Metrics) IncrementUnmapped(category string) {
	if m != nil {
		m.UnmappedCategories.WithLabelValues(category).Inc()
	}
}
