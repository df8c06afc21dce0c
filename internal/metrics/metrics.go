// Package metrics exposes Prometheus metrics for the schedule board:
// outcomes of every edit intent, refresh latency, and the size of the index.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Intent outcome labels.
const (
	ResultOK          = "ok"
	ResultValidation  = "validation"
	ResultTransition  = "transition"
	ResultOverlap     = "overlap"
	ResultLocked      = "locked"
	ResultNotFound    = "not_found"
	ResultPersistence = "persistence"
)

// Collector records board activity.
type Collector struct {
	intents         *prometheus.CounterVec
	refreshLatency  prometheus.Histogram
	refreshFailures prometheus.Counter
	items           prometheus.Gauge
	groups          prometheus.Gauge
}

// NewCollector creates the metrics and registers them with reg.
// A nil reg registers with prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		intents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wisesched_intents_total",
			Help: "Edit intents by kind and outcome",
		}, []string{"intent", "result"}),
		refreshLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wisesched_refresh_duration_seconds",
			Help:    "Time to refetch and re-seed the schedule index",
			Buckets: prometheus.DefBuckets,
		}),
		refreshFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wisesched_refresh_failures_total",
			Help: "Refreshes that failed to read the record list",
		}),
		items: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wisesched_items",
			Help: "Items currently held by the schedule index",
		}),
		groups: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wisesched_machine_groups",
			Help: "Machine lanes loaded for the session",
		}),
	}

	reg.MustRegister(c.intents, c.refreshLatency, c.refreshFailures, c.items, c.groups)
	return c
}

// RecordIntent counts one edit intent ("save", "delete", "switch") and its outcome.
func (c *Collector) RecordIntent(intent, result string) {
	c.intents.WithLabelValues(intent, result).Inc()
}

// RecordRefresh observes a completed refresh and the resulting index size.
func (c *Collector) RecordRefresh(seconds float64, items int) {
	c.refreshLatency.Observe(seconds)
	c.items.Set(float64(items))
}

// RecordRefreshFailure counts a failed refresh.
func (c *Collector) RecordRefreshFailure() {
	c.refreshFailures.Inc()
}

// SetItems updates the index size after a single mutation.
func (c *Collector) SetItems(n int) {
	c.items.Set(float64(n))
}

// SetGroups updates the number of machine lanes.
func (c *Collector) SetGroups(n int) {
	c.groups.Set(float64(n))
}

// Handler serves the metrics gathered by g in the Prometheus text format.
// A nil g serves prometheus.DefaultGatherer.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
