package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the scanner. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	ScansTotal       *prometheus.CounterVec
	ResolverOutcomes *prometheus.CounterVec
	ResolverDuration prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ScansTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_scans_total",
			Help: "Total number of domain scans by verdict status",
		}, []string{"status"}),
		ResolverOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_resolver_outcomes_total",
			Help: "Authenticity resolver outcomes",
		}, []string{"outcome"}),
		ResolverDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sentinel_resolver_duration_seconds",
			Help:    "Time spent in the authenticity resolver",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5},
		}),
	}
}

// ObserveScan increments the scan counter for status.
func (m *Metrics) ObserveScan(status string) {
	if m == nil {
		return
	}
	m.ScansTotal.WithLabelValues(status).Inc()
}

// ObserveResolver records one resolver call.
func (m *Metrics) ObserveResolver(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ResolverOutcomes.WithLabelValues(outcome).Inc()
	m.ResolverDuration.Observe(elapsed.Seconds())
}
