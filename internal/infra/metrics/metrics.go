package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Lookup outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeFailure = "failure"
	// OutcomeCancelled marks a lookup abandoned by its caller, e.g. superseded by a newer submit.
	OutcomeCancelled = "cancelled"
)

// Metrics groups the widget's Prometheus collectors. A nil *Metrics records nothing.
type Metrics struct {
	lookupsTotal       *prometheus.CounterVec
	fetchFailuresTotal *prometheus.CounterVec
	fetchDuration      prometheus.Histogram
	sessions           prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		lookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weather_lookups_total",
			Help: "Weather lookups by outcome (success, invalid, failure, cancelled).",
		}, []string{"outcome"}),
		fetchFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weather_fetch_failures_total",
			Help: "Failed calls to the weather provider by failure kind (network, status, decode).",
		}, []string{"kind"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "weather_fetch_duration_seconds",
			Help:    "Latency of calls to the weather provider.",
			Buckets: prometheus.DefBuckets,
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "weather_widget_sessions",
			Help: "Number of live widget sessions.",
		}),
	}

	reg.MustRegister(m.lookupsTotal, m.fetchFailuresTotal, m.fetchDuration, m.sessions)
	return m
}

func (m *Metrics) ObserveLookup(outcome string) {
	if m == nil {
		return
	}
	m.lookupsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveFetch(elapsed time.Duration, failureKind string) {
	if m == nil {
		return
	}
	m.fetchDuration.Observe(elapsed.Seconds())
	if failureKind != "" {
		m.fetchFailuresTotal.WithLabelValues(failureKind).Inc()
	}
}

func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(n))
}
