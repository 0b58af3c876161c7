package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK              = "ok"
	OutcomeParseError      = "parse_error"
	OutcomeTransportError  = "transport_error"
	OutcomeInvalidResponse = "invalid_response"
)

// Metrics holds the Prometheus collectors for submissions.
type Metrics struct {
	Submissions       *prometheus.CounterVec
	CalculateDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg. A nil reg skips
// registration, which keeps tests free of global state.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scenario_runner_submissions_total",
			Help: "Situations submitted, by jurisdiction, mode and outcome",
		}, []string{"jurisdiction", "mode", "outcome"}),
		CalculateDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scenario_runner_calculate_duration_seconds",
			Help:    "Round-trip time of calls to the remote calculator",
			Buckets: prometheus.DefBuckets,
		}, []string{"jurisdiction"}),
	}
	if reg != nil {
		reg.MustRegister(m.Submissions, m.CalculateDuration)
	}
	return m
}

func (m *Metrics) ObserveSubmission(jurisdiction, mode, outcome string) {
	m.Submissions.WithLabelValues(jurisdiction, mode, outcome).Inc()
}

func (m *Metrics) ObserveCalculate(jurisdiction string, d time.Duration) {
	m.CalculateDuration.WithLabelValues(jurisdiction).Observe(d.Seconds())
}
