package validator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes validation counters and timings to Prometheus.
type Metrics struct {
	passes       *prometheus.CounterVec
	problems     *prometheus.CounterVec
	ruleFailures *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

// NewMetrics creates the validator collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		passes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oasmodel_validation_passes_total",
			Help: "Validation passes by document type and outcome.",
		}, []string{"document_type", "outcome"}),
		problems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oasmodel_validation_problems_total",
			Help: "Problems reported by error code and severity.",
		}, []string{"code", "severity"}),
		ruleFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oasmodel_validation_rule_failures_total",
			Help: "Rules stopped by an unexpected error.",
		}, []string{"code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "oasmodel_validation_duration_seconds",
			Help:    "Time spent per validation phase.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"phase"}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.passes, m.problems, m.ruleFailures, m.duration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// The methods below are nil-safe so the validator can call them unconditionally.

func (m *Metrics) observePhase(phase string, start time.Time) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(phase).Observe(time.Since(start).Seconds())
}

func (m *Metrics) countProblems(ps []Problem) {
	if m == nil {
		return
	}
	for _, p := range ps {
		m.problems.WithLabelValues(p.ErrorCode, p.Severity.String()).Inc()
	}
}

func (m *Metrics) countRuleFailure(code string) {
	if m == nil {
		return
	}
	m.ruleFailures.WithLabelValues(code).Inc()
}

func (m *Metrics) countPass(docType, outcome string) {
	if m == nil {
		return
	}
	m.passes.WithLabelValues(docType, outcome).Inc()
}
