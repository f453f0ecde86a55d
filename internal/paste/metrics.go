package paste

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks delivery counters for the paste engine. A nil *Metrics
// is valid and records nothing, so the core stays testable without a
// prometheus registry.
type Metrics struct {
	registry      prometheus.Registerer
	linesSent     prometheus.Counter
	targets       prometheus.Gauge
	jobsStarted   prometheus.Counter
	jobsReplaced  prometheus.Counter
	jobsFinished  prometheus.Counter
	jobsSuspended prometheus.Counter
}

// InitPrometheusMetrics registers the paste metrics on reg (the default
// registerer when nil) under the given namespace.
func InitPrometheusMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		registry: reg,
		linesSent: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "paste_lines_sent_total",
				Help:      "Total number of lines delivered to destinations",
			},
		),
		targets: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "paste_targets",
				Help:      "Number of registered paste targets (active or suspended)",
			},
		),
		jobsStarted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "paste_jobs_started_total",
				Help:      "Total number of paste jobs started",
			},
		),
		jobsReplaced: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "paste_jobs_replaced_total",
				Help:      "Total number of paste jobs superseded by a new paste",
			},
		),
		jobsFinished: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "paste_jobs_finished_total",
				Help:      "Total number of paste jobs that delivered every line",
			},
		),
		jobsSuspended: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "paste_jobs_suspended_total",
				Help:      "Total number of auto-suspends due to unreachable destinations",
			},
		),
	}

	reg.MustRegister(m.linesSent, m.targets, m.jobsStarted, m.jobsReplaced, m.jobsFinished, m.jobsSuspended)
	return m
}

func (m *Metrics) lineSent() {
	if m == nil {
		return
	}
	m.linesSent.Inc()
}

func (m *Metrics) setTargets(n int) {
	if m == nil {
		return
	}
	m.targets.Set(float64(n))
}

func (m *Metrics) jobStarted() {
	if m == nil {
		return
	}
	m.jobsStarted.Inc()
}

func (m *Metrics) jobReplaced() {
	if m == nil {
		return
	}
	m.jobsReplaced.Inc()
}

func (m *Metrics) jobFinished() {
	if m == nil {
		return
	}
	m.jobsFinished.Inc()
}

func (m *Metrics) jobSuspended() {
	if m == nil {
		return
	}
	m.jobsSuspended.Inc()
}
