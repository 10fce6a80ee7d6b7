package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the Prometheus instruments of the bot. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	FlowsStarted   *prometheus.CounterVec
	FlowsCommitted *prometheus.CounterVec
	FlowsAborted   *prometheus.CounterVec
	Exports        *prometheus.CounterVec
	Clears         prometheus.Counter
}

// NewMetrics registers every instrument on a private registry. active, when
// set, is sampled on scrape for the active_sessions gauge.
func NewMetrics(namespace string, active func() int) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		FlowsStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flows_started_total",
			Help:      "Entry flows started by flow.",
		}, []string{"flow"}),
		FlowsCommitted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flows_committed_total",
			Help:      "Entry flows that stored a record, by flow.",
		}, []string{"flow"}),
		FlowsAborted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flows_aborted_total",
			Help:      "Entry flows dropped without storing, by flow and reason.",
		}, []string{"flow", "reason"}),
		Exports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "csv_exports_total",
			Help:      "CSV documents generated, by trigger.",
		}, []string{"trigger"}),
		Clears: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "record_clears_total",
			Help:      "Successful clears of a user's records.",
		}),
	}

	if active != nil {
		factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Entry flows currently in progress.",
		}, func() float64 { return float64(active()) })
	}
	return m
}

func (m *Metrics) FlowStarted(flow string) {
	if m == nil {
		return
	}
	m.FlowsStarted.WithLabelValues(flow).Inc()
}

func (m *Metrics) FlowCommitted(flow string) {
	if m == nil {
		return
	}
	m.FlowsCommitted.WithLabelValues(flow).Inc()
}

func (m *Metrics) FlowAborted(flow, reason string) {
	if m == nil {
		return
	}
	m.FlowsAborted.WithLabelValues(flow, reason).Inc()
}

func (m *Metrics) ExportServed(trigger string) {
	if m == nil {
		return
	}
	m.Exports.WithLabelValues(trigger).Inc()
}

func (m *Metrics) RecordsCleared() {
	if m == nil {
		return
	}
	m.Clears.Inc()
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
