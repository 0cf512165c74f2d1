package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dns_datasource"

// Metrics holds the collectors on a private registry so that several
// instances (tests, CLI commands) never collide on the default one.
type Metrics struct {
	registry         *prometheus.Registry
	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	queryBatches     *prometheus.CounterVec
	queryTargets     prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Requests issued to the statistics backend.",
		}, []string{"endpoint", "outcome"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of requests to the statistics backend.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		queryBatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_batches_total",
			Help:      "Query requests handled, by outcome.",
		}, []string{"outcome"}),
		queryTargets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_targets_total",
			Help:      "Normalized query targets executed.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.upstreamRequests,
		m.upstreamLatency,
		m.queryBatches,
		m.queryTargets,
	)
	return m
}

// ObserveUpstream records one backend call. A nil receiver is a no-op.
func (m *Metrics) ObserveUpstream(endpoint string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(endpoint, outcome(err)).Inc()
	m.upstreamLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveBatch(targets int, err error) {
	if m == nil {
		return
	}
	m.queryBatches.WithLabelValues(outcome(err)).Inc()
	m.queryTargets.Add(float64(targets))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
