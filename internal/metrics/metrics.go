// Package metrics holds the prometheus collectors exposed on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ipbtracker"

type Metrics struct {
	registry *prometheus.Registry

	requests          *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	statusTransitions *prometheus.CounterVec
	blobDeleteFailed  prometheus.Counter
}

// New registers the collectors on a private registry so that tests can build
// as many instances as they need.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		statusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ipb",
			Name:      "status_detail_transitions_total",
			Help:      "Changes of the derived IPB status detail label.",
		}, []string{"from", "to"}),
		blobDeleteFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "blob_delete_failures_total",
			Help:      "Attachment blobs that could not be deleted.",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.statusTransitions,
		m.blobDeleteFailed,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) ObserveRequest(route, method string, code int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// StatusDetailChanged counts a label transition. An empty from marks a newly
// created record.
func (m *Metrics) StatusDetailChanged(from, to string) {
	if from == "" {
		from = "none"
	}
	m.statusTransitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) BlobDeleteFailed() {
	m.blobDeleteFailed.Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
