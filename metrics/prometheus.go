package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns a private registry with the draw and HTTP collectors.
type Manager struct {
	namespace         string
	histogramBuckets  []float64
	runtimeCollectors bool
	registry          *prometheus.Registry

	drawsCompleted prometheus.Counter
	drawsRejected  *prometheus.CounterVec
	drawDuration   prometheus.Histogram

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:         "pelada",
		histogramBuckets:  prometheus.DefBuckets,
		runtimeCollectors: true,
		registry:          prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	if m.runtimeCollectors {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m.drawsCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "draw",
		Name:      "completed_total",
		Help:      "Total number of successful team draws",
	})

	m.drawsRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "draw",
		Name:      "rejected_total",
		Help:      "Total number of draw requests rejected by validation",
	}, []string{"reason"})

	m.drawDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "draw",
		Name:      "duration_seconds",
		Help:      "Time spent ordering and dealing players into teams",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests by route, method and status code",
	}, []string{"route", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration in seconds",
		Buckets:   m.histogramBuckets,
	}, []string{"route", "method", "status_code"})
}

// DrawCompleted records a successful draw.
func (m *Manager) DrawCompleted(duration time.Duration) {
	m.drawsCompleted.Inc()
	m.drawDuration.Observe(duration.Seconds())
}

// DrawRejected records a draw refused for reason.
func (m *Manager) DrawRejected(reason string) {
	m.drawsRejected.WithLabelValues(reason).Inc()
}

// ObserveHTTPRequest records one served request; route is the matched pattern, not the raw path.
func (m *Manager) ObserveHTTPRequest(route, method string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(route, method, code).Inc()
	m.httpRequestDuration.WithLabelValues(route, method, code).Observe(duration.Seconds())
}

func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
