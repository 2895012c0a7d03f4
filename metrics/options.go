// Package metrics exposes Prometheus collectors for the pelada API.
package metrics

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets custom histogram buckets, in seconds.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithRuntimeCollectors toggles the Go runtime and process collectors.
func WithRuntimeCollectors(enabled bool) Option {
	return func(m *Manager) {
		m.runtimeCollectors = enabled
	}
}
