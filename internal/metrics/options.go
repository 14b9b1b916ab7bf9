package metrics

import "github.com/prometheus/client_golang/prometheus"

// Option configures a [Hooks] instance.
type Option func(*Hooks)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(h *Hooks) {
		if namespace != "" {
			h.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets custom buckets for the duration histograms.
func WithHistogramBuckets(buckets []float64) Option {
	return func(h *Hooks) {
		if len(buckets) > 0 {
			h.buckets = buckets
		}
	}
}

// WithRegistry sets the registerer metrics are created on.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(h *Hooks) {
		if registry != nil {
			h.registry = registry
		}
	}
}
