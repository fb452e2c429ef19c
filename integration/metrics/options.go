package metrics

import "github.com/prometheus/client_golang/prometheus"

// Config holds collector settings.
type Config struct {
	Namespace string
	Buckets   []float64
	Registry  *prometheus.Registry
}

// Option configures a Collector.
type Option func(*Config)

// WithNamespace sets the metric name prefix. Default "contactform".
func WithNamespace(ns string) Option {
	return func(c *Config) {
		c.Namespace = ns
	}
}

// WithBuckets sets histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		if len(buckets) > 0 {
			c.Buckets = buckets
		}
	}
}

// WithRegistry registers metrics in reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(c *Config) {
		c.Registry = reg
	}
}
