// Package metrics exposes contact form activity to Prometheus.
//
// A Collector plugs into the form controller as its observer and into the
// chi router as middleware:
//
//	m := metrics.New()
//	ctrl, err := form.New(registry, translator, form.WithObserver(m))
//
//	r := chi.NewRouter()
//	r.Use(m.Middleware)
//	r.Handle("/metrics", m.Handler())
package metrics
