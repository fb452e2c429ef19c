package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records form and HTTP metrics. It satisfies form.Observer.
type Collector struct {
	gatherer prometheus.Gatherer

	submissionsInFlight prometheus.Gauge
	submissionsTotal    *prometheus.CounterVec
	submissionDuration  prometheus.Histogram
	fieldRejections     *prometheus.CounterVec
	activeSessions      prometheus.Gauge
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
}

// New registers the collector's metrics. Without WithRegistry a fresh
// registry is used.
func New(opts ...Option) *Collector {
	cfg := Config{Namespace: "contactform", Buckets: prometheus.DefBuckets}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}

	factory := promauto.With(cfg.Registry)
	return &Collector{
		gatherer: cfg.Registry,
		submissionsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "submissions_in_flight",
			Help:      "Number of form submissions currently being delivered",
		}),
		submissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "submissions_total",
			Help:      "Total number of finished form submissions by result",
		}, []string{"result"}),
		submissionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "submission_duration_seconds",
			Help:      "Time spent delivering a form submission",
			Buckets:   cfg.Buckets,
		}),
		fieldRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "field_rejections_total",
			Help:      "Total number of field validation failures by field and rule",
		}, []string{"field", "rule"}),
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "active_sessions",
			Help:      "Number of live visitor form sessions",
		}),
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   cfg.Buckets,
		}, []string{"route"}),
	}
}

// SubmissionStarted implements form.Observer.
func (c *Collector) SubmissionStarted() {
	c.submissionsInFlight.Inc()
}

// SubmissionFinished implements form.Observer.
func (c *Collector) SubmissionFinished(result string, d time.Duration) {
	c.submissionsInFlight.Dec()
	c.submissionsTotal.WithLabelValues(result).Inc()
	c.submissionDuration.Observe(d.Seconds())
}

// FieldRejected implements form.Observer.
func (c *Collector) FieldRejected(field, key string) {
	c.fieldRejections.WithLabelValues(field, key).Inc()
}

// SetActiveSessions reports the number of live sessions.
func (c *Collector) SetActiveSessions(n int) {
	c.activeSessions.Set(float64(n))
}

// Handler serves the collected metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency labelled with the chi route
// pattern.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		c.requestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rw.status)).Inc()
		c.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wrote {
		w.status = code
		w.wrote = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wrote = true
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
