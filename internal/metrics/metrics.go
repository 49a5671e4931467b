package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	SubmissionsMetricName       = "formrelay_submissions_total"
	SubmissionDurationName      = "formrelay_submission_duration_seconds"
	RouteHitsMetricName         = "formrelay_route_requests_total"
	RouteResponseTimeMetricName = "formrelay_request_duration_seconds"
)

// Metrics owns the collectors of one server instance.
type Metrics struct {
	registry *prometheus.Registry

	Submissions        *prometheus.CounterVec
	SubmissionDuration *prometheus.HistogramVec
	RouteHits          *prometheus.CounterVec
	ResponseTime       *prometheus.HistogramVec
}

// New registers the formrelay collectors plus the Go and process collectors
// on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: SubmissionsMetricName,
				Help: "Number of form submissions per form and outcome.",
			},
			[]string{"form", "outcome"},
		),
		SubmissionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    SubmissionDurationName,
				Help:    "Time spent validating and forwarding a submission.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
			},
			[]string{"form"},
		),
		RouteHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: RouteHitsMetricName,
				Help: "Number of calls to each route per method and status.",
			},
			[]string{"route", "method", "status"},
		),
		ResponseTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    RouteResponseTimeMetricName,
				Help:    "Response time of formrelay routes.",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"route", "method"},
		),
	}

	m.registry.MustRegister(
		m.Submissions,
		m.SubmissionDuration,
		m.RouteHits,
		m.ResponseTime,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveSubmission records one finished submission.
func (m *Metrics) ObserveSubmission(form, outcome string, elapsed time.Duration) {
	m.Submissions.With(prometheus.Labels{"form": form, "outcome": outcome}).Inc()
	m.SubmissionDuration.With(prometheus.Labels{"form": form}).Observe(elapsed.Seconds())
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.RouteHits.With(prometheus.Labels{
		"route":  route,
		"method": method,
		"status": strconv.Itoa(status),
	}).Inc()
	m.ResponseTime.With(prometheus.Labels{"route": route, "method": method}).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
