// Package metrics exposes Prometheus counters for authentication and request
// handling.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels of authentication attempts.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// Metrics holds the collectors of one server instance. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	authAttempts *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	grpcRequests *prometheus.CounterVec
	revokedSwept prometheus.Counter
}

// New creates the collectors and registers them with reg.
// Panics if registration fails (following prometheus convention).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "saloon_auth_attempts_total",
			Help: "Total number of registration, login and logout attempts",
		}, []string{"operation", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "saloon_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "saloon_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		grpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "saloon_grpc_requests_total",
			Help: "Total number of gRPC requests",
		}, []string{"method", "code"}),
		revokedSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "saloon_revoked_tokens_swept_total",
			Help: "Total number of expired deny-list entries removed",
		}),
	}

	reg.MustRegister(m.authAttempts, m.httpRequests, m.httpDuration, m.grpcRequests, m.revokedSwept)
	return m
}

// AuthAttempt counts one authentication attempt.
func (m *Metrics) AuthAttempt(operation, outcome string) {
	if m == nil {
		return
	}
	m.authAttempts.WithLabelValues(operation, outcome).Inc()
}

// HTTPRequest records one served HTTP request. route is the mux path
// template, never the raw path.
func (m *Metrics) HTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// GRPCRequest records one served gRPC call.
func (m *Metrics) GRPCRequest(method, code string) {
	if m == nil {
		return
	}
	m.grpcRequests.WithLabelValues(method, code).Inc()
}

// RevokedTokensSwept adds n removed deny-list entries.
func (m *Metrics) RevokedTokensSwept(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.revokedSwept.Add(float64(n))
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
