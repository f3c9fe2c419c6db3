package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	apicontext "github.com/saloonbook/saloon-server/internal/api/context"
	"github.com/saloonbook/saloon-server/internal/logger"
	"github.com/saloonbook/saloon-server/internal/metrics"
)

// UnmatchedRoute labels requests that matched no route.
const UnmatchedRoute = "unmatched"

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Logging logs every request and records it in the request metrics under its
// route template.
type Logging struct {
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// NewLogging creates a new Logging middleware. metrics may be nil.
func NewLogging(logger *logger.Logger, metrics *metrics.Metrics) *Logging {
	return &Logging{logger: logger, metrics: metrics}
}

func (l *Logging) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w}
		start := time.Now()

		next.ServeHTTP(sw, r)

		d := time.Since(start)
		if sw.status == 0 {
			sw.status = http.StatusOK
		}
		route := routeTemplate(r)

		l.metrics.HTTPRequest(r.Method, route, sw.status, d)

		l.logger.Info("HTTP request completed",
			"request_id", apicontext.RequestID(r.Context()),
			"method", r.Method,
			"route", route,
			"uri", r.RequestURI,
			"status", sw.status,
			"bytes", sw.bytes,
			"duration_ms", d.Milliseconds(),
			"remote_addr", r.RemoteAddr)
	})
}

// routeTemplate keeps path parameters out of metric labels.
func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return UnmatchedRoute
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		return UnmatchedRoute
	}
	return tpl
}
