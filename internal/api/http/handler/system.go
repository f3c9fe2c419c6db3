package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/saloonbook/saloon-server/internal/logger"
)

// ReadinessCheck reports whether a dependency can serve requests.
type ReadinessCheck func(ctx context.Context) error

// System serves the welcome and probe endpoints.
type System struct {
	checks map[string]ReadinessCheck
	logger *logger.Logger
}

// NewSystem creates a System handler. Every check must pass for /readyz to
// answer 200.
func NewSystem(checks map[string]ReadinessCheck, logger *logger.Logger) *System {
	return &System{checks: checks, logger: logger}
}

func (h *System) Welcome(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "Welcome to saloon-server\n")
}

func (h *System) WelcomeAPI(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "Welcome to the saloon API\n")
}

// Liveness answers as long as the process serves requests.
func (h *System) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "ok\n")
}

func (h *System) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("System handler: dependency not ready",
				"dependency", name,
				"error", err.Error())
			writeText(w, http.StatusServiceUnavailable, name+" unreachable\n")
			return
		}
	}
	writeText(w, http.StatusOK, "ok\n")
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
