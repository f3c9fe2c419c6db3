package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	apicontext "github.com/saloonbook/saloon-server/internal/api/context"
	"github.com/saloonbook/saloon-server/internal/api/http/response"
	"github.com/saloonbook/saloon-server/internal/apierrors"
	"github.com/saloonbook/saloon-server/internal/logger"
)

// Recoverer turns a panic in a handler into a 500 problem response and logs
// it with its stack.
func Recoverer(logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("HTTP handler panicked",
					"panic", fmt.Sprint(rec),
					"request_id", apicontext.RequestID(r.Context()),
					"method", r.Method,
					"uri", r.RequestURI,
					"stack", string(debug.Stack()))
				response.WriteProblem(w, r, http.StatusInternalServerError, apierrors.CodeInternal,
					"unexpected server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
