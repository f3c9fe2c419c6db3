package middleware

import (
	"net/http"

	"github.com/google/uuid"

	apicontext "github.com/saloonbook/saloon-server/internal/api/context"
)

// RequestIDHeader carries the correlation id of a request.
const RequestIDHeader = "X-Request-Id"

// RequestID keeps the caller's X-Request-Id or assigns a new one, echoes it
// back and stores it in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(apicontext.WithRequestID(r.Context(), id)))
	})
}
