package middleware

import (
	"context"
	"net/http"

	"github.com/saloonbook/saloon-server/internal/api/http/response"
	"github.com/saloonbook/saloon-server/internal/logger"
	"github.com/saloonbook/saloon-server/internal/model"
	"github.com/saloonbook/saloon-server/internal/token"
)

// Authenticator verifies bearer tokens.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (model.TokenClaims, error)
}

// Authenticate validates the bearer token of a request and injects the
// caller's claims into its context.
type Authenticate struct {
	authenticator  Authenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authenticator Authenticator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{authenticator: authenticator, contextManager: contextManager, logger: logger}
}

func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.authenticator.Authenticate(r.Context(), token.FromAuthorization(r.Header.Get("Authorization")))
		if err != nil {
			m.logger.Debug("Authenticate middleware: token rejected",
				"uri", r.RequestURI,
				"error", err.Error())
			w.Header().Set("WWW-Authenticate", `Bearer realm="saloon"`)
			response.WriteError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetClaimsToContext(r.Context(), claims)))
	})
}
