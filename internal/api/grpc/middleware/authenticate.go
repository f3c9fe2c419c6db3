package middleware

import (
	"context"

	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/saloonbook/saloon-server/internal/apierrors"
	"github.com/saloonbook/saloon-server/internal/logger"
	"github.com/saloonbook/saloon-server/internal/model"
	"github.com/saloonbook/saloon-server/internal/token"
)

// Authenticator verifies bearer tokens.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (model.TokenClaims, error)
}

// Authenticate validates bearer tokens and injects the caller's claims into
// context.
type Authenticate struct {
	authenticator  Authenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authenticator Authenticator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{authenticator: authenticator, contextManager: contextManager, logger: logger}
}

// AuthFunc reads the authorization metadata, verifies the token and returns
// a context carrying its claims.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	var tokenString string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if authHeaders := md.Get("authorization"); len(authHeaders) > 0 {
			tokenString = token.FromAuthorization(authHeaders[0])
		}
	}

	claims, err := m.authenticator.Authenticate(ctx, tokenString)
	if err != nil {
		m.logger.Debug("Authenticate middleware: token rejected",
			"error", err.Error())
		return nil, status.Error(apierrors.GRPCCode(err), apierrors.PublicMessage(err))
	}

	return m.contextManager.SetClaimsToContext(ctx, claims), nil
}
