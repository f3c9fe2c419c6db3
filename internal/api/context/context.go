// Package context carries the authenticated caller through a request on
// both transports.
package context

import (
	"context"

	"github.com/google/uuid"

	"github.com/saloonbook/saloon-server/internal/model"
)

type ctxKey int

const (
	accountIDKey ctxKey = iota
	claimsKey
)

var _ model.ContextManager = (*Manager)(nil)

// Manager stores the caller's account id and token claims in the request
// context.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetAccountIDToContext returns a copy of ctx carrying accountID.
func (m *Manager) SetAccountIDToContext(ctx context.Context, accountID uuid.UUID) context.Context {
	return context.WithValue(ctx, accountIDKey, accountID)
}

// GetAccountIDFromContext returns the account id set by the authentication
// middleware. A missing or nil id reports false.
func (m *Manager) GetAccountIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	accountID, ok := ctx.Value(accountIDKey).(uuid.UUID)
	if !ok || accountID == uuid.Nil {
		return uuid.Nil, false
	}
	return accountID, true
}

// SetClaimsToContext stores the verified claims together with their account
// id.
func (m *Manager) SetClaimsToContext(ctx context.Context, claims model.TokenClaims) context.Context {
	ctx = context.WithValue(ctx, claimsKey, claims)
	return m.SetAccountIDToContext(ctx, claims.AccountID)
}

func (m *Manager) GetClaimsFromContext(ctx context.Context) (model.TokenClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(model.TokenClaims)
	return claims, ok
}

type requestIDKey struct{}

// WithRequestID returns a copy of ctx carrying the request correlation id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the correlation id of the request, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
