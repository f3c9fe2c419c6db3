package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenManager signs and verifies session tokens.
type TokenManager interface {
	Issue(accountID uuid.UUID) (string, TokenClaims, error)
	// Parse returns ErrInvalidToken for every kind of failure.
	Parse(token string) (TokenClaims, error)
}

// TokenClaims is the verified content of a session token.
type TokenClaims struct {
	AccountID uuid.UUID
	JTI       string
	KeyID     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// PasswordHasher produces and checks password digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) (bool, error)
}
