package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RevokedTokenStore keeps the deny-list of logged out tokens.
type RevokedTokenStore interface {
	Create(ctx context.Context, token RevokedToken) error
	Exists(ctx context.Context, jti string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// RevokedToken is a deny-list entry. It is useless once ExpiresAt has passed.
type RevokedToken struct {
	JTI       string
	AccountID uuid.UUID
	ExpiresAt time.Time
}
