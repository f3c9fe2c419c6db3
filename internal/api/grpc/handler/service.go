package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/saloonbook/saloon-server/internal/model"
)

// AuthService defines registration, login and logout.
type AuthService interface {
	Register(ctx context.Context, body []byte) (model.Account, string, error)
	Login(ctx context.Context, body []byte) (string, error)
	Logout(ctx context.Context, claims model.TokenClaims) error
}

// AccountService defines profile reads and edits of the caller's account.
type AccountService interface {
	Get(ctx context.Context, callerID uuid.UUID, id string) (model.Account, error)
	Edit(ctx context.Context, callerID uuid.UUID, body []byte) (model.Account, error)
}

// SalonService defines salon operations. Picture transfer is served over
// HTTP only.
type SalonService interface {
	Create(ctx context.Context, callerID uuid.UUID, body []byte) (model.Salon, error)
	List(ctx context.Context) ([]model.Salon, error)
	Get(ctx context.Context, id string) (model.Salon, error)
	Edit(ctx context.Context, callerID uuid.UUID, body []byte) (model.Salon, error)
	Delete(ctx context.Context, callerID uuid.UUID, body []byte) error
}
