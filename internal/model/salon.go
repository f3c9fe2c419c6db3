package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SalonStore defines persistence operations for salons.
type SalonStore interface {
	Create(ctx context.Context, salon Salon) (Salon, error)
	GetByID(ctx context.Context, id uuid.UUID) (Salon, error)
	List(ctx context.Context) ([]Salon, error)
	// Replace overwrites a salon owned by salon.OwnerID. A nil expectedVersion
	// skips the version check.
	Replace(ctx context.Context, salon Salon, expectedVersion *int64) (Salon, error)
	Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
}

// Salon is a resource owned by a single account.
type Salon struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Location  Location
	Services  []string
	Pictures  []string
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location is a geographic point.
type Location struct {
	Lat float64
	Lng float64
}
