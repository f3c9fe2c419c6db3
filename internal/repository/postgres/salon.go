package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/saloonbook/saloon-server/internal/model"
)

var _ model.SalonStore = (*SalonRepository)(nil)

const salonColumns = `id, owner_id, name, lat, lng, services, pictures, version, created_at, updated_at`

type SalonRepository struct {
	db DB
}

func NewSalonRepository(db DB) *SalonRepository {
	return &SalonRepository{
		db: db,
	}
}

func (r *SalonRepository) Create(ctx context.Context, salon model.Salon) (model.Salon, error) {
	query := `INSERT INTO salons (id, owner_id, name, lat, lng, services, pictures, version, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, 1, $8, $9)
			  RETURNING ` + salonColumns

	saved, err := scanSalon(r.db.QueryRow(ctx, query,
		salon.ID, salon.OwnerID, salon.Name, salon.Location.Lat, salon.Location.Lng,
		nonNil(salon.Services), nonNil(salon.Pictures), salon.CreatedAt, salon.UpdatedAt,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.Salon{}, model.ErrNotFound
		}
		if isUniqueViolation(err) {
			return model.Salon{}, model.ErrAlreadyExists
		}
		return model.Salon{}, fmt.Errorf("failed to create salon: %w", err)
	}

	return saved, nil
}

func (r *SalonRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Salon, error) {
	query := `SELECT ` + salonColumns + ` FROM salons WHERE id = $1`

	salon, err := scanSalon(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Salon{}, model.ErrNotFound
		}
		return model.Salon{}, fmt.Errorf("failed to get salon: %w", err)
	}

	return salon, nil
}

func (r *SalonRepository) List(ctx context.Context) ([]model.Salon, error) {
	query := `SELECT ` + salonColumns + ` FROM salons ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list salons: %w", err)
	}
	defer rows.Close()

	salons := make([]model.Salon, 0)
	for rows.Next() {
		s, err := scanSalon(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salon: %w", err)
		}
		salons = append(salons, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate salons: %w", err)
	}

	return salons, nil
}

// Replace matches on id and owner in the WHERE clause so a concurrent
// ownership change cannot be overwritten.
func (r *SalonRepository) Replace(ctx context.Context, salon model.Salon, expectedVersion *int64) (model.Salon, error) {
	query := `UPDATE salons
			  SET name = $3, lat = $4, lng = $5, services = $6, pictures = $7,
			      version = version + 1, updated_at = $8
			  WHERE id = $1 AND owner_id = $2 AND ($9::bigint IS NULL OR version = $9)
			  RETURNING ` + salonColumns

	saved, err := scanSalon(r.db.QueryRow(ctx, query,
		salon.ID, salon.OwnerID, salon.Name, salon.Location.Lat, salon.Location.Lng,
		nonNil(salon.Services), nonNil(salon.Pictures), salon.UpdatedAt, expectedVersion,
	))
	if err == nil {
		return saved, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return model.Salon{}, fmt.Errorf("failed to replace salon: %w", err)
	}
	if expectedVersion == nil {
		return model.Salon{}, model.ErrNotFound
	}

	var exists bool
	err = r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM salons WHERE id = $1 AND owner_id = $2)`, salon.ID, salon.OwnerID).Scan(&exists)
	if err != nil {
		return model.Salon{}, fmt.Errorf("failed to check salon: %w", err)
	}
	if !exists {
		return model.Salon{}, model.ErrNotFound
	}
	return model.Salon{}, model.ErrVersionMismatch
}

func (r *SalonRepository) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM salons WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete salon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func scanSalon(row pgx.Row) (model.Salon, error) {
	var s model.Salon
	err := row.Scan(
		&s.ID, &s.OwnerID, &s.Name, &s.Location.Lat, &s.Location.Lng,
		&s.Services, &s.Pictures, &s.Version, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
