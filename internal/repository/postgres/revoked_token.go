package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/saloonbook/saloon-server/internal/model"
)

var _ model.RevokedTokenStore = (*RevokedTokenRepository)(nil)

type RevokedTokenRepository struct {
	db DB
}

func NewRevokedTokenRepository(db DB) *RevokedTokenRepository {
	return &RevokedTokenRepository{
		db: db,
	}
}

// Create is idempotent: revoking a token twice keeps the first entry.
func (r *RevokedTokenRepository) Create(ctx context.Context, token model.RevokedToken) error {
	query := `INSERT INTO revoked_tokens (jti, account_id, expires_at) VALUES ($1, $2, $3)
			  ON CONFLICT (jti) DO NOTHING`

	if _, err := r.db.Exec(ctx, query, token.JTI, token.AccountID, token.ExpiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (r *RevokedTokenRepository) Exists(ctx context.Context, jti string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE jti = $1)`, jti).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}
	return exists, nil
}

func (r *RevokedTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM revoked_tokens WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
