package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/saloonbook/saloon-server/internal/model"
)

var (
	_ model.AccountStore    = (*AccountRepository)(nil)
	_ model.CredentialStore = (*AccountRepository)(nil)
)

const accountColumns = `id, email, name, mobile, address, gender, profile_pic, created_at, updated_at`

type AccountRepository struct {
	db DB
}

func NewAccountRepository(db DB) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) CreateWithCredential(ctx context.Context, account model.Account, credential model.Credential) (model.Account, error) {
	insertAccount := `INSERT INTO accounts (id, email, name, mobile, address, gender, profile_pic, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + accountColumns
	insertCredential := `INSERT INTO credentials (account_id, password_hash, created_at) VALUES ($1, $2, $3)`

	var saved model.Account
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		p := account.Profile
		var err error
		saved, err = scanAccount(tx.QueryRow(ctx, insertAccount,
			account.ID, account.Email, p.Name, p.Mobile, p.Address, p.Gender, p.ProfilePic,
			account.CreatedAt, account.UpdatedAt,
		))
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, insertCredential, saved.ID, credential.PasswordHash, credential.CreatedAt)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return model.Account{}, model.ErrAlreadyExists
		}
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return saved, nil
}

func (r *AccountRepository) Update(ctx context.Context, account model.Account) (model.Account, error) {
	query := `UPDATE accounts
			  SET name = $2, mobile = $3, address = $4, gender = $5, profile_pic = $6, updated_at = $7
			  WHERE id = $1
			  RETURNING ` + accountColumns

	p := account.Profile
	saved, err := scanAccount(r.db.QueryRow(ctx, query,
		account.ID, p.Name, p.Mobile, p.Address, p.Gender, p.ProfilePic, account.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to update account: %w", err)
	}

	return saved, nil
}

func (r *AccountRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (model.Credential, error) {
	query := `SELECT account_id, password_hash, created_at FROM credentials WHERE account_id = $1`

	var c model.Credential
	err := r.db.QueryRow(ctx, query, accountID).Scan(&c.AccountID, &c.PasswordHash, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Credential{}, model.ErrNotFound
		}
		return model.Credential{}, fmt.Errorf("failed to get credential: %w", err)
	}

	return c, nil
}

func scanAccount(row pgx.Row) (model.Account, error) {
	var a model.Account
	err := row.Scan(
		&a.ID, &a.Email, &a.Profile.Name, &a.Profile.Mobile, &a.Profile.Address,
		&a.Profile.Gender, &a.Profile.ProfilePic, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
