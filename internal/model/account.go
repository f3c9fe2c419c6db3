package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountStore defines persistence operations for accounts.
type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	// CreateWithCredential stores the account and its credential atomically.
	CreateWithCredential(ctx context.Context, account Account, credential Credential) (Account, error)
	Update(ctx context.Context, account Account) (Account, error)
}

// CredentialStore defines lookup operations for credentials.
type CredentialStore interface {
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (Credential, error)
}

// Account represents a registered user.
type Account struct {
	ID        uuid.UUID
	Email     string
	Profile   Profile
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile holds the user-editable account fields.
type Profile struct {
	Name       string
	Mobile     string
	Address    string
	Gender     string
	ProfilePic string
}

// Credential holds the password digest of an account.
type Credential struct {
	AccountID    uuid.UUID
	PasswordHash string
	CreatedAt    time.Time
}
