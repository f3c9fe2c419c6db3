// Package memory keeps every store in process memory. It backs the memory
// database driver and the end-to-end tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/saloonbook/saloon-server/internal/model"
)

var (
	_ model.AccountStore    = (*AccountRepository)(nil)
	_ model.CredentialStore = (*AccountRepository)(nil)
)

type AccountRepository struct {
	mu          sync.RWMutex
	accounts    map[uuid.UUID]model.Account
	byEmail     map[string]uuid.UUID
	credentials map[uuid.UUID]model.Credential
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts:    make(map[uuid.UUID]model.Account),
		byEmail:     make(map[string]uuid.UUID),
		credentials: make(map[uuid.UUID]model.Credential),
	}
}

func (r *AccountRepository) GetByEmail(_ context.Context, email string) (model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	return r.accounts[id], nil
}

func (r *AccountRepository) GetByID(_ context.Context, id uuid.UUID) (model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	return a, nil
}

// CreateWithCredential checks and inserts under one lock, so two
// registrations for the same email cannot both succeed.
func (r *AccountRepository) CreateWithCredential(_ context.Context, account model.Account, credential model.Credential) (model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[account.Email]; ok {
		return model.Account{}, model.ErrAlreadyExists
	}
	if _, ok := r.accounts[account.ID]; ok {
		return model.Account{}, model.ErrAlreadyExists
	}

	credential.AccountID = account.ID
	r.accounts[account.ID] = account
	r.byEmail[account.Email] = account.ID
	r.credentials[account.ID] = credential
	return account, nil
}

// Update replaces the profile of an existing account. Email and creation
// time are kept.
func (r *AccountRepository) Update(_ context.Context, account model.Account) (model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.accounts[account.ID]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	existing.Profile = account.Profile
	existing.UpdatedAt = account.UpdatedAt
	r.accounts[account.ID] = existing
	return existing, nil
}

func (r *AccountRepository) GetByAccountID(_ context.Context, accountID uuid.UUID) (model.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.credentials[accountID]
	if !ok {
		return model.Credential{}, model.ErrNotFound
	}
	return c, nil
}
