package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saloonbook/saloon-server/internal/model"
)

func TestAccountRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewAccountRepository()
	now := time.Now()
	a := model.Account{ID: uuid.New(), Email: "a@x.com", Profile: model.Profile{Name: "A"}, CreatedAt: now, UpdatedAt: now}

	saved, err := repo.CreateWithCredential(ctx, a, model.Credential{PasswordHash: "digest", CreatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, a, saved)

	_, err = repo.CreateWithCredential(ctx, model.Account{ID: uuid.New(), Email: "a@x.com"}, model.Credential{})
	assert.ErrorIs(t, err, model.ErrAlreadyExists)

	byEmail, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, byEmail.ID)

	_, err = repo.GetByEmail(ctx, "A@x.com")
	assert.ErrorIs(t, err, model.ErrNotFound)

	cred, err := repo.GetByAccountID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, cred.AccountID)
	assert.Equal(t, "digest", cred.PasswordHash)

	edit := a
	edit.Email = "changed@x.com"
	edit.Profile.Mobile = "+1"
	updated, err := repo.Update(ctx, edit)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", updated.Email)
	assert.Equal(t, "+1", updated.Profile.Mobile)

	_, err = repo.Update(ctx, model.Account{ID: uuid.New()})
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = repo.GetByAccountID(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestAccountRepository_ConcurrentRegistration(t *testing.T) {
	t.Parallel()

	repo := NewAccountRepository()
	var created atomic.Int32
	var wg sync.WaitGroup

	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.CreateWithCredential(context.Background(), model.Account{ID: uuid.New(), Email: "race@x.com"}, model.Credential{})
			if err == nil {
				created.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())
}
