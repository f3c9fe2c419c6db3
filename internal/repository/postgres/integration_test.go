//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/saloonbook/saloon-server/internal/model"
	repo "github.com/saloonbook/saloon-server/internal/repository/postgres"
	"github.com/saloonbook/saloon-server/internal/testutil"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "saloon_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/saloon_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func connect(t *testing.T) *repo.Connection {
	t.Helper()
	conn, err := repo.NewConnection(context.Background(), repo.ConnectionConfig{
		DSN:         dsn,
		Attempts:    10,
		Backoff:     200 * time.Millisecond,
		AutoMigrate: true,
	}, testutil.MakeNoopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestRepositories_CRUD(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)

	accounts := repo.NewAccountRepository(conn)
	salons := repo.NewSalonRepository(conn)
	revoked := repo.NewRevokedTokenRepository(conn)

	now := time.Now().UTC().Truncate(time.Microsecond)
	owner := model.Account{ID: uuid.New(), Email: "owner@example.com", Profile: model.Profile{Name: "Owner"}, CreatedAt: now, UpdatedAt: now}

	t.Run("account_repository", func(t *testing.T) {
		saved, err := accounts.CreateWithCredential(ctx, owner, model.Credential{AccountID: owner.ID, PasswordHash: "digest", CreatedAt: now})
		require.NoError(t, err)
		require.Equal(t, owner.ID, saved.ID)

		_, err = accounts.CreateWithCredential(ctx, model.Account{ID: uuid.New(), Email: owner.Email, CreatedAt: now, UpdatedAt: now},
			model.Credential{PasswordHash: "other", CreatedAt: now})
		require.ErrorIs(t, err, model.ErrAlreadyExists)

		byEmail, err := accounts.GetByEmail(ctx, owner.Email)
		require.NoError(t, err)
		require.Equal(t, owner.ID, byEmail.ID)

		cred, err := accounts.GetByAccountID(ctx, owner.ID)
		require.NoError(t, err)
		require.Equal(t, "digest", cred.PasswordHash)

		edited := byEmail
		edited.Profile.Mobile = "+1"
		edited.UpdatedAt = time.Now()
		updated, err := accounts.Update(ctx, edited)
		require.NoError(t, err)
		require.Equal(t, "+1", updated.Profile.Mobile)
	})

	t.Run("salon_repository", func(t *testing.T) {
		s := model.Salon{
			ID:        uuid.New(),
			OwnerID:   owner.ID,
			Name:      "Cuts",
			Location:  model.Location{Lat: 1.5, Lng: 2},
			Services:  []string{"cut"},
			Pictures:  []string{"p1"},
			CreatedAt: now,
			UpdatedAt: now,
		}
		saved, err := salons.Create(ctx, s)
		require.NoError(t, err)
		require.Equal(t, int64(1), saved.Version)

		_, err = salons.Create(ctx, model.Salon{ID: uuid.New(), OwnerID: uuid.New(), Name: "x", CreatedAt: now, UpdatedAt: now})
		require.ErrorIs(t, err, model.ErrNotFound)

		list, err := salons.List(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(list), 1)

		stale := int64(7)
		s.Name = "Renamed"
		_, err = salons.Replace(ctx, s, &stale)
		require.ErrorIs(t, err, model.ErrVersionMismatch)

		current := int64(1)
		replaced, err := salons.Replace(ctx, s, &current)
		require.NoError(t, err)
		require.Equal(t, int64(2), replaced.Version)
		require.Equal(t, "Renamed", replaced.Name)

		require.ErrorIs(t, salons.Delete(ctx, s.ID, uuid.New()), model.ErrNotFound)
		require.NoError(t, salons.Delete(ctx, s.ID, owner.ID))
		_, err = salons.GetByID(ctx, s.ID)
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("revoked_token_repository", func(t *testing.T) {
		live := model.RevokedToken{JTI: "live", AccountID: owner.ID, ExpiresAt: time.Now().Add(time.Hour)}
		dead := model.RevokedToken{JTI: "dead", AccountID: owner.ID, ExpiresAt: time.Now().Add(-time.Hour)}
		require.NoError(t, revoked.Create(ctx, live))
		require.NoError(t, revoked.Create(ctx, live))
		require.NoError(t, revoked.Create(ctx, dead))

		n, err := revoked.DeleteExpired(ctx, time.Now())
		require.NoError(t, err)
		require.Equal(t, int64(1), n)

		exists, err := revoked.Exists(ctx, "live")
		require.NoError(t, err)
		require.True(t, exists)

		exists, err = revoked.Exists(ctx, "dead")
		require.NoError(t, err)
		require.False(t, exists)
	})
}
