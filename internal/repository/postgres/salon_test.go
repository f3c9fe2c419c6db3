package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saloonbook/saloon-server/internal/model"
)

var salonCols = []string{"id", "owner_id", "name", "lat", "lng", "services", "pictures", "version", "created_at", "updated_at"}

func salonRow(s model.Salon) []any {
	return []any{s.ID, s.OwnerID, s.Name, s.Location.Lat, s.Location.Lng, s.Services, s.Pictures, s.Version, s.CreatedAt, s.UpdatedAt}
}

func testSalon() model.Salon {
	now := time.Now()
	return model.Salon{
		ID:        uuid.New(),
		OwnerID:   uuid.New(),
		Name:      "Cuts",
		Location:  model.Location{Lat: 1.5, Lng: 2},
		Services:  []string{"cut"},
		Pictures:  []string{"p1"},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSalonRepository_Create(t *testing.T) {
	s := testSalon()

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "created",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO salons`).
					WithArgs(s.ID, s.OwnerID, s.Name, 1.5, 2.0, s.Services, s.Pictures, s.CreatedAt, s.UpdatedAt).
					WillReturnRows(pgxmock.NewRows(salonCols).AddRow(salonRow(s)...))
			},
		},
		{
			name: "owner missing",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO salons`).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
			},
			wantErr: model.ErrNotFound,
		},
		{
			name: "duplicate id",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO salons`).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
			},
			wantErr: model.ErrAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)

			got, err := NewSalonRepository(mock).Create(context.Background(), s)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, s, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSalonRepository_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := testSalon()
	mock.ExpectQuery(`SELECT .+ FROM salons WHERE id = \$1`).
		WithArgs(s.ID).
		WillReturnRows(pgxmock.NewRows(salonCols).AddRow(salonRow(s)...))
	mock.ExpectQuery(`SELECT .+ FROM salons WHERE id = \$1`).
		WithArgs(s.ID).
		WillReturnRows(pgxmock.NewRows(salonCols))

	repo := NewSalonRepository(mock)

	got, err := repo.GetByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	_, err = repo.GetByID(context.Background(), s.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSalonRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	first, second := testSalon(), testSalon()
	mock.ExpectQuery(`SELECT .+ FROM salons ORDER BY created_at`).
		WillReturnRows(pgxmock.NewRows(salonCols).AddRow(salonRow(first)...).AddRow(salonRow(second)...))
	mock.ExpectQuery(`SELECT .+ FROM salons ORDER BY created_at`).
		WillReturnRows(pgxmock.NewRows(salonCols))

	repo := NewSalonRepository(mock)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Salon{first, second}, got)

	got, err = repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSalonRepository_Replace(t *testing.T) {
	s := testSalon()
	updated := s
	updated.Name = "New"
	updated.Version = 2
	v1 := int64(1)

	tests := []struct {
		name      string
		expected  *int64
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name:     "replaced without version",
			expected: nil,
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`UPDATE salons`).
					WithArgs(s.ID, s.OwnerID, "New", 1.5, 2.0, s.Services, s.Pictures, pgxmock.AnyArg(), (*int64)(nil)).
					WillReturnRows(pgxmock.NewRows(salonCols).AddRow(salonRow(updated)...))
			},
		},
		{
			name:     "replaced at expected version",
			expected: &v1,
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`UPDATE salons`).
					WithArgs(s.ID, s.OwnerID, "New", 1.5, 2.0, s.Services, s.Pictures, pgxmock.AnyArg(), &v1).
					WillReturnRows(pgxmock.NewRows(salonCols).AddRow(salonRow(updated)...))
			},
		},
		{
			name:     "missing without version",
			expected: nil,
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`UPDATE salons`).
					WillReturnRows(pgxmock.NewRows(salonCols))
			},
			wantErr: model.ErrNotFound,
		},
		{
			name:     "stale version",
			expected: &v1,
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`UPDATE salons`).
					WillReturnRows(pgxmock.NewRows(salonCols))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs(s.ID, s.OwnerID).
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
			},
			wantErr: model.ErrVersionMismatch,
		},
		{
			name:     "missing with version",
			expected: &v1,
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`UPDATE salons`).
					WillReturnRows(pgxmock.NewRows(salonCols))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs(s.ID, s.OwnerID).
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
			},
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)

			in := s
			in.Name = "New"
			got, err := NewSalonRepository(mock).Replace(context.Background(), in, tt.expected)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(2), got.Version)
				assert.Equal(t, "New", got.Name)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSalonRepository_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id, owner := uuid.New(), uuid.New()
	mock.ExpectExec(`DELETE FROM salons WHERE id = \$1 AND owner_id = \$2`).
		WithArgs(id, owner).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM salons WHERE id = \$1 AND owner_id = \$2`).
		WithArgs(id, owner).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewSalonRepository(mock)

	require.NoError(t, repo.Delete(context.Background(), id, owner))
	assert.ErrorIs(t, repo.Delete(context.Background(), id, owner), model.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
