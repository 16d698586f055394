package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ewaste-kiosk-backend/internal/domain/kiosk"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKiosk() *kiosk.Kiosk {
	now := time.Now()
	return &kiosk.Kiosk{
		ID:          uuid.New(),
		Code:        "QC-001",
		Location:    "Quezon City Hall",
		Latitude:    14.6507,
		Longitude:   121.0494,
		Description: "Main lobby",
		Situation:   kiosk.SituationAvailable,
		Status:      kiosk.StatusActive,
		FillCurrent: 0,
		FillMax:     100,
		OpenTime:    "08:00",
		CloseTime:   "17:00",
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestKioskRepository_Create(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &KioskRepository{querier: mock, logger: logger}
	k := testKiosk()

	query := `INSERT INTO kiosks`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(k.ID, k.Code, k.Location, k.Latitude, k.Longitude, k.Description,
				string(k.Situation), string(k.Status),
				k.FillCurrent, k.FillMax, k.OpenTime, k.CloseTime,
				k.Version, k.CreatedAt, k.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.Create(ctx, k)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate code", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(k.ID, k.Code, k.Location, k.Latitude, k.Longitude, k.Description,
				string(k.Situation), string(k.Status),
				k.FillCurrent, k.FillMax, k.OpenTime, k.CloseTime,
				k.Version, k.CreatedAt, k.UpdatedAt).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "kiosks_code_key"})

		err := repo.Create(ctx, k)
		var dupErr kiosk.ErrDuplicateCode
		require.ErrorAs(t, err, &dupErr)
		assert.Equal(t, k.Code, dupErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestKioskRepository_GetByCode(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &KioskRepository{querier: mock, logger: logger}
	k := testKiosk()

	query := `SELECT .+ FROM kiosks WHERE code = \$1`

	t.Run("success", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "code", "location", "latitude", "longitude", "description",
			"situation", "status", "fill_current", "fill_max", "open_time", "close_time",
			"version", "created_at", "updated_at"}).
			AddRow(k.ID, k.Code, k.Location, k.Latitude, k.Longitude, k.Description,
				string(k.Situation), string(k.Status),
				k.FillCurrent, k.FillMax, k.OpenTime, k.CloseTime,
				k.Version, k.CreatedAt, k.UpdatedAt)
		mock.ExpectQuery(query).WithArgs(k.Code).WillReturnRows(rows)

		got, err := repo.GetByCode(ctx, k.Code)
		assert.NoError(t, err)
		assert.Equal(t, k, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs("ZZ-999").WillReturnError(pgx.ErrNoRows)

		got, err := repo.GetByCode(ctx, "ZZ-999")
		assert.Nil(t, got)
		var notFoundErr kiosk.ErrKioskNotFound
		assert.ErrorAs(t, err, &notFoundErr)
		assert.Equal(t, "ZZ-999", notFoundErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestKioskRepository_Update(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &KioskRepository{querier: mock, logger: logger}
	k := testKiosk()
	k.Version = 2 // post-increment version, row must still hold version 1

	query := `UPDATE kiosks`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(k.Code, k.Location, k.Latitude, k.Longitude, k.Description,
				string(k.Situation), string(k.Status),
				k.FillCurrent, k.FillMax, k.OpenTime, k.CloseTime,
				k.Version, k.UpdatedAt, k.ID, k.Version-1).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.Update(ctx, k)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("version conflict", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(k.Code, k.Location, k.Latitude, k.Longitude, k.Description,
				string(k.Situation), string(k.Status),
				k.FillCurrent, k.FillMax, k.OpenTime, k.CloseTime,
				k.Version, k.UpdatedAt, k.ID, k.Version-1).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.Update(ctx, k)
		var conflictErr kiosk.ErrConcurrentModification
		require.ErrorAs(t, err, &conflictErr)
		assert.Equal(t, k.ID, conflictErr.KioskID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		expectedErr := errors.New("db error")
		mock.ExpectExec(query).
			WithArgs(k.Code, k.Location, k.Latitude, k.Longitude, k.Description,
				string(k.Situation), string(k.Status),
				k.FillCurrent, k.FillMax, k.OpenTime, k.CloseTime,
				k.Version, k.UpdatedAt, k.ID, k.Version-1).
			WillReturnError(expectedErr)

		err := repo.Update(ctx, k)
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestKioskRepository_Delete(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &KioskRepository{querier: mock, logger: logger}
	kioskID := uuid.New()

	query := `DELETE FROM kiosks WHERE id = \$1`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(kioskID).WillReturnResult(pgxmock.NewResult("DELETE", 1))

		err := repo.Delete(ctx, kioskID)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(kioskID).WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := repo.Delete(ctx, kioskID)
		var notFoundErr kiosk.ErrKioskNotFound
		assert.ErrorAs(t, err, &notFoundErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestKioskRepository_AnyFull(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &KioskRepository{querier: mock, logger: logger}

	query := `SELECT EXISTS \(SELECT 1 FROM kiosks WHERE situation = \$1\)`

	t.Run("one full kiosk", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"exists"}).AddRow(true)
		mock.ExpectQuery(query).WithArgs(string(kiosk.SituationFull)).WillReturnRows(rows)

		full, err := repo.AnyFull(ctx)
		assert.NoError(t, err)
		assert.True(t, full)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("none full", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"exists"}).AddRow(false)
		mock.ExpectQuery(query).WithArgs(string(kiosk.SituationFull)).WillReturnRows(rows)

		full, err := repo.AnyFull(ctx)
		assert.NoError(t, err)
		assert.False(t, full)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
