package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ewaste-kiosk-backend/internal/domain/kiosk"
	"github.com/ewaste-kiosk-backend/internal/platform/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// KioskRepository implements the kiosk.Repository interface for PostgreSQL
type KioskRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewKioskRepository creates a new PostgreSQL kiosk repository
func NewKioskRepository(logger *slog.Logger, db *persistence.PostgresDB) kiosk.Repository {
	return &KioskRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// NewKioskRepositoryWithQuerier creates a repository over an explicit querier
func NewKioskRepositoryWithQuerier(logger *slog.Logger, q persistence.Querier) kiosk.Repository {
	return &KioskRepository{
		querier: q,
		logger:  logger,
	}
}

const kioskColumns = `id, code, location, latitude, longitude, description, situation, status,
		fill_current, fill_max, open_time, close_time, version, created_at, updated_at`

// Create stores a new kiosk. A unique-constraint violation on code maps to
// ErrDuplicateCode.
func (r *KioskRepository) Create(ctx context.Context, k *kiosk.Kiosk) error {
	query := `
		INSERT INTO kiosks (` + kioskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.querier.Exec(ctx, query,
		k.ID, k.Code, k.Location, k.Latitude, k.Longitude, k.Description,
		string(k.Situation), string(k.Status),
		k.FillCurrent, k.FillMax, k.OpenTime, k.CloseTime,
		k.Version, k.CreatedAt, k.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return kiosk.ErrDuplicateCode{Code: k.Code}
		}
		r.logger.Error("Failed to create kiosk", "code", k.Code, "error", err)
		return fmt.Errorf("failed to create kiosk: %w", err)
	}

	return nil
}

// GetByID retrieves a kiosk by its ID
func (r *KioskRepository) GetByID(ctx context.Context, id uuid.UUID) (*kiosk.Kiosk, error) {
	query := `SELECT ` + kioskColumns + ` FROM kiosks WHERE id = $1`

	k, err := r.scanOne(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, kiosk.ErrKioskNotFound{KioskID: id}
		}
		r.logger.Error("Failed to get kiosk", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get kiosk: %w", err)
	}

	return k, nil
}

// GetByCode retrieves a kiosk by its unique code
func (r *KioskRepository) GetByCode(ctx context.Context, code string) (*kiosk.Kiosk, error) {
	query := `SELECT ` + kioskColumns + ` FROM kiosks WHERE code = $1`

	k, err := r.scanOne(r.querier.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, kiosk.ErrKioskNotFound{Code: code}
		}
		r.logger.Error("Failed to get kiosk by code", "code", code, "error", err)
		return nil, fmt.Errorf("failed to get kiosk by code: %w", err)
	}

	return k, nil
}

// List retrieves all kiosks ordered by code
func (r *KioskRepository) List(ctx context.Context) ([]*kiosk.Kiosk, error) {
	query := `SELECT ` + kioskColumns + ` FROM kiosks ORDER BY code`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list kiosks", "error", err)
		return nil, fmt.Errorf("failed to list kiosks: %w", err)
	}
	defer rows.Close()

	var kiosks []*kiosk.Kiosk
	for rows.Next() {
		k, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan kiosk row: %w", err)
		}
		kiosks = append(kiosks, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read kiosk rows: %w", err)
	}

	return kiosks, nil
}

// Count counts all kiosks
func (r *KioskRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.querier.QueryRow(ctx, `SELECT COUNT(*) FROM kiosks`).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count kiosks", "error", err)
		return 0, fmt.Errorf("failed to count kiosks: %w", err)
	}
	return count, nil
}

// AnyFull reports whether at least one kiosk is currently full
func (r *KioskRepository) AnyFull(ctx context.Context) (bool, error) {
	var exists bool
	err := r.querier.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM kiosks WHERE situation = $1)`,
		string(kiosk.SituationFull),
	).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to check for full kiosks", "error", err)
		return false, fmt.Errorf("failed to check for full kiosks: %w", err)
	}
	return exists, nil
}

// Update persists the kiosk using optimistic locking on the previous
// version. Returns ErrConcurrentModification when the row changed underneath.
func (r *KioskRepository) Update(ctx context.Context, k *kiosk.Kiosk) error {
	query := `
		UPDATE kiosks
		SET code = $1, location = $2, latitude = $3, longitude = $4, description = $5,
			situation = $6, status = $7, fill_current = $8, fill_max = $9,
			open_time = $10, close_time = $11, version = $12, updated_at = $13
		WHERE id = $14 AND version = $15
	`

	result, err := r.querier.Exec(ctx, query,
		k.Code, k.Location, k.Latitude, k.Longitude, k.Description,
		string(k.Situation), string(k.Status),
		k.FillCurrent, k.FillMax, k.OpenTime, k.CloseTime,
		k.Version, k.UpdatedAt,
		k.ID,
		k.Version-1, // Check previous version for optimistic locking
	)
	if err != nil {
		r.logger.Error("Failed to update kiosk", "id", k.ID.String(), "error", err)
		return fmt.Errorf("failed to update kiosk: %w", err)
	}

	if result.RowsAffected() == 0 {
		return kiosk.ErrConcurrentModification{KioskID: k.ID}
	}

	return nil
}

// Delete removes a kiosk by ID
func (r *KioskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.querier.Exec(ctx, `DELETE FROM kiosks WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete kiosk", "id", id.String(), "error", err)
		return fmt.Errorf("failed to delete kiosk: %w", err)
	}

	if result.RowsAffected() == 0 {
		return kiosk.ErrKioskNotFound{KioskID: id}
	}

	return nil
}

func (r *KioskRepository) scanOne(row pgx.Row) (*kiosk.Kiosk, error) {
	var k kiosk.Kiosk
	var situation, status string
	err := row.Scan(
		&k.ID, &k.Code, &k.Location, &k.Latitude, &k.Longitude, &k.Description,
		&situation, &status,
		&k.FillCurrent, &k.FillMax, &k.OpenTime, &k.CloseTime,
		&k.Version, &k.CreatedAt, &k.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	k.Situation = kiosk.Situation(situation)
	k.Status = kiosk.OperationalStatus(status)
	return &k, nil
}
