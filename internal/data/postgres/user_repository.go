// Package postgres provides PostgreSQL implementations of the domain
// repositories. Balance mutations go through single-statement atomic
// updates; request handlers never read-modify-write the points column.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ewaste-kiosk-backend/internal/domain/user"
	"github.com/ewaste-kiosk-backend/internal/platform/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// UserRepository implements the user.Repository interface for PostgreSQL
type UserRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewUserRepository creates a new PostgreSQL user repository.
// It expects db.Pool() to satisfy persistence.Querier.
func NewUserRepository(logger *slog.Logger, db *persistence.PostgresDB) user.Repository {
	return &UserRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// NewUserRepositoryWithQuerier creates a repository over an explicit querier,
// used by tests and transactional callers.
func NewUserRepositoryWithQuerier(logger *slog.Logger, q persistence.Querier) user.Repository {
	return &UserRepository{
		querier: q,
		logger:  logger,
	}
}

// Create stores a new user. A unique-constraint violation on username maps
// to ErrDuplicateUsername.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, full_name, username, password_hash, role, points, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.querier.Exec(ctx, query,
		u.ID,
		u.FullName,
		u.Username,
		u.PasswordHash,
		string(u.Role),
		u.Points,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrDuplicateUsername{Username: u.Username}
		}
		r.logger.Error("Failed to create user", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by its ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `
		SELECT id, full_name, username, password_hash, role, points, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	u, err := r.scanOne(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound{UserID: id}
		}
		r.logger.Error("Failed to get user", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// GetByUsername retrieves a user by username. Returns nil, nil when no user
// exists so callers can branch on existence without unwrapping errors.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	query := `
		SELECT id, full_name, username, password_hash, role, points, created_at, updated_at
		FROM users
		WHERE username = $1
	`

	u, err := r.scanOne(r.querier.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get user by username", "username", username, "error", err)
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return u, nil
}

// ListByRole retrieves a page of users with the given role, newest first
func (r *UserRepository) ListByRole(ctx context.Context, role user.Role, limit, offset int) ([]*user.User, error) {
	query := `
		SELECT id, full_name, username, password_hash, role, points, created_at, updated_at
		FROM users
		WHERE role = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.querier.Query(ctx, query, string(role), limit, offset)
	if err != nil {
		r.logger.Error("Failed to list users", "role", string(role), "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		u, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user rows: %w", err)
	}

	return users, nil
}

// CountByRole counts users with the given role
func (r *UserRepository) CountByRole(ctx context.Context, role user.Role) (int64, error) {
	var count int64
	err := r.querier.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, string(role)).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count users", "role", string(role), "error", err)
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// AddPoints atomically applies a signed delta to the balance. The single
// UPDATE statement linearizes concurrent earns on the same account.
func (r *UserRepository) AddPoints(ctx context.Context, id uuid.UUID, delta int64) error {
	query := `
		UPDATE users
		SET points = points + $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.querier.Exec(ctx, query, delta, id)
	if err != nil {
		r.logger.Error("Failed to add points", "id", id.String(), "error", err)
		return fmt.Errorf("failed to add points: %w", err)
	}

	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound{UserID: id}
	}

	return nil
}

// DeductPoints applies the conditional decrement guarding against overdraw.
// The points >= amount predicate and the subtraction execute as one
// statement, so two concurrent redemptions can never both pass a stale
// balance check.
func (r *UserRepository) DeductPoints(ctx context.Context, id uuid.UUID, amount int64) error {
	query := `
		UPDATE users
		SET points = points - $1, updated_at = NOW()
		WHERE id = $2 AND points >= $1
	`

	result, err := r.querier.Exec(ctx, query, amount, id)
	if err != nil {
		r.logger.Error("Failed to deduct points", "id", id.String(), "error", err)
		return fmt.Errorf("failed to deduct points: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Either the user does not exist or the guard failed; fetch to
		// report which, with the current balance for the caller's message.
		u, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return getErr
		}
		return user.ErrInsufficientPoints{UserID: id, Have: u.Points, Need: amount}
	}

	return nil
}

// SetPoints rewrites the balance outright. Only the reconciler calls this.
func (r *UserRepository) SetPoints(ctx context.Context, id uuid.UUID, points int64) error {
	query := `
		UPDATE users
		SET points = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.querier.Exec(ctx, query, points, id)
	if err != nil {
		r.logger.Error("Failed to set points", "id", id.String(), "error", err)
		return fmt.Errorf("failed to set points: %w", err)
	}

	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound{UserID: id}
	}

	return nil
}

func (r *UserRepository) scanOne(row pgx.Row) (*user.User, error) {
	var u user.User
	var role string
	err := row.Scan(
		&u.ID,
		&u.FullName,
		&u.Username,
		&u.PasswordHash,
		&role,
		&u.Points,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Role = user.Role(role)
	return &u, nil
}
