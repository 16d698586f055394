package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ewaste-kiosk-backend/internal/domain/reward"
	"github.com/ewaste-kiosk-backend/internal/platform/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// RewardRepository implements the reward.Repository interface for PostgreSQL
type RewardRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewRewardRepository creates a new PostgreSQL reward repository
func NewRewardRepository(logger *slog.Logger, db *persistence.PostgresDB) reward.Repository {
	return &RewardRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// NewRewardRepositoryWithQuerier creates a repository over an explicit querier
func NewRewardRepositoryWithQuerier(logger *slog.Logger, q persistence.Querier) reward.Repository {
	return &RewardRepository{
		querier: q,
		logger:  logger,
	}
}

// GetByID retrieves an active reward by its ID. Inactive rewards are not
// redeemable and report as not found.
func (r *RewardRepository) GetByID(ctx context.Context, id uuid.UUID) (*reward.Reward, error) {
	query := `
		SELECT id, name, method, cost_points, value_php, active, created_at
		FROM rewards
		WHERE id = $1 AND active = TRUE
	`

	var rw reward.Reward
	var method string
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&rw.ID, &rw.Name, &method, &rw.CostPoints, &rw.ValuePHP, &rw.Active, &rw.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, reward.ErrRewardNotFound{RewardID: id}
		}
		r.logger.Error("Failed to get reward", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get reward: %w", err)
	}
	rw.Method = reward.Method(method)

	return &rw, nil
}

// ListActive retrieves the redeemable catalog ordered by cost
func (r *RewardRepository) ListActive(ctx context.Context) ([]*reward.Reward, error) {
	query := `
		SELECT id, name, method, cost_points, value_php, active, created_at
		FROM rewards
		WHERE active = TRUE
		ORDER BY cost_points
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list rewards", "error", err)
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}
	defer rows.Close()

	var rewards []*reward.Reward
	for rows.Next() {
		var rw reward.Reward
		var method string
		if err := rows.Scan(&rw.ID, &rw.Name, &method, &rw.CostPoints, &rw.ValuePHP, &rw.Active, &rw.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reward row: %w", err)
		}
		rw.Method = reward.Method(method)
		rewards = append(rewards, &rw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reward rows: %w", err)
	}

	return rewards, nil
}

// PointsForCategory resolves the authoritative point value for a category.
// Unknown categories earn 0 points; the scan is still recorded.
func (r *RewardRepository) PointsForCategory(ctx context.Context, category string) (int64, error) {
	var points int64
	err := r.querier.QueryRow(ctx,
		`SELECT points FROM category_points WHERE category = $1`,
		category,
	).Scan(&points)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		r.logger.Error("Failed to resolve category points", "category", category, "error", err)
		return 0, fmt.Errorf("failed to resolve category points: %w", err)
	}
	return points, nil
}
