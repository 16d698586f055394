package reward

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines reward catalog and category point lookups
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Reward, error)
	ListActive(ctx context.Context) ([]*Reward, error)

	// PointsForCategory resolves the server-side authoritative point value
	// for an item category. Unknown categories yield 0, not an error;
	// client-claimed point values are never trusted.
	PointsForCategory(ctx context.Context, category string) (int64, error)
}

// ErrRewardNotFound indicates missing or inactive reward
type ErrRewardNotFound struct {
	RewardID uuid.UUID
}

func (e ErrRewardNotFound) Error() string {
	return "reward not found: " + e.RewardID.String()
}

// Is implements the errors.Is interface for ErrRewardNotFound
func (e ErrRewardNotFound) Is(target error) bool {
	t, ok := target.(ErrRewardNotFound)
	if !ok {
		return false
	}
	if t.RewardID == uuid.Nil {
		return true
	}
	return e.RewardID == t.RewardID
}
