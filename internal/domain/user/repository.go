package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines user persistence operations
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	ListByRole(ctx context.Context, role Role, limit, offset int) ([]*User, error)
	CountByRole(ctx context.Context, role Role) (int64, error)

	// AddPoints applies a signed delta atomically: points = points + delta.
	// Concurrent earns against the same account serialize on the row update.
	AddPoints(ctx context.Context, id uuid.UUID, delta int64) error

	// DeductPoints applies a conditional decrement that only succeeds while
	// points >= amount. Returns ErrInsufficientPoints when the guard fails,
	// so the balance can never go negative.
	DeductPoints(ctx context.Context, id uuid.UUID, amount int64) error

	// SetPoints overwrites the balance outright. Reserved for the
	// reconciliation pass that repairs drift against the ledger.
	SetPoints(ctx context.Context, id uuid.UUID, points int64) error
}

// ErrUserNotFound indicates missing account
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e ErrUserNotFound) Error() string {
	return "user not found: " + e.UserID.String()
}

// Is implements the errors.Is interface for ErrUserNotFound
func (e ErrUserNotFound) Is(target error) bool {
	t, ok := target.(ErrUserNotFound)
	if !ok {
		return false
	}
	if t.UserID == uuid.Nil {
		return true
	}
	return e.UserID == t.UserID
}

// ErrDuplicateUsername indicates username uniqueness violation
type ErrDuplicateUsername struct {
	Username string
}

func (e ErrDuplicateUsername) Error() string {
	return "user with username already exists: " + e.Username
}

// ErrInsufficientPoints indicates a redemption exceeding the current balance
type ErrInsufficientPoints struct {
	UserID uuid.UUID
	Have   int64
	Need   int64
}

func (e ErrInsufficientPoints) Error() string {
	return "insufficient points for user " + e.UserID.String()
}

// Is implements the errors.Is interface for ErrInsufficientPoints
func (e ErrInsufficientPoints) Is(target error) bool {
	t, ok := target.(ErrInsufficientPoints)
	if !ok {
		return false
	}
	if t.UserID == uuid.Nil {
		return true
	}
	return e.UserID == t.UserID
}
