package kiosk

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines kiosk persistence operations
type Repository interface {
	Create(ctx context.Context, k *Kiosk) error
	GetByID(ctx context.Context, id uuid.UUID) (*Kiosk, error)
	GetByCode(ctx context.Context, code string) (*Kiosk, error)
	List(ctx context.Context) ([]*Kiosk, error)
	Count(ctx context.Context) (int64, error)
	AnyFull(ctx context.Context) (bool, error)

	// Update persists the kiosk conditionally on its previous version.
	// Returns ErrConcurrentModification when the row changed underneath,
	// in which case the caller reloads and retries.
	Update(ctx context.Context, k *Kiosk) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ErrKioskNotFound indicates missing kiosk
type ErrKioskNotFound struct {
	KioskID uuid.UUID
	Code    string
}

func (e ErrKioskNotFound) Error() string {
	if e.Code != "" {
		return "kiosk not found: " + e.Code
	}
	return "kiosk not found: " + e.KioskID.String()
}

// Is implements the errors.Is interface for ErrKioskNotFound
func (e ErrKioskNotFound) Is(target error) bool {
	t, ok := target.(ErrKioskNotFound)
	if !ok {
		return false
	}
	if t.KioskID == uuid.Nil && t.Code == "" {
		return true
	}
	return e.KioskID == t.KioskID && e.Code == t.Code
}

// ErrDuplicateCode indicates kiosk code uniqueness violation
type ErrDuplicateCode struct {
	Code string
}

func (e ErrDuplicateCode) Error() string {
	return "kiosk with code already exists: " + e.Code
}

// ErrConcurrentModification indicates optimistic lock failure
type ErrConcurrentModification struct {
	KioskID uuid.UUID
}

func (e ErrConcurrentModification) Error() string {
	return "concurrent modification detected for kiosk: " + e.KioskID.String()
}

// Is implements the errors.Is interface for ErrConcurrentModification
func (e ErrConcurrentModification) Is(target error) bool {
	t, ok := target.(ErrConcurrentModification)
	if !ok {
		return false
	}
	if t.KioskID == uuid.Nil {
		return true
	}
	return e.KioskID == t.KioskID
}
