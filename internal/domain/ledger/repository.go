package ledger

import (
	"context"

	"github.com/google/uuid"
)

// Repository manages ledger entry persistence. Entries are append-only;
// there are no update or delete operations.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	GetByEntryID(ctx context.Context, entryID uuid.UUID) (*Entry, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Entry, error)
	CountByOwnerID(ctx context.Context, ownerID uuid.UUID) (int64, error)
	GetByKind(ctx context.Context, kind Kind, limit, offset int) ([]*Entry, error)
	CountByKind(ctx context.Context, kind Kind) (int64, error)

	// CountByCategory groups earn entries by item category, most common first
	CountByCategory(ctx context.Context) ([]CategoryCount, error)

	// CountByOwnerCategory is CountByCategory restricted to one owner
	CountByOwnerCategory(ctx context.Context, ownerID uuid.UUID) ([]CategoryCount, error)

	// SummarizeOwner folds an owner's entries into totals. DeltaSum is the
	// authoritative balance the reconciler compares against.
	SummarizeOwner(ctx context.Context, ownerID uuid.UUID) (*OwnerSummary, error)
}

// ErrEntryNotFound indicates missing ledger entry
type ErrEntryNotFound struct {
	EntryID uuid.UUID
}

func (e ErrEntryNotFound) Error() string {
	return "ledger entry not found: " + e.EntryID.String()
}

// Is implements the errors.Is interface for ErrEntryNotFound
func (e ErrEntryNotFound) Is(target error) bool {
	t, ok := target.(ErrEntryNotFound)
	if !ok {
		return false
	}
	// If the target EntryID is empty, consider it a match for any ErrEntryNotFound
	if t.EntryID == uuid.Nil {
		return true
	}
	return e.EntryID == t.EntryID
}

// ErrDuplicateEntry indicates entry ID uniqueness violation
type ErrDuplicateEntry struct {
	EntryID uuid.UUID
}

func (e ErrDuplicateEntry) Error() string {
	return "duplicate ledger entry: " + e.EntryID.String()
}

// Is implements the errors.Is interface for ErrDuplicateEntry
func (e ErrDuplicateEntry) Is(target error) bool {
	t, ok := target.(ErrDuplicateEntry)
	if !ok {
		return false
	}
	if t.EntryID == uuid.Nil {
		return true
	}
	return e.EntryID == t.EntryID
}
