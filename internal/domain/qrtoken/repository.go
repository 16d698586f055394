package qrtoken

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository manages single-use token persistence
type Repository interface {
	Create(ctx context.Context, token *Token) error
	GetByTokenID(ctx context.Context, tokenID uuid.UUID) (*Token, error)
	GetByHash(ctx context.Context, hash string) (*Token, error)

	// Consume performs the atomic claim: it transitions used from false to
	// true, stamping used_at and used_by, in a single compare-and-set
	// against the store. Exactly one of any set of concurrent callers for
	// the same hash receives the token; the rest receive
	// ErrTokenAlreadyUsed carrying the original consumption time, or
	// ErrTokenNotFound if no such token exists.
	Consume(ctx context.Context, hash string, usedBy uuid.UUID) (*Token, error)
}

// ErrTokenNotFound indicates missing token
type ErrTokenNotFound struct {
	Hash string
}

func (e ErrTokenNotFound) Error() string {
	return "qr token not found: " + e.Hash
}

// Is implements the errors.Is interface for ErrTokenNotFound
func (e ErrTokenNotFound) Is(target error) bool {
	t, ok := target.(ErrTokenNotFound)
	if !ok {
		return false
	}
	if t.Hash == "" {
		return true
	}
	return e.Hash == t.Hash
}

// ErrTokenAlreadyUsed indicates a replayed consumption attempt. UsedAt is
// the original consumption time so callers can distinguish their own retry
// from a contested token.
type ErrTokenAlreadyUsed struct {
	Hash   string
	UsedAt time.Time
}

func (e ErrTokenAlreadyUsed) Error() string {
	return "qr token already used: " + e.Hash
}

// Is implements the errors.Is interface for ErrTokenAlreadyUsed
func (e ErrTokenAlreadyUsed) Is(target error) bool {
	t, ok := target.(ErrTokenAlreadyUsed)
	if !ok {
		return false
	}
	if t.Hash == "" {
		return true
	}
	return e.Hash == t.Hash
}

// ErrDuplicateToken indicates hash uniqueness violation at issuance
type ErrDuplicateToken struct {
	Hash string
}

func (e ErrDuplicateToken) Error() string {
	return "qr token already exists: " + e.Hash
}
