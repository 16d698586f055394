package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrEmptyFullName     = errors.New("full name cannot be empty")
	ErrEmptyUsername     = errors.New("username cannot be empty")
	ErrEmptyPasswordHash = errors.New("password hash cannot be empty")
	ErrInvalidRole       = errors.New("role must be user or admin")
)

// Role defines the access level of an account
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a kiosk program account. Points is the running balance
// mutated exclusively through atomic repository operations.
type User struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Points       int64     `json:"points"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser creates a new account with the given parameters
func NewUser(fullName, username, passwordHash string, role Role) (*User, error) {
	if fullName == "" {
		return nil, ErrEmptyFullName
	}
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if passwordHash == "" {
		return nil, ErrEmptyPasswordHash
	}
	if role != RoleUser && role != RoleAdmin {
		return nil, ErrInvalidRole
	}

	now := time.Now()
	return &User{
		ID:           uuid.New(),
		FullName:     fullName,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		Points:       0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// IsAdmin reports whether the account has administrative access
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
