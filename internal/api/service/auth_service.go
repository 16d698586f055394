package service

import (
	"context"
	"fmt"

	"github.com/ewaste-kiosk-backend/internal/auth"
	"github.com/ewaste-kiosk-backend/internal/domain/user"
)

// AuthServiceImpl implements the AuthService interface
type AuthServiceImpl struct {
	userRepo user.Repository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo user.Repository, hasher *auth.PasswordHasher, tokens *auth.TokenManager) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Register creates a user account and returns a signed session
func (s *AuthServiceImpl) Register(ctx context.Context, fullName, username, password string) (*user.User, *Session, error) {
	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, user.ErrDuplicateUsername{Username: username}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := user.NewUser(fullName, username, hash, user.RoleUser)
	if err != nil {
		return nil, nil, err
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, nil, err
	}

	session, err := s.issueSession(u)
	if err != nil {
		return nil, nil, err
	}

	return u, session, nil
}

// Login verifies credentials and returns a signed session. Unknown usernames
// and wrong passwords both map to ErrInvalidCredentials.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*user.User, *Session, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if u == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := s.hasher.Verify(password, u.PasswordHash); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.issueSession(u)
	if err != nil {
		return nil, nil, err
	}

	return u, session, nil
}

func (s *AuthServiceImpl) issueSession(u *user.User) (*Session, error) {
	token, expiresAt, err := s.tokens.Generate(u.ID, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	return &Session{Token: token, ExpiresAt: expiresAt}, nil
}
