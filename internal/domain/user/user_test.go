package user

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("SuccessfulCreation", func(t *testing.T) {
		beforeCreation := time.Now()
		u, err := NewUser("Ana Reyes", "ana.reyes", "$2a$10$hash", RoleUser)
		afterCreation := time.Now()

		require.NoError(t, err)
		require.NotNil(t, u)

		assert.NotEqual(t, uuid.Nil, u.ID)
		assert.Equal(t, "Ana Reyes", u.FullName)
		assert.Equal(t, "ana.reyes", u.Username)
		assert.Equal(t, RoleUser, u.Role)
		assert.Equal(t, int64(0), u.Points, "New accounts start with a zero balance")
		assert.WithinDuration(t, beforeCreation, u.CreatedAt, afterCreation.Sub(beforeCreation)+time.Millisecond)
	})

	t.Run("AdminRole", func(t *testing.T) {
		u, err := NewUser("Site Operator", "operator", "hash", RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, u.Role)
	})

	t.Run("EmptyFullName", func(t *testing.T) {
		u, err := NewUser("", "ana.reyes", "hash", RoleUser)
		assert.Nil(t, u)
		assert.ErrorIs(t, err, ErrEmptyFullName)
	})

	t.Run("EmptyUsername", func(t *testing.T) {
		u, err := NewUser("Ana Reyes", "", "hash", RoleUser)
		assert.Nil(t, u)
		assert.ErrorIs(t, err, ErrEmptyUsername)
	})

	t.Run("EmptyPasswordHash", func(t *testing.T) {
		u, err := NewUser("Ana Reyes", "ana.reyes", "", RoleUser)
		assert.Nil(t, u)
		assert.ErrorIs(t, err, ErrEmptyPasswordHash)
	})

	t.Run("UnknownRole", func(t *testing.T) {
		u, err := NewUser("Ana Reyes", "ana.reyes", "hash", Role("superuser"))
		assert.Nil(t, u)
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}
