package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/exellar/payroll-backend-go/internal/domain/user"
	"github.com/exellar/payroll-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewUserRepository(setup.DB)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)

	created, err := repo.Create(ctx, user.User{
		Email:        "hr@example.com",
		PasswordHash: &hashStr,
		Role:         user.RoleHR,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, user.RoleHR, created.Role)

	t.Run("get by email is case-insensitive", func(t *testing.T) {
		got, err := repo.GetByEmail(ctx, "  HR@Example.com ")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		require.NotNil(t, got.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*got.PasswordHash), []byte("secret123")))
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := repo.Create(ctx, user.User{Email: "hr@example.com", Role: user.RoleEmployee})
		assert.ErrorIs(t, err, user.ErrUserEmailExists)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.GetByID(ctx, created.ID+100)
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("touch last login and link google", func(t *testing.T) {
		at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		require.NoError(t, repo.TouchLastLogin(ctx, created.ID, at))
		require.NoError(t, repo.LinkGoogleAccount(ctx, created.ID, "google-123"))

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got.LastLoginAt)
		assert.True(t, got.LastLoginAt.Equal(at))
		require.NotNil(t, got.GoogleID)
		assert.Equal(t, "google-123", *got.GoogleID)
	})
}
