package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"nutricalc/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewUserRepository(pool, zerolog.Nop())

	user := &model.User{
		ID:           uuid.New(),
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	t.Run("Create", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, user))
	})

	t.Run("Duplicate email", func(t *testing.T) {
		dup := *user
		dup.ID = uuid.New()

		err := repo.Create(ctx, &dup)
		assert.True(t, errors.Is(err, model.ErrEmailTaken))
	})

	t.Run("GetByEmail", func(t *testing.T) {
		found, err := repo.GetByEmail(ctx, user.Email)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, user.PasswordHash, found.PasswordHash)
		assert.True(t, user.CreatedAt.Equal(found.CreatedAt))
	})

	t.Run("GetByEmail not found", func(t *testing.T) {
		found, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}
