package store_test

import (
	"context"
	"testing"

	"github.com/sebaxchen/lookSocial/internal/model"
	"github.com/sebaxchen/lookSocial/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserStore(t *testing.T) (*store.UserStore, *memCache) {
	t.Helper()
	cache := newMemCache()
	return store.NewUserStore(context.Background(), cache, nil), cache
}

func TestUserStore_CreateNormalizesEmail(t *testing.T) {
	// Arrange
	s, _ := newUserStore(t)

	// Act
	user, err := s.Create(context.Background(), model.User{Email: "  Ana@Example.COM ", Name: "Ana"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestUserStore_CreateDuplicateEmail(t *testing.T) {
	// Arrange
	s, _ := newUserStore(t)
	ctx := context.Background()
	_, err := s.Create(ctx, model.User{Email: "taken@example.com"})
	require.NoError(t, err)

	// Act
	_, err = s.Create(ctx, model.User{Email: "TAKEN@example.com"})

	// Assert
	assert.ErrorIs(t, err, store.ErrEmailTaken)
}

func TestUserStore_FindByEmailIsCaseInsensitive(t *testing.T) {
	// Arrange
	s, _ := newUserStore(t)
	ctx := context.Background()
	created, _ := s.Create(ctx, model.User{Email: "bruno@example.com", Name: "Bruno"})

	// Act
	found, err := s.FindByEmail(ctx, "Bruno@Example.com")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestUserStore_GetByIDUnknown(t *testing.T) {
	s, _ := newUserStore(t)

	_, err := s.GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserStore_AccountsSurviveRestart(t *testing.T) {
	// Arrange
	cache := newMemCache()
	ctx := context.Background()
	s := store.NewUserStore(ctx, cache, nil)
	created, _ := s.Create(ctx, model.User{Email: "carla@example.com", HashedPassword: "hash"})

	// Act
	reloaded := store.NewUserStore(ctx, cache, nil)

	// Assert: the password hash round-trips through the cache.
	user, err := reloaded.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", user.HashedPassword)
}
