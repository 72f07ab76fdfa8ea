package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/slayscreens/showdesk/internal/models"
	"github.com/slayscreens/showdesk/internal/store"
)

func TestUsersCreate(t *testing.T) {
	cat, _ := newTestCatalog(t)
	ctx := context.Background()

	created, err := cat.Users.Create(ctx, models.User{
		Name:  "Priya Sharma",
		Email: "priya@example.com",
		Phone: "+91 98765 43210",
		Role:  models.RoleUser,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, models.StatusActive, created.Status)
	assert.NotEmpty(t, created.CreatedAt)

	// No plaintext in storage; the default password must verify.
	assert.NotEqual(t, models.DefaultUserPassword, created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte(models.DefaultUserPassword)))

	t.Run("ExplicitPassword", func(t *testing.T) {
		created, err := cat.Users.Create(ctx, models.User{
			Name:     "Rahul Verma",
			Email:    "rahul@example.com",
			Password: "s3cret",
		})
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("s3cret")))
	})
}

func TestUsersUpdate(t *testing.T) {
	cat, _ := newTestCatalog(t)
	ctx := context.Background()

	created, err := cat.Users.Create(ctx, models.User{Name: "Priya", Email: "priya@example.com"})
	require.NoError(t, err)

	t.Run("PatchKeepsHash", func(t *testing.T) {
		updated, err := cat.Users.Update(ctx, created.ID, map[string]any{"phone": "+91 11111 22222"})
		require.NoError(t, err)
		assert.Equal(t, "+91 11111 22222", updated.Phone)
		assert.Equal(t, created.Password, updated.Password)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	})

	t.Run("NewPasswordIsRehashed", func(t *testing.T) {
		updated, err := cat.Users.Update(ctx, created.ID, map[string]any{"password": "changed"})
		require.NoError(t, err)
		assert.NotEqual(t, created.Password, updated.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("changed")))
	})

	t.Run("EmptyPasswordIsIgnored", func(t *testing.T) {
		before, err := cat.Users.Get(ctx, created.ID)
		require.NoError(t, err)

		updated, err := cat.Users.Update(ctx, created.ID, map[string]any{"password": "", "status": models.StatusInactive})
		require.NoError(t, err)
		assert.Equal(t, before.Password, updated.Password)
		assert.Equal(t, models.StatusInactive, updated.Status)
	})
}

func TestUsersDelete(t *testing.T) {
	cat, _ := newTestCatalog(t)
	ctx := context.Background()

	admin, err := cat.Users.FindByEmail(ctx, "admin@slayscreens.com")
	require.NoError(t, err)

	other, err := cat.Users.Create(ctx, models.User{Name: "Other", Email: "other@example.com"})
	require.NoError(t, err)

	t.Run("SelfDeleteRefused", func(t *testing.T) {
		err := cat.Users.Delete(ctx, admin.ID, "Admin@SlayScreens.com")
		assert.ErrorIs(t, err, store.ErrSelfDelete)
		assert.ErrorIs(t, err, store.ErrValidation)

		// The collection must be unchanged.
		_, err = cat.Users.Get(ctx, admin.ID)
		assert.NoError(t, err)
	})

	t.Run("OtherAccountDeleted", func(t *testing.T) {
		require.NoError(t, cat.Users.Delete(ctx, other.ID, admin.Email))

		_, err := cat.Users.Get(ctx, other.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("MissingUser", func(t *testing.T) {
		err := cat.Users.Delete(ctx, 424242, admin.Email)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestUsersFindByEmail(t *testing.T) {
	cat, _ := newTestCatalog(t)
	ctx := context.Background()

	user, err := cat.Users.FindByEmail(ctx, "ADMIN@slayscreens.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	_, err = cat.Users.FindByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
