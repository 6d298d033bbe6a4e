package services_test

import (
	"context"
	"testing"

	"github.com/fardinbaf/scamguard-backend/internal/identity"
	"github.com/fardinbaf/scamguard-backend/internal/models"
	"github.com/fardinbaf/scamguard-backend/internal/policy"
	"github.com/fardinbaf/scamguard-backend/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(fs *fakeStore, identifier string) *models.User {
	u := &models.User{ID: uuid.New(), Identifier: identifier, IsVerified: true}
	fs.users[u.ID] = u
	return u
}

func TestListUsers(t *testing.T) {
	fs := newFakeStore()
	svc := services.NewUserService(fs)
	ctx := context.Background()

	seedUser(fs, "one@example.com")
	seedUser(fs, "two@example.com")

	_, err := svc.List(ctx, nil)
	assert.ErrorIs(t, err, policy.ErrUnauthenticated)

	_, err = svc.List(ctx, memberIdentity())
	assert.ErrorIs(t, err, policy.ErrForbidden)

	users, err := svc.List(ctx, adminIdentity())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestSetAdminFlag(t *testing.T) {
	fs := newFakeStore()
	svc := services.NewUserService(fs)
	ctx := context.Background()
	admin := adminIdentity()

	target := seedUser(fs, "target@example.com")

	t.Run("non_admin_denied", func(t *testing.T) {
		_, err := svc.SetAdmin(ctx, memberIdentity(), target.ID, true)
		assert.ErrorIs(t, err, policy.ErrForbidden)
	})

	t.Run("missing_target", func(t *testing.T) {
		_, err := svc.SetAdmin(ctx, admin, uuid.New(), true)
		assert.ErrorIs(t, err, policy.ErrNotFound)
	})

	t.Run("promote_and_demote", func(t *testing.T) {
		user, err := svc.SetAdmin(ctx, admin, target.ID, true)
		require.NoError(t, err)
		assert.True(t, user.IsAdmin)
		assert.True(t, fs.users[target.ID].IsAdmin)

		user, err = svc.SetAdmin(ctx, admin, target.ID, false)
		require.NoError(t, err)
		assert.False(t, user.IsAdmin)
	})

	t.Run("idempotent_skips_write", func(t *testing.T) {
		saves := fs.profileSaves
		_, err := svc.SetAdmin(ctx, admin, target.ID, false)
		require.NoError(t, err)
		assert.Equal(t, saves, fs.profileSaves)
	})
}

func TestAdminCannotEditOwnFlags(t *testing.T) {
	fs := newFakeStore()
	svc := services.NewUserService(fs)
	ctx := context.Background()

	self := seedUser(fs, "self@example.com")
	self.IsAdmin = true
	actor := &identity.Identity{ID: self.ID, Identifier: self.Identifier, IsAdmin: true}

	_, err := svc.SetAdmin(ctx, actor, self.ID, false)
	assert.ErrorIs(t, err, policy.ErrForbidden)

	_, err = svc.SetBanned(ctx, actor, self.ID, true)
	assert.ErrorIs(t, err, policy.ErrForbidden)

	assert.ErrorIs(t, svc.Remove(ctx, actor, self.ID), policy.ErrForbidden)

	assert.True(t, fs.users[self.ID].IsAdmin)
	assert.False(t, fs.users[self.ID].IsBanned)
}

func TestBanAndRemove(t *testing.T) {
	fs := newFakeStore()
	svc := services.NewUserService(fs)
	ctx := context.Background()
	admin := adminIdentity()

	target := seedUser(fs, "spammer@example.com")

	user, err := svc.SetBanned(ctx, admin, target.ID, true)
	require.NoError(t, err)
	assert.True(t, user.IsBanned)

	// Bans are reversible.
	user, err = svc.SetBanned(ctx, admin, target.ID, false)
	require.NoError(t, err)
	assert.False(t, user.IsBanned)

	// Remove bans rather than deleting; the profile row survives so
	// authored reports and comments keep their author.
	require.NoError(t, svc.Remove(ctx, admin, target.ID))
	assert.True(t, fs.users[target.ID].IsBanned)
	assert.NotNil(t, fs.users[target.ID])
}
