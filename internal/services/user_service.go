package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fardinbaf/scamguard-backend/internal/identity"
	"github.com/fardinbaf/scamguard-backend/internal/models"
	"github.com/fardinbaf/scamguard-backend/internal/policy"
	"github.com/fardinbaf/scamguard-backend/internal/store"
	"github.com/google/uuid"
)

// UserService covers the admin user-management panel: listing profiles and
// toggling the admin/ban flags. An admin can never change their own flags;
// that keeps the last admin from locking the instance out.
type UserService struct {
	users store.UserStore
}

func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context, actor *identity.Identity) ([]models.User, error) {
	if err := policy.CanManageUsers(actor); err != nil {
		return nil, err
	}
	users, err := s.users.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return users, nil
}

func (s *UserService) SetAdmin(ctx context.Context, actor *identity.Identity, target uuid.UUID, isAdmin bool) (*models.User, error) {
	user, err := s.editable(ctx, actor, target)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin == isAdmin {
		return user, nil
	}
	user.IsAdmin = isAdmin
	if err := s.users.SaveProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	slog.Info("user role changed", "user_id", target.String(),
		"is_admin", isAdmin, "admin", actor.Identifier)
	return user, nil
}

func (s *UserService) SetBanned(ctx context.Context, actor *identity.Identity, target uuid.UUID, isBanned bool) (*models.User, error) {
	user, err := s.editable(ctx, actor, target)
	if err != nil {
		return nil, err
	}
	if user.IsBanned == isBanned {
		return user, nil
	}
	user.IsBanned = isBanned
	if err := s.users.SaveProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	slog.Info("user ban status changed", "user_id", target.String(),
		"is_banned", isBanned, "admin", actor.Identifier)
	return user, nil
}

// Remove is the admin "delete user" action. True deletion is an out-of-band
// operation against the identity provider; here banning is the safe,
// reversible substitute.
func (s *UserService) Remove(ctx context.Context, actor *identity.Identity, target uuid.UUID) error {
	_, err := s.SetBanned(ctx, actor, target, true)
	return err
}

func (s *UserService) editable(ctx context.Context, actor *identity.Identity, target uuid.UUID) (*models.User, error) {
	if err := policy.CanEditUserFlags(actor, target); err != nil {
		return nil, err
	}
	user, err := s.users.ProfileByID(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("lookup profile: %w", err)
	}
	if user == nil {
		return nil, policy.ErrNotFound
	}
	return user, nil
}
