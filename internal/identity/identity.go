package identity

import (
	"context"
	"log/slog"

	"github.com/fardinbaf/scamguard-backend/internal/models"
	"github.com/google/uuid"
)

// Identity is the resolved application-level caller: who they are and what
// flags govern their access. A nil *Identity means an anonymous caller.
type Identity struct {
	ID         uuid.UUID
	Identifier string
	IsAdmin    bool
	IsBanned   bool
	IsVerified bool
}

// Authenticated reports whether the identity counts as logged in for
// authorization purposes. A banned identity is treated as anonymous even
// though a session technically exists.
func (id *Identity) Authenticated() bool {
	return id != nil && !id.IsBanned
}

// ProfileStore is the slice of the persistent store the reconciler needs.
type ProfileStore interface {
	ProfileByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Reconciler turns raw session claims into an Identity.
type Reconciler struct {
	profiles ProfileStore
	// adminIdentifier is the designated admin contact string from config.
	// A profile matching it is always treated as admin, so the instance
	// stays administrable even if the role flag in the store is lost.
	adminIdentifier string
}

func NewReconciler(profiles ProfileStore, adminIdentifier string) *Reconciler {
	return &Reconciler{profiles: profiles, adminIdentifier: adminIdentifier}
}

// Resolve maps a session subject to an Identity. When the profile row is
// missing or unreachable (profile provisioning can lag session creation) it
// returns a degraded identity with no privileges rather than failing the
// request. The fallback is logged so operators can spot provisioning lag.
func (r *Reconciler) Resolve(ctx context.Context, userID uuid.UUID, identifier string) *Identity {
	profile, err := r.profiles.ProfileByID(ctx, userID)
	if err != nil || profile == nil {
		slog.Warn("profile lookup failed, using degraded identity",
			"user_id", userID.String(), "identifier", identifier, "error", err)
		return &Identity{ID: userID, Identifier: identifier}
	}

	id := &Identity{
		ID:         profile.ID,
		Identifier: profile.Identifier,
		IsAdmin:    profile.IsAdmin,
		IsBanned:   profile.IsBanned,
		IsVerified: profile.IsVerified,
	}
	if r.adminIdentifier != "" && profile.Identifier == r.adminIdentifier {
		id.IsAdmin = true
	}
	return id
}
