// Package policy holds the pure access-control decisions for reports,
// comments, user management and the advertisement config. It has no I/O;
// callers enforce its results and map the sentinel errors to transport
// responses.
package policy

import (
	"errors"

	"github.com/fardinbaf/scamguard-backend/internal/identity"
	"github.com/fardinbaf/scamguard-backend/internal/models"
	"github.com/google/uuid"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("not permitted")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
)

// AllStatuses is the sentinel filter value meaning "no status constraint".
// Like the type/category sentinels it must never reach the store as a
// literal value.
const AllStatuses = "All Statuses"

func isAdmin(id *identity.Identity) bool {
	return id.Authenticated() && id.IsAdmin
}

// NarrowStatus resolves a requested status filter into the effective list of
// statuses the caller may see. A nil result means no constraint.
//
// Non-admins are always narrowed to Approved. An explicit non-Approved
// request by a non-admin is not honored: denied is returned true and the
// filter still narrows to Approved, so filter-guessing cannot reveal whether
// pending or rejected reports exist.
func NarrowStatus(id *identity.Identity, requested string) (statuses []string, denied bool, err error) {
	if requested != "" && requested != AllStatuses && !models.ValidStatus(requested) {
		return nil, false, ErrValidation
	}

	if isAdmin(id) {
		if requested == "" || requested == AllStatuses {
			return nil, false, nil
		}
		return []string{requested}, false, nil
	}

	if requested == "" || requested == AllStatuses || requested == models.StatusApproved {
		return []string{models.StatusApproved}, false, nil
	}
	return []string{models.StatusApproved}, true, nil
}

// CanViewReport gates a direct fetch by id. Non-approved reports are hidden
// from non-admins as NotFound so their existence does not leak.
func CanViewReport(id *identity.Identity, status string) error {
	if isAdmin(id) {
		return nil
	}
	if status == models.StatusApproved {
		return nil
	}
	return ErrNotFound
}

// CanCreateReport requires an authenticated caller.
func CanCreateReport(id *identity.Identity) error {
	if !id.Authenticated() {
		return ErrUnauthenticated
	}
	return nil
}

// CanComment requires an authenticated caller and an approved parent report.
func CanComment(id *identity.Identity, reportStatus string) error {
	if !id.Authenticated() {
		return ErrUnauthenticated
	}
	if reportStatus != models.StatusApproved {
		return ErrForbidden
	}
	return nil
}

// CanModerate gates status transitions and report deletion.
func CanModerate(id *identity.Identity) error {
	if isAdmin(id) {
		return nil
	}
	if id.Authenticated() {
		return ErrForbidden
	}
	return ErrUnauthenticated
}

// CanManageUsers gates role/ban toggles and the advertisement config.
func CanManageUsers(id *identity.Identity) error {
	return CanModerate(id)
}

// CanEditUserFlags additionally forbids an admin changing their own admin or
// ban flag. A different admin must do it, so the last admin cannot lock the
// instance out.
func CanEditUserFlags(actor *identity.Identity, target uuid.UUID) error {
	if err := CanManageUsers(actor); err != nil {
		return err
	}
	if actor.ID == target {
		return ErrForbidden
	}
	return nil
}
