package booking

import (
	"fmt"

	"pilgrimage-booking/internal/data/entity"

	"github.com/google/uuid"
)

// Actor is the authenticated user performing an operation.
type Actor struct {
	ID   uuid.UUID
	Role entity.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}

// RequireAdmin is checked before any state is read.
func (a Actor) RequireAdmin(action string) error {
	if !a.IsAdmin() {
		return fmt.Errorf("%w: only administrators can %s", ErrUnauthorized, action)
	}
	return nil
}

// RequireRole rejects actors that are neither admin nor agency.
func (a Actor) RequireRole(action string) error {
	if a.Role != entity.RoleAdmin && a.Role != entity.RoleAgency {
		return fmt.Errorf("%w: role %q cannot %s", ErrUnauthorized, a.Role, action)
	}
	return nil
}

// CanAccess reports whether the actor may read or act on a reservation.
func (a Actor) CanAccess(r *entity.Reservation) error {
	if a.IsAdmin() || r.AgencyID == a.ID {
		return nil
	}
	return fmt.Errorf("%w: reservation %s belongs to another agency", ErrUnauthorized, r.Ref)
}
