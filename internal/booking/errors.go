// Package booking holds the ledger and allocation rules for pilgrimage
// reservations: room pricing, reservation totals, payment status,
// travel capacity, room documents and the audit trail.
package booking

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Every rejection wraps exactly one of these, so callers can switch on
// errors.Is while the message keeps the human-readable reason.
var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("not found")
	ErrDuplicateRef         = errors.New("reference already in use")
	ErrInsufficientCapacity = errors.New("insufficient capacity")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrConcurrentUpdate     = errors.New("concurrent update, retry the request")
)

// Validationf wraps ErrValidation with a formatted reason.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Warning is a DataIntegrityWarning: a room whose Meccah hotel has no
// price entry on the travel. The room is priced at zero and the total is
// still produced.
type Warning struct {
	Room    int
	HotelID uuid.UUID
}

func (w Warning) Error() string {
	return fmt.Sprintf("room %d: no price entry for hotel %s, room priced at 0", w.Room+1, w.HotelID)
}
