package booking

import (
	"fmt"
	"time"

	"pilgrimage-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var transitions = map[entity.ReservationStatus][]entity.ReservationStatus{
	entity.ReservationStatusPending:   {entity.ReservationStatusConfirmed, entity.ReservationStatusCancelled},
	entity.ReservationStatusConfirmed: {entity.ReservationStatusPending, entity.ReservationStatusCancelled},
}

// CanTransition reports whether a reservation may move from one status to another.
// CANCELLED is terminal.
func CanTransition(from, to entity.ReservationStatus) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// Entry ids are UUIDv7 so replay order is stable for entries written in the
// same instant.
func newEntry(reservationID, actorID uuid.UUID, t entity.HistoryType, at time.Time) entity.HistoryEntry {
	return entity.HistoryEntry{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.Must(uuid.NewV7()),
			CreatedAt: at,
		},
		ReservationID: reservationID,
		Type:          t,
		ActorID:       actorID,
	}
}

func DataEntry(reservationID, actorID uuid.UUID, at time.Time) entity.HistoryEntry {
	return newEntry(reservationID, actorID, entity.HistoryData, at)
}

// PaymentEntry records a payment. previous is set when an existing payment was edited.
func PaymentEntry(reservationID, actorID uuid.UUID, amount decimal.Decimal, previous *decimal.Decimal, at time.Time) entity.HistoryEntry {
	e := newEntry(reservationID, actorID, entity.HistoryPayment, at)
	e.Amount = &amount
	e.PreviousAmount = previous
	return e
}

func StatusEntry(reservationID, actorID uuid.UUID, from, to entity.ReservationStatus, at time.Time) entity.HistoryEntry {
	e := newEntry(reservationID, actorID, entity.HistoryStatus, at)
	e.OldStatus = &from
	e.NewStatus = &to
	return e
}
