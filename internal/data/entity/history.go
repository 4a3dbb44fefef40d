package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type HistoryType string

const (
	HistoryData    HistoryType = "DATA"
	HistoryPayment HistoryType = "PAYMENT"
	HistoryStatus  HistoryType = "STATUS"
)

// HistoryEntry is an append-only audit record. Payload fields are set
// according to Type: Amount (and PreviousAmount for edits) for PAYMENT,
// OldStatus/NewStatus for STATUS.
type HistoryEntry struct {
	BaseSimple
	ReservationID  uuid.UUID          `db:"reservation_id"`
	Type           HistoryType        `db:"entry_type"`
	ActorID        uuid.UUID          `db:"actor_id"`
	Amount         *decimal.Decimal   `db:"amount"`
	PreviousAmount *decimal.Decimal   `db:"previous_amount"`
	OldStatus      *ReservationStatus `db:"old_status"`
	NewStatus      *ReservationStatus `db:"new_status"`
}
