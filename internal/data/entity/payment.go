package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Payment struct {
	BaseNoDelete
	Ref            string          `db:"ref"`
	ReservationID  uuid.UUID       `db:"reservation_id"`
	ReservationRef string          `db:"reservation_ref"`
	Amount         decimal.Decimal `db:"amount"`
	RecordedBy     uuid.UUID       `db:"recorded_by"`
}
