package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Travel is a pilgrimage trip offering. AvailableSpots is a static ceiling;
// remaining capacity is always derived from the reservations on read.
type Travel struct {
	BaseNoDelete
	Ref            string       `db:"ref"`
	Name           string       `db:"name"`
	DepartAt       time.Time    `db:"depart_at"`
	ArriveAt       time.Time    `db:"arrive_at"`
	DurationNights int          `db:"duration_nights"`
	AvailableSpots int          `db:"available_spots"`
	Distribution   string       `db:"distribution"` // e.g. "10 Meccah / 5 Madina"
	PriceEntries   []PriceEntry `db:"-"`
}

// PriceEntry holds the per-room price tiers for one lodging hotel of a travel.
type PriceEntry struct {
	ID         uuid.UUID       `db:"id"`
	TravelID   uuid.UUID       `db:"travel_id"`
	HotelID    uuid.UUID       `db:"hotel_id"`
	Double     decimal.Decimal `db:"double_price"`
	Triple     decimal.Decimal `db:"triple_price"`
	Quadruple  decimal.Decimal `db:"quadruple_price"`
	Quintuple  decimal.Decimal `db:"quintuple_price"`
	Food       decimal.Decimal `db:"food_price"`
	Commission decimal.Decimal `db:"commission"`
}
