package booking

import (
	"pilgrimage-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceTable resolves room prices from the price entries of one travel,
// keyed by lodging hotel.
type PriceTable struct {
	entries map[uuid.UUID]entity.PriceEntry
}

func NewPriceTable(entries []entity.PriceEntry) PriceTable {
	m := make(map[uuid.UUID]entity.PriceEntry, len(entries))
	for _, e := range entries {
		m[e.HotelID] = e
	}
	return PriceTable{entries: m}
}

// Lookup returns the price entry of the given hotel.
func (t PriceTable) Lookup(hotelID uuid.UUID) (entity.PriceEntry, bool) {
	e, ok := t.entries[hotelID]
	return e, ok
}

// Tier selects the per-room price for a room type. QUINTUPLE and
// COLLECTIVE share the quintuple tier.
func Tier(e entity.PriceEntry, roomType entity.RoomType) decimal.Decimal {
	switch roomType {
	case entity.RoomDouble:
		return e.Double
	case entity.RoomTriple:
		return e.Triple
	case entity.RoomQuadruple:
		return e.Quadruple
	default:
		return e.Quintuple
	}
}
