package booking

import (
	"pilgrimage-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

type RoomCost struct {
	Room  decimal.Decimal
	Food  decimal.Decimal
	Total decimal.Decimal
}

// Cost is the breakdown of a reservation total. Warnings list rooms that
// could not be priced.
type Cost struct {
	Rooms    []RoomCost
	Total    decimal.Decimal
	Warnings []Warning
}

// ComputeTotal prices every room off its Meccah-leg hotel entry and adds
// the meal surcharge once per member with food inclusions.
func ComputeTotal(table PriceTable, rooms []entity.ReservationRoom) Cost {
	cost := Cost{
		Rooms: make([]RoomCost, len(rooms)),
		Total: decimal.Zero,
	}

	for i, room := range rooms {
		entry, ok := table.Lookup(room.MeccahHotelID)
		if !ok {
			cost.Warnings = append(cost.Warnings, Warning{Room: i, HotelID: room.MeccahHotelID})
			cost.Rooms[i] = RoomCost{Room: decimal.Zero, Food: decimal.Zero, Total: decimal.Zero}
			continue
		}

		rc := RoomCost{Room: Tier(entry, room.RoomType), Food: decimal.Zero}
		for _, m := range room.Members {
			if m.FoodInclusions {
				rc.Food = rc.Food.Add(entry.Food)
			}
		}
		rc.Total = rc.Room.Add(rc.Food)

		cost.Rooms[i] = rc
		cost.Total = cost.Total.Add(rc.Total)
	}

	return cost
}
