package booking

import (
	"pilgrimage-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func member(t entity.MemberType, food bool) entity.ReservationMember {
	return entity.ReservationMember{
		BaseSimple:     entity.BaseSimple{ID: uuid.New()},
		Name:           "pilgrim",
		Type:           t,
		PassportNumber: "P123",
		FoodInclusions: food,
	}
}

func members(t entity.MemberType, n int) []entity.ReservationMember {
	out := make([]entity.ReservationMember, n)
	for i := range out {
		out[i] = member(t, false)
	}
	return out
}

func room(rt entity.RoomType, hotel uuid.UUID, ms ...entity.ReservationMember) entity.ReservationRoom {
	return entity.ReservationRoom{
		BaseSimple:    entity.BaseSimple{ID: uuid.New()},
		RoomType:      rt,
		MeccahHotelID: hotel,
		Members:       ms,
	}
}

func priceEntry(hotel uuid.UUID) entity.PriceEntry {
	return entity.PriceEntry{
		HotelID:   hotel,
		Double:    decimal.NewFromInt(40000),
		Triple:    decimal.NewFromInt(35000),
		Quadruple: decimal.NewFromInt(30000),
		Quintuple: decimal.NewFromInt(25000),
		Food:      decimal.NewFromInt(2000),
	}
}
