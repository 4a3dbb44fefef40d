package booking

import (
	"pilgrimage-booking/internal/data/entity"

	"github.com/google/uuid"
)

// ValidateRooms checks the room tree of a reservation: known room type,
// at least one member, members within bed capacity (COLLECTIVE is
// unbounded), a Meccah hotel and a known member type.
func ValidateRooms(rooms []entity.ReservationRoom) error {
	if len(rooms) == 0 {
		return Validationf("a reservation needs at least one room")
	}

	for i, room := range rooms {
		switch room.RoomType {
		case entity.RoomDouble, entity.RoomTriple, entity.RoomQuadruple, entity.RoomQuintuple, entity.RoomCollective:
		default:
			return Validationf("room %d: unknown room type %q", i+1, room.RoomType)
		}

		if len(room.Members) == 0 {
			return Validationf("room %d: no members", i+1)
		}
		if beds := room.RoomType.Beds(); beds > 0 && len(room.Members) > beds {
			return Validationf("room %d: %s room holds %d members, got %d", i+1, room.RoomType, beds, len(room.Members))
		}
		if room.MeccahHotelID == uuid.Nil {
			return Validationf("room %d: meccah hotel is required", i+1)
		}

		for j, m := range room.Members {
			switch m.Type {
			case entity.MemberAdult, entity.MemberChild, entity.MemberBaby:
			default:
				return Validationf("room %d member %d: unknown member type %q", i+1, j+1, m.Type)
			}
			if m.Name == "" || m.PassportNumber == "" {
				return Validationf("room %d member %d: name and passport number are required", i+1, j+1)
			}
		}
	}

	return nil
}
