package booking

import (
	"iter"

	"pilgrimage-booking/internal/data/entity"

	"github.com/google/uuid"
)

// CollectiveChunkSize is the number of beds printed per collective room document.
const CollectiveChunkSize = 5

// documentOrder is the printed room order. Changing it renumbers rooms on
// every generated rooming list.
var documentOrder = []entity.RoomType{
	entity.RoomDouble,
	entity.RoomTriple,
	entity.RoomQuadruple,
	entity.RoomQuintuple,
}

type Occupant struct {
	Member entity.ReservationMember
	Agency string
}

// RoomDocument is one printable room grouping, numbered from 1.
type RoomDocument struct {
	Number    int
	Type      entity.RoomType
	Occupants []Occupant
}

// ResolvedReservation is a reservation with its room tree loaded and the
// name of the agency that booked it.
type ResolvedReservation struct {
	Reservation entity.Reservation
	AgencyName  string
}

// AgencyIndex maps every member to the agency of the reservation whose
// rooms contain it.
type AgencyIndex map[uuid.UUID]string

func NewAgencyIndex(set []ResolvedReservation) AgencyIndex {
	idx := make(AgencyIndex)
	for _, rr := range set {
		for _, room := range rr.Reservation.Rooms {
			for _, m := range room.Members {
				idx[m.ID] = rr.AgencyName
			}
		}
	}
	return idx
}

// Rooms flattens the room trees of the set in input order.
func Rooms(set []ResolvedReservation) []entity.ReservationRoom {
	var rooms []entity.ReservationRoom
	for _, rr := range set {
		rooms = append(rooms, rr.Reservation.Rooms...)
	}
	return rooms
}

// AllocateRooms yields the room documents for rooms: one per fixed-size
// room grouped by type (double, triple, quadruple, quintuple; input order
// within a type), followed by the pooled collective members re-chunked
// by CollectiveChunkSize. The sequence can be ranged over any number of
// times.
func AllocateRooms(rooms []entity.ReservationRoom, agencies AgencyIndex) iter.Seq[RoomDocument] {
	return func(yield func(RoomDocument) bool) {
		number := 0
		occupants := func(members []entity.ReservationMember) []Occupant {
			out := make([]Occupant, len(members))
			for i, m := range members {
				out[i] = Occupant{Member: m, Agency: agencies[m.ID]}
			}
			return out
		}

		for _, roomType := range documentOrder {
			for _, room := range rooms {
				if room.RoomType != roomType {
					continue
				}
				number++
				if !yield(RoomDocument{Number: number, Type: roomType, Occupants: occupants(room.Members)}) {
					return
				}
			}
		}

		var pool []entity.ReservationMember
		for _, room := range rooms {
			if room.RoomType == entity.RoomCollective {
				pool = append(pool, room.Members...)
			}
		}

		for start := 0; start < len(pool); start += CollectiveChunkSize {
			end := min(start+CollectiveChunkSize, len(pool))
			number++
			if !yield(RoomDocument{Number: number, Type: entity.RoomCollective, Occupants: occupants(pool[start:end])}) {
				return
			}
		}
	}
}

// AllocateReservations resolves agencies across the set and allocates all of its rooms.
func AllocateReservations(set []ResolvedReservation) iter.Seq[RoomDocument] {
	return AllocateRooms(Rooms(set), NewAgencyIndex(set))
}
