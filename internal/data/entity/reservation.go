package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
)

type Reservation struct {
	BaseNoDelete
	Ref           string            `db:"ref"`
	TravelID      uuid.UUID         `db:"travel_id"`
	AgencyID      uuid.UUID         `db:"agency_id"`
	Status        ReservationStatus `db:"status"`
	PaymentStatus PaymentStatus     `db:"payment_status"`
	MeccahHotelID *uuid.UUID        `db:"meccah_hotel_id"`
	MadinaHotelID *uuid.UUID        `db:"madina_hotel_id"`
	Rooms         []ReservationRoom `db:"-"`
}

type RoomType string

const (
	RoomDouble     RoomType = "DOUBLE"
	RoomTriple     RoomType = "TRIPLE"
	RoomQuadruple  RoomType = "QUADRUPLE"
	RoomQuintuple  RoomType = "QUINTUPLE"
	RoomCollective RoomType = "COLLECTIVE"
)

// Beds returns the bed capacity of the room type. COLLECTIVE is unbounded and returns 0.
func (t RoomType) Beds() int {
	switch t {
	case RoomDouble:
		return 2
	case RoomTriple:
		return 3
	case RoomQuadruple:
		return 4
	case RoomQuintuple:
		return 5
	}
	return 0
}

type ReservationRoom struct {
	BaseSimple
	ReservationID uuid.UUID           `db:"reservation_id"`
	Position      int                 `db:"position"`
	RoomType      RoomType            `db:"room_type"`
	MeccahHotelID uuid.UUID           `db:"meccah_hotel_id"`
	MadinaHotelID *uuid.UUID          `db:"madina_hotel_id"`
	Members       []ReservationMember `db:"-"`
}

type MemberType string

const (
	MemberAdult MemberType = "ADULT"
	MemberChild MemberType = "CHILD"
	MemberBaby  MemberType = "BABY"
)

type ReservationMember struct {
	BaseSimple
	RoomID         uuid.UUID  `db:"room_id"`
	Position       int        `db:"position"`
	Name           string     `db:"name"`
	Type           MemberType `db:"member_type"`
	DateOfBirth    time.Time  `db:"date_of_birth"`
	Sex            string     `db:"sex"`
	PassportNumber string     `db:"passport_number"`
	PassportExpiry time.Time  `db:"passport_expiry"`
	PassportDocRef string     `db:"passport_doc_ref"`
	FoodInclusions bool       `db:"food_inclusions"`
}
