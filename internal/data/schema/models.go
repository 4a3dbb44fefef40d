// Package schema describes the relational layout the pgx repositories
// read and write. Models exist only for migrations; runtime queries use
// the entity structs.
package schema

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:150;not null"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:idx_users_email"`
	Phone     *string   `gorm:"size:30"`
	Role      string    `gorm:"size:20;not null;default:agency"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

type Hotel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:150;not null"`
	City      string    `gorm:"size:10;not null;index:idx_hotels_city"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

type Travel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Ref            string    `gorm:"size:40;not null;uniqueIndex:idx_travels_ref"`
	Name           string    `gorm:"size:150;not null"`
	DepartAt       time.Time `gorm:"not null"`
	ArriveAt       time.Time `gorm:"not null"`
	DurationNights int       `gorm:"not null"`
	AvailableSpots int       `gorm:"not null;check:chk_travels_spots,available_spots >= 0"`
	Distribution   string    `gorm:"size:255"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// PriceEntry holds one hotel's tiers for a travel; at most one per hotel.
type PriceEntry struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TravelID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_price_entries_travel_hotel"`
	Travel         *Travel         `gorm:"foreignKey:TravelID;constraint:OnDelete:CASCADE"`
	HotelID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_price_entries_travel_hotel"`
	Hotel          *Hotel          `gorm:"foreignKey:HotelID;constraint:OnDelete:RESTRICT"`
	DoublePrice    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TriplePrice    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	QuadruplePrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	QuintuplePrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	FoodPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Commission     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

type Reservation struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Ref           string     `gorm:"size:40;not null;uniqueIndex:idx_reservations_ref"`
	TravelID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_reservations_travel"`
	Travel        *Travel    `gorm:"foreignKey:TravelID;constraint:OnDelete:RESTRICT"`
	AgencyID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_reservations_agency"`
	Agency        *User      `gorm:"foreignKey:AgencyID;constraint:OnDelete:RESTRICT"`
	Status        string     `gorm:"size:20;not null;default:PENDING"`
	PaymentStatus string     `gorm:"size:20;not null;default:PENDING"`
	MeccahHotelID *uuid.UUID `gorm:"type:uuid"`
	MadinaHotelID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

type ReservationRoom struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey"`
	ReservationID uuid.UUID    `gorm:"type:uuid;not null;index:idx_reservation_rooms_reservation"`
	Reservation   *Reservation `gorm:"foreignKey:ReservationID;constraint:OnDelete:CASCADE"`
	Position      int          `gorm:"not null"`
	RoomType      string       `gorm:"size:20;not null"`
	MeccahHotelID uuid.UUID    `gorm:"type:uuid;not null"`
	MadinaHotelID *uuid.UUID   `gorm:"type:uuid"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

type ReservationMember struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey"`
	RoomID         uuid.UUID        `gorm:"type:uuid;not null;index:idx_reservation_members_room"`
	Room           *ReservationRoom `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	Position       int              `gorm:"not null"`
	Name           string           `gorm:"size:150;not null"`
	MemberType     string           `gorm:"size:10;not null"`
	DateOfBirth    time.Time        `gorm:"type:date;not null"`
	Sex            string           `gorm:"size:1;not null"`
	PassportNumber string           `gorm:"size:30;not null"`
	PassportExpiry time.Time        `gorm:"type:date;not null"`
	PassportDocRef string           `gorm:"size:255"`
	FoodInclusions bool             `gorm:"not null;default:false"`
	CreatedAt      time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Ref           string          `gorm:"size:60;not null;uniqueIndex:idx_payments_ref"`
	ReservationID uuid.UUID       `gorm:"type:uuid;not null;index:idx_payments_reservation"`
	Reservation   *Reservation    `gorm:"foreignKey:ReservationID;constraint:OnDelete:CASCADE"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	RecordedBy    uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// ReservationEvent is the append-only audit trail of a reservation.
type ReservationEvent struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey"`
	ReservationID  uuid.UUID        `gorm:"type:uuid;not null;index:idx_reservation_history_reservation"`
	Reservation    *Reservation     `gorm:"foreignKey:ReservationID;constraint:OnDelete:CASCADE"`
	EntryType      string           `gorm:"size:10;not null"`
	ActorID        uuid.UUID        `gorm:"type:uuid;not null"`
	Amount         *decimal.Decimal `gorm:"type:numeric(12,2)"`
	PreviousAmount *decimal.Decimal `gorm:"type:numeric(12,2)"`
	OldStatus      *string          `gorm:"size:20"`
	NewStatus      *string          `gorm:"size:20"`
	CreatedAt      time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (ReservationEvent) TableName() string { return "reservation_history" }

// Models lists every table in dependency order.
var Models = []interface{}{
	&User{},
	&Hotel{},
	&Travel{},
	&PriceEntry{},
	&Reservation{},
	&ReservationRoom{},
	&ReservationMember{},
	&Payment{},
	&ReservationEvent{},
}
