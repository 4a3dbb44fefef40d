package request

type MemberRequest struct {
	Name               string `json:"name" validate:"required,max=150"`
	Type               string `json:"type" validate:"required,oneof=ADULT CHILD BABY"`
	DateOfBirth        string `json:"dob" validate:"required,datetime=2006-01-02"`
	Sex                string `json:"sex" validate:"required,oneof=M F"`
	PassportNumber     string `json:"passport_number" validate:"required,max=30"`
	PassportExpiryDate string `json:"passport_expiry_date" validate:"required,datetime=2006-01-02"`
	PassportDocRef     string `json:"passport_doc_ref" validate:"max=255"`
	FoodInclusions     bool   `json:"food_inclusions"`
}

// RoomRequest hotels are optional when the reservation carries defaults.
type RoomRequest struct {
	RoomType      string          `json:"room_type" validate:"required,oneof=DOUBLE TRIPLE QUADRUPLE QUINTUPLE COLLECTIVE"`
	MeccahHotelID string          `json:"meccah_hotel_id" validate:"omitempty,uuid"`
	MadinaHotelID string          `json:"madina_hotel_id" validate:"omitempty,uuid"`
	Members       []MemberRequest `json:"members" validate:"required,min=1,dive"`
}

type CreateReservationRequest struct {
	TravelRef     string        `json:"travel_ref" validate:"required,max=40"`
	MeccahHotelID string        `json:"meccah_hotel_id" validate:"omitempty,uuid"`
	MadinaHotelID string        `json:"madina_hotel_id" validate:"omitempty,uuid"`
	Rooms         []RoomRequest `json:"rooms" validate:"required,min=1,dive"`
}

type UpdateRoomsRequest struct {
	MeccahHotelID string        `json:"meccah_hotel_id" validate:"omitempty,uuid"`
	MadinaHotelID string        `json:"madina_hotel_id" validate:"omitempty,uuid"`
	Rooms         []RoomRequest `json:"rooms" validate:"required,min=1,dive"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED CANCELLED"`
}
