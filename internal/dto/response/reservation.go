package response

import (
	"time"

	"pilgrimage-booking/internal/booking"
	"pilgrimage-booking/internal/data/entity"

	"github.com/google/uuid"
)

type MemberResponse struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Type               entity.MemberType `json:"type"`
	DateOfBirth        string            `json:"dob"`
	Sex                string            `json:"sex"`
	PassportNumber     string            `json:"passport_number"`
	PassportExpiryDate string            `json:"passport_expiry_date"`
	PassportDocRef     string            `json:"passport_doc_ref,omitempty"`
	FoodInclusions     bool              `json:"food_inclusions"`
}

type RoomResponse struct {
	ID            string           `json:"id"`
	Position      int              `json:"position"`
	RoomType      entity.RoomType  `json:"room_type"`
	MeccahHotelID string           `json:"meccah_hotel_id"`
	MadinaHotelID *string          `json:"madina_hotel_id,omitempty"`
	Members       []MemberResponse `json:"members"`
	RoomPrice     string           `json:"room_price"`
	FoodPrice     string           `json:"food_price"`
	Total         string           `json:"total"`
}

type ReservationResponse struct {
	ID            string                   `json:"id"`
	Ref           string                   `json:"ref"`
	TravelID      string                   `json:"travel_id"`
	AgencyID      string                   `json:"agency_id"`
	Status        entity.ReservationStatus `json:"status"`
	PaymentStatus entity.PaymentStatus     `json:"payment_status"`
	MeccahHotelID *string                  `json:"meccah_hotel_id,omitempty"`
	MadinaHotelID *string                  `json:"madina_hotel_id,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// ReservationDetailResponse carries the figures computed by the cost
// calculator and payment ledger for the current room tree and payments.
type ReservationDetailResponse struct {
	ReservationResponse
	TravelRef string            `json:"travel_ref"`
	Rooms     []RoomResponse    `json:"rooms"`
	Payments  []PaymentResponse `json:"payments"`
	Total     string            `json:"total"`
	Paid      string            `json:"paid"`
	Balance   string            `json:"balance"`
	Warnings  []string          `json:"warnings,omitempty"`
}

type HistoryEntryResponse struct {
	ID             string             `json:"id"`
	Type           entity.HistoryType `json:"type"`
	ActorID        string             `json:"actor_id"`
	Amount         *string            `json:"amount,omitempty"`
	PreviousAmount *string            `json:"previous_amount,omitempty"`
	OldStatus      *string            `json:"old_status,omitempty"`
	NewStatus      *string            `json:"new_status,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

type OccupantResponse struct {
	Name           string            `json:"name"`
	Type           entity.MemberType `json:"type"`
	Sex            string            `json:"sex"`
	PassportNumber string            `json:"passport_number"`
	Agency         string            `json:"agency"`
}

type RoomDocumentResponse struct {
	Number    int                `json:"number"`
	Type      entity.RoomType    `json:"type"`
	Occupants []OccupantResponse `json:"occupants"`
}

type RoomingListResponse struct {
	TravelRef  string                 `json:"travel_ref"`
	TravelName string                 `json:"travel_name"`
	Rooms      []RoomDocumentResponse `json:"rooms"`
}

func uuidPtrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func MemberToResponse(m entity.ReservationMember) MemberResponse {
	return MemberResponse{
		ID:                 m.ID.String(),
		Name:               m.Name,
		Type:               m.Type,
		DateOfBirth:        m.DateOfBirth.Format(dateLayout),
		Sex:                m.Sex,
		PassportNumber:     m.PassportNumber,
		PassportExpiryDate: m.PassportExpiry.Format(dateLayout),
		PassportDocRef:     m.PassportDocRef,
		FoodInclusions:     m.FoodInclusions,
	}
}

func RoomToResponse(r entity.ReservationRoom, cost booking.RoomCost) RoomResponse {
	members := make([]MemberResponse, len(r.Members))
	for i, m := range r.Members {
		members[i] = MemberToResponse(m)
	}

	return RoomResponse{
		ID:            r.ID.String(),
		Position:      r.Position,
		RoomType:      r.RoomType,
		MeccahHotelID: r.MeccahHotelID.String(),
		MadinaHotelID: uuidPtrString(r.MadinaHotelID),
		Members:       members,
		RoomPrice:     cost.Room.StringFixed(2),
		FoodPrice:     cost.Food.StringFixed(2),
		Total:         cost.Total.StringFixed(2),
	}
}

func ReservationToResponse(r *entity.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:            r.ID.String(),
		Ref:           r.Ref,
		TravelID:      r.TravelID.String(),
		AgencyID:      r.AgencyID.String(),
		Status:        r.Status,
		PaymentStatus: r.PaymentStatus,
		MeccahHotelID: uuidPtrString(r.MeccahHotelID),
		MadinaHotelID: uuidPtrString(r.MadinaHotelID),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// ReservationToDetail renders a reservation with its room tree. cost must
// come from the same rooms; settlement from the same rooms and payments.
func ReservationToDetail(r *entity.Reservation, travelRef string, cost booking.Cost, settlement booking.Settlement, payments []entity.Payment) ReservationDetailResponse {
	rooms := make([]RoomResponse, len(r.Rooms))
	for i, room := range r.Rooms {
		rooms[i] = RoomToResponse(room, cost.Rooms[i])
	}

	paymentResponses := make([]PaymentResponse, len(payments))
	for i := range payments {
		paymentResponses[i] = PaymentToResponse(&payments[i])
	}

	return ReservationDetailResponse{
		ReservationResponse: ReservationToResponse(r),
		TravelRef:           travelRef,
		Rooms:               rooms,
		Payments:            paymentResponses,
		Total:               settlement.Total.StringFixed(2),
		Paid:                settlement.Paid.StringFixed(2),
		Balance:             settlement.Balance.StringFixed(2),
		Warnings:            WarningsToStrings(settlement.Warnings),
	}
}

func WarningsToStrings(warnings []booking.Warning) []string {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = w.Error()
	}
	return out
}

func HistoryEntryToResponse(e entity.HistoryEntry) HistoryEntryResponse {
	resp := HistoryEntryResponse{
		ID:        e.ID.String(),
		Type:      e.Type,
		ActorID:   e.ActorID.String(),
		CreatedAt: e.CreatedAt,
	}
	if e.Amount != nil {
		s := e.Amount.StringFixed(2)
		resp.Amount = &s
	}
	if e.PreviousAmount != nil {
		s := e.PreviousAmount.StringFixed(2)
		resp.PreviousAmount = &s
	}
	if e.OldStatus != nil {
		s := string(*e.OldStatus)
		resp.OldStatus = &s
	}
	if e.NewStatus != nil {
		s := string(*e.NewStatus)
		resp.NewStatus = &s
	}
	return resp
}

func RoomDocumentToResponse(d booking.RoomDocument) RoomDocumentResponse {
	occupants := make([]OccupantResponse, len(d.Occupants))
	for i, o := range d.Occupants {
		occupants[i] = OccupantResponse{
			Name:           o.Member.Name,
			Type:           o.Member.Type,
			Sex:            o.Member.Sex,
			PassportNumber: o.Member.PassportNumber,
			Agency:         o.Agency,
		}
	}
	return RoomDocumentResponse{
		Number:    d.Number,
		Type:      d.Type,
		Occupants: occupants,
	}
}
