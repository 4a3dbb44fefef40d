package response

import (
	"time"

	"pilgrimage-booking/internal/data/entity"
)

type PaymentResponse struct {
	ID             string    `json:"id"`
	Ref            string    `json:"ref"`
	ReservationID  string    `json:"reservation_id"`
	ReservationRef string    `json:"reservation_ref"`
	Amount         string    `json:"amount"`
	RecordedBy     string    `json:"recorded_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PaymentResultResponse is the reservation position after a payment was
// recorded or edited.
type PaymentResultResponse struct {
	Payment       PaymentResponse          `json:"payment"`
	Status        entity.ReservationStatus `json:"status"`
	PaymentStatus entity.PaymentStatus     `json:"payment_status"`
	Total         string                   `json:"total"`
	Paid          string                   `json:"paid"`
	Balance       string                   `json:"balance"`
	Warnings      []string                 `json:"warnings,omitempty"`
}

type PaymentRefCheckResponse struct {
	Ref       string `json:"ref"`
	Available bool   `json:"available"`
}

func PaymentToResponse(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:             p.ID.String(),
		Ref:            p.Ref,
		ReservationID:  p.ReservationID.String(),
		ReservationRef: p.ReservationRef,
		Amount:         p.Amount.StringFixed(2),
		RecordedBy:     p.RecordedBy.String(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
