package request

// Amounts are decimal strings ("42000.00") so no precision is lost in transit.
type RecordPaymentRequest struct {
	ReservationRef string `json:"reservation_ref" validate:"required,max=40"`
	PaymentRef     string `json:"payment_ref" validate:"required,max=60"`
	Amount         string `json:"amount" validate:"required,money"`
}

type UpdatePaymentRequest struct {
	PaymentRef string `json:"payment_ref" validate:"required,max=60"`
	Amount     string `json:"amount" validate:"required,money"`
}
