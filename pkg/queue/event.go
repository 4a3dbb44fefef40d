// Package queue publishes booking domain events to RabbitMQ.
package queue

import (
	"context"
	"time"
)

const (
	EventReservationCreated       = "reservation.created"
	EventReservationStatusChanged = "reservation.status_changed"
	EventPaymentRecorded          = "payment.recorded"
	EventPaymentUpdated           = "payment.updated"
)

// Event is the message body of every booking event. Fields that do not
// apply to an event type are omitted.
type Event struct {
	Type           string    `json:"type"`
	ReservationID  string    `json:"reservation_id"`
	ReservationRef string    `json:"reservation_ref"`
	TravelID       string    `json:"travel_id,omitempty"`
	AgencyID       string    `json:"agency_id,omitempty"`
	ActorID        string    `json:"actor_id"`
	Status         string    `json:"status,omitempty"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	PaymentStatus  string    `json:"payment_status,omitempty"`
	PaymentRef     string    `json:"payment_ref,omitempty"`
	Amount         string    `json:"amount,omitempty"`
	Total          string    `json:"total,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Publisher delivers events after the transaction that produced them committed.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
