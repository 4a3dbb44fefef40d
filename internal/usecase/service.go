package usecase

import (
	"pilgrimage-booking/internal/booking"
	"pilgrimage-booking/internal/data/repository"
	"pilgrimage-booking/pkg/queue"

	"go.uber.org/zap"
)

type Service struct {
	Travel      TravelService
	Reservation ReservationService
	Payment     PaymentService
}

func NewService(store repository.Store, cache repository.TravelCache, events queue.Publisher, guard booking.Guard, log *zap.Logger) *Service {
	return &Service{
		Travel:      NewTravelService(store, cache, log),
		Reservation: NewReservationService(store, events, guard, log),
		Payment:     NewPaymentService(store, events, log),
	}
}
