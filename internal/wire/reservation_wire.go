package wire

import (
	"pilgrimage-booking/internal/adaptor"
	"pilgrimage-booking/pkg/middleware"
	"pilgrimage-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== AUTHENTICATED ROUTES ====================
	// agencies reach only their own reservations, admins reach all of them
	r.Route("/api/reservations", func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT.Secret, log))

		r.Post("/", reservationHandler.CreateReservation)
		r.Get("/", reservationHandler.ListReservations)
		r.Get("/{id}", reservationHandler.GetReservation)
		r.Put("/{id}/rooms", reservationHandler.UpdateRooms)
		r.Get("/{id}/history", reservationHandler.GetHistory)
		r.Get("/{id}/documents", reservationHandler.GetDocuments)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/reservations", func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT.Secret, log))
		r.Use(middleware.Admin(log))

		r.Put("/{id}/status", reservationHandler.ChangeStatus)
		r.Delete("/{id}", reservationHandler.DeleteReservation)
	})
}
