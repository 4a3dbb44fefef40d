package wire

import (
	"pilgrimage-booking/internal/adaptor"
	"pilgrimage-booking/pkg/middleware"
	"pilgrimage-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTravel(
	r chi.Router,
	travelHandler *adaptor.TravelHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== AUTHENTICATED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT.Secret, log))

		r.Get("/api/travels", travelHandler.ListTravels)
		r.Get("/api/travels/{ref}", travelHandler.GetTravel)
		r.Get("/api/hotels", travelHandler.ListHotels)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/travels", func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT.Secret, log))
		r.Use(middleware.Admin(log))

		r.Post("/", travelHandler.CreateTravel)
		r.Put("/{ref}", travelHandler.UpdateTravel)
		r.Get("/{ref}/rooming-list", travelHandler.GetRoomingList)
	})

	r.Route("/api/admin/hotels", func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT.Secret, log))
		r.Use(middleware.Admin(log))

		r.Post("/", travelHandler.CreateHotel)
	})
}
