package wire

import (
	"fmt"
	"net/http"

	"pilgrimage-booking/internal/adaptor"
	"pilgrimage-booking/internal/booking"
	"pilgrimage-booking/internal/data/repository"
	"pilgrimage-booking/internal/usecase"
	"pilgrimage-booking/pkg/middleware"
	"pilgrimage-booking/pkg/queue"
	"pilgrimage-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired router
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes on top of the store.
func Wiring(store repository.Store, cache repository.TravelCache, events queue.Publisher, config *utils.Config, logger *zap.Logger) (*App, error) {
	policy, err := booking.ParseCapacityPolicy(config.Booking.CapacityPolicy)
	if err != nil {
		return nil, fmt.Errorf("capacity policy: %w", err)
	}
	logger.Info("Capacity policy", zap.String("policy", string(policy)))

	service := usecase.NewService(store, cache, events, booking.NewGuard(policy), logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router: setupRouter(handler, config, logger),
	}, nil
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	wireTravel(r, handler.Travel, config, logger)
	wireReservation(r, handler.Reservation, config, logger)
	wirePayment(r, handler.Payment, config, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
