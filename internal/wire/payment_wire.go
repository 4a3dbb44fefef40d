package wire

import (
	"pilgrimage-booking/internal/adaptor"
	"pilgrimage-booking/pkg/middleware"
	"pilgrimage-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== AUTHENTICATED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT.Secret, log))

		r.Post("/api/payments", paymentHandler.RecordPayment)
		r.Get("/api/payments/check", paymentHandler.CheckPaymentRef)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/payments", func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT.Secret, log))
		r.Use(middleware.Admin(log))

		r.Put("/{id}", paymentHandler.UpdatePayment)
	})
}
