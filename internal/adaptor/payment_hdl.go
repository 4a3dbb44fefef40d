package adaptor

import (
	"net/http"

	"pilgrimage-booking/internal/dto/request"
	"pilgrimage-booking/internal/usecase"
	"pilgrimage-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// RecordPayment handles POST /api/payments
func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.RecordPaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.service.RecordPayment(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "record payment")
		return
	}

	utils.ResponseCreated(w, "success", result)
}

// CheckPaymentRef handles GET /api/payments/check?ref=...
func (h *PaymentHandler) CheckPaymentRef(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	result, err := h.service.CheckPaymentRef(r.Context(), actor, r.URL.Query().Get("ref"))
	if err != nil {
		handleServiceError(w, h.log, err, "check payment ref")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// UpdatePayment handles PUT /api/admin/payments/{id}
func (h *PaymentHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.UpdatePaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.service.UpdatePayment(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update payment")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}
