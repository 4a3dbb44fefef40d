package adaptor

import (
	"net/http"

	"pilgrimage-booking/internal/dto/request"
	"pilgrimage-booking/internal/usecase"
	"pilgrimage-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// CreateReservation handles POST /api/reservations
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.CreateReservationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	reservation, err := h.service.CreateReservation(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create reservation")
		return
	}

	utils.ResponseCreated(w, "success", reservation)
}

// ListReservations handles GET /api/reservations. Agencies only see their own.
func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), request.DefaultPerPage),
	}

	reservations, err := h.service.ListReservations(r.Context(), actor, req)
	if err != nil {
		handleServiceError(w, h.log, err, "list reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}

// GetReservation handles GET /api/reservations/{id}
func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	reservation, err := h.service.GetReservation(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// UpdateRooms handles PUT /api/reservations/{id}/rooms
func (h *ReservationHandler) UpdateRooms(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.UpdateRoomsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	reservation, err := h.service.UpdateReservationRooms(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update reservation rooms")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// GetHistory handles GET /api/reservations/{id}/history
func (h *ReservationHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	history, err := h.service.GetHistory(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get reservation history")
		return
	}

	utils.ResponseSuccess(w, "success", history)
}

// GetDocuments handles GET /api/reservations/{id}/documents
func (h *ReservationHandler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	docs, err := h.service.GetDocuments(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get reservation documents")
		return
	}

	utils.ResponseSuccess(w, "success", docs)
}

// ==================== ADMIN METHODS ====================

// ChangeStatus handles PUT /api/admin/reservations/{id}/status
func (h *ReservationHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.ChangeStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	reservation, err := h.service.ChangeStatus(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "change reservation status")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// DeleteReservation handles DELETE /api/admin/reservations/{id}
func (h *ReservationHandler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteReservation(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete reservation")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
