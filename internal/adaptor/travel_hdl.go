package adaptor

import (
	"net/http"

	"pilgrimage-booking/internal/dto/request"
	"pilgrimage-booking/internal/usecase"
	"pilgrimage-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TravelHandler struct {
	service usecase.TravelService
	log     *zap.Logger
}

func NewTravelHandler(service usecase.TravelService, log *zap.Logger) *TravelHandler {
	return &TravelHandler{
		service: service,
		log:     log.With(zap.String("handler", "travel")),
	}
}

// ListTravels handles GET /api/travels
func (h *TravelHandler) ListTravels(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	travels, err := h.service.ListTravels(r.Context(), actor)
	if err != nil {
		handleServiceError(w, h.log, err, "list travels")
		return
	}

	utils.ResponseSuccess(w, "success", travels)
}

// GetTravel handles GET /api/travels/{ref}
func (h *TravelHandler) GetTravel(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	travel, err := h.service.GetTravel(r.Context(), actor, chi.URLParam(r, "ref"))
	if err != nil {
		handleServiceError(w, h.log, err, "get travel")
		return
	}

	utils.ResponseSuccess(w, "success", travel)
}

// ListHotels handles GET /api/hotels?city=MECCAH
func (h *TravelHandler) ListHotels(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	hotels, err := h.service.ListHotels(r.Context(), actor, r.URL.Query().Get("city"))
	if err != nil {
		handleServiceError(w, h.log, err, "list hotels")
		return
	}

	utils.ResponseSuccess(w, "success", hotels)
}

// ==================== ADMIN METHODS ====================

// CreateHotel handles POST /api/admin/hotels
func (h *TravelHandler) CreateHotel(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.CreateHotelRequest
	if !decodeBody(w, r, &req) {
		return
	}

	hotel, err := h.service.CreateHotel(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create hotel")
		return
	}

	utils.ResponseCreated(w, "success", hotel)
}

// CreateTravel handles POST /api/admin/travels
func (h *TravelHandler) CreateTravel(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.TravelRequest
	if !decodeBody(w, r, &req) {
		return
	}

	travel, err := h.service.CreateTravel(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create travel")
		return
	}

	utils.ResponseCreated(w, "success", travel)
}

// UpdateTravel handles PUT /api/admin/travels/{ref}
func (h *TravelHandler) UpdateTravel(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req request.TravelRequest
	if !decodeBody(w, r, &req) {
		return
	}

	travel, err := h.service.UpdateTravel(r.Context(), actor, chi.URLParam(r, "ref"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update travel")
		return
	}

	utils.ResponseSuccess(w, "success", travel)
}

// GetRoomingList handles GET /api/admin/travels/{ref}/rooming-list
func (h *TravelHandler) GetRoomingList(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	list, err := h.service.GetRoomingList(r.Context(), actor, chi.URLParam(r, "ref"))
	if err != nil {
		handleServiceError(w, h.log, err, "get rooming list")
		return
	}

	utils.ResponseSuccess(w, "success", list)
}
