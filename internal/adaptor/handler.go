package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"pilgrimage-booking/internal/booking"
	"pilgrimage-booking/internal/data/entity"
	"pilgrimage-booking/internal/usecase"
	"pilgrimage-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Travel      *TravelHandler
	Reservation *ReservationHandler
	Payment     *PaymentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Travel:      NewTravelHandler(service.Travel, log),
		Reservation: NewReservationHandler(service.Reservation, log),
		Payment:     NewPaymentHandler(service.Payment, log),
	}
}

// actorFromRequest reads the caller set by the auth middleware.
func actorFromRequest(w http.ResponseWriter, r *http.Request) (booking.Actor, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return booking.Actor{}, false
	}
	role, _ := utils.GetRoleFromContext(r.Context())
	return booking.Actor{ID: userID, Role: entity.UserRole(role)}, true
}

// decodeBody decodes and validates a JSON request body. It writes the 400
// response itself and reports false when the body is unusable.
func decodeBody(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}
	return true
}

// handleServiceError maps booking errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, booking.ErrValidation):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, booking.ErrInvalidTransition):
		log.Warn(operation+" failed - invalid state",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, booking.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, booking.ErrUnauthorized):
		log.Warn(operation+" failed - forbidden",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, errMsg)

	case errors.Is(err, booking.ErrDuplicateRef),
		errors.Is(err, booking.ErrInsufficientCapacity):
		log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, booking.ErrConcurrentUpdate):
		log.Warn(operation+" failed - concurrent update",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, "The reservation was changed by another request, please retry")

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
