package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pilgrimage-booking/internal/booking"
	"pilgrimage-booking/internal/data/entity"
	"pilgrimage-booking/internal/data/repository"
	"pilgrimage-booking/internal/dto/request"
	"pilgrimage-booking/pkg/queue"
	"pilgrimage-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// storeError turns repository failures into booking errors. what names the
// reference that collided, for the duplicate message.
func storeError(err error, what string) error {
	switch {
	case errors.Is(err, repository.ErrSerialization):
		return booking.ErrConcurrentUpdate
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%w: %s", booking.ErrDuplicateRef, what)
	case errors.Is(err, repository.ErrNoRowsAffected):
		return booking.NotFoundf("%s", what)
	}
	return err
}

// validate runs struct validation and wraps the field messages in ErrValidation.
func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return booking.Validationf("%s", utils.FormatValidationErrors(errs))
	}
	return nil
}

func parseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, booking.Validationf("invalid %s id %q", what, raw)
	}
	return id, nil
}

func parseOptionalID(raw, what string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := parseID(raw, what)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseDate(raw, what string) (time.Time, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, booking.Validationf("invalid %s %q, expected YYYY-MM-DD", what, raw)
	}
	return t, nil
}

func parseAmount(raw, what string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, booking.Validationf("invalid %s %q", what, raw)
	}
	return d, nil
}

// buildRooms converts the request room tree. Rooms without their own hotels
// inherit the reservation-level defaults.
func buildRooms(reqRooms []request.RoomRequest, meccah, madina *uuid.UUID, now time.Time) ([]entity.ReservationRoom, error) {
	rooms := make([]entity.ReservationRoom, len(reqRooms))

	for i, rr := range reqRooms {
		roomMeccah, err := parseOptionalID(rr.MeccahHotelID, "meccah hotel")
		if err != nil {
			return nil, err
		}
		if roomMeccah == nil {
			roomMeccah = meccah
		}
		if roomMeccah == nil {
			return nil, booking.Validationf("room %d: meccah hotel is required", i+1)
		}

		roomMadina, err := parseOptionalID(rr.MadinaHotelID, "madina hotel")
		if err != nil {
			return nil, err
		}
		if roomMadina == nil {
			roomMadina = madina
		}

		members := make([]entity.ReservationMember, len(rr.Members))
		for j, m := range rr.Members {
			dob, err := parseDate(m.DateOfBirth, fmt.Sprintf("room %d member %d date of birth", i+1, j+1))
			if err != nil {
				return nil, err
			}
			expiry, err := parseDate(m.PassportExpiryDate, fmt.Sprintf("room %d member %d passport expiry", i+1, j+1))
			if err != nil {
				return nil, err
			}
			members[j] = entity.ReservationMember{
				BaseSimple:     entity.BaseSimple{CreatedAt: now},
				Name:           m.Name,
				Type:           entity.MemberType(m.Type),
				DateOfBirth:    dob,
				Sex:            m.Sex,
				PassportNumber: m.PassportNumber,
				PassportExpiry: expiry,
				PassportDocRef: m.PassportDocRef,
				FoodInclusions: m.FoodInclusions,
			}
		}

		rooms[i] = entity.ReservationRoom{
			BaseSimple:    entity.BaseSimple{CreatedAt: now},
			RoomType:      entity.RoomType(rr.RoomType),
			MeccahHotelID: *roomMeccah,
			MadinaHotelID: roomMadina,
			Members:       members,
		}
	}

	if err := booking.ValidateRooms(rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// publish sends an event after commit. Failures are logged only: the
// booking already happened.
func publish(ctx context.Context, events queue.Publisher, log *zap.Logger, event queue.Event) {
	event.OccurredAt = time.Now().UTC()
	if err := events.Publish(ctx, event); err != nil {
		log.Warn("Event not published",
			zap.Error(err),
			zap.String("type", event.Type),
			zap.String("reservation_ref", event.ReservationRef))
	}
}

func logWarnings(log *zap.Logger, reservationRef string, travelID uuid.UUID, warnings []booking.Warning) {
	for _, w := range warnings {
		log.Warn("Room priced at zero, travel has no price entry for hotel",
			zap.String("reservation_ref", reservationRef),
			zap.String("travel_id", travelID.String()),
			zap.String("hotel_id", w.HotelID.String()),
			zap.Int("room", w.Room+1))
	}
}
