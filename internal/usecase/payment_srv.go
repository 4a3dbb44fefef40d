package usecase

import (
	"context"
	"fmt"
	"time"

	"pilgrimage-booking/internal/booking"
	"pilgrimage-booking/internal/data/entity"
	"pilgrimage-booking/internal/data/repository"
	"pilgrimage-booking/internal/dto/request"
	"pilgrimage-booking/internal/dto/response"
	"pilgrimage-booking/pkg/queue"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PaymentService interface {
	RecordPayment(ctx context.Context, actor booking.Actor, req *request.RecordPaymentRequest) (*response.PaymentResultResponse, error)
	CheckPaymentRef(ctx context.Context, actor booking.Actor, ref string) (*response.PaymentRefCheckResponse, error)

	// Admin only
	UpdatePayment(ctx context.Context, actor booking.Actor, id string, req *request.UpdatePaymentRequest) (*response.PaymentResultResponse, error)
}

type paymentService struct {
	store  repository.Store
	events queue.Publisher
	log    *zap.Logger
}

func NewPaymentService(store repository.Store, events queue.Publisher, log *zap.Logger) PaymentService {
	return &paymentService{
		store:  store,
		events: events,
		log:    log.With(zap.String("service", "payment")),
	}
}

// settle recomputes the payment position of a locked reservation and
// stores the derived payment status.
func settle(ctx context.Context, repo *repository.Repository, reservation *entity.Reservation, now time.Time) (booking.Settlement, error) {
	rooms, err := repo.Room.FindByReservationID(ctx, reservation.ID)
	if err != nil {
		return booking.Settlement{}, err
	}
	travel, err := repo.Travel.FindByID(ctx, reservation.TravelID)
	if err != nil {
		return booking.Settlement{}, err
	}
	if travel == nil {
		return booking.Settlement{}, booking.NotFoundf("travel %s of reservation %s", reservation.TravelID, reservation.Ref)
	}
	payments, err := repo.Payment.FindByReservationID(ctx, reservation.ID)
	if err != nil {
		return booking.Settlement{}, err
	}

	settlement := booking.Settle(booking.NewPriceTable(travel.PriceEntries), rooms, payments)
	reservation.PaymentStatus = settlement.Status
	reservation.UpdatedAt = now
	if err := repo.Reservation.Update(ctx, reservation); err != nil {
		return booking.Settlement{}, err
	}
	return settlement, nil
}

func paymentResult(payment *entity.Payment, reservation *entity.Reservation, settlement booking.Settlement) *response.PaymentResultResponse {
	return &response.PaymentResultResponse{
		Payment:       response.PaymentToResponse(payment),
		Status:        reservation.Status,
		PaymentStatus: settlement.Status,
		Total:         settlement.Total.StringFixed(2),
		Paid:          settlement.Paid.StringFixed(2),
		Balance:       settlement.Balance.StringFixed(2),
		Warnings:      response.WarningsToStrings(settlement.Warnings),
	}
}

func (s *paymentService) RecordPayment(ctx context.Context, actor booking.Actor, req *request.RecordPaymentRequest) (*response.PaymentResultResponse, error) {
	if err := actor.RequireRole("record payments"); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		s.log.Warn("Record payment validation failed", zap.Error(err))
		return nil, err
	}
	amount, err := parseAmount(req.Amount, "payment")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payment := &entity.Payment{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Ref:            req.PaymentRef,
		ReservationRef: req.ReservationRef,
		Amount:         amount,
		RecordedBy:     actor.ID,
	}

	var (
		reservation *entity.Reservation
		previous    entity.ReservationStatus
		settlement  booking.Settlement
	)
	err = s.store.WithTx(ctx, func(repo *repository.Repository) error {
		var err error
		reservation, err = repo.Reservation.LockByRef(ctx, req.ReservationRef)
		if err != nil {
			return err
		}
		if reservation == nil {
			return booking.Validationf("reservation %s does not exist", req.ReservationRef)
		}
		if err := actor.CanAccess(reservation); err != nil {
			return err
		}
		if reservation.Status == entity.ReservationStatusCancelled {
			return fmt.Errorf("%w: reservation %s is cancelled and cannot take payments", booking.ErrInvalidTransition, reservation.Ref)
		}

		existing, err := repo.Payment.FindByRef(ctx, req.PaymentRef)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: payment ref %s", booking.ErrDuplicateRef, req.PaymentRef)
		}

		payment.ReservationID = reservation.ID
		if err := repo.Payment.Create(ctx, payment); err != nil {
			return err
		}
		entry := booking.PaymentEntry(reservation.ID, actor.ID, amount, nil, now)
		if err := repo.History.Append(ctx, &entry); err != nil {
			return err
		}

		previous = reservation.Status
		if previous == entity.ReservationStatusPending {
			reservation.Status = entity.ReservationStatusConfirmed
			entry := booking.StatusEntry(reservation.ID, actor.ID, previous, reservation.Status, now)
			if err := repo.History.Append(ctx, &entry); err != nil {
				return err
			}
		}

		settlement, err = settle(ctx, repo, reservation, now)
		return err
	})
	if err != nil {
		s.log.Warn("Record payment failed",
			zap.Error(err),
			zap.String("reservation_ref", req.ReservationRef),
			zap.String("payment_ref", req.PaymentRef))
		return nil, storeError(err, "payment ref "+req.PaymentRef)
	}

	logWarnings(s.log, reservation.Ref, reservation.TravelID, settlement.Warnings)
	s.log.Info("Payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("payment_ref", payment.Ref),
		zap.String("reservation_ref", reservation.Ref),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("payment_status", string(settlement.Status)))

	publish(ctx, s.events, s.log, queue.Event{
		Type:           queue.EventPaymentRecorded,
		ReservationID:  reservation.ID.String(),
		ReservationRef: reservation.Ref,
		TravelID:       reservation.TravelID.String(),
		AgencyID:       reservation.AgencyID.String(),
		ActorID:        actor.ID.String(),
		Status:         string(reservation.Status),
		PreviousStatus: string(previous),
		PaymentStatus:  string(settlement.Status),
		PaymentRef:     payment.Ref,
		Amount:         amount.StringFixed(2),
		Total:          settlement.Total.StringFixed(2),
	})

	return paymentResult(payment, reservation, settlement), nil
}

// UpdatePayment edits the ref and amount of a payment, then re-derives the
// payment status of its reservation.
func (s *paymentService) UpdatePayment(ctx context.Context, actor booking.Actor, id string, req *request.UpdatePaymentRequest) (*response.PaymentResultResponse, error) {
	if err := actor.RequireAdmin("edit payments"); err != nil {
		return nil, err
	}
	paymentID, err := parseID(id, "payment")
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	amount, err := parseAmount(req.Amount, "payment")
	if err != nil {
		return nil, err
	}

	var (
		payment        *entity.Payment
		reservation    *entity.Reservation
		previousAmount decimal.Decimal
		settlement     booking.Settlement
	)
	err = s.store.WithTx(ctx, func(repo *repository.Repository) error {
		var err error
		payment, err = repo.Payment.FindByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return booking.NotFoundf("payment %s", id)
		}

		reservation, err = repo.Reservation.LockByID(ctx, payment.ReservationID)
		if err != nil {
			return err
		}
		if reservation == nil {
			return booking.NotFoundf("reservation of payment %s", id)
		}

		if req.PaymentRef != payment.Ref {
			existing, err := repo.Payment.FindByRef(ctx, req.PaymentRef)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != payment.ID {
				return fmt.Errorf("%w: payment ref %s", booking.ErrDuplicateRef, req.PaymentRef)
			}
		}

		now := time.Now().UTC()
		previousAmount = payment.Amount
		payment.Ref = req.PaymentRef
		payment.Amount = amount
		payment.UpdatedAt = now
		if err := repo.Payment.Update(ctx, payment); err != nil {
			return err
		}

		entry := booking.PaymentEntry(reservation.ID, actor.ID, amount, &previousAmount, now)
		if err := repo.History.Append(ctx, &entry); err != nil {
			return err
		}

		settlement, err = settle(ctx, repo, reservation, now)
		return err
	})
	if err != nil {
		s.log.Warn("Update payment failed", zap.Error(err), zap.String("payment_id", id))
		return nil, storeError(err, "payment "+id)
	}

	s.log.Info("Payment updated",
		zap.String("payment_id", id),
		zap.String("reservation_ref", reservation.Ref),
		zap.String("previous_amount", previousAmount.StringFixed(2)),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("payment_status", string(settlement.Status)))

	publish(ctx, s.events, s.log, queue.Event{
		Type:           queue.EventPaymentUpdated,
		ReservationID:  reservation.ID.String(),
		ReservationRef: reservation.Ref,
		TravelID:       reservation.TravelID.String(),
		AgencyID:       reservation.AgencyID.String(),
		ActorID:        actor.ID.String(),
		Status:         string(reservation.Status),
		PaymentStatus:  string(settlement.Status),
		PaymentRef:     payment.Ref,
		Amount:         amount.StringFixed(2),
		Total:          settlement.Total.StringFixed(2),
	})

	return paymentResult(payment, reservation, settlement), nil
}

func (s *paymentService) CheckPaymentRef(ctx context.Context, actor booking.Actor, ref string) (*response.PaymentRefCheckResponse, error) {
	if err := actor.RequireRole("check payment refs"); err != nil {
		return nil, err
	}
	if ref == "" {
		return nil, booking.Validationf("payment ref is required")
	}

	existing, err := s.store.Repo().Payment.FindByRef(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("check payment ref %s: %w", ref, err)
	}
	return &response.PaymentRefCheckResponse{Ref: ref, Available: existing == nil}, nil
}
