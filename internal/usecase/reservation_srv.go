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
	"pilgrimage-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService interface {
	CreateReservation(ctx context.Context, actor booking.Actor, req *request.CreateReservationRequest) (*response.ReservationDetailResponse, error)
	GetReservation(ctx context.Context, actor booking.Actor, id string) (*response.ReservationDetailResponse, error)
	ListReservations(ctx context.Context, actor booking.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error)
	UpdateReservationRooms(ctx context.Context, actor booking.Actor, id string, req *request.UpdateRoomsRequest) (*response.ReservationDetailResponse, error)
	GetHistory(ctx context.Context, actor booking.Actor, id string) ([]response.HistoryEntryResponse, error)
	GetDocuments(ctx context.Context, actor booking.Actor, id string) ([]response.RoomDocumentResponse, error)

	// Admin only
	ChangeStatus(ctx context.Context, actor booking.Actor, id string, req *request.ChangeStatusRequest) (*response.ReservationResponse, error)
	DeleteReservation(ctx context.Context, actor booking.Actor, id string) error
}

type reservationService struct {
	store  repository.Store
	events queue.Publisher
	guard  booking.Guard
	log    *zap.Logger
}

func NewReservationService(store repository.Store, events queue.Publisher, guard booking.Guard, log *zap.Logger) ReservationService {
	return &reservationService{
		store:  store,
		events: events,
		guard:  guard,
		log:    log.With(zap.String("service", "reservation")),
	}
}

// reservationTree is a reservation with everything needed to price and settle it.
type reservationTree struct {
	reservation *entity.Reservation
	travel      *entity.Travel
	payments    []entity.Payment
}

func (t reservationTree) detail() (response.ReservationDetailResponse, []booking.Warning) {
	table := booking.NewPriceTable(t.travel.PriceEntries)
	cost := booking.ComputeTotal(table, t.reservation.Rooms)
	settlement := booking.Settle(table, t.reservation.Rooms, t.payments)

	// rendered status is the derived one
	t.reservation.PaymentStatus = settlement.Status
	return response.ReservationToDetail(t.reservation, t.travel.Ref, cost, settlement, t.payments), settlement.Warnings
}

// loadTree reads a reservation and its rooms, travel and payments with repo.
// Ownership is checked once the row is known.
func loadTree(ctx context.Context, repo *repository.Repository, actor booking.Actor, id uuid.UUID, lock bool) (*reservationTree, error) {
	find := repo.Reservation.FindByID
	if lock {
		find = repo.Reservation.LockByID
	}

	reservation, err := find(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, booking.NotFoundf("reservation %s", id)
	}
	if err := actor.CanAccess(reservation); err != nil {
		return nil, err
	}

	if reservation.Rooms, err = repo.Room.FindByReservationID(ctx, reservation.ID); err != nil {
		return nil, err
	}

	travel, err := repo.Travel.FindByID(ctx, reservation.TravelID)
	if err != nil {
		return nil, err
	}
	if travel == nil {
		return nil, booking.NotFoundf("travel %s of reservation %s", reservation.TravelID, reservation.Ref)
	}

	payments, err := repo.Payment.FindByReservationID(ctx, reservation.ID)
	if err != nil {
		return nil, err
	}

	return &reservationTree{reservation: reservation, travel: travel, payments: payments}, nil
}

func (s *reservationService) CreateReservation(ctx context.Context, actor booking.Actor, req *request.CreateReservationRequest) (*response.ReservationDetailResponse, error) {
	if err := actor.RequireRole("create reservations"); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		s.log.Warn("Create reservation validation failed", zap.Error(err))
		return nil, err
	}

	meccah, err := parseOptionalID(req.MeccahHotelID, "meccah hotel")
	if err != nil {
		return nil, err
	}
	madina, err := parseOptionalID(req.MadinaHotelID, "madina hotel")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rooms, err := buildRooms(req.Rooms, meccah, madina, now)
	if err != nil {
		s.log.Warn("Create reservation rejected", zap.Error(err), zap.String("travel_ref", req.TravelRef))
		return nil, err
	}

	reservation := &entity.Reservation{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Ref:           utils.GenerateReservationRef(),
		AgencyID:      actor.ID,
		Status:        entity.ReservationStatusPending,
		MeccahHotelID: meccah,
		MadinaHotelID: madina,
		Rooms:         rooms,
	}

	var tree *reservationTree
	err = s.store.WithTx(ctx, func(repo *repository.Repository) error {
		travel, err := repo.Travel.LockByRef(ctx, req.TravelRef)
		if err != nil {
			return err
		}
		if travel == nil {
			return booking.Validationf("travel %s does not exist", req.TravelRef)
		}

		reserved, err := repo.Reservation.CountOccupiedSpots(ctx, travel.ID, nil)
		if err != nil {
			return err
		}
		if err := s.guard.Check(travel, reserved, rooms); err != nil {
			return err
		}

		settlement := booking.Settle(booking.NewPriceTable(travel.PriceEntries), rooms, nil)
		reservation.TravelID = travel.ID
		reservation.PaymentStatus = settlement.Status

		if err := repo.Reservation.Create(ctx, reservation); err != nil {
			return err
		}
		if err := repo.Room.CreateBatch(ctx, reservation.ID, reservation.Rooms); err != nil {
			return err
		}

		entry := booking.DataEntry(reservation.ID, actor.ID, now)
		if err := repo.History.Append(ctx, &entry); err != nil {
			return err
		}

		tree = &reservationTree{reservation: reservation, travel: travel}
		return nil
	})
	if err != nil {
		s.log.Warn("Create reservation failed",
			zap.Error(err),
			zap.String("travel_ref", req.TravelRef),
			zap.String("agency_id", actor.ID.String()))
		return nil, storeError(err, "reservation ref "+reservation.Ref)
	}

	resp, warnings := tree.detail()
	logWarnings(s.log, reservation.Ref, reservation.TravelID, warnings)

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("ref", reservation.Ref),
		zap.String("travel_ref", req.TravelRef),
		zap.Int("rooms", len(rooms)),
		zap.String("total", resp.Total))

	publish(ctx, s.events, s.log, queue.Event{
		Type:           queue.EventReservationCreated,
		ReservationID:  reservation.ID.String(),
		ReservationRef: reservation.Ref,
		TravelID:       reservation.TravelID.String(),
		AgencyID:       reservation.AgencyID.String(),
		ActorID:        actor.ID.String(),
		Status:         string(reservation.Status),
		PaymentStatus:  string(reservation.PaymentStatus),
		Total:          resp.Total,
	})

	return &resp, nil
}

func (s *reservationService) GetReservation(ctx context.Context, actor booking.Actor, id string) (*response.ReservationDetailResponse, error) {
	if err := actor.RequireRole("view reservations"); err != nil {
		return nil, err
	}
	reservationID, err := parseID(id, "reservation")
	if err != nil {
		return nil, err
	}

	tree, err := loadTree(ctx, s.store.Repo(), actor, reservationID, false)
	if err != nil {
		return nil, err
	}

	resp, _ := tree.detail()
	return &resp, nil
}

// ListReservations returns the actor's own reservations, or all of them for admins.
func (s *reservationService) ListReservations(ctx context.Context, actor booking.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	if err := actor.RequireRole("list reservations"); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	var agencyID *uuid.UUID
	if !actor.IsAdmin() {
		agencyID = &actor.ID
	}

	repo := s.store.Repo()
	total, err := repo.Reservation.Count(ctx, agencyID)
	if err != nil {
		return nil, fmt.Errorf("count reservations: %w", err)
	}

	reservations, err := repo.Reservation.List(ctx, agencyID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	out := make([]response.ReservationResponse, len(reservations))
	for i := range reservations {
		out[i] = response.ReservationToResponse(&reservations[i])
	}
	return response.NewPaginatedResponse(out, req.Page, req.Limit(), total), nil
}

func (s *reservationService) UpdateReservationRooms(ctx context.Context, actor booking.Actor, id string, req *request.UpdateRoomsRequest) (*response.ReservationDetailResponse, error) {
	if err := actor.RequireRole("edit reservations"); err != nil {
		return nil, err
	}
	reservationID, err := parseID(id, "reservation")
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		s.log.Warn("Update rooms validation failed", zap.Error(err), zap.String("reservation_id", id))
		return nil, err
	}

	meccah, err := parseOptionalID(req.MeccahHotelID, "meccah hotel")
	if err != nil {
		return nil, err
	}
	madina, err := parseOptionalID(req.MadinaHotelID, "madina hotel")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rooms, err := buildRooms(req.Rooms, meccah, madina, now)
	if err != nil {
		return nil, err
	}

	var tree *reservationTree
	err = s.store.WithTx(ctx, func(repo *repository.Repository) error {
		var err error
		tree, err = loadTree(ctx, repo, actor, reservationID, true)
		if err != nil {
			return err
		}
		reservation := tree.reservation
		if reservation.Status == entity.ReservationStatusCancelled {
			return fmt.Errorf("%w: reservation %s is cancelled and cannot be edited", booking.ErrInvalidTransition, reservation.Ref)
		}

		travel, err := repo.Travel.LockByID(ctx, reservation.TravelID)
		if err != nil {
			return err
		}
		if travel == nil {
			return booking.NotFoundf("travel %s of reservation %s", reservation.TravelID, reservation.Ref)
		}
		tree.travel = travel

		reserved, err := repo.Reservation.CountOccupiedSpots(ctx, travel.ID, &reservation.ID)
		if err != nil {
			return err
		}
		if err := s.guard.Check(travel, reserved, rooms); err != nil {
			return err
		}

		if err := repo.Room.DeleteByReservationID(ctx, reservation.ID); err != nil {
			return err
		}
		if err := repo.Room.CreateBatch(ctx, reservation.ID, rooms); err != nil {
			return err
		}
		reservation.Rooms = rooms
		reservation.MeccahHotelID = meccah
		reservation.MadinaHotelID = madina

		settlement := booking.Settle(booking.NewPriceTable(travel.PriceEntries), rooms, tree.payments)
		reservation.PaymentStatus = settlement.Status
		reservation.UpdatedAt = now
		if err := repo.Reservation.Update(ctx, reservation); err != nil {
			return err
		}

		entry := booking.DataEntry(reservation.ID, actor.ID, now)
		return repo.History.Append(ctx, &entry)
	})
	if err != nil {
		s.log.Warn("Update reservation rooms failed", zap.Error(err), zap.String("reservation_id", id))
		return nil, storeError(err, "reservation "+id)
	}

	resp, warnings := tree.detail()
	logWarnings(s.log, tree.reservation.Ref, tree.travel.ID, warnings)

	s.log.Info("Reservation rooms updated",
		zap.String("reservation_id", id),
		zap.Int("rooms", len(rooms)),
		zap.String("payment_status", string(tree.reservation.PaymentStatus)))

	return &resp, nil
}

func (s *reservationService) ChangeStatus(ctx context.Context, actor booking.Actor, id string, req *request.ChangeStatusRequest) (*response.ReservationResponse, error) {
	if err := actor.RequireAdmin("change reservation status"); err != nil {
		return nil, err
	}
	reservationID, err := parseID(id, "reservation")
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	next := entity.ReservationStatus(req.Status)

	var (
		reservation *entity.Reservation
		previous    entity.ReservationStatus
	)
	err = s.store.WithTx(ctx, func(repo *repository.Repository) error {
		var err error
		reservation, err = repo.Reservation.LockByID(ctx, reservationID)
		if err != nil {
			return err
		}
		if reservation == nil {
			return booking.NotFoundf("reservation %s", id)
		}

		previous = reservation.Status
		if err := booking.CanTransition(previous, next); err != nil {
			return err
		}

		now := time.Now().UTC()
		reservation.Status = next
		reservation.UpdatedAt = now
		if err := repo.Reservation.Update(ctx, reservation); err != nil {
			return err
		}

		entry := booking.StatusEntry(reservation.ID, actor.ID, previous, next, now)
		return repo.History.Append(ctx, &entry)
	})
	if err != nil {
		s.log.Warn("Change reservation status failed",
			zap.Error(err),
			zap.String("reservation_id", id),
			zap.String("status", req.Status))
		return nil, storeError(err, "reservation "+id)
	}

	s.log.Info("Reservation status changed",
		zap.String("reservation_id", id),
		zap.String("from", string(previous)),
		zap.String("to", string(next)))

	publish(ctx, s.events, s.log, queue.Event{
		Type:           queue.EventReservationStatusChanged,
		ReservationID:  reservation.ID.String(),
		ReservationRef: reservation.Ref,
		TravelID:       reservation.TravelID.String(),
		AgencyID:       reservation.AgencyID.String(),
		ActorID:        actor.ID.String(),
		Status:         string(next),
		PreviousStatus: string(previous),
	})

	resp := response.ReservationToResponse(reservation)
	return &resp, nil
}

func (s *reservationService) DeleteReservation(ctx context.Context, actor booking.Actor, id string) error {
	if err := actor.RequireAdmin("delete reservations"); err != nil {
		return err
	}
	reservationID, err := parseID(id, "reservation")
	if err != nil {
		return err
	}

	err = s.store.WithTx(ctx, func(repo *repository.Repository) error {
		reservation, err := repo.Reservation.LockByID(ctx, reservationID)
		if err != nil {
			return err
		}
		if reservation == nil {
			return booking.NotFoundf("reservation %s", id)
		}
		return repo.Reservation.Delete(ctx, reservation.ID)
	})
	if err != nil {
		return storeError(err, "reservation "+id)
	}

	s.log.Info("Reservation deleted",
		zap.String("reservation_id", id),
		zap.String("actor_id", actor.ID.String()))
	return nil
}

func (s *reservationService) GetHistory(ctx context.Context, actor booking.Actor, id string) ([]response.HistoryEntryResponse, error) {
	if err := actor.RequireRole("view reservation history"); err != nil {
		return nil, err
	}
	reservationID, err := parseID(id, "reservation")
	if err != nil {
		return nil, err
	}

	repo := s.store.Repo()
	reservation, err := repo.Reservation.FindByID(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("find reservation %s: %w", id, err)
	}
	if reservation == nil {
		return nil, booking.NotFoundf("reservation %s", id)
	}
	if err := actor.CanAccess(reservation); err != nil {
		return nil, err
	}

	entries, err := repo.History.FindByReservationID(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("load history of reservation %s: %w", id, err)
	}

	out := make([]response.HistoryEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = response.HistoryEntryToResponse(e)
	}
	return out, nil
}

// GetDocuments allocates the printable rooms of a single reservation.
func (s *reservationService) GetDocuments(ctx context.Context, actor booking.Actor, id string) ([]response.RoomDocumentResponse, error) {
	if err := actor.RequireRole("generate room documents"); err != nil {
		return nil, err
	}
	reservationID, err := parseID(id, "reservation")
	if err != nil {
		return nil, err
	}

	repo := s.store.Repo()
	tree, err := loadTree(ctx, repo, actor, reservationID, false)
	if err != nil {
		return nil, err
	}

	names, err := repo.User.FindNames(ctx, []uuid.UUID{tree.reservation.AgencyID})
	if err != nil {
		return nil, fmt.Errorf("resolve agency of reservation %s: %w", id, err)
	}

	set := []booking.ResolvedReservation{{
		Reservation: *tree.reservation,
		AgencyName:  names[tree.reservation.AgencyID],
	}}

	docs := []response.RoomDocumentResponse{}
	for doc := range booking.AllocateReservations(set) {
		docs = append(docs, response.RoomDocumentToResponse(doc))
	}
	return docs, nil
}
