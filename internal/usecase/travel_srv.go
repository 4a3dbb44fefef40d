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
	"pilgrimage-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TravelService interface {
	// Hotels (admin)
	CreateHotel(ctx context.Context, actor booking.Actor, req *request.CreateHotelRequest) (*response.HotelResponse, error)
	ListHotels(ctx context.Context, actor booking.Actor, city string) ([]response.HotelResponse, error)

	// Travels: admin writes, every role reads
	CreateTravel(ctx context.Context, actor booking.Actor, req *request.TravelRequest) (*response.TravelResponse, error)
	UpdateTravel(ctx context.Context, actor booking.Actor, ref string, req *request.TravelRequest) (*response.TravelResponse, error)
	GetTravel(ctx context.Context, actor booking.Actor, ref string) (*response.TravelResponse, error)
	ListTravels(ctx context.Context, actor booking.Actor) ([]response.TravelResponse, error)

	// GetRoomingList allocates the rooms of every active reservation of a travel (admin).
	GetRoomingList(ctx context.Context, actor booking.Actor, ref string) (*response.RoomingListResponse, error)
}

type travelService struct {
	store repository.Store
	cache repository.TravelCache
	log   *zap.Logger
}

func NewTravelService(store repository.Store, cache repository.TravelCache, log *zap.Logger) TravelService {
	return &travelService{
		store: store,
		cache: cache,
		log:   log.With(zap.String("service", "travel")),
	}
}

func (s *travelService) CreateHotel(ctx context.Context, actor booking.Actor, req *request.CreateHotelRequest) (*response.HotelResponse, error) {
	if err := actor.RequireAdmin("create hotels"); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		s.log.Warn("Create hotel validation failed", zap.Error(err))
		return nil, err
	}

	now := time.Now().UTC()
	hotel := &entity.Hotel{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name: req.Name,
		City: entity.HotelCity(req.City),
	}

	if err := s.store.Repo().Hotel.Create(ctx, hotel); err != nil {
		return nil, storeError(err, "hotel "+req.Name)
	}

	s.log.Info("Hotel created",
		zap.String("hotel_id", hotel.ID.String()),
		zap.String("city", req.City))

	resp := response.HotelToResponse(hotel)
	return &resp, nil
}

func (s *travelService) ListHotels(ctx context.Context, actor booking.Actor, city string) ([]response.HotelResponse, error) {
	if err := actor.RequireRole("list hotels"); err != nil {
		return nil, err
	}

	var filter *entity.HotelCity
	if city != "" {
		c := entity.HotelCity(city)
		if c != entity.CityMeccah && c != entity.CityMadina {
			return nil, booking.Validationf("unknown city %q", city)
		}
		filter = &c
	}

	hotels, err := s.store.Repo().Hotel.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}

	out := make([]response.HotelResponse, len(hotels))
	for i := range hotels {
		out[i] = response.HotelToResponse(&hotels[i])
	}
	return out, nil
}

// buildTravel parses the request into travel fields and price entries.
// Every priced hotel must exist and appear once.
func (s *travelService) buildTravel(ctx context.Context, repo *repository.Repository, req *request.TravelRequest, travel *entity.Travel) error {
	departAt, err := parseDate(req.DepartAt, "depart date")
	if err != nil {
		return err
	}
	arriveAt, err := parseDate(req.ArriveAt, "arrive date")
	if err != nil {
		return err
	}
	if arriveAt.Before(departAt) {
		return booking.Validationf("arrive date %s is before depart date %s", req.ArriveAt, req.DepartAt)
	}

	seen := make(map[uuid.UUID]bool, len(req.PriceEntries))
	entries := make([]entity.PriceEntry, len(req.PriceEntries))
	for i, pe := range req.PriceEntries {
		hotelID, err := parseID(pe.HotelID, "hotel")
		if err != nil {
			return err
		}
		if seen[hotelID] {
			return booking.Validationf("hotel %s is priced twice", pe.HotelID)
		}
		seen[hotelID] = true

		hotel, err := repo.Hotel.FindByID(ctx, hotelID)
		if err != nil {
			return fmt.Errorf("find hotel %s: %w", pe.HotelID, err)
		}
		if hotel == nil {
			return booking.Validationf("hotel %s does not exist", pe.HotelID)
		}

		entry := entity.PriceEntry{HotelID: hotelID}
		if entry.Double, err = parseAmount(pe.Double, "double price"); err != nil {
			return err
		}
		if entry.Triple, err = parseAmount(pe.Triple, "triple price"); err != nil {
			return err
		}
		if entry.Quadruple, err = parseAmount(pe.Quadruple, "quadruple price"); err != nil {
			return err
		}
		if entry.Quintuple, err = parseAmount(pe.Quintuple, "quintuple price"); err != nil {
			return err
		}
		if entry.Food, err = parseAmount(pe.Food, "food price"); err != nil {
			return err
		}
		if entry.Commission, err = parseAmount(pe.Commission, "commission"); err != nil {
			return err
		}
		entries[i] = entry
	}

	travel.Name = req.Name
	travel.DepartAt = departAt
	travel.ArriveAt = arriveAt
	travel.DurationNights = int(arriveAt.Sub(departAt).Hours() / 24)
	travel.AvailableSpots = req.AvailableSpots
	travel.Distribution = req.Distribution
	travel.PriceEntries = entries
	return nil
}

func (s *travelService) CreateTravel(ctx context.Context, actor booking.Actor, req *request.TravelRequest) (*response.TravelResponse, error) {
	if err := actor.RequireAdmin("create travels"); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		s.log.Warn("Create travel validation failed", zap.Error(err))
		return nil, err
	}

	now := time.Now().UTC()
	travel := &entity.Travel{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Ref: utils.GenerateTravelRef(),
	}

	err := s.store.WithTx(ctx, func(repo *repository.Repository) error {
		if err := s.buildTravel(ctx, repo, req, travel); err != nil {
			return err
		}
		return repo.Travel.Create(ctx, travel)
	})
	if err != nil {
		return nil, storeError(err, "travel ref "+travel.Ref)
	}

	s.log.Info("Travel created",
		zap.String("travel_id", travel.ID.String()),
		zap.String("ref", travel.Ref),
		zap.Int("available_spots", travel.AvailableSpots),
		zap.Int("price_entries", len(travel.PriceEntries)))

	resp := response.TravelToResponse(travel, 0, travel.AvailableSpots)
	return &resp, nil
}

func (s *travelService) UpdateTravel(ctx context.Context, actor booking.Actor, ref string, req *request.TravelRequest) (*response.TravelResponse, error) {
	if err := actor.RequireAdmin("update travels"); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		s.log.Warn("Update travel validation failed", zap.Error(err), zap.String("ref", ref))
		return nil, err
	}

	var (
		travel    *entity.Travel
		reserved  int
		resettled int
	)
	err := s.store.WithTx(ctx, func(repo *repository.Repository) error {
		var err error
		travel, err = repo.Travel.LockByRef(ctx, ref)
		if err != nil {
			return err
		}
		if travel == nil {
			return booking.NotFoundf("travel %s", ref)
		}

		if err := s.buildTravel(ctx, repo, req, travel); err != nil {
			return err
		}

		reserved, err = repo.Reservation.CountOccupiedSpots(ctx, travel.ID, nil)
		if err != nil {
			return err
		}
		if travel.AvailableSpots < reserved {
			return fmt.Errorf("%w: travel %s already has %d spot(s) reserved, cannot lower capacity to %d",
				booking.ErrInsufficientCapacity, ref, reserved, travel.AvailableSpots)
		}

		now := time.Now().UTC()
		travel.UpdatedAt = now
		if err := repo.Travel.Update(ctx, travel); err != nil {
			return err
		}

		resettled, err = s.resettle(ctx, repo, actor, travel, now)
		return err
	})
	if err != nil {
		return nil, storeError(err, "travel "+ref)
	}

	s.cache.Invalidate(ctx, ref)

	s.log.Info("Travel updated",
		zap.String("travel_id", travel.ID.String()),
		zap.String("ref", ref),
		zap.Int("available_spots", travel.AvailableSpots),
		zap.Int("resettled_reservations", resettled))

	resp := response.TravelToResponse(travel, reserved, booking.Remaining(travel.AvailableSpots, reserved))
	return &resp, nil
}

// resettle re-derives the payment status of every active reservation on a
// travel whose prices just changed. Reservations whose status moves get a
// DATA history entry.
func (s *travelService) resettle(ctx context.Context, repo *repository.Repository, actor booking.Actor, travel *entity.Travel, now time.Time) (int, error) {
	active, err := repo.Reservation.FindActiveByTravelID(ctx, travel.ID)
	if err != nil {
		return 0, err
	}

	table := booking.NewPriceTable(travel.PriceEntries)
	changed := 0
	for _, r := range active {
		reservation, err := repo.Reservation.LockByID(ctx, r.ID)
		if err != nil {
			return changed, err
		}
		if reservation == nil || reservation.Status == entity.ReservationStatusCancelled {
			continue
		}

		rooms, err := repo.Room.FindByReservationID(ctx, reservation.ID)
		if err != nil {
			return changed, err
		}
		payments, err := repo.Payment.FindByReservationID(ctx, reservation.ID)
		if err != nil {
			return changed, err
		}

		settlement := booking.Settle(table, rooms, payments)
		if settlement.Status == reservation.PaymentStatus {
			continue
		}

		s.log.Info("Reservation payment status re-derived after price change",
			zap.String("reservation_ref", reservation.Ref),
			zap.String("from", string(reservation.PaymentStatus)),
			zap.String("to", string(settlement.Status)))

		reservation.PaymentStatus = settlement.Status
		reservation.UpdatedAt = now
		if err := repo.Reservation.Update(ctx, reservation); err != nil {
			return changed, err
		}
		entry := booking.DataEntry(reservation.ID, actor.ID, now)
		if err := repo.History.Append(ctx, &entry); err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

// loadTravel reads through the cache. Only the travel and its prices are
// cached; capacity is always counted from the store.
func (s *travelService) loadTravel(ctx context.Context, ref string) (*entity.Travel, error) {
	if travel, ok := s.cache.Get(ctx, ref); ok {
		return travel, nil
	}

	travel, err := s.store.Repo().Travel.FindByRef(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("find travel %s: %w", ref, err)
	}
	if travel == nil {
		return nil, booking.NotFoundf("travel %s", ref)
	}

	s.cache.Set(ctx, travel)
	return travel, nil
}

func (s *travelService) GetTravel(ctx context.Context, actor booking.Actor, ref string) (*response.TravelResponse, error) {
	if err := actor.RequireRole("view travels"); err != nil {
		return nil, err
	}

	travel, err := s.loadTravel(ctx, ref)
	if err != nil {
		return nil, err
	}

	reserved, err := s.store.Repo().Reservation.CountOccupiedSpots(ctx, travel.ID, nil)
	if err != nil {
		return nil, fmt.Errorf("count reserved spots of travel %s: %w", ref, err)
	}

	resp := response.TravelToResponse(travel, reserved, booking.Remaining(travel.AvailableSpots, reserved))
	return &resp, nil
}

func (s *travelService) ListTravels(ctx context.Context, actor booking.Actor) ([]response.TravelResponse, error) {
	if err := actor.RequireRole("view travels"); err != nil {
		return nil, err
	}

	repo := s.store.Repo()
	travels, err := repo.Travel.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list travels: %w", err)
	}

	out := make([]response.TravelResponse, len(travels))
	for i := range travels {
		reserved, err := repo.Reservation.CountOccupiedSpots(ctx, travels[i].ID, nil)
		if err != nil {
			return nil, fmt.Errorf("count reserved spots of travel %s: %w", travels[i].Ref, err)
		}
		out[i] = response.TravelToResponse(&travels[i], reserved, booking.Remaining(travels[i].AvailableSpots, reserved))
	}
	return out, nil
}

func (s *travelService) GetRoomingList(ctx context.Context, actor booking.Actor, ref string) (*response.RoomingListResponse, error) {
	if err := actor.RequireAdmin("generate rooming lists"); err != nil {
		return nil, err
	}

	travel, err := s.loadTravel(ctx, ref)
	if err != nil {
		return nil, err
	}

	repo := s.store.Repo()
	reservations, err := repo.Reservation.FindActiveByTravelID(ctx, travel.ID)
	if err != nil {
		return nil, fmt.Errorf("list reservations of travel %s: %w", ref, err)
	}

	agencyIDs := make([]uuid.UUID, len(reservations))
	for i := range reservations {
		agencyIDs[i] = reservations[i].AgencyID
	}
	names, err := repo.User.FindNames(ctx, agencyIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve agencies of travel %s: %w", ref, err)
	}

	set := make([]booking.ResolvedReservation, len(reservations))
	for i := range reservations {
		rooms, err := repo.Room.FindByReservationID(ctx, reservations[i].ID)
		if err != nil {
			return nil, fmt.Errorf("load rooms of reservation %s: %w", reservations[i].Ref, err)
		}
		reservations[i].Rooms = rooms
		set[i] = booking.ResolvedReservation{
			Reservation: reservations[i],
			AgencyName:  names[reservations[i].AgencyID],
		}
	}

	resp := &response.RoomingListResponse{
		TravelRef:  travel.Ref,
		TravelName: travel.Name,
		Rooms:      []response.RoomDocumentResponse{},
	}
	for doc := range booking.AllocateReservations(set) {
		resp.Rooms = append(resp.Rooms, response.RoomDocumentToResponse(doc))
	}

	s.log.Info("Rooming list generated",
		zap.String("ref", ref),
		zap.Int("reservations", len(set)),
		zap.Int("rooms", len(resp.Rooms)))

	return resp, nil
}
