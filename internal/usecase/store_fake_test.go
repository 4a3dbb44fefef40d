package usecase

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"pilgrimage-booking/internal/data/entity"
	"pilgrimage-booking/internal/data/repository"
	"pilgrimage-booking/pkg/queue"

	"github.com/google/uuid"
)

// memState is the whole database of the fake store. WithTx works on a
// copy and only swaps it in on success.
type memState struct {
	users        map[uuid.UUID]entity.User
	hotels       map[uuid.UUID]entity.Hotel
	travels      map[uuid.UUID]entity.Travel
	reservations map[uuid.UUID]entity.Reservation
	order        []uuid.UUID
	rooms        map[uuid.UUID][]entity.ReservationRoom
	payments     []entity.Payment
	history      []entity.HistoryEntry
}

func newMemState() *memState {
	return &memState{
		users:        map[uuid.UUID]entity.User{},
		hotels:       map[uuid.UUID]entity.Hotel{},
		travels:      map[uuid.UUID]entity.Travel{},
		reservations: map[uuid.UUID]entity.Reservation{},
		rooms:        map[uuid.UUID][]entity.ReservationRoom{},
	}
}

func (s *memState) clone() *memState {
	return &memState{
		users:        maps.Clone(s.users),
		hotels:       maps.Clone(s.hotels),
		travels:      maps.Clone(s.travels),
		reservations: maps.Clone(s.reservations),
		order:        slices.Clone(s.order),
		rooms:        maps.Clone(s.rooms),
		payments:     slices.Clone(s.payments),
		history:      slices.Clone(s.history),
	}
}

type fakeStore struct {
	mu    sync.Mutex
	state *memState
	txs   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{state: newMemState()}
}

func (s *fakeStore) Repo() *repository.Repository {
	return newFakeRepository(s.state)
}

func (s *fakeStore) WithTx(ctx context.Context, fn func(repo *repository.Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txs++
	tx := s.state.clone()
	if err := fn(newFakeRepository(tx)); err != nil {
		return err
	}
	*s.state = *tx
	return nil
}

func newFakeRepository(st *memState) *repository.Repository {
	return &repository.Repository{
		User:        fakeUsers{st},
		Hotel:       fakeHotels{st},
		Travel:      fakeTravels{st},
		Reservation: fakeReservations{st},
		Room:        fakeRooms{st},
		Payment:     fakePayments{st},
		History:     fakeHistory{st},
	}
}

type fakeUsers struct{ st *memState }

func (r fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.st.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r fakeUsers) FindNames(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	for _, id := range ids {
		if u, ok := r.st.users[id]; ok {
			names[id] = u.Name
		}
	}
	return names, nil
}

type fakeHotels struct{ st *memState }

func (r fakeHotels) Create(_ context.Context, hotel *entity.Hotel) error {
	r.st.hotels[hotel.ID] = *hotel
	return nil
}

func (r fakeHotels) FindByID(_ context.Context, id uuid.UUID) (*entity.Hotel, error) {
	h, ok := r.st.hotels[id]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (r fakeHotels) FindAll(_ context.Context, city *entity.HotelCity) ([]entity.Hotel, error) {
	var out []entity.Hotel
	for _, h := range r.st.hotels {
		if city == nil || h.City == *city {
			out = append(out, h)
		}
	}
	slices.SortFunc(out, func(a, b entity.Hotel) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

type fakeTravels struct{ st *memState }

func (r fakeTravels) Create(_ context.Context, travel *entity.Travel) error {
	for _, t := range r.st.travels {
		if t.Ref == travel.Ref {
			return repository.ErrDuplicate
		}
	}
	for i := range travel.PriceEntries {
		travel.PriceEntries[i].ID = uuid.New()
		travel.PriceEntries[i].TravelID = travel.ID
	}
	t := *travel
	t.PriceEntries = slices.Clone(travel.PriceEntries)
	r.st.travels[travel.ID] = t
	return nil
}

func (r fakeTravels) FindByID(_ context.Context, id uuid.UUID) (*entity.Travel, error) {
	t, ok := r.st.travels[id]
	if !ok {
		return nil, nil
	}
	t.PriceEntries = slices.Clone(t.PriceEntries)
	return &t, nil
}

func (r fakeTravels) FindByRef(ctx context.Context, ref string) (*entity.Travel, error) {
	for id, t := range r.st.travels {
		if t.Ref == ref {
			return r.FindByID(ctx, id)
		}
	}
	return nil, nil
}

func (r fakeTravels) FindAll(_ context.Context) ([]entity.Travel, error) {
	out := slices.Collect(maps.Values(r.st.travels))
	slices.SortFunc(out, func(a, b entity.Travel) int { return a.DepartAt.Compare(b.DepartAt) })
	return out, nil
}

func (r fakeTravels) LockByRef(ctx context.Context, ref string) (*entity.Travel, error) {
	return r.FindByRef(ctx, ref)
}

func (r fakeTravels) LockByID(ctx context.Context, id uuid.UUID) (*entity.Travel, error) {
	return r.FindByID(ctx, id)
}

func (r fakeTravels) Update(_ context.Context, travel *entity.Travel) error {
	if _, ok := r.st.travels[travel.ID]; !ok {
		return repository.ErrNoRowsAffected
	}
	for i := range travel.PriceEntries {
		travel.PriceEntries[i].ID = uuid.New()
		travel.PriceEntries[i].TravelID = travel.ID
	}
	t := *travel
	t.PriceEntries = slices.Clone(travel.PriceEntries)
	r.st.travels[travel.ID] = t
	return nil
}

type fakeReservations struct{ st *memState }

func (r fakeReservations) Create(_ context.Context, reservation *entity.Reservation) error {
	for _, res := range r.st.reservations {
		if res.Ref == reservation.Ref {
			return repository.ErrDuplicate
		}
	}
	res := *reservation
	res.Rooms = nil
	r.st.reservations[res.ID] = res
	r.st.order = append(r.st.order, res.ID)
	return nil
}

func (r fakeReservations) FindByID(_ context.Context, id uuid.UUID) (*entity.Reservation, error) {
	res, ok := r.st.reservations[id]
	if !ok {
		return nil, nil
	}
	return &res, nil
}

func (r fakeReservations) FindByRef(ctx context.Context, ref string) (*entity.Reservation, error) {
	for id, res := range r.st.reservations {
		if res.Ref == ref {
			return r.FindByID(ctx, id)
		}
	}
	return nil, nil
}

func (r fakeReservations) LockByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	return r.FindByID(ctx, id)
}

func (r fakeReservations) LockByRef(ctx context.Context, ref string) (*entity.Reservation, error) {
	return r.FindByRef(ctx, ref)
}

func (r fakeReservations) filter(keep func(entity.Reservation) bool) []entity.Reservation {
	var out []entity.Reservation
	for _, id := range r.st.order {
		res, ok := r.st.reservations[id]
		if ok && keep(res) {
			out = append(out, res)
		}
	}
	return out
}

// List pages newest first like the SQL repository.
func (r fakeReservations) List(_ context.Context, agencyID *uuid.UUID, limit, offset int) ([]entity.Reservation, error) {
	all := r.filter(func(res entity.Reservation) bool {
		return agencyID == nil || res.AgencyID == *agencyID
	})
	slices.Reverse(all)
	if offset >= len(all) {
		return nil, nil
	}
	return all[offset:min(offset+limit, len(all))], nil
}

func (r fakeReservations) Count(_ context.Context, agencyID *uuid.UUID) (int64, error) {
	all := r.filter(func(res entity.Reservation) bool {
		return agencyID == nil || res.AgencyID == *agencyID
	})
	return int64(len(all)), nil
}

func (r fakeReservations) FindActiveByTravelID(_ context.Context, travelID uuid.UUID) ([]entity.Reservation, error) {
	return r.filter(func(res entity.Reservation) bool {
		return res.TravelID == travelID && res.Status != entity.ReservationStatusCancelled
	}), nil
}

func (r fakeReservations) Update(_ context.Context, reservation *entity.Reservation) error {
	res, ok := r.st.reservations[reservation.ID]
	if !ok {
		return repository.ErrNoRowsAffected
	}
	res.Status = reservation.Status
	res.PaymentStatus = reservation.PaymentStatus
	res.MeccahHotelID = reservation.MeccahHotelID
	res.MadinaHotelID = reservation.MadinaHotelID
	res.UpdatedAt = reservation.UpdatedAt
	r.st.reservations[res.ID] = res
	return nil
}

func (r fakeReservations) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.st.reservations[id]; !ok {
		return repository.ErrNoRowsAffected
	}
	delete(r.st.reservations, id)
	delete(r.st.rooms, id)
	r.st.order = slices.DeleteFunc(r.st.order, func(o uuid.UUID) bool { return o == id })
	r.st.payments = slices.DeleteFunc(r.st.payments, func(p entity.Payment) bool { return p.ReservationID == id })
	r.st.history = slices.DeleteFunc(r.st.history, func(e entity.HistoryEntry) bool { return e.ReservationID == id })
	return nil
}

func (r fakeReservations) CountOccupiedSpots(_ context.Context, travelID uuid.UUID, exclude *uuid.UUID) (int, error) {
	n := 0
	for id, res := range r.st.reservations {
		if res.TravelID != travelID || res.Status == entity.ReservationStatusCancelled {
			continue
		}
		if exclude != nil && id == *exclude {
			continue
		}
		for _, room := range r.st.rooms[id] {
			for _, m := range room.Members {
				if m.Type != entity.MemberBaby {
					n++
				}
			}
		}
	}
	return n, nil
}

type fakeRooms struct{ st *memState }

func (r fakeRooms) CreateBatch(_ context.Context, reservationID uuid.UUID, rooms []entity.ReservationRoom) error {
	stored := make([]entity.ReservationRoom, len(rooms))
	for i := range rooms {
		rooms[i].ID = uuid.New()
		rooms[i].ReservationID = reservationID
		rooms[i].Position = i
		for j := range rooms[i].Members {
			rooms[i].Members[j].ID = uuid.New()
			rooms[i].Members[j].RoomID = rooms[i].ID
			rooms[i].Members[j].Position = j
		}
		stored[i] = rooms[i]
		stored[i].Members = slices.Clone(rooms[i].Members)
	}
	r.st.rooms[reservationID] = stored
	return nil
}

func (r fakeRooms) FindByReservationID(_ context.Context, reservationID uuid.UUID) ([]entity.ReservationRoom, error) {
	return slices.Clone(r.st.rooms[reservationID]), nil
}

func (r fakeRooms) DeleteByReservationID(_ context.Context, reservationID uuid.UUID) error {
	delete(r.st.rooms, reservationID)
	return nil
}

type fakePayments struct{ st *memState }

func (r fakePayments) withRef(p entity.Payment) *entity.Payment {
	if res, ok := r.st.reservations[p.ReservationID]; ok {
		p.ReservationRef = res.Ref
	}
	return &p
}

func (r fakePayments) Create(_ context.Context, payment *entity.Payment) error {
	for _, p := range r.st.payments {
		if p.Ref == payment.Ref {
			return repository.ErrDuplicate
		}
	}
	r.st.payments = append(r.st.payments, *payment)
	return nil
}

func (r fakePayments) FindByID(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	for _, p := range r.st.payments {
		if p.ID == id {
			return r.withRef(p), nil
		}
	}
	return nil, nil
}

func (r fakePayments) FindByRef(_ context.Context, ref string) (*entity.Payment, error) {
	for _, p := range r.st.payments {
		if p.Ref == ref {
			return r.withRef(p), nil
		}
	}
	return nil, nil
}

func (r fakePayments) FindByReservationID(_ context.Context, reservationID uuid.UUID) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, p := range r.st.payments {
		if p.ReservationID == reservationID {
			out = append(out, *r.withRef(p))
		}
	}
	return out, nil
}

func (r fakePayments) Update(_ context.Context, payment *entity.Payment) error {
	for i, p := range r.st.payments {
		if p.ID == payment.ID {
			for _, other := range r.st.payments {
				if other.Ref == payment.Ref && other.ID != payment.ID {
					return repository.ErrDuplicate
				}
			}
			r.st.payments[i].Ref = payment.Ref
			r.st.payments[i].Amount = payment.Amount
			r.st.payments[i].UpdatedAt = payment.UpdatedAt
			return nil
		}
	}
	return repository.ErrNoRowsAffected
}

type fakeHistory struct{ st *memState }

func (r fakeHistory) Append(_ context.Context, entry *entity.HistoryEntry) error {
	r.st.history = append(r.st.history, *entry)
	return nil
}

func (r fakeHistory) FindByReservationID(_ context.Context, reservationID uuid.UUID) ([]entity.HistoryEntry, error) {
	var out []entity.HistoryEntry
	for _, e := range r.st.history {
		if e.ReservationID == reservationID {
			out = append(out, e)
		}
	}
	return out, nil
}

type memCache struct {
	travels     map[string]entity.Travel
	invalidated []string
}

func newMemCache() *memCache {
	return &memCache{travels: map[string]entity.Travel{}}
}

func (c *memCache) Get(_ context.Context, ref string) (*entity.Travel, bool) {
	t, ok := c.travels[ref]
	if !ok {
		return nil, false
	}
	return &t, true
}

func (c *memCache) Set(_ context.Context, travel *entity.Travel) {
	c.travels[travel.Ref] = *travel
}

func (c *memCache) Invalidate(_ context.Context, ref string) {
	delete(c.travels, ref)
	c.invalidated = append(c.invalidated, ref)
}

type recordingPublisher struct {
	events []queue.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event queue.Event) error {
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}
