package usecase

import (
	"context"
	"fmt"
	"testing"

	"pilgrimage-booking/internal/booking"
	"pilgrimage-booking/internal/data/entity"
	"pilgrimage-booking/internal/dto/request"
	"pilgrimage-booking/internal/dto/response"
	"pilgrimage-booking/pkg/queue"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	ctx    context.Context
	store  *fakeStore
	cache  *memCache
	events *recordingPublisher
	svc    *Service

	admin  booking.Actor
	agency booking.Actor
	other  booking.Actor
	meccah uuid.UUID
	madina uuid.UUID
	travel *response.TravelResponse
}

func newFixture(t *testing.T, spots int) *fixture {
	t.Helper()

	f := &fixture{
		ctx:    context.Background(),
		store:  newFakeStore(),
		cache:  newMemCache(),
		events: &recordingPublisher{},
		admin:  booking.Actor{ID: uuid.New(), Role: entity.RoleAdmin},
		agency: booking.Actor{ID: uuid.New(), Role: entity.RoleAgency},
		other:  booking.Actor{ID: uuid.New(), Role: entity.RoleAgency},
	}
	f.svc = NewService(f.store, f.cache, f.events, booking.NewGuard(booking.PolicyAdultsOnly), zap.NewNop())

	f.store.state.users[f.agency.ID] = entity.User{BaseNoDelete: entity.BaseNoDelete{ID: f.agency.ID}, Name: "Al Noor Travel", Role: entity.RoleAgency}
	f.store.state.users[f.other.ID] = entity.User{BaseNoDelete: entity.BaseNoDelete{ID: f.other.ID}, Name: "Safa Tours", Role: entity.RoleAgency}

	meccah, err := f.svc.Travel.CreateHotel(f.ctx, f.admin, &request.CreateHotelRequest{Name: "Hilton Makkah", City: "MECCAH"})
	require.NoError(t, err)
	madina, err := f.svc.Travel.CreateHotel(f.ctx, f.admin, &request.CreateHotelRequest{Name: "Pullman Madinah", City: "MADINA"})
	require.NoError(t, err)
	f.meccah = uuid.MustParse(meccah.ID)
	f.madina = uuid.MustParse(madina.ID)

	f.travel, err = f.svc.Travel.CreateTravel(f.ctx, f.admin, &request.TravelRequest{
		Name:           "Umrah Ramadan",
		DepartAt:       "2027-02-10",
		ArriveAt:       "2027-02-25",
		AvailableSpots: spots,
		Distribution:   "10 Meccah / 5 Madina",
		PriceEntries: []request.PriceEntryRequest{{
			HotelID:    meccah.ID,
			Double:     "40000",
			Triple:     "35000",
			Quadruple:  "30000",
			Quintuple:  "25000",
			Food:       "2000",
			Commission: "500",
		}},
	})
	require.NoError(t, err)
	return f
}

func memberReq(name, memberType string, food bool) request.MemberRequest {
	return request.MemberRequest{
		Name:               name,
		Type:               memberType,
		DateOfBirth:        "1980-05-01",
		Sex:                "M",
		PassportNumber:     "P" + name,
		PassportExpiryDate: "2030-01-01",
		FoodInclusions:     food,
	}
}

func membersReq(prefix, memberType string, n int) []request.MemberRequest {
	out := make([]request.MemberRequest, n)
	for i := range out {
		out[i] = memberReq(fmt.Sprintf("%s%d", prefix, i+1), memberType, false)
	}
	return out
}

func (f *fixture) doubleRoomRequest() *request.CreateReservationRequest {
	return &request.CreateReservationRequest{
		TravelRef:     f.travel.Ref,
		MeccahHotelID: f.meccah.String(),
		MadinaHotelID: f.madina.String(),
		Rooms: []request.RoomRequest{{
			RoomType: "DOUBLE",
			Members:  []request.MemberRequest{memberReq("Ahmed", "ADULT", true), memberReq("Fatima", "ADULT", false)},
		}},
	}
}

func (f *fixture) reserve(t *testing.T, actor booking.Actor, req *request.CreateReservationRequest) *response.ReservationDetailResponse {
	t.Helper()
	res, err := f.svc.Reservation.CreateReservation(f.ctx, actor, req)
	require.NoError(t, err)
	return res
}

func TestCreateReservation_ComputesTotal(t *testing.T) {
	f := newFixture(t, 10)

	res := f.reserve(t, f.agency, f.doubleRoomRequest())

	assert.Equal(t, "42000.00", res.Total)
	assert.Equal(t, "0.00", res.Paid)
	assert.Equal(t, "42000.00", res.Balance)
	assert.Equal(t, entity.ReservationStatusPending, res.Status)
	assert.Equal(t, entity.PaymentStatusPending, res.PaymentStatus)
	assert.Equal(t, f.agency.ID.String(), res.AgencyID)
	assert.Empty(t, res.Warnings)
	require.Len(t, res.Rooms, 1)
	assert.Equal(t, f.madina.String(), *res.Rooms[0].MadinaHotelID)

	history, err := f.svc.Reservation.GetHistory(f.ctx, f.agency, res.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, entity.HistoryData, history[0].Type)

	assert.Equal(t, []string{queue.EventReservationCreated}, f.events.types())
}

func TestCreateReservation_UnpricedHotelWarns(t *testing.T) {
	f := newFixture(t, 10)
	req := f.doubleRoomRequest()
	req.MeccahHotelID = uuid.NewString()

	res := f.reserve(t, f.agency, req)

	assert.Equal(t, "0.00", res.Total)
	require.Len(t, res.Warnings, 1)
}

func TestCreateReservation_CapacityScenario(t *testing.T) {
	f := newFixture(t, 10)

	first := &request.CreateReservationRequest{
		TravelRef:     f.travel.Ref,
		MeccahHotelID: f.meccah.String(),
		Rooms: []request.RoomRequest{
			{RoomType: "QUADRUPLE", Members: membersReq("A", "ADULT", 4)},
			{RoomType: "QUADRUPLE", Members: append(membersReq("B", "ADULT", 2), membersReq("C", "CHILD", 2)...)},
		},
	}
	f.reserve(t, f.agency, first)

	travel, err := f.svc.Travel.GetTravel(f.ctx, f.agency, f.travel.Ref)
	require.NoError(t, err)
	assert.Equal(t, 8, travel.Reserved)
	assert.Equal(t, 2, travel.Remaining)

	second := &request.CreateReservationRequest{
		TravelRef:     f.travel.Ref,
		MeccahHotelID: f.meccah.String(),
		Rooms:         []request.RoomRequest{{RoomType: "QUINTUPLE", Members: membersReq("D", "ADULT", 5)}},
	}
	_, err = f.svc.Reservation.CreateReservation(f.ctx, f.other, second)
	assert.ErrorIs(t, err, booking.ErrInsufficientCapacity)

	list, err := f.svc.Reservation.ListReservations(f.ctx, f.admin, &request.PaginatedRequest{Page: 1, PerPage: 20})
	require.NoError(t, err)
	assert.Len(t, list.Data, 1)
}

func TestCreateReservation_Rejections(t *testing.T) {
	f := newFixture(t, 10)

	tests := []struct {
		name   string
		actor  booking.Actor
		mutate func(*request.CreateReservationRequest)
		want   error
	}{
		{
			name:   "unknown travel",
			actor:  f.agency,
			mutate: func(r *request.CreateReservationRequest) { r.TravelRef = "TRV-MISSING" },
			want:   booking.ErrValidation,
		},
		{
			name:  "too many members for a double",
			actor: f.agency,
			mutate: func(r *request.CreateReservationRequest) {
				r.Rooms[0].Members = membersReq("X", "ADULT", 3)
			},
			want: booking.ErrValidation,
		},
		{
			name:  "no meccah hotel",
			actor: f.agency,
			mutate: func(r *request.CreateReservationRequest) {
				r.MeccahHotelID = ""
			},
			want: booking.ErrValidation,
		},
		{
			name:   "unknown role",
			actor:  booking.Actor{ID: uuid.New(), Role: "guest"},
			mutate: func(*request.CreateReservationRequest) {},
			want:   booking.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.doubleRoomRequest()
			tt.mutate(req)

			_, err := f.svc.Reservation.CreateReservation(f.ctx, tt.actor, req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.Empty(t, f.store.state.reservations)
	assert.Empty(t, f.store.state.history)
}

func TestRecordPayment_CompletesAndConfirms(t *testing.T) {
	f := newFixture(t, 10)
	res := f.reserve(t, f.agency, f.doubleRoomRequest())

	result, err := f.svc.Payment.RecordPayment(f.ctx, f.agency, &request.RecordPaymentRequest{
		ReservationRef: res.Ref,
		PaymentRef:     "TRX-001",
		Amount:         "42000",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusCompleted, result.PaymentStatus)
	assert.Equal(t, entity.ReservationStatusConfirmed, result.Status)
	assert.Equal(t, "0.00", result.Balance)
	assert.Equal(t, res.Ref, result.Payment.ReservationRef)

	history, err := f.svc.Reservation.GetHistory(f.ctx, f.agency, res.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, entity.HistoryData, history[0].Type)
	assert.Equal(t, entity.HistoryPayment, history[1].Type)
	assert.Equal(t, "42000.00", *history[1].Amount)
	assert.Equal(t, entity.HistoryStatus, history[2].Type)
	assert.Equal(t, "PENDING", *history[2].OldStatus)
	assert.Equal(t, "CONFIRMED", *history[2].NewStatus)

	detail, err := f.svc.Reservation.GetReservation(f.ctx, f.agency, res.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusCompleted, detail.PaymentStatus)
	assert.Equal(t, "42000.00", detail.Paid)
	require.Len(t, detail.Payments, 1)

	assert.Equal(t, []string{queue.EventReservationCreated, queue.EventPaymentRecorded}, f.events.types())
	assert.Equal(t, "PENDING", f.events.events[1].PreviousStatus)
}

func TestRecordPayment_PartialStaysPending(t *testing.T) {
	f := newFixture(t, 10)
	res := f.reserve(t, f.agency, f.doubleRoomRequest())

	result, err := f.svc.Payment.RecordPayment(f.ctx, f.agency, &request.RecordPaymentRequest{
		ReservationRef: res.Ref,
		PaymentRef:     "TRX-001",
		Amount:         "20000",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, result.PaymentStatus)
	assert.Equal(t, entity.ReservationStatusConfirmed, result.Status)
	assert.Equal(t, "22000.00", result.Balance)

	result, err = f.svc.Payment.RecordPayment(f.ctx, f.agency, &request.RecordPaymentRequest{
		ReservationRef: res.Ref,
		PaymentRef:     "TRX-002",
		Amount:         "22000",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusCompleted, result.PaymentStatus)

	history, err := f.svc.Reservation.GetHistory(f.ctx, f.agency, res.ID)
	require.NoError(t, err)
	// one status entry only: the second payment found the reservation confirmed
	assert.Len(t, history, 4)
}

func TestRecordPayment_Rejections(t *testing.T) {
	f := newFixture(t, 10)
	res := f.reserve(t, f.agency, f.doubleRoomRequest())

	_, err := f.svc.Payment.RecordPayment(f.ctx, f.agency, &request.RecordPaymentRequest{
		ReservationRef: res.Ref, PaymentRef: "TRX-001", Amount: "1000",
	})
	require.NoError(t, err)

	t.Run("duplicate payment ref", func(t *testing.T) {
		_, err := f.svc.Payment.RecordPayment(f.ctx, f.agency, &request.RecordPaymentRequest{
			ReservationRef: res.Ref, PaymentRef: "TRX-001", Amount: "1000",
		})
		assert.ErrorIs(t, err, booking.ErrDuplicateRef)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		_, err := f.svc.Payment.RecordPayment(f.ctx, f.agency, &request.RecordPaymentRequest{
			ReservationRef: "RSV-MISSING", PaymentRef: "TRX-002", Amount: "1000",
		})
		assert.ErrorIs(t, err, booking.ErrValidation)
	})

	t.Run("non positive amount", func(t *testing.T) {
		_, err := f.svc.Payment.RecordPayment(f.ctx, f.agency, &request.RecordPaymentRequest{
			ReservationRef: res.Ref, PaymentRef: "TRX-003", Amount: "0",
		})
		assert.ErrorIs(t, err, booking.ErrValidation)
	})

	t.Run("another agency", func(t *testing.T) {
		_, err := f.svc.Payment.RecordPayment(f.ctx, f.other, &request.RecordPaymentRequest{
			ReservationRef: res.Ref, PaymentRef: "TRX-004", Amount: "1000",
		})
		assert.ErrorIs(t, err, booking.ErrUnauthorized)
	})

	t.Run("cancelled reservation", func(t *testing.T) {
		_, err := f.svc.Reservation.ChangeStatus(f.ctx, f.admin, res.ID, &request.ChangeStatusRequest{Status: "CANCELLED"})
		require.NoError(t, err)

		_, err = f.svc.Payment.RecordPayment(f.ctx, f.agency, &request.RecordPaymentRequest{
			ReservationRef: res.Ref, PaymentRef: "TRX-005", Amount: "1000",
		})
		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
	})

	assert.Len(t, f.store.state.payments, 1)

	check, err := f.svc.Payment.CheckPaymentRef(f.ctx, f.agency, "TRX-001")
	require.NoError(t, err)
	assert.False(t, check.Available)
	check, err = f.svc.Payment.CheckPaymentRef(f.ctx, f.agency, "TRX-999")
	require.NoError(t, err)
	assert.True(t, check.Available)
}

func TestUpdatePayment_ResettlesAndAudits(t *testing.T) {
	f := newFixture(t, 10)
	res := f.reserve(t, f.agency, f.doubleRoomRequest())

	paid, err := f.svc.Payment.RecordPayment(f.ctx, f.agency, &request.RecordPaymentRequest{
		ReservationRef: res.Ref, PaymentRef: "TRX-001", Amount: "42000",
	})
	require.NoError(t, err)
	require.Equal(t, entity.PaymentStatusCompleted, paid.PaymentStatus)

	_, err = f.svc.Payment.UpdatePayment(f.ctx, f.agency, paid.Payment.ID, &request.UpdatePaymentRequest{PaymentRef: "TRX-001", Amount: "40000"})
	assert.ErrorIs(t, err, booking.ErrUnauthorized)

	updated, err := f.svc.Payment.UpdatePayment(f.ctx, f.admin, paid.Payment.ID, &request.UpdatePaymentRequest{
		PaymentRef: "TRX-001-FIX",
		Amount:     "40000",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, updated.PaymentStatus)
	assert.Equal(t, "2000.00", updated.Balance)
	assert.Equal(t, "TRX-001-FIX", updated.Payment.Ref)

	detail, err := f.svc.Reservation.GetReservation(f.ctx, f.admin, res.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, detail.PaymentStatus)

	history, err := f.svc.Reservation.GetHistory(f.ctx, f.admin, res.ID)
	require.NoError(t, err)
	last := history[len(history)-1]
	assert.Equal(t, entity.HistoryPayment, last.Type)
	assert.Equal(t, "40000.00", *last.Amount)
	assert.Equal(t, "42000.00", *last.PreviousAmount)

	assert.Equal(t, queue.EventPaymentUpdated, f.events.events[len(f.events.events)-1].Type)
}

func TestUpdatePayment_RefCollision(t *testing.T) {
	f := newFixture(t, 10)
	res := f.reserve(t, f.agency, f.doubleRoomRequest())

	first, err := f.svc.Payment.RecordPayment(f.ctx, f.agency, &request.RecordPaymentRequest{
		ReservationRef: res.Ref, PaymentRef: "TRX-001", Amount: "1000",
	})
	require.NoError(t, err)
	_, err = f.svc.Payment.RecordPayment(f.ctx, f.agency, &request.RecordPaymentRequest{
		ReservationRef: res.Ref, PaymentRef: "TRX-002", Amount: "1000",
	})
	require.NoError(t, err)

	_, err = f.svc.Payment.UpdatePayment(f.ctx, f.admin, first.Payment.ID, &request.UpdatePaymentRequest{PaymentRef: "TRX-002", Amount: "1000"})
	assert.ErrorIs(t, err, booking.ErrDuplicateRef)
}

func TestChangeStatus(t *testing.T) {
	f := newFixture(t, 10)
	res := f.reserve(t, f.agency, f.doubleRoomRequest())

	t.Run("non admin is rejected before any read", func(t *testing.T) {
		_, err := f.svc.Reservation.ChangeStatus(f.ctx, f.agency, uuid.NewString(), &request.ChangeStatusRequest{Status: "CONFIRMED"})
		assert.ErrorIs(t, err, booking.ErrUnauthorized)
		assert.NotErrorIs(t, err, booking.ErrNotFound)
	})

	t.Run("same state is rejected", func(t *testing.T) {
		_, err := f.svc.Reservation.ChangeStatus(f.ctx, f.admin, res.ID, &request.ChangeStatusRequest{Status: "PENDING"})
		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		_, err := f.svc.Reservation.ChangeStatus(f.ctx, f.admin, uuid.NewString(), &request.ChangeStatusRequest{Status: "CONFIRMED"})
		assert.ErrorIs(t, err, booking.ErrNotFound)
	})

	steps := []struct {
		to      string
		wantErr error
	}{
		{to: "CONFIRMED"},
		{to: "PENDING"},
		{to: "CANCELLED"},
		{to: "PENDING", wantErr: booking.ErrInvalidTransition},
	}
	for _, step := range steps {
		_, err := f.svc.Reservation.ChangeStatus(f.ctx, f.admin, res.ID, &request.ChangeStatusRequest{Status: step.to})
		if step.wantErr != nil {
			assert.ErrorIs(t, err, step.wantErr)
			continue
		}
		require.NoError(t, err, "to %s", step.to)
	}

	history, err := f.svc.Reservation.GetHistory(f.ctx, f.admin, res.ID)
	require.NoError(t, err)
	require.Len(t, history, 4)
	for _, e := range history[1:] {
		assert.Equal(t, entity.HistoryStatus, e.Type)
	}

	// cancelled reservations free their spots
	travel, err := f.svc.Travel.GetTravel(f.ctx, f.admin, f.travel.Ref)
	require.NoError(t, err)
	assert.Equal(t, 0, travel.Reserved)
}

func TestUpdateReservationRooms(t *testing.T) {
	f := newFixture(t, 6)
	res := f.reserve(t, f.agency, f.doubleRoomRequest())

	_, err := f.svc.Payment.RecordPayment(f.ctx, f.agency, &request.RecordPaymentRequest{
		ReservationRef: res.Ref, PaymentRef: "TRX-001", Amount: "42000",
	})
	require.NoError(t, err)

	// the reservation's own 2 spots are excluded, so 6 adults fit a 6-spot travel
	updated, err := f.svc.Reservation.UpdateReservationRooms(f.ctx, f.agency, res.ID, &request.UpdateRoomsRequest{
		MeccahHotelID: f.meccah.String(),
		Rooms: []request.RoomRequest{
			{RoomType: "DOUBLE", Members: membersReq("A", "ADULT", 2)},
			{RoomType: "QUADRUPLE", Members: membersReq("B", "ADULT", 4)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "70000.00", updated.Total)
	assert.Equal(t, "28000.00", updated.Balance)
	assert.Equal(t, entity.PaymentStatusPending, updated.PaymentStatus)
	assert.Equal(t, entity.ReservationStatusConfirmed, updated.Status)

	_, err = f.svc.Reservation.UpdateReservationRooms(f.ctx, f.agency, res.ID, &request.UpdateRoomsRequest{
		MeccahHotelID: f.meccah.String(),
		Rooms: []request.RoomRequest{
			{RoomType: "DOUBLE", Members: membersReq("A", "ADULT", 2)},
			{RoomType: "QUADRUPLE", Members: membersReq("B", "ADULT", 4)},
			{RoomType: "DOUBLE", Members: membersReq("C", "ADULT", 1)},
		},
	})
	assert.ErrorIs(t, err, booking.ErrInsufficientCapacity)

	_, err = f.svc.Reservation.UpdateReservationRooms(f.ctx, f.other, res.ID, &request.UpdateRoomsRequest{
		MeccahHotelID: f.meccah.String(),
		Rooms:         []request.RoomRequest{{RoomType: "DOUBLE", Members: membersReq("D", "ADULT", 1)}},
	})
	assert.ErrorIs(t, err, booking.ErrUnauthorized)

	detail, err := f.svc.Reservation.GetReservation(f.ctx, f.agency, res.ID)
	require.NoError(t, err)
	require.Len(t, detail.Rooms, 2)
	assert.Len(t, detail.Rooms[1].Members, 4)

	history, err := f.svc.Reservation.GetHistory(f.ctx, f.agency, res.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.HistoryData, history[len(history)-1].Type)
}

func TestReservationAccess(t *testing.T) {
	f := newFixture(t, 10)
	mine := f.reserve(t, f.agency, f.doubleRoomRequest())
	f.reserve(t, f.other, f.doubleRoomRequest())

	_, err := f.svc.Reservation.GetReservation(f.ctx, f.other, mine.ID)
	assert.ErrorIs(t, err, booking.ErrUnauthorized)

	_, err = f.svc.Reservation.GetReservation(f.ctx, f.agency, "not-a-uuid")
	assert.ErrorIs(t, err, booking.ErrValidation)

	page := &request.PaginatedRequest{Page: 1, PerPage: 20}
	own, err := f.svc.Reservation.ListReservations(f.ctx, f.agency, page)
	require.NoError(t, err)
	require.Len(t, own.Data, 1)
	assert.Equal(t, mine.ID, own.Data[0].ID)
	assert.Equal(t, int64(1), own.Pagination.Total)

	all, err := f.svc.Reservation.ListReservations(f.ctx, f.admin, page)
	require.NoError(t, err)
	assert.Len(t, all.Data, 2)
}

func TestDeleteReservation(t *testing.T) {
	f := newFixture(t, 10)
	res := f.reserve(t, f.agency, f.doubleRoomRequest())

	assert.ErrorIs(t, f.svc.Reservation.DeleteReservation(f.ctx, f.agency, res.ID), booking.ErrUnauthorized)
	require.NoError(t, f.svc.Reservation.DeleteReservation(f.ctx, f.admin, res.ID))
	assert.ErrorIs(t, f.svc.Reservation.DeleteReservation(f.ctx, f.admin, res.ID), booking.ErrNotFound)

	_, err := f.svc.Reservation.GetReservation(f.ctx, f.admin, res.ID)
	assert.ErrorIs(t, err, booking.ErrNotFound)
	assert.Empty(t, f.store.state.history)
}

func TestRoomingList_CollectiveChunks(t *testing.T) {
	f := newFixture(t, 20)

	f.reserve(t, f.agency, &request.CreateReservationRequest{
		TravelRef:     f.travel.Ref,
		MeccahHotelID: f.meccah.String(),
		Rooms:         []request.RoomRequest{{RoomType: "COLLECTIVE", Members: membersReq("M", "ADULT", 7)}},
	})
	f.reserve(t, f.other, &request.CreateReservationRequest{
		TravelRef:     f.travel.Ref,
		MeccahHotelID: f.meccah.String(),
		Rooms: []request.RoomRequest{
			{RoomType: "COLLECTIVE", Members: membersReq("F", "ADULT", 5)},
			{RoomType: "DOUBLE", Members: membersReq("D", "ADULT", 2)},
		},
	})

	_, err := f.svc.Travel.GetRoomingList(f.ctx, f.agency, f.travel.Ref)
	assert.ErrorIs(t, err, booking.ErrUnauthorized)

	list, err := f.svc.Travel.GetRoomingList(f.ctx, f.admin, f.travel.Ref)
	require.NoError(t, err)

	var collective []int
	agencies := map[string]int{}
	for _, room := range list.Rooms {
		if room.Type == entity.RoomCollective {
			collective = append(collective, len(room.Occupants))
		}
		for _, o := range room.Occupants {
			agencies[o.Agency]++
		}
	}
	assert.Equal(t, []int{5, 5, 2}, collective)
	assert.Equal(t, map[string]int{"Al Noor Travel": 7, "Safa Tours": 7}, agencies)

	for i, room := range list.Rooms {
		assert.Equal(t, i+1, room.Number)
	}
}

func TestGetDocuments(t *testing.T) {
	f := newFixture(t, 10)
	res := f.reserve(t, f.agency, f.doubleRoomRequest())

	docs, err := f.svc.Reservation.GetDocuments(f.ctx, f.agency, res.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, entity.RoomDouble, docs[0].Type)
	require.Len(t, docs[0].Occupants, 2)
	assert.Equal(t, "Al Noor Travel", docs[0].Occupants[0].Agency)

	_, err = f.svc.Reservation.GetDocuments(f.ctx, f.other, res.ID)
	assert.ErrorIs(t, err, booking.ErrUnauthorized)
}

func TestTravelAdministration(t *testing.T) {
	f := newFixture(t, 10)
	f.reserve(t, f.agency, f.doubleRoomRequest())

	_, err := f.svc.Travel.CreateTravel(f.ctx, f.agency, &request.TravelRequest{})
	assert.ErrorIs(t, err, booking.ErrUnauthorized)

	got, err := f.svc.Travel.GetTravel(f.ctx, f.agency, f.travel.Ref)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Reserved)
	assert.Contains(t, f.cache.travels, f.travel.Ref)

	update := &request.TravelRequest{
		Name:           "Umrah Ramadan",
		DepartAt:       "2027-02-10",
		ArriveAt:       "2027-02-25",
		AvailableSpots: 1,
		PriceEntries: []request.PriceEntryRequest{{
			HotelID: f.meccah.String(), Double: "45000", Triple: "35000", Quadruple: "30000",
			Quintuple: "25000", Food: "2000", Commission: "500",
		}},
	}
	_, err = f.svc.Travel.UpdateTravel(f.ctx, f.admin, f.travel.Ref, update)
	assert.ErrorIs(t, err, booking.ErrInsufficientCapacity)

	update.AvailableSpots = 12
	updated, err := f.svc.Travel.UpdateTravel(f.ctx, f.admin, f.travel.Ref, update)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Remaining)
	assert.Equal(t, []string{f.travel.Ref}, f.cache.invalidated)
	assert.NotContains(t, f.cache.travels, f.travel.Ref)

	update.ArriveAt = "2027-02-01"
	_, err = f.svc.Travel.UpdateTravel(f.ctx, f.admin, f.travel.Ref, update)
	assert.ErrorIs(t, err, booking.ErrValidation)

	_, err = f.svc.Travel.GetTravel(f.ctx, f.agency, "TRV-MISSING")
	assert.ErrorIs(t, err, booking.ErrNotFound)

	hotels, err := f.svc.Travel.ListHotels(f.ctx, f.agency, "MADINA")
	require.NoError(t, err)
	require.Len(t, hotels, 1)
	assert.Equal(t, "Pullman Madinah", hotels[0].Name)

	_, err = f.svc.Travel.ListHotels(f.ctx, f.agency, "JEDDAH")
	assert.ErrorIs(t, err, booking.ErrValidation)
}

func TestListReservations_Pages(t *testing.T) {
	f := newFixture(t, 20)
	var refs []string
	for range 5 {
		refs = append(refs, f.reserve(t, f.agency, f.doubleRoomRequest()).Ref)
	}

	first, err := f.svc.Reservation.ListReservations(f.ctx, f.agency, &request.PaginatedRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), first.Pagination.Total)
	assert.Equal(t, 3, first.Pagination.TotalPages)
	require.Len(t, first.Data, 2)
	assert.Equal(t, refs[4], first.Data[0].Ref)

	last, err := f.svc.Reservation.ListReservations(f.ctx, f.agency, &request.PaginatedRequest{Page: 3, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, last.Data, 1)
	assert.Equal(t, refs[0], last.Data[0].Ref)

	_, err = f.svc.Reservation.ListReservations(f.ctx, f.agency, &request.PaginatedRequest{Page: 0, PerPage: 2})
	assert.ErrorIs(t, err, booking.ErrValidation)
}

func TestUpdateTravel_ResettlesReservations(t *testing.T) {
	f := newFixture(t, 10)
	res := f.reserve(t, f.agency, f.doubleRoomRequest())

	_, err := f.svc.Payment.RecordPayment(f.ctx, f.agency, &request.RecordPaymentRequest{
		ReservationRef: res.Ref,
		PaymentRef:     "TRX-001",
		Amount:         "42000",
	})
	require.NoError(t, err)

	update := &request.TravelRequest{
		Name:           "Umrah Ramadan",
		DepartAt:       "2027-02-10",
		ArriveAt:       "2027-02-25",
		AvailableSpots: 10,
		PriceEntries: []request.PriceEntryRequest{{
			HotelID: f.meccah.String(), Double: "45000", Triple: "35000", Quadruple: "30000",
			Quintuple: "25000", Food: "2000", Commission: "500",
		}},
	}
	_, err = f.svc.Travel.UpdateTravel(f.ctx, f.admin, f.travel.Ref, update)
	require.NoError(t, err)

	detail, err := f.svc.Reservation.GetReservation(f.ctx, f.agency, res.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, detail.PaymentStatus)
	assert.Equal(t, "5000.00", detail.Balance)

	list, err := f.svc.Reservation.ListReservations(f.ctx, f.agency, &request.PaginatedRequest{Page: 1, PerPage: 20})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, detail.PaymentStatus, list.Data[0].PaymentStatus)

	history, err := f.svc.Reservation.GetHistory(f.ctx, f.agency, res.ID)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, entity.HistoryData, history[3].Type)

	// same prices again: nothing moves, nothing is audited
	_, err = f.svc.Travel.UpdateTravel(f.ctx, f.admin, f.travel.Ref, update)
	require.NoError(t, err)
	history, err = f.svc.Reservation.GetHistory(f.ctx, f.agency, res.ID)
	require.NoError(t, err)
	assert.Len(t, history, 4)
}

func TestRecordPayment_RejectsSubCentAmounts(t *testing.T) {
	f := newFixture(t, 10)
	res := f.reserve(t, f.agency, f.doubleRoomRequest())

	_, err := f.svc.Payment.RecordPayment(f.ctx, f.agency, &request.RecordPaymentRequest{
		ReservationRef: res.Ref,
		PaymentRef:     "TRX-001",
		Amount:         "41999.999",
	})
	assert.ErrorIs(t, err, booking.ErrValidation)
	assert.Empty(t, f.store.state.payments)

	detail, err := f.svc.Reservation.GetReservation(f.ctx, f.agency, res.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, detail.PaymentStatus)
}
