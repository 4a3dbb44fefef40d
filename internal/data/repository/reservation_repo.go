package repository

import (
	"context"
	"errors"
	"fmt"

	"pilgrimage-booking/internal/data/entity"
	"pilgrimage-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByRef(ctx context.Context, ref string) (*entity.Reservation, error)
	// LockByID and LockByRef load the reservation row FOR UPDATE. Every
	// mutation of a reservation tree takes this lock first.
	LockByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	LockByRef(ctx context.Context, ref string) (*entity.Reservation, error)
	// List returns reservations newest first, restricted to one agency when agencyID is set.
	List(ctx context.Context, agencyID *uuid.UUID, limit, offset int) ([]entity.Reservation, error)
	Count(ctx context.Context, agencyID *uuid.UUID) (int64, error)
	// FindActiveByTravelID returns the non-cancelled reservations of a travel in creation order.
	FindActiveByTravelID(ctx context.Context, travelID uuid.UUID) ([]entity.Reservation, error)
	Update(ctx context.Context, reservation *entity.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error

	// CountOccupiedSpots counts non-baby members across the non-cancelled
	// reservations of a travel, ignoring the reservation given in exclude.
	CountOccupiedSpots(ctx context.Context, travelID uuid.UUID, exclude *uuid.UUID) (int, error)
}

type reservationRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewReservationRepository(db database.Querier, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, ref, travel_id, agency_id, status, payment_status, meccah_hotel_id, madina_hotel_id, created_at, updated_at`

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var reservation entity.Reservation
	err := row.Scan(
		&reservation.ID,
		&reservation.Ref,
		&reservation.TravelID,
		&reservation.AgencyID,
		&reservation.Status,
		&reservation.PaymentStatus,
		&reservation.MeccahHotelID,
		&reservation.MadinaHotelID,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (id, ref, travel_id, agency_id, status, payment_status, meccah_hotel_id, madina_hotel_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.Ref,
		reservation.TravelID,
		reservation.AgencyID,
		reservation.Status,
		reservation.PaymentStatus,
		reservation.MeccahHotelID,
		reservation.MadinaHotelID,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("ref", reservation.Ref),
			zap.String("agency_id", reservation.AgencyID.String()),
		)
		return fmt.Errorf("create reservation %s: %w", reservation.Ref, translate(err))
	}

	return nil
}

func (r *reservationRepository) findOne(ctx context.Context, query, key string, arg any) (*entity.Reservation, error) {
	reservation, err := scanReservation(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation",
			zap.Error(err),
			zap.Any(key, arg),
		)
		return nil, fmt.Errorf("find reservation by %s %v: %w", key, arg, translate(err))
	}
	return reservation, nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	return r.findOne(ctx, query, "id", id)
}

func (r *reservationRepository) FindByRef(ctx context.Context, ref string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE ref = $1`
	return r.findOne(ctx, query, "ref", ref)
}

func (r *reservationRepository) LockByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`
	return r.findOne(ctx, query, "id", id)
}

func (r *reservationRepository) LockByRef(ctx context.Context, ref string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE ref = $1 FOR UPDATE`
	return r.findOne(ctx, query, "ref", ref)
}

func (r *reservationRepository) findMany(ctx context.Context, query string, args ...any) ([]entity.Reservation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list reservations", zap.Error(err))
		return nil, fmt.Errorf("list reservations: %w", translate(err))
	}
	defer rows.Close()

	var reservations []entity.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, *reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservation rows: %w", err)
	}

	return reservations, nil
}

func (r *reservationRepository) List(ctx context.Context, agencyID *uuid.UUID, limit, offset int) ([]entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE ($1::uuid IS NULL OR agency_id = $1)
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`
	return r.findMany(ctx, query, agencyID, limit, offset)
}

func (r *reservationRepository) Count(ctx context.Context, agencyID *uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE ($1::uuid IS NULL OR agency_id = $1)`

	var total int64
	if err := r.db.QueryRow(ctx, query, agencyID).Scan(&total); err != nil {
		r.log.Error("Failed to count reservations", zap.Error(err))
		return 0, fmt.Errorf("count reservations: %w", translate(err))
	}
	return total, nil
}

func (r *reservationRepository) FindActiveByTravelID(ctx context.Context, travelID uuid.UUID) ([]entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE travel_id = $1 AND status <> 'CANCELLED'
		ORDER BY created_at, id
	`
	return r.findMany(ctx, query, travelID)
}

func (r *reservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		UPDATE reservations
		SET status = $2, payment_status = $3, meccah_hotel_id = $4, madina_hotel_id = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.Status,
		reservation.PaymentStatus,
		reservation.MeccahHotelID,
		reservation.MadinaHotelID,
		reservation.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update reservation",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
		)
		return fmt.Errorf("update reservation %s: %w", reservation.Ref, translate(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update reservation %s: %w", reservation.Ref, ErrNoRowsAffected)
	}

	return nil
}

// Delete removes the reservation. Rooms, members, payments and history go
// with it through ON DELETE CASCADE.
func (r *reservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete reservation",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return fmt.Errorf("delete reservation %s: %w", id.String(), translate(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete reservation %s: %w", id.String(), ErrNoRowsAffected)
	}

	r.log.Info("Reservation deleted", zap.String("reservation_id", id.String()))
	return nil
}

func (r *reservationRepository) CountOccupiedSpots(ctx context.Context, travelID uuid.UUID, exclude *uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(m.id)
		FROM reservations res
		JOIN reservation_rooms rr ON rr.reservation_id = res.id
		JOIN reservation_members m ON m.room_id = rr.id
		WHERE res.travel_id = $1
		  AND res.status <> 'CANCELLED'
		  AND m.member_type <> 'BABY'
		  AND ($2::uuid IS NULL OR res.id <> $2)
	`

	var count int
	err := r.db.QueryRow(ctx, query, travelID, exclude).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count occupied spots",
			zap.Error(err),
			zap.String("travel_id", travelID.String()),
		)
		return 0, fmt.Errorf("count occupied spots of travel %s: %w", travelID.String(), translate(err))
	}

	return count, nil
}
