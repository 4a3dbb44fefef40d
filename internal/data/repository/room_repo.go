package repository

import (
	"context"
	"fmt"

	"pilgrimage-booking/internal/data/entity"
	"pilgrimage-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RoomRepository stores the room tree (rooms and their members) of a reservation.
type RoomRepository interface {
	// CreateBatch inserts rooms and members in order. Positions and ids are assigned here.
	CreateBatch(ctx context.Context, reservationID uuid.UUID, rooms []entity.ReservationRoom) error
	// FindByReservationID returns rooms in position order with members populated.
	FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]entity.ReservationRoom, error)
	DeleteByReservationID(ctx context.Context, reservationID uuid.UUID) error
}

type roomRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewRoomRepository(db database.Querier, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

func (r *roomRepository) CreateBatch(ctx context.Context, reservationID uuid.UUID, rooms []entity.ReservationRoom) error {
	roomQuery := `
		INSERT INTO reservation_rooms (id, reservation_id, position, room_type, meccah_hotel_id, madina_hotel_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	memberQuery := `
		INSERT INTO reservation_members (id, room_id, position, name, member_type, date_of_birth, sex,
		                                 passport_number, passport_expiry, passport_doc_ref, food_inclusions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	for i := range rooms {
		room := &rooms[i]
		room.ID = uuid.New()
		room.ReservationID = reservationID
		room.Position = i

		_, err := r.db.Exec(ctx, roomQuery,
			room.ID,
			room.ReservationID,
			room.Position,
			room.RoomType,
			room.MeccahHotelID,
			room.MadinaHotelID,
			room.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create reservation room",
				zap.Error(err),
				zap.String("reservation_id", reservationID.String()),
				zap.Int("position", i),
			)
			return fmt.Errorf("create room %d of reservation %s: %w", i, reservationID.String(), translate(err))
		}

		for j := range room.Members {
			m := &room.Members[j]
			m.ID = uuid.New()
			m.RoomID = room.ID
			m.Position = j
			m.CreatedAt = room.CreatedAt

			_, err := r.db.Exec(ctx, memberQuery,
				m.ID,
				m.RoomID,
				m.Position,
				m.Name,
				m.Type,
				m.DateOfBirth,
				m.Sex,
				m.PassportNumber,
				m.PassportExpiry,
				m.PassportDocRef,
				m.FoodInclusions,
				m.CreatedAt,
			)
			if err != nil {
				r.log.Error("Failed to create reservation member",
					zap.Error(err),
					zap.String("room_id", room.ID.String()),
					zap.Int("position", j),
				)
				return fmt.Errorf("create member %d of room %s: %w", j, room.ID.String(), translate(err))
			}
		}
	}

	return nil
}

func (r *roomRepository) FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]entity.ReservationRoom, error) {
	roomQuery := `
		SELECT id, reservation_id, position, room_type, meccah_hotel_id, madina_hotel_id, created_at
		FROM reservation_rooms
		WHERE reservation_id = $1
		ORDER BY position
	`

	rows, err := r.db.Query(ctx, roomQuery, reservationID)
	if err != nil {
		r.log.Error("Failed to find rooms by reservation ID",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return nil, fmt.Errorf("find rooms by reservation ID %s: %w", reservationID.String(), translate(err))
	}
	defer rows.Close()

	var rooms []entity.ReservationRoom
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var room entity.ReservationRoom
		if err := rows.Scan(
			&room.ID,
			&room.ReservationID,
			&room.Position,
			&room.RoomType,
			&room.MeccahHotelID,
			&room.MadinaHotelID,
			&room.CreatedAt,
		); err != nil {
			r.log.Error("Failed to scan room row", zap.Error(err))
			return nil, fmt.Errorf("scan room row: %w", err)
		}
		index[room.ID] = len(rooms)
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate room rows: %w", err)
	}

	memberQuery := `
		SELECT m.id, m.room_id, m.position, m.name, m.member_type, m.date_of_birth, m.sex,
		       m.passport_number, m.passport_expiry, m.passport_doc_ref, m.food_inclusions, m.created_at
		FROM reservation_members m
		JOIN reservation_rooms rr ON rr.id = m.room_id
		WHERE rr.reservation_id = $1
		ORDER BY rr.position, m.position
	`

	memberRows, err := r.db.Query(ctx, memberQuery, reservationID)
	if err != nil {
		r.log.Error("Failed to find members by reservation ID",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return nil, fmt.Errorf("find members by reservation ID %s: %w", reservationID.String(), translate(err))
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var m entity.ReservationMember
		if err := memberRows.Scan(
			&m.ID,
			&m.RoomID,
			&m.Position,
			&m.Name,
			&m.Type,
			&m.DateOfBirth,
			&m.Sex,
			&m.PassportNumber,
			&m.PassportExpiry,
			&m.PassportDocRef,
			&m.FoodInclusions,
			&m.CreatedAt,
		); err != nil {
			r.log.Error("Failed to scan member row", zap.Error(err))
			return nil, fmt.Errorf("scan member row: %w", err)
		}
		i := index[m.RoomID]
		rooms[i].Members = append(rooms[i].Members, m)
	}
	if err := memberRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate member rows: %w", err)
	}

	return rooms, nil
}

func (r *roomRepository) DeleteByReservationID(ctx context.Context, reservationID uuid.UUID) error {
	query := `DELETE FROM reservation_rooms WHERE reservation_id = $1`

	_, err := r.db.Exec(ctx, query, reservationID)
	if err != nil {
		r.log.Error("Failed to delete rooms by reservation ID",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return fmt.Errorf("delete rooms by reservation ID %s: %w", reservationID.String(), translate(err))
	}

	return nil
}
