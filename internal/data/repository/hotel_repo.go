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

type HotelRepository interface {
	Create(ctx context.Context, hotel *entity.Hotel) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Hotel, error)
	FindAll(ctx context.Context, city *entity.HotelCity) ([]entity.Hotel, error)
}

type hotelRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewHotelRepository(db database.Querier, log *zap.Logger) HotelRepository {
	return &hotelRepository{
		db:  db,
		log: log.With(zap.String("repository", "hotel")),
	}
}

func (r *hotelRepository) Create(ctx context.Context, hotel *entity.Hotel) error {
	query := `
		INSERT INTO hotels (id, name, city, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		hotel.ID,
		hotel.Name,
		hotel.City,
		hotel.CreatedAt,
		hotel.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create hotel",
			zap.Error(err),
			zap.String("name", hotel.Name),
		)
		return fmt.Errorf("create hotel %s: %w", hotel.Name, translate(err))
	}

	return nil
}

func (r *hotelRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hotel, error) {
	query := `
		SELECT id, name, city, created_at, updated_at
		FROM hotels
		WHERE id = $1
	`

	var hotel entity.Hotel
	err := r.db.QueryRow(ctx, query, id).Scan(
		&hotel.ID,
		&hotel.Name,
		&hotel.City,
		&hotel.CreatedAt,
		&hotel.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find hotel by ID",
			zap.Error(err),
			zap.String("hotel_id", id.String()),
		)
		return nil, fmt.Errorf("find hotel by ID %s: %w", id.String(), err)
	}

	return &hotel, nil
}

func (r *hotelRepository) FindAll(ctx context.Context, city *entity.HotelCity) ([]entity.Hotel, error) {
	query := `
		SELECT id, name, city, created_at, updated_at
		FROM hotels
		WHERE ($1::text IS NULL OR city = $1)
		ORDER BY city, name
	`

	rows, err := r.db.Query(ctx, query, city)
	if err != nil {
		r.log.Error("Failed to list hotels", zap.Error(err))
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	defer rows.Close()

	var hotels []entity.Hotel
	for rows.Next() {
		var hotel entity.Hotel
		if err := rows.Scan(
			&hotel.ID,
			&hotel.Name,
			&hotel.City,
			&hotel.CreatedAt,
			&hotel.UpdatedAt,
		); err != nil {
			r.log.Error("Failed to scan hotel row", zap.Error(err))
			return nil, fmt.Errorf("scan hotel row: %w", err)
		}
		hotels = append(hotels, hotel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hotel rows: %w", err)
	}

	return hotels, nil
}
