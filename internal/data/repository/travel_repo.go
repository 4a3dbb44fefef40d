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

type TravelRepository interface {
	// Create inserts the travel and its price entries.
	Create(ctx context.Context, travel *entity.Travel) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Travel, error)
	FindByRef(ctx context.Context, ref string) (*entity.Travel, error)
	FindAll(ctx context.Context) ([]entity.Travel, error)
	// LockByRef loads the travel with FOR UPDATE so capacity checks on it
	// are sequenced with other bookings of the same travel.
	LockByRef(ctx context.Context, ref string) (*entity.Travel, error)
	LockByID(ctx context.Context, id uuid.UUID) (*entity.Travel, error)
	// Update rewrites the travel row and replaces its price entries.
	Update(ctx context.Context, travel *entity.Travel) error
}

type travelRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTravelRepository(db database.Querier, log *zap.Logger) TravelRepository {
	return &travelRepository{
		db:  db,
		log: log.With(zap.String("repository", "travel")),
	}
}

const travelColumns = `id, ref, name, depart_at, arrive_at, duration_nights, available_spots, distribution, created_at, updated_at`

func scanTravel(row pgx.Row) (*entity.Travel, error) {
	var travel entity.Travel
	err := row.Scan(
		&travel.ID,
		&travel.Ref,
		&travel.Name,
		&travel.DepartAt,
		&travel.ArriveAt,
		&travel.DurationNights,
		&travel.AvailableSpots,
		&travel.Distribution,
		&travel.CreatedAt,
		&travel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &travel, nil
}

func (r *travelRepository) Create(ctx context.Context, travel *entity.Travel) error {
	query := `
		INSERT INTO travels (id, ref, name, depart_at, arrive_at, duration_nights, available_spots, distribution, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		travel.ID,
		travel.Ref,
		travel.Name,
		travel.DepartAt,
		travel.ArriveAt,
		travel.DurationNights,
		travel.AvailableSpots,
		travel.Distribution,
		travel.CreatedAt,
		travel.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create travel",
			zap.Error(err),
			zap.String("ref", travel.Ref),
		)
		return fmt.Errorf("create travel %s: %w", travel.Ref, translate(err))
	}

	return r.insertPriceEntries(ctx, travel)
}

func (r *travelRepository) insertPriceEntries(ctx context.Context, travel *entity.Travel) error {
	query := `
		INSERT INTO price_entries (id, travel_id, hotel_id, double_price, triple_price, quadruple_price, quintuple_price, food_price, commission)
		VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6::numeric, $7::numeric, $8::numeric, $9::numeric)
	`

	for i := range travel.PriceEntries {
		e := &travel.PriceEntries[i]
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		e.TravelID = travel.ID

		_, err := r.db.Exec(ctx, query,
			e.ID,
			e.TravelID,
			e.HotelID,
			e.Double.String(),
			e.Triple.String(),
			e.Quadruple.String(),
			e.Quintuple.String(),
			e.Food.String(),
			e.Commission.String(),
		)
		if err != nil {
			r.log.Error("Failed to create price entry",
				zap.Error(err),
				zap.String("travel_id", travel.ID.String()),
				zap.String("hotel_id", e.HotelID.String()),
			)
			return fmt.Errorf("create price entry for travel %s hotel %s: %w", travel.Ref, e.HotelID.String(), translate(err))
		}
	}

	return nil
}

func (r *travelRepository) findPriceEntries(ctx context.Context, travelID uuid.UUID) ([]entity.PriceEntry, error) {
	query := `
		SELECT id, travel_id, hotel_id, double_price::text, triple_price::text, quadruple_price::text,
		       quintuple_price::text, food_price::text, commission::text
		FROM price_entries
		WHERE travel_id = $1
		ORDER BY hotel_id
	`

	rows, err := r.db.Query(ctx, query, travelID)
	if err != nil {
		r.log.Error("Failed to find price entries",
			zap.Error(err),
			zap.String("travel_id", travelID.String()),
		)
		return nil, fmt.Errorf("find price entries for travel %s: %w", travelID.String(), err)
	}
	defer rows.Close()

	var entries []entity.PriceEntry
	for rows.Next() {
		var e entity.PriceEntry
		if err := rows.Scan(
			&e.ID,
			&e.TravelID,
			&e.HotelID,
			&e.Double,
			&e.Triple,
			&e.Quadruple,
			&e.Quintuple,
			&e.Food,
			&e.Commission,
		); err != nil {
			r.log.Error("Failed to scan price entry row", zap.Error(err))
			return nil, fmt.Errorf("scan price entry row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate price entry rows: %w", err)
	}

	return entries, nil
}

func (r *travelRepository) findOne(ctx context.Context, query, key string, arg any) (*entity.Travel, error) {
	travel, err := scanTravel(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find travel",
			zap.Error(err),
			zap.Any(key, arg),
		)
		return nil, fmt.Errorf("find travel by %s %v: %w", key, arg, translate(err))
	}

	travel.PriceEntries, err = r.findPriceEntries(ctx, travel.ID)
	if err != nil {
		return nil, err
	}

	return travel, nil
}

func (r *travelRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Travel, error) {
	query := `SELECT ` + travelColumns + ` FROM travels WHERE id = $1`
	return r.findOne(ctx, query, "id", id)
}

func (r *travelRepository) FindByRef(ctx context.Context, ref string) (*entity.Travel, error) {
	query := `SELECT ` + travelColumns + ` FROM travels WHERE ref = $1`
	return r.findOne(ctx, query, "ref", ref)
}

func (r *travelRepository) LockByRef(ctx context.Context, ref string) (*entity.Travel, error) {
	query := `SELECT ` + travelColumns + ` FROM travels WHERE ref = $1 FOR UPDATE`
	return r.findOne(ctx, query, "ref", ref)
}

func (r *travelRepository) LockByID(ctx context.Context, id uuid.UUID) (*entity.Travel, error) {
	query := `SELECT ` + travelColumns + ` FROM travels WHERE id = $1 FOR UPDATE`
	return r.findOne(ctx, query, "id", id)
}

func (r *travelRepository) FindAll(ctx context.Context) ([]entity.Travel, error) {
	query := `SELECT ` + travelColumns + ` FROM travels ORDER BY depart_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list travels", zap.Error(err))
		return nil, fmt.Errorf("list travels: %w", err)
	}
	defer rows.Close()

	var travels []entity.Travel
	for rows.Next() {
		travel, err := scanTravel(rows)
		if err != nil {
			r.log.Error("Failed to scan travel row", zap.Error(err))
			return nil, fmt.Errorf("scan travel row: %w", err)
		}
		travels = append(travels, *travel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate travel rows: %w", err)
	}

	return travels, nil
}

func (r *travelRepository) Update(ctx context.Context, travel *entity.Travel) error {
	query := `
		UPDATE travels
		SET name = $2, depart_at = $3, arrive_at = $4, duration_nights = $5,
		    available_spots = $6, distribution = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		travel.ID,
		travel.Name,
		travel.DepartAt,
		travel.ArriveAt,
		travel.DurationNights,
		travel.AvailableSpots,
		travel.Distribution,
		travel.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update travel",
			zap.Error(err),
			zap.String("travel_id", travel.ID.String()),
		)
		return fmt.Errorf("update travel %s: %w", travel.Ref, translate(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update travel %s: %w", travel.Ref, ErrNoRowsAffected)
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM price_entries WHERE travel_id = $1`, travel.ID); err != nil {
		r.log.Error("Failed to clear price entries",
			zap.Error(err),
			zap.String("travel_id", travel.ID.String()),
		)
		return fmt.Errorf("clear price entries of travel %s: %w", travel.Ref, translate(err))
	}

	return r.insertPriceEntries(ctx, travel)
}
