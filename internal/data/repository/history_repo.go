package repository

import (
	"context"
	"fmt"

	"pilgrimage-booking/internal/data/entity"
	"pilgrimage-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// HistoryRepository is append-only: there is no update or delete.
type HistoryRepository interface {
	Append(ctx context.Context, entry *entity.HistoryEntry) error
	// FindByReservationID replays entries oldest first.
	FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]entity.HistoryEntry, error)
}

type historyRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewHistoryRepository(db database.Querier, log *zap.Logger) HistoryRepository {
	return &historyRepository{
		db:  db,
		log: log.With(zap.String("repository", "history")),
	}
}

func decimalText(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func parseDecimalText(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *historyRepository) Append(ctx context.Context, entry *entity.HistoryEntry) error {
	query := `
		INSERT INTO reservation_history (id, reservation_id, entry_type, actor_id, amount, previous_amount, old_status, new_status, created_at)
		VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.ReservationID,
		entry.Type,
		entry.ActorID,
		decimalText(entry.Amount),
		decimalText(entry.PreviousAmount),
		entry.OldStatus,
		entry.NewStatus,
		entry.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to append history entry",
			zap.Error(err),
			zap.String("reservation_id", entry.ReservationID.String()),
			zap.String("type", string(entry.Type)),
		)
		return fmt.Errorf("append %s history entry to reservation %s: %w", entry.Type, entry.ReservationID.String(), translate(err))
	}

	return nil
}

func (r *historyRepository) FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]entity.HistoryEntry, error) {
	query := `
		SELECT id, reservation_id, entry_type, actor_id, amount::text, previous_amount::text, old_status, new_status, created_at
		FROM reservation_history
		WHERE reservation_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(ctx, query, reservationID)
	if err != nil {
		r.log.Error("Failed to find history by reservation ID",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return nil, fmt.Errorf("find history by reservation ID %s: %w", reservationID.String(), translate(err))
	}
	defer rows.Close()

	var entries []entity.HistoryEntry
	for rows.Next() {
		var (
			e                entity.HistoryEntry
			amount, previous *string
		)
		if err := rows.Scan(
			&e.ID,
			&e.ReservationID,
			&e.Type,
			&e.ActorID,
			&amount,
			&previous,
			&e.OldStatus,
			&e.NewStatus,
			&e.CreatedAt,
		); err != nil {
			r.log.Error("Failed to scan history row", zap.Error(err))
			return nil, fmt.Errorf("scan history row: %w", err)
		}

		if e.Amount, err = parseDecimalText(amount); err != nil {
			return nil, fmt.Errorf("parse history amount %s: %w", e.ID.String(), err)
		}
		if e.PreviousAmount, err = parseDecimalText(previous); err != nil {
			return nil, fmt.Errorf("parse history previous amount %s: %w", e.ID.String(), err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}

	return entries, nil
}
