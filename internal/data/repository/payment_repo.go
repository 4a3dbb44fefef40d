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

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByRef(ctx context.Context, ref string) (*entity.Payment, error)
	FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
}

type paymentRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPaymentRepository(db database.Querier, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentSelect = `
	SELECT p.id, p.ref, p.reservation_id, res.ref, p.amount::text, p.recorded_by, p.created_at, p.updated_at
	FROM payments p
	JOIN reservations res ON res.id = p.reservation_id
`

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var payment entity.Payment
	err := row.Scan(
		&payment.ID,
		&payment.Ref,
		&payment.ReservationID,
		&payment.ReservationRef,
		&payment.Amount,
		&payment.RecordedBy,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, ref, reservation_id, amount, recorded_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.Ref,
		payment.ReservationID,
		payment.Amount.String(),
		payment.RecordedBy,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("ref", payment.Ref),
			zap.String("reservation_id", payment.ReservationID.String()),
		)
		return fmt.Errorf("create payment %s: %w", payment.Ref, translate(err))
	}

	return nil
}

func (r *paymentRepository) findOne(ctx context.Context, query, key string, arg any) (*entity.Payment, error) {
	payment, err := scanPayment(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment",
			zap.Error(err),
			zap.Any(key, arg),
		)
		return nil, fmt.Errorf("find payment by %s %v: %w", key, arg, translate(err))
	}
	return payment, nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	return r.findOne(ctx, paymentSelect+` WHERE p.id = $1`, "id", id)
}

func (r *paymentRepository) FindByRef(ctx context.Context, ref string) (*entity.Payment, error) {
	return r.findOne(ctx, paymentSelect+` WHERE p.ref = $1`, "ref", ref)
}

func (r *paymentRepository) FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]entity.Payment, error) {
	query := paymentSelect + ` WHERE p.reservation_id = $1 ORDER BY p.created_at, p.id`

	rows, err := r.db.Query(ctx, query, reservationID)
	if err != nil {
		r.log.Error("Failed to find payments by reservation ID",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return nil, fmt.Errorf("find payments by reservation ID %s: %w", reservationID.String(), translate(err))
	}
	defer rows.Close()

	var payments []entity.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			r.log.Error("Failed to scan payment row", zap.Error(err))
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, *payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment rows: %w", err)
	}

	return payments, nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	query := `
		UPDATE payments
		SET ref = $2, amount = $3::numeric, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.Ref,
		payment.Amount.String(),
		payment.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update payment",
			zap.Error(err),
			zap.String("payment_id", payment.ID.String()),
		)
		return fmt.Errorf("update payment %s: %w", payment.ID.String(), translate(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update payment %s: %w", payment.ID.String(), ErrNoRowsAffected)
	}

	return nil
}
