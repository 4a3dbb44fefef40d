package repository

import (
	"context"
	"errors"
	"fmt"

	"pilgrimage-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Hotel       HotelRepository
	Travel      TravelRepository
	Reservation ReservationRepository
	Room        RoomRepository
	Payment     PaymentRepository
	History     HistoryRepository
}

func NewRepository(db database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Hotel:       NewHotelRepository(db, log),
		Travel:      NewTravelRepository(db, log),
		Reservation: NewReservationRepository(db, log),
		Room:        NewRoomRepository(db, log),
		Payment:     NewPaymentRepository(db, log),
		History:     NewHistoryRepository(db, log),
	}
}

// Store hands out repositories bound to the pool, or to one transaction.
type Store interface {
	Repo() *Repository
	// WithTx runs fn inside a SERIALIZABLE transaction. The transaction
	// commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(repo *Repository) error) error
}

type store struct {
	db   database.PgxIface
	repo *Repository
	log  *zap.Logger
}

func NewStore(db database.PgxIface, log *zap.Logger) Store {
	return &store{
		db:   db,
		repo: NewRepository(db, log),
		log:  log,
	}
}

func (s *store) Repo() *Repository {
	return s.repo
}

func (s *store) WithTx(ctx context.Context, fn func(repo *Repository) error) (err error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			s.log.Warn("Failed to roll back transaction", zap.Error(rbErr))
		}
	}()

	if err := fn(NewRepository(tx, s.log)); err != nil {
		return translate(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return translate(fmt.Errorf("commit transaction: %w", err))
	}
	committed = true

	return nil
}
