package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate key")
	// ErrSerialization is returned when Postgres aborts a transaction that
	// conflicted with a concurrent one. The whole operation may be retried.
	ErrSerialization = errors.New("serialization failure")
	// ErrNoRowsAffected is returned by updates and deletes that matched nothing.
	ErrNoRowsAffected = errors.New("no rows affected")
)

const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// translate classifies Postgres errors into the repository sentinels. The
// original error stays in the chain.
func translate(err error) error {
	if err == nil || errors.Is(err, ErrDuplicate) || errors.Is(err, ErrSerialization) {
		return err
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w on %s: %w", ErrDuplicate, pgErr.ConstraintName, err)
	case codeSerializationFailure, codeDeadlockDetected:
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return err
}
