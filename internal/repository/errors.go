package repository

import (
	"context"
	"errors"

	"github.com/andrianovv/airtickets/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrNotFound = errors.New("not found")

// isUniqueViolation reports whether err is a violation of a unique
// constraint, i.e. a concurrent transaction already took the seat.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isTransient reports whether err is a retryable storage failure:
// serialization conflict, deadlock or a timed-out transaction.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return true
		}
	}
	return false
}

// classify maps low-level storage errors onto the domain taxonomy so the
// service layer sees one consistent error shape regardless of where the
// failure was detected.
func classify(err error) error {
	if isTransient(err) {
		return domain.ErrTransientStorage
	}
	return err
}
