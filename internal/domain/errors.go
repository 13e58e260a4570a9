package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange means the requested row/seat falls outside the
	// flight's seat-address space.
	ErrOutOfRange = errors.New("seat is not within the available range")
	// ErrSeatTaken means the requested seat already holds a ticket.
	ErrSeatTaken = errors.New("seat is already taken")
	// ErrEmptyOrder means the booking request contained no seat requests.
	ErrEmptyOrder = errors.New("order must contain at least one ticket")
	// ErrTransientStorage means the booking transaction could not complete
	// due to contention or timeout; no tickets were committed and the
	// caller may retry.
	ErrTransientStorage = errors.New("booking conflicted with a concurrent transaction")
	// ErrInconsistentAvailability means an availability projection came
	// out negative, which indicates a broken invariant upstream.
	ErrInconsistentAvailability = errors.New("tickets available is negative")
)

// BookingError identifies which seat request of an order failed and why.
// Cause is one of ErrOutOfRange or ErrSeatTaken.
type BookingError struct {
	FlightID int64
	Row      int
	Seat     int
	Cause    error
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("flight %d row %d seat %d: %v", e.FlightID, e.Row, e.Seat, e.Cause)
}

func (e *BookingError) Unwrap() error {
	return e.Cause
}
