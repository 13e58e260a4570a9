package booking

import "github.com/andrianovv/airtickets/internal/domain"

// ValidateSeat checks one requested seat against the airplane geometry and
// the seats already claimed on the flight. taken maps a seat address to the
// ticket holding it; excludeTicketID allows a ticket to be re-validated
// against everything but itself when it is moved in place. The returned
// error is a *domain.BookingError with cause ErrOutOfRange or ErrSeatTaken.
//
// This check is a friendly-error fast path. It cannot by itself prevent two
// concurrent bookings from passing for the same seat; the unique constraint
// enforced inside the order transaction is the correctness backstop.
func ValidateSeat(airplane domain.Airplane, flightID int64, row, seat int, taken map[domain.SeatAddress]int64, excludeTicketID int64) error {
	if !airplane.SeatWithinRange(row, seat) {
		return &domain.BookingError{FlightID: flightID, Row: row, Seat: seat, Cause: domain.ErrOutOfRange}
	}
	if holder, ok := taken[domain.SeatAddress{Row: row, Seat: seat}]; ok {
		if excludeTicketID == 0 || holder != excludeTicketID {
			return &domain.BookingError{FlightID: flightID, Row: row, Seat: seat, Cause: domain.ErrSeatTaken}
		}
	}
	return nil
}
