package domain

import "time"

// Order groups the tickets created in one booking transaction. Orders are
// immutable after creation; their tickets are removed only by cascade when
// the order or the flight is deleted.
type Order struct {
	ID        int64
	Reference string
	UserID    int64
	CreatedAt time.Time
	Tickets   []Ticket
}

type Ticket struct {
	ID        int64
	FlightID  int64
	OrderID   int64
	Row       int
	Seat      int
	Passenger string
}
