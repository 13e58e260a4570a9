package domain

type AirplaneType struct {
	ID   int64
	Name string
}

type Airplane struct {
	ID             int64
	Name           string
	Rows           int
	SeatsInRow     int
	AirplaneTypeID int64
}

// Capacity is the total number of sellable seats: rows x seats per row.
func (a Airplane) Capacity() int {
	return a.Rows * a.SeatsInRow
}

// SeatWithinRange reports whether (row, seat) falls inside the airplane's
// seat-address space {1..Rows} x {1..SeatsInRow}.
func (a Airplane) SeatWithinRange(row, seat int) bool {
	return row >= 1 && row <= a.Rows && seat >= 1 && seat <= a.SeatsInRow
}
