package domain

import "time"

type City struct {
	ID   int64
	Name string
}

type Airport struct {
	ID     int64
	Name   string
	CityID int64
}

type Route struct {
	ID            int64
	SourceID      int64
	DestinationID int64
	Distance      int
}

type Crew struct {
	ID       int64
	Name     string
	Position string
}

type Flight struct {
	ID            int64
	RouteID       int64
	AirplaneID    int64
	DepartureTime time.Time
	ArrivalTime   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SeatAddress identifies one seat on a flight.
type SeatAddress struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

// FlightAvailability is the read model for flight list/detail endpoints:
// the flight together with its route and airplane display fields, the
// seats already ticketed and the number of seats still sellable.
type FlightAvailability struct {
	Flight
	Source           string
	Destination      string
	AirplaneName     string
	Capacity         int
	CrewIDs          []int64
	TakenSeats       []SeatAddress
	TicketsAvailable int
}
