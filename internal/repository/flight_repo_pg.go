package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrianovv/airtickets/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.FlightAvailability, error)
	GetByID(ctx context.Context, id int64) (*domain.FlightAvailability, error)
	GetAirplaneForFlight(ctx context.Context, flightID int64) (*domain.Airplane, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightSelect = `SELECT f.id, f.route_id, f.airplane_id, f.departure_time, f.arrival_time, f.created_at, f.updated_at,
		src.name, dst.name, a.name, a.rows * a.seats_in_row
	FROM flights f
	JOIN airplanes a ON a.id = f.airplane_id
	JOIN routes r ON r.id = f.route_id
	JOIN airports src ON src.id = r.source_id
	JOIN airports dst ON dst.id = r.destination_id`

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.FlightAvailability, error) {
	rows, err := r.db.Query(ctx, flightSelect+` ORDER BY f.departure_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.FlightAvailability, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ids := make([]int64, len(flights))
	byID := make(map[int64]*domain.FlightAvailability, len(flights))
	for i := range flights {
		ids[i] = flights[i].ID
		byID[flights[i].ID] = &flights[i]
	}
	if err := r.loadTakenSeats(ctx, ids, byID); err != nil {
		return nil, err
	}
	if err := r.loadCrew(ctx, ids, byID); err != nil {
		return nil, err
	}
	return flights, nil
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.FlightAvailability, error) {
	row := r.db.QueryRow(ctx, flightSelect+` WHERE f.id=$1`, id)
	f, err := scanFlight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("flight %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	byID := map[int64]*domain.FlightAvailability{f.ID: f}
	if err := r.loadTakenSeats(ctx, []int64{f.ID}, byID); err != nil {
		return nil, err
	}
	if err := r.loadCrew(ctx, []int64{f.ID}, byID); err != nil {
		return nil, err
	}
	return f, nil
}

func (r *PGFlightRepository) GetAirplaneForFlight(ctx context.Context, flightID int64) (*domain.Airplane, error) {
	row := r.db.QueryRow(ctx, `SELECT a.id, a.name, a.rows, a.seats_in_row, a.airplane_type_id
		FROM airplanes a JOIN flights f ON f.airplane_id = a.id WHERE f.id=$1`, flightID)
	var a domain.Airplane
	if err := row.Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("flight %d: %w", flightID, ErrNotFound)
		}
		return nil, err
	}
	return &a, nil
}

func scanFlight(row pgx.Row) (*domain.FlightAvailability, error) {
	var f domain.FlightAvailability
	if err := row.Scan(&f.ID, &f.RouteID, &f.AirplaneID, &f.DepartureTime, &f.ArrivalTime, &f.CreatedAt, &f.UpdatedAt,
		&f.Source, &f.Destination, &f.AirplaneName, &f.Capacity); err != nil {
		return nil, err
	}
	f.TakenSeats = []domain.SeatAddress{}
	f.CrewIDs = []int64{}
	return &f, nil
}

func (r *PGFlightRepository) loadTakenSeats(ctx context.Context, ids []int64, byID map[int64]*domain.FlightAvailability) error {
	if len(ids) == 0 {
		return nil
	}
	rows, err := r.db.Query(ctx, `SELECT flight_id, "row", seat FROM tickets WHERE flight_id = ANY($1) ORDER BY "row", seat`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var flightID int64
		var s domain.SeatAddress
		if err := rows.Scan(&flightID, &s.Row, &s.Seat); err != nil {
			return err
		}
		if f, ok := byID[flightID]; ok {
			f.TakenSeats = append(f.TakenSeats, s)
		}
	}
	return rows.Err()
}

func (r *PGFlightRepository) loadCrew(ctx context.Context, ids []int64, byID map[int64]*domain.FlightAvailability) error {
	if len(ids) == 0 {
		return nil
	}
	rows, err := r.db.Query(ctx, `SELECT flight_id, crew_id FROM flight_crews WHERE flight_id = ANY($1) ORDER BY crew_id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var flightID, crewID int64
		if err := rows.Scan(&flightID, &crewID); err != nil {
			return err
		}
		if f, ok := byID[flightID]; ok {
			f.CrewIDs = append(f.CrewIDs, crewID)
		}
	}
	return rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
