package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andrianovv/airtickets/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository interface {
	CreateWithTickets(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
}

type PGOrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

// CreateWithTickets persists the order and all of its tickets in one
// transaction. Each ticket is checked against seats already present on its
// flight before insertion; the UNIQUE (flight_id, "row", seat) constraint is
// the backstop when two transactions race for the same seat, so exactly one
// commits and the other surfaces ErrSeatTaken. Any failure rolls back the
// whole order.
func (r *PGOrderRepository) CreateWithTickets(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return classify(err)
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO orders (reference, user_id) VALUES ($1, $2) RETURNING id, created_at`,
		order.Reference, order.UserID).Scan(&order.ID, &order.CreatedAt); err != nil {
		return classify(err)
	}

	for i := range order.Tickets {
		t := &order.Tickets[i]
		t.OrderID = order.ID

		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tickets WHERE flight_id=$1 AND "row"=$2 AND seat=$3)`,
			t.FlightID, t.Row, t.Seat).Scan(&exists); err != nil {
			return classify(err)
		}
		if exists {
			return seatConflict(t)
		}

		err := tx.QueryRow(ctx, `INSERT INTO tickets (flight_id, order_id, "row", seat, passenger) VALUES ($1, $2, $3, $4, NULLIF($5, '')) RETURNING id`,
			t.FlightID, t.OrderID, t.Row, t.Seat, t.Passenger).Scan(&t.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return seatConflict(t)
			}
			return classify(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) && len(order.Tickets) > 0 {
			// Constraint check lost the race at commit time.
			return seatConflict(&order.Tickets[0])
		}
		return classify(err)
	}
	return nil
}

func seatConflict(t *domain.Ticket) error {
	return &domain.BookingError{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat, Cause: domain.ErrSeatTaken}
}

func (r *PGOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT id, reference, user_id, created_at FROM orders WHERE id=$1`, id)
	var o domain.Order
	if err := row.Scan(&o.ID, &o.Reference, &o.UserID, &o.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	o.Tickets = []domain.Ticket{}
	if err := r.loadTickets(ctx, []int64{o.ID}, map[int64]*domain.Order{o.ID: &o}); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PGOrderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return r.list(ctx, `SELECT id, reference, user_id, created_at FROM orders WHERE user_id=$1 ORDER BY created_at DESC`, userID)
}

func (r *PGOrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, `SELECT id, reference, user_id, created_at FROM orders ORDER BY created_at DESC`)
}

func (r *PGOrderRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.Reference, &o.UserID, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Tickets = []domain.Ticket{}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ids := make([]int64, len(orders))
	byID := make(map[int64]*domain.Order, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		byID[orders[i].ID] = &orders[i]
	}
	if err := r.loadTickets(ctx, ids, byID); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PGOrderRepository) loadTickets(ctx context.Context, ids []int64, byID map[int64]*domain.Order) error {
	if len(ids) == 0 {
		return nil
	}
	rows, err := r.db.Query(ctx, `SELECT id, flight_id, order_id, "row", seat, passenger FROM tickets WHERE order_id = ANY($1) ORDER BY "row", seat`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var t domain.Ticket
		var passenger sql.NullString
		if err := rows.Scan(&t.ID, &t.FlightID, &t.OrderID, &t.Row, &t.Seat, &passenger); err != nil {
			return err
		}
		t.Passenger = passenger.String
		if o, ok := byID[t.OrderID]; ok {
			o.Tickets = append(o.Tickets, t)
		}
	}
	return rows.Err()
}

var _ OrderRepository = (*PGOrderRepository)(nil)
