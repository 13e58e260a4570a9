package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/andrianovv/airtickets/internal/domain"
	"github.com/andrianovv/airtickets/internal/kafka"
	"github.com/andrianovv/airtickets/internal/repository"
	"github.com/google/uuid"
)

var ErrForbidden = errors.New("order belongs to another user")

type OrderUseCase interface {
	CreateOrder(ctx context.Context, userID int64, requests []SeatRequest) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID, userID int64, admin bool) (*domain.Order, error)
	ListOrders(ctx context.Context, userID int64, admin bool) ([]domain.Order, error)
}

type Cache interface {
	AcquireSeatLock(ctx context.Context, flightID int64, row, seat int, ttl time.Duration) (bool, error)
	ReleaseSeatLock(ctx context.Context, flightID int64, row, seat int) error
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type SeatRequest struct {
	FlightID  int64  `json:"flight"`
	Row       int    `json:"row"`
	Seat      int    `json:"seat"`
	Passenger string `json:"passenger,omitempty"`
}

type OrderService struct {
	orders             repository.OrderRepository
	flights            repository.FlightRepository
	cache              Cache
	producer           Producer
	orderTopic         string
	notificationsTopic string
	seatLockTTL        time.Duration
}

type OrderServiceOption func(*OrderService)

func WithNotificationsTopic(topic string) OrderServiceOption {
	return func(s *OrderService) {
		s.notificationsTopic = topic
	}
}

func NewOrderService(
	orders repository.OrderRepository,
	flights repository.FlightRepository,
	cache Cache,
	producer Producer,
	orderTopic string,
	seatLockTTL time.Duration,
	opts ...OrderServiceOption,
) *OrderService {
	service := &OrderService{
		orders:      orders,
		flights:     flights,
		cache:       cache,
		producer:    producer,
		orderTopic:  orderTopic,
		seatLockTTL: seatLockTTL,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateOrder books all requested seats for the user in one atomic
// transaction, or none of them. Range and duplicate checks run up front
// against the airplane geometry snapshot; the repository transaction and
// its unique constraint decide races between concurrent orders.
func (s *OrderService) CreateOrder(ctx context.Context, userID int64, requests []SeatRequest) (*domain.Order, error) {
	if len(requests) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	airplanes := make(map[int64]domain.Airplane)
	claimed := make(map[int64]map[domain.SeatAddress]int64)
	for _, req := range requests {
		airplane, ok := airplanes[req.FlightID]
		if !ok {
			a, err := s.flights.GetAirplaneForFlight(ctx, req.FlightID)
			if err != nil {
				return nil, err
			}
			airplane = *a
			airplanes[req.FlightID] = airplane
			claimed[req.FlightID] = make(map[domain.SeatAddress]int64)
		}
		if err := ValidateSeat(airplane, req.FlightID, req.Row, req.Seat, claimed[req.FlightID], 0); err != nil {
			return nil, err
		}
		claimed[req.FlightID][domain.SeatAddress{Row: req.Row, Seat: req.Seat}] = -1
	}

	locked, err := s.lockSeats(ctx, requests)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		Reference: uuid.NewString(),
		UserID:    userID,
		Tickets:   make([]domain.Ticket, 0, len(requests)),
	}
	for _, req := range requests {
		order.Tickets = append(order.Tickets, domain.Ticket{
			FlightID:  req.FlightID,
			Row:       req.Row,
			Seat:      req.Seat,
			Passenger: req.Passenger,
		})
	}

	if err := s.orders.CreateWithTickets(ctx, order); err != nil {
		s.unlockSeats(ctx, locked)
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			log.Printf("invalidate flights cache: %v", err)
		}
	}
	s.unlockSeats(ctx, locked)

	if err := s.publish(ctx, "order_created", order); err != nil {
		log.Printf("publish order_created for order %s: %v", order.Reference, err)
	}
	return order, nil
}

// lockSeats takes the short-lived Redis lock for every requested seat, so
// most concurrent bookings of the same seat fail fast without opening a
// database transaction. A denied lock reads as the seat being taken.
func (s *OrderService) lockSeats(ctx context.Context, requests []SeatRequest) ([]SeatRequest, error) {
	if s.cache == nil {
		return nil, nil
	}
	locked := make([]SeatRequest, 0, len(requests))
	for _, req := range requests {
		ok, err := s.cache.AcquireSeatLock(ctx, req.FlightID, req.Row, req.Seat, s.seatLockTTL)
		if err != nil {
			s.unlockSeats(ctx, locked)
			return nil, err
		}
		if !ok {
			s.unlockSeats(ctx, locked)
			return nil, &domain.BookingError{FlightID: req.FlightID, Row: req.Row, Seat: req.Seat, Cause: domain.ErrSeatTaken}
		}
		locked = append(locked, req)
	}
	return locked, nil
}

func (s *OrderService) unlockSeats(ctx context.Context, locked []SeatRequest) {
	for _, req := range locked {
		if err := s.cache.ReleaseSeatLock(ctx, req.FlightID, req.Row, req.Seat); err != nil {
			log.Printf("release seat lock flight %d row %d seat %d: %v", req.FlightID, req.Row, req.Seat, err)
		}
	}
}

func (s *OrderService) GetOrder(ctx context.Context, orderID, userID int64, admin bool) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !admin && order.UserID != userID {
		return nil, ErrForbidden
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID int64, admin bool) ([]domain.Order, error) {
	if admin {
		return s.orders.ListAll(ctx)
	}
	return s.orders.ListByUser(ctx, userID)
}

func (s *OrderService) publish(ctx context.Context, eventType string, order *domain.Order) error {
	if s.producer == nil || s.orderTopic == "" {
		return nil
	}
	tickets := make([]kafka.TicketEvent, 0, len(order.Tickets))
	for _, t := range order.Tickets {
		tickets = append(tickets, kafka.TicketEvent{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat, Passenger: t.Passenger})
	}
	event := kafka.OrderEvent{
		Type:      eventType,
		Reference: order.Reference,
		UserID:    order.UserID,
		Tickets:   tickets,
		CreatedAt: order.CreatedAt,
	}
	if err := s.producer.Publish(ctx, s.orderTopic, order.Reference, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, order.Reference, event)
	}
	return nil
}

var _ OrderUseCase = (*OrderService)(nil)
