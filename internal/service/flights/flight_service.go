package flights

import (
	"context"
	"fmt"

	"github.com/andrianovv/airtickets/internal/domain"
	"github.com/andrianovv/airtickets/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.FlightAvailability, error)
	GetByID(ctx context.Context, id int64) (*domain.FlightAvailability, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.FlightAvailability, error)
	SetFlights(ctx context.Context, flights []domain.FlightAvailability) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
}

func NewFlightService(repo repository.FlightRepository, cache Cache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) List(ctx context.Context) ([]domain.FlightAvailability, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range flights {
		if err := project(&flights[i]); err != nil {
			return nil, err
		}
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.FlightAvailability, error) {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := project(flight); err != nil {
		return nil, err
	}
	return flight, nil
}

// project derives the remaining seat count from capacity and the committed
// tickets. A negative result means a ticket exists outside the seat-address
// space or a duplicate slipped past the unique constraint; that is an
// integrity failure and is reported, never clamped.
func project(f *domain.FlightAvailability) error {
	f.TicketsAvailable = f.Capacity - len(f.TakenSeats)
	if f.TicketsAvailable < 0 {
		return fmt.Errorf("flight %d: %d tickets for capacity %d: %w", f.ID, len(f.TakenSeats), f.Capacity, domain.ErrInconsistentAvailability)
	}
	return nil
}

var _ FlightUseCase = (*FlightService)(nil)
