package flights

import (
	"context"
	"testing"

	"github.com/andrianovv/airtickets/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.FlightAvailability, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.FlightAvailability), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.FlightAvailability, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightAvailability), args.Error(1)
}

func (m *MockFlightRepository) GetAirplaneForFlight(ctx context.Context, flightID int64) (*domain.Airplane, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airplane), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context) ([]domain.FlightAvailability, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FlightAvailability), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, flights []domain.FlightAvailability) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func TestFlightService_List_ProjectsAvailability(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil)

	ctx := context.Background()
	mockRepo.On("List", ctx).Return([]domain.FlightAvailability{
		{
			Flight:     domain.Flight{ID: 1},
			Capacity:   25,
			TakenSeats: []domain.SeatAddress{{Row: 3, Seat: 3}},
		},
		{
			Flight:     domain.Flight{ID: 2},
			Capacity:   4,
			TakenSeats: []domain.SeatAddress{},
		},
	}, nil).Once()

	flights, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Len(t, flights, 2)
	assert.Equal(t, 24, flights[0].TicketsAvailable)
	assert.Equal(t, []domain.SeatAddress{{Row: 3, Seat: 3}}, flights[0].TakenSeats)
	assert.Equal(t, 4, flights[1].TicketsAvailable)

	mockRepo.AssertExpectations(t)
}

func TestFlightService_List_NegativeAvailability(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil)

	ctx := context.Background()
	mockRepo.On("List", ctx).Return([]domain.FlightAvailability{
		{
			Flight:     domain.Flight{ID: 1},
			Capacity:   1,
			TakenSeats: []domain.SeatAddress{{Row: 1, Seat: 1}, {Row: 1, Seat: 2}},
		},
	}, nil).Once()

	flights, err := service.List(ctx)

	assert.Nil(t, flights)
	assert.ErrorIs(t, err, domain.ErrInconsistentAvailability)
}

func TestFlightService_List_CacheHit(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	cached := []domain.FlightAvailability{{Flight: domain.Flight{ID: 1}, Capacity: 25, TicketsAvailable: 24}}
	mockCache.On("GetFlights", ctx).Return(cached, nil).Once()

	flights, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, cached, flights)
	mockRepo.AssertNotCalled(t, "List", ctx)
	mockCache.AssertExpectations(t)
}

func TestFlightService_List_CacheMissFillsCache(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	mockCache.On("GetFlights", ctx).Return(nil, nil).Once()
	mockRepo.On("List", ctx).Return([]domain.FlightAvailability{
		{Flight: domain.Flight{ID: 1}, Capacity: 25, TakenSeats: []domain.SeatAddress{}},
	}, nil).Once()
	mockCache.On("SetFlights", ctx, mock.Anything).Return(nil).Once()

	flights, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 25, flights[0].TicketsAvailable)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_GetByID_ProjectsAvailability(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil)

	ctx := context.Background()
	mockRepo.On("GetByID", ctx, int64(1)).Return(&domain.FlightAvailability{
		Flight:     domain.Flight{ID: 1},
		Capacity:   25,
		TakenSeats: []domain.SeatAddress{{Row: 3, Seat: 3}, {Row: 3, Seat: 4}},
	}, nil).Once()

	flight, err := service.GetByID(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, 23, flight.TicketsAvailable)
	mockRepo.AssertExpectations(t)
}
