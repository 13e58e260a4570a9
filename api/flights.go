package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/andrianovv/airtickets/internal/domain"
	"github.com/andrianovv/airtickets/internal/repository"
	"github.com/andrianovv/airtickets/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightResponse struct {
	ID               int64                `json:"id"`
	Source           string               `json:"source"`
	Destination      string               `json:"destination"`
	Airplane         string               `json:"airplane"`
	DepartureTime    string               `json:"departure_time"`
	ArrivalTime      string               `json:"arrival_time"`
	Crew             []int64              `json:"crew"`
	Capacity         int                  `json:"capacity"`
	TakenSeats       []domain.SeatAddress `json:"taken_seats"`
	TicketsAvailable int                  `json:"tickets_available"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
}

func (h *FlightHandler) list(c *gin.Context) {
	listed, err := h.service.List(c.Request.Context())
	if err != nil {
		writeInternalError(c, err)
		return
	}

	resp := make([]flightResponse, 0, len(listed))
	for i := range listed {
		resp = append(resp, toFlightResponse(&listed[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		writeInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func toFlightResponse(f *domain.FlightAvailability) flightResponse {
	return flightResponse{
		ID:               f.ID,
		Source:           f.Source,
		Destination:      f.Destination,
		Airplane:         f.AirplaneName,
		DepartureTime:    f.DepartureTime.Format(time.RFC3339),
		ArrivalTime:      f.ArrivalTime.Format(time.RFC3339),
		Crew:             f.CrewIDs,
		Capacity:         f.Capacity,
		TakenSeats:       f.TakenSeats,
		TicketsAvailable: f.TicketsAvailable,
	}
}
