package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/andrianovv/airtickets/internal/domain"
	"github.com/andrianovv/airtickets/internal/repository"
	"github.com/andrianovv/airtickets/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service booking.OrderUseCase
}

type createOrderRequest struct {
	Tickets []booking.SeatRequest `json:"tickets"`
}

type ticketResponse struct {
	ID        int64  `json:"id"`
	Flight    int64  `json:"flight"`
	Row       int    `json:"row"`
	Seat      int    `json:"seat"`
	Passenger string `json:"passenger,omitempty"`
}

type orderResponse struct {
	ID        int64            `json:"id"`
	Reference string           `json:"reference"`
	CreatedAt string           `json:"created_at"`
	Tickets   []ticketResponse `json:"tickets"`
}

func NewOrderHandler(service booking.OrderUseCase) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/:id", h.get)
}

func (h *OrderHandler) create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := callerIdentity(c)
	order, err := h.service.CreateOrder(c.Request.Context(), userID, req.Tickets)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

func (h *OrderHandler) list(c *gin.Context) {
	userID, admin := callerIdentity(c)
	orders, err := h.service.ListOrders(c.Request.Context(), userID, admin)
	if err != nil {
		writeInternalError(c, err)
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, toOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	userID, admin := callerIdentity(c)
	order, err := h.service.GetOrder(c.Request.Context(), id, userID, admin)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			writeInternalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// writeBookingError maps the allocator's error taxonomy onto HTTP. Seat
// conflicts and validation failures name the offending request so the client
// can correct it; transient storage failures invite a retry.
func writeBookingError(c *gin.Context, err error) {
	var be *domain.BookingError
	switch {
	case errors.As(err, &be):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  be.Error(),
			"cause":  causeCode(be.Cause),
			"flight": be.FlightID,
			"row":    be.Row,
			"seat":   be.Seat,
		})
	case errors.Is(err, domain.ErrEmptyOrder):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "cause": "EmptyOrder"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrTransientStorage):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		writeInternalError(c, err)
	}
}

// writeInternalError keeps storage internals out of responses: the detail
// goes to the server log, the client gets a generic message.
func writeInternalError(c *gin.Context, err error) {
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func causeCode(cause error) string {
	switch {
	case errors.Is(cause, domain.ErrOutOfRange):
		return "OutOfRange"
	case errors.Is(cause, domain.ErrSeatTaken):
		return "SeatTaken"
	default:
		return "Unknown"
	}
}

func toOrderResponse(o *domain.Order) orderResponse {
	tickets := make([]ticketResponse, 0, len(o.Tickets))
	for _, t := range o.Tickets {
		tickets = append(tickets, ticketResponse{
			ID:        t.ID,
			Flight:    t.FlightID,
			Row:       t.Row,
			Seat:      t.Seat,
			Passenger: t.Passenger,
		})
	}
	return orderResponse{
		ID:        o.ID,
		Reference: o.Reference,
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
		Tickets:   tickets,
	}
}
