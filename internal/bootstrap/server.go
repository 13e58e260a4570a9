package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/andrianovv/airtickets/api"
	"github.com/andrianovv/airtickets/config"
	"github.com/andrianovv/airtickets/internal/service/booking"
	"github.com/andrianovv/airtickets/internal/service/flights"
	"github.com/gin-gonic/gin"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, flightSvc flights.FlightUseCase, orderSvc booking.OrderUseCase) error {
	router := NewRouter(cfg, flightSvc, orderSvc)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func NewRouter(cfg *config.Config, flightSvc flights.FlightUseCase, orderSvc booking.OrderUseCase) *gin.Engine {
	router := gin.Default()

	authorized := router.Group("/api", api.Identity(cfg.Auth.JWTSecret))

	api.NewFlightHandler(flightSvc).Register(authorized.Group("/flights"))
	api.NewOrderHandler(orderSvc).Register(authorized.Group("/orders"))

	return router
}
