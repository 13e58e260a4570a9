package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andrianovv/airtickets/config"
	"github.com/andrianovv/airtickets/internal/bootstrap"
	"github.com/andrianovv/airtickets/internal/cache"
	"github.com/andrianovv/airtickets/internal/kafka"
	"github.com/andrianovv/airtickets/internal/repository"
	"github.com/andrianovv/airtickets/internal/service/booking"
	"github.com/andrianovv/airtickets/internal/service/flights"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	flightService := flights.NewFlightService(flightRepo, redisCache)
	orderService := booking.NewOrderService(
		orderRepo,
		flightRepo,
		redisCache,
		producer,
		cfg.Kafka.OrderEventsTopic,
		time.Duration(cfg.Booking.SeatLockTTLSeconds)*time.Second,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, flightService, orderService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
