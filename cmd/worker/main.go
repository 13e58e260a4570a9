package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andrianovv/airtickets/config"
	"github.com/andrianovv/airtickets/internal/domain"
	"github.com/andrianovv/airtickets/internal/email"
	"github.com/andrianovv/airtickets/internal/kafka"
	"github.com/andrianovv/airtickets/internal/repository"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	flightRepo := repository.NewFlightRepository(pool)
	flightService := flights.NewFlightService(flightRepo, nil)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, event kafka.OrderEvent) error {
			return emailSender.Send(ctx, event)
		}); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	auditTicker := time.NewTicker(time.Duration(cfg.Worker.AuditSweepMinutes) * time.Minute)
	defer auditTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-auditTicker.C:
			// The projection errors out on negative availability, which
			// means a booking invariant was violated upstream.
			flights, err := flightService.List(ctx)
			if err != nil {
				if errors.Is(err, domain.ErrInconsistentAvailability) {
					log.Printf("INTEGRITY ALERT: %v", err)
				} else {
					log.Printf("availability audit error: %v", err)
				}
				continue
			}
			log.Printf("availability audit passed for %d flights", len(flights))
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}
