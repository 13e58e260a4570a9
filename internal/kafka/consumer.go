package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// OrderEventHandler processes one decoded order event. A returned error
// stops the consumer.
type OrderEventHandler func(ctx context.Context, event OrderEvent) error

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume reads order events until the context is canceled or the handler
// fails. Messages that do not decode as an OrderEvent are logged and
// skipped rather than stalling the group.
func (c *Consumer) Consume(ctx context.Context, handler OrderEventHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		if err := handleMessage(ctx, msg, handler); err != nil {
			return err
		}
	}
}

func handleMessage(ctx context.Context, msg kafka.Message, handler OrderEventHandler) error {
	var event OrderEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Printf("skip undecodable message on %s at offset %d: %v", msg.Topic, msg.Offset, err)
		return nil
	}
	return handler(ctx, event)
}
