package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestHandleMessage_DecodesOrderEvent(t *testing.T) {
	event := OrderEvent{
		Type:      "order_created",
		Reference: "ref123",
		UserID:    7,
		Tickets:   []TicketEvent{{FlightID: 4, Row: 3, Seat: 3, Passenger: "Ivanov"}},
	}
	payload, err := json.Marshal(event)
	assert.NoError(t, err)

	var got OrderEvent
	err = handleMessage(context.Background(), kafka.Message{Value: payload}, func(ctx context.Context, e OrderEvent) error {
		got = e
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, event, got)
}

func TestHandleMessage_SkipsUndecodable(t *testing.T) {
	called := false
	err := handleMessage(context.Background(), kafka.Message{Value: []byte("not json")}, func(ctx context.Context, e OrderEvent) error {
		called = true
		return nil
	})

	assert.NoError(t, err)
	assert.False(t, called)
}

func TestHandleMessage_HandlerErrorPropagates(t *testing.T) {
	payload, err := json.Marshal(OrderEvent{Reference: "ref123"})
	assert.NoError(t, err)

	handlerErr := errors.New("sender unavailable")
	err = handleMessage(context.Background(), kafka.Message{Value: payload}, func(ctx context.Context, e OrderEvent) error {
		return handlerErr
	})

	assert.ErrorIs(t, err, handlerErr)
}
