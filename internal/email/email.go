package email

import (
	"context"
	"fmt"

	"github.com/andrianovv/airtickets/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.OrderEvent) error {
	fmt.Printf("notify user %d: order %s %s with %d tickets\n", event.UserID, event.Reference, event.Type, len(event.Tickets))
	return nil
}
