package notify

import (
	"context"
	"encoding/json"

	"github.com/adjust/rmq/v5"
	"github.com/railgo/railgo/pkg/booking"
	"github.com/railgo/railgo/pkg/rtdf"
	"github.com/rs/zerolog/log"
)

// StatusBatchConsumer receives order status notifications and drives the
// booking orchestrator: a Paid notification is the asynchronous trigger that
// claims the order's inventory.
type StatusBatchConsumer struct {
	Orchestrator *booking.Orchestrator
}

func NewStatusBatchConsumer(orchestrator *booking.Orchestrator) *StatusBatchConsumer {
	return &StatusBatchConsumer{Orchestrator: orchestrator}
}

func (c *StatusBatchConsumer) Consume(batch rmq.Deliveries) {
	payloads := batch.Payloads()

	for _, payload := range payloads {
		var notification rtdf.Notification
		if err := json.Unmarshal([]byte(payload), &notification); err != nil {
			log.Error().Err(err).Msg("Failed to decode notification")
			continue
		}

		if notification.Type != rtdf.NotificationTypeOrderStatusChanged || notification.Status != rtdf.OrderStatusPaid {
			continue
		}

		switch notification.OrderKind {
		case rtdf.OrderKindTrain, rtdf.OrderKindHotel, rtdf.OrderKindDish, rtdf.OrderKindTakeaway:
			if err := c.Orchestrator.BookTicket(context.Background(), notification.OrderRef); err != nil {
				log.Error().Err(err).Str("order", notification.OrderRef).Msg("Failed to book paid order")
			}
		default:
			log.Error().Str("kind", string(notification.OrderKind)).Msg("Unknown order kind in notification")
		}
	}

	if ackErrors := batch.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Fatal().Err(err).Msg("Failed to consume from queue")
		}
	}
}
