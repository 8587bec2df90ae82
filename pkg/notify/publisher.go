package notify

import (
	"encoding/json"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/railgo/railgo/pkg/redis_client"
	"github.com/railgo/railgo/pkg/rtdf"
	"github.com/rs/zerolog/log"
)

const StatusQueueName = "order-status-queue"

// Publisher fans out order status changes to the redis queue. Publishing is
// fire-and-forget for callers; delivery retries with exponential backoff are
// a transport concern handled here, not in the booking core.
type Publisher struct{}

func NewPublisher() *Publisher {
	return &Publisher{}
}

func (p *Publisher) NotifyStatusChange(orderRef string, kind rtdf.OrderKind, status rtdf.OrderStatus) {
	notification := rtdf.Notification{
		Type: rtdf.NotificationTypeOrderStatusChanged,

		OrderRef:  orderRef,
		OrderKind: kind,
		Status:    status,
	}

	notificationBytes, _ := json.Marshal(notification)

	publish := func() error {
		statusQueue, err := redis_client.QueueConnection.OpenQueue(StatusQueueName)
		if err != nil {
			return err
		}

		return statusQueue.PublishBytes(notificationBytes)
	}

	publishBackoff := backoff.NewExponentialBackOff()
	publishBackoff.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(publish, publishBackoff); err != nil {
		log.Error().Err(err).Str("order", orderRef).Msg("Failed to publish status change")
	}
}
