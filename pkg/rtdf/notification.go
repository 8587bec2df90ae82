package rtdf

import "encoding/json"

type NotificationType string

const (
	NotificationTypeOrderStatusChanged NotificationType = "OrderStatusChanged"
)

// Notification is the fire-and-forget signal published whenever an order's
// status changes. Consumers switch on the order kind.
type Notification struct {
	Type NotificationType

	OrderRef  string
	OrderKind OrderKind
	Status    OrderStatus
}

func (n Notification) MarshalBinary() ([]byte, error) {
	return json.Marshal(n)
}
