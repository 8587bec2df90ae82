package booking

import (
	"errors"
	"fmt"

	"github.com/railgo/railgo/pkg/rtdf"
)

// ErrNoAvailableTickets surfaces when the inventory has no seat for an order.
// It is terminal for that order - the order is left Failed and the booking is
// not retriable.
var ErrNoAvailableTickets = errors.New("no available tickets")

type InvalidOrderStatusError struct {
	OrderRef string
	Status   rtdf.OrderStatus
}

func (e InvalidOrderStatusError) Error() string {
	return fmt.Sprintf("order %s has invalid status %s for this operation", e.OrderRef, e.Status)
}

// CompensationError wraps a cancellation failure during atomic-group rollback.
// The rollback itself is not transactional; callers seeing this may need
// manual reconciliation.
type CompensationError struct {
	OrderRef string
	Err      error
}

func (e CompensationError) Error() string {
	return fmt.Sprintf("compensation failed for order %s: %s", e.OrderRef, e.Err)
}

func (e CompensationError) Unwrap() error {
	return e.Err
}
