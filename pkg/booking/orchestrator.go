package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/railgo/railgo/pkg/inventory"
	"github.com/railgo/railgo/pkg/rtdf"
	"github.com/rs/zerolog/log"
)

type ScheduleRepository interface {
	FindSchedule(ctx context.Context, identifier string) (*rtdf.TrainSchedule, error)
	Save(ctx context.Context, schedule *rtdf.TrainSchedule) error
}

type OrderRepository interface {
	FindOrder(ctx context.Context, identifier string) (*rtdf.Order, error)
	SaveOrder(ctx context.Context, order *rtdf.Order) error
}

type RouteProvider interface {
	GetRoute(ctx context.Context, identifier string) (*rtdf.Route, error)
}

type StatusNotifier interface {
	NotifyStatusChange(orderRef string, kind rtdf.OrderKind, status rtdf.OrderStatus)
}

// Refunder is the slice of the transaction saga the orchestrator needs when a
// paid order gets cancelled.
type Refunder interface {
	RefundOrders(ctx context.Context, transactionRef string, orderRefs []string) (*rtdf.Transaction, error)
}

type Orchestrator struct {
	Schedules ScheduleRepository
	Orders    OrderRepository
	Routes    RouteProvider
	Notifier  StatusNotifier
	Refunder  Refunder
	Locks     *LockRegistry

	engine inventory.Engine
}

func NewOrchestrator(schedules ScheduleRepository, orders OrderRepository, routes RouteProvider, notifier StatusNotifier, refunder Refunder) *Orchestrator {
	return &Orchestrator{
		Schedules: schedules,
		Orders:    orders,
		Routes:    routes,
		Notifier:  notifier,
		Refunder:  refunder,
		Locks:     NewLockRegistry(),
	}
}

// BookTicket claims inventory for a Paid order. On success the order becomes
// Ongoing with its reserved seat attached; when no seat is available the order
// becomes Failed and ErrNoAvailableTickets surfaces.
func (o *Orchestrator) BookTicket(ctx context.Context, orderRef string) error {
	order, err := o.Orders.FindOrder(ctx, orderRef)
	if err != nil {
		return err
	}

	if order.Status != rtdf.OrderStatusPaid {
		return InvalidOrderStatusError{OrderRef: orderRef, Status: order.Status}
	}

	switch order.Kind {
	case rtdf.OrderKindTrain:
		return o.bookTrainTicket(ctx, order)
	case rtdf.OrderKindHotel, rtdf.OrderKindDish, rtdf.OrderKindTakeaway:
		// The simplified variants have no seat inventory to exhaust
		return o.setOrderStatus(ctx, order, rtdf.OrderStatusOngoing)
	default:
		return fmt.Errorf("%w: order %s has unknown kind %s", rtdf.ErrInconsistentState, orderRef, order.Kind)
	}
}

func (o *Orchestrator) bookTrainTicket(ctx context.Context, order *rtdf.Order) error {
	if order.Train == nil {
		return fmt.Errorf("%w: train order %s carries no train details", rtdf.ErrInconsistentState, order.PrimaryIdentifier)
	}

	unlock := o.Locks.Lock(order.Train.ScheduleRef)
	defer unlock()

	schedule, err := o.Schedules.FindSchedule(ctx, order.Train.ScheduleRef)
	if err != nil {
		return err
	}

	route, err := o.Routes.GetRoute(ctx, schedule.RouteRef)
	if err != nil {
		return err
	}

	verifiedRange, err := route.VerifyRange(order.Train.Range)
	if err != nil {
		return err
	}

	seat, err := o.engine.ReserveSeat(schedule, route, order.Train.SeatTypeRef, verifiedRange, order.Train.SeatLocationPreference, order.Train.Passenger)

	if errors.Is(err, inventory.ErrNoAvailableSeat) {
		if statusErr := o.setOrderStatus(ctx, order, rtdf.OrderStatusFailed); statusErr != nil {
			return statusErr
		}

		return fmt.Errorf("%w: order %s", ErrNoAvailableTickets, order.PrimaryIdentifier)
	} else if err != nil {
		return err
	}

	if err := o.Schedules.Save(ctx, schedule); err != nil {
		return err
	}

	order.Train.SeatRef = seat.Identifier

	return o.setOrderStatus(ctx, order, rtdf.OrderStatusOngoing)
}

// CancelTicket cancels an order from Unpaid, Paid or Ongoing. An Ongoing
// order's seat is released first; a paid order additionally triggers a refund
// through the transaction saga.
func (o *Orchestrator) CancelTicket(ctx context.Context, orderRef string) error {
	order, err := o.Orders.FindOrder(ctx, orderRef)
	if err != nil {
		return err
	}

	switch order.Status {
	case rtdf.OrderStatusUnpaid, rtdf.OrderStatusPaid, rtdf.OrderStatusOngoing:
	default:
		return InvalidOrderStatusError{OrderRef: orderRef, Status: order.Status}
	}

	wasPaid := order.Status != rtdf.OrderStatusUnpaid

	if order.Status == rtdf.OrderStatusOngoing && order.Kind == rtdf.OrderKindTrain {
		if err := o.releaseTrainSeat(ctx, order); err != nil {
			return err
		}
	}

	if err := o.setOrderStatus(ctx, order, rtdf.OrderStatusCancelled); err != nil {
		return err
	}

	if wasPaid {
		if order.TransactionRef == "" {
			return fmt.Errorf("%w: paid order %s carries no transaction reference", rtdf.ErrInconsistentState, orderRef)
		}

		if _, err := o.Refunder.RefundOrders(ctx, order.TransactionRef, []string{orderRef}); err != nil {
			return err
		}
	}

	return nil
}

func (o *Orchestrator) releaseTrainSeat(ctx context.Context, order *rtdf.Order) error {
	if order.Train == nil || order.Train.SeatRef == "" {
		return fmt.Errorf("%w: ongoing train order %s carries no reserved seat", rtdf.ErrInconsistentState, order.PrimaryIdentifier)
	}

	unlock := o.Locks.Lock(order.Train.ScheduleRef)
	defer unlock()

	schedule, err := o.Schedules.FindSchedule(ctx, order.Train.ScheduleRef)
	if err != nil {
		return err
	}

	route, err := o.Routes.GetRoute(ctx, schedule.RouteRef)
	if err != nil {
		return err
	}

	verifiedRange, err := route.VerifyRange(order.Train.Range)
	if err != nil {
		return err
	}

	if err := o.engine.FreeSeat(schedule, order.Train.SeatTypeRef, verifiedRange, order.Train.SeatRef); err != nil {
		return err
	}

	if err := o.Schedules.Save(ctx, schedule); err != nil {
		return err
	}

	order.Train.SeatRef = ""

	return nil
}

// BookGroup books each order in sequence. In atomic mode the first failure
// cancels every previously booked order of this call in reverse order before
// the failure propagates, so the group either fully succeeds or leaves no
// Ongoing orders behind.
func (o *Orchestrator) BookGroup(ctx context.Context, orderRefs []string, atomic bool) ([]*rtdf.Order, error) {
	var booked []*rtdf.Order

	for _, orderRef := range orderRefs {
		err := o.BookTicket(ctx, orderRef)

		if err != nil {
			if !atomic {
				log.Info().Err(err).Str("order", orderRef).Msg("Skipping failed booking in non-atomic group")
				continue
			}

			for i := len(booked) - 1; i >= 0; i-- {
				if cancelErr := o.CancelTicket(ctx, booked[i].PrimaryIdentifier); cancelErr != nil {
					return nil, CompensationError{OrderRef: booked[i].PrimaryIdentifier, Err: cancelErr}
				}
			}

			return nil, err
		}

		order, err := o.Orders.FindOrder(ctx, orderRef)
		if err != nil {
			return nil, err
		}

		// The simplified kinds report no booked orders by convention
		if order.Kind == rtdf.OrderKindDish || order.Kind == rtdf.OrderKindTakeaway {
			continue
		}

		booked = append(booked, order)
	}

	return booked, nil
}

func (o *Orchestrator) setOrderStatus(ctx context.Context, order *rtdf.Order, status rtdf.OrderStatus) error {
	if !order.Status.CanBecome(status) {
		return InvalidOrderStatusError{OrderRef: order.PrimaryIdentifier, Status: order.Status}
	}

	order.Status = status
	order.ModificationDateTime = time.Now()

	if err := o.Orders.SaveOrder(ctx, order); err != nil {
		return err
	}

	if o.Notifier != nil {
		o.Notifier.NotifyStatusChange(order.PrimaryIdentifier, order.Kind, status)
	}

	return nil
}
