package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/railgo/railgo/pkg/rtdf"
)

type fakeScheduleRepository struct {
	schedules map[string]*rtdf.TrainSchedule
	saves     int
}

func (r *fakeScheduleRepository) FindSchedule(ctx context.Context, identifier string) (*rtdf.TrainSchedule, error) {
	schedule, exists := r.schedules[identifier]
	if !exists {
		return nil, fmt.Errorf("no schedule %s", identifier)
	}

	return schedule, nil
}

func (r *fakeScheduleRepository) Save(ctx context.Context, schedule *rtdf.TrainSchedule) error {
	r.saves++
	return nil
}

type fakeOrderRepository struct {
	orders map[string]*rtdf.Order
}

func (r *fakeOrderRepository) FindOrder(ctx context.Context, identifier string) (*rtdf.Order, error) {
	order, exists := r.orders[identifier]
	if !exists {
		return nil, fmt.Errorf("no order %s", identifier)
	}

	return order, nil
}

func (r *fakeOrderRepository) SaveOrder(ctx context.Context, order *rtdf.Order) error {
	r.orders[order.PrimaryIdentifier] = order
	return nil
}

type fakeRouteProvider struct {
	routes map[string]*rtdf.Route
}

func (r *fakeRouteProvider) GetRoute(ctx context.Context, identifier string) (*rtdf.Route, error) {
	route, exists := r.routes[identifier]
	if !exists {
		return nil, fmt.Errorf("no route %s", identifier)
	}

	return route, nil
}

type notifiedStatus struct {
	OrderRef string
	Status   rtdf.OrderStatus
}

type fakeNotifier struct {
	notifications []notifiedStatus
}

func (n *fakeNotifier) NotifyStatusChange(orderRef string, kind rtdf.OrderKind, status rtdf.OrderStatus) {
	n.notifications = append(n.notifications, notifiedStatus{OrderRef: orderRef, Status: status})
}

type refundCall struct {
	TransactionRef string
	OrderRefs      []string
}

type fakeRefunder struct {
	calls []refundCall
}

func (r *fakeRefunder) RefundOrders(ctx context.Context, transactionRef string, orderRefs []string) (*rtdf.Transaction, error) {
	r.calls = append(r.calls, refundCall{TransactionRef: transactionRef, OrderRefs: orderRefs})
	return &rtdf.Transaction{PrimaryIdentifier: "refund-1"}, nil
}

type bookingFixture struct {
	orchestrator *Orchestrator

	schedules *fakeScheduleRepository
	orders    *fakeOrderRepository
	notifier  *fakeNotifier
	refunder  *fakeRefunder

	schedule *rtdf.TrainSchedule
}

func newBookingFixture(t *testing.T, seatCount int) *bookingFixture {
	t.Helper()

	route := &rtdf.Route{
		PrimaryIdentifier: "route-1",
		Stops: []rtdf.Stop{
			{StationRef: "station-a", Order: 0, ArrivalTime: 28800, DepartureTime: 28800},
			{StationRef: "station-b", Order: 1, ArrivalTime: 32400, DepartureTime: 32700},
			{StationRef: "station-c", Order: 2, ArrivalTime: 36000, DepartureTime: 36000},
		},
	}

	train := &rtdf.Train{
		PrimaryIdentifier: "train-1",
		RouteRef:          "route-1",
		SeatTypes:         []rtdf.SeatType{{Name: "second-class", Capacity: seatCount, UnitPrice: 1500}},
	}
	for i := 0; i < seatCount; i++ {
		train.Seats = append(train.Seats, rtdf.Seat{
			Identifier:  fmt.Sprintf("2%c", 'A'+i),
			Carriage:    2,
			Row:         1,
			SeatTypeRef: "second-class",
		})
	}

	schedule, err := rtdf.MaterializeSchedule(train, route, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), 28800)
	if err != nil {
		t.Fatalf("expected schedule to materialize, got %v", err)
	}

	fixture := &bookingFixture{
		schedules: &fakeScheduleRepository{schedules: map[string]*rtdf.TrainSchedule{schedule.PrimaryIdentifier: schedule}},
		orders:    &fakeOrderRepository{orders: map[string]*rtdf.Order{}},
		notifier:  &fakeNotifier{},
		refunder:  &fakeRefunder{},
		schedule:  schedule,
	}

	fixture.orchestrator = NewOrchestrator(
		fixture.schedules,
		fixture.orders,
		&fakeRouteProvider{routes: map[string]*rtdf.Route{"route-1": route}},
		fixture.notifier,
		fixture.refunder,
	)

	return fixture
}

func (f *bookingFixture) addTrainOrder(identifier string, status rtdf.OrderStatus) *rtdf.Order {
	order := &rtdf.Order{
		PrimaryIdentifier: identifier,

		Kind:   rtdf.OrderKindTrain,
		Status: status,

		UserRef: "user-1",
		Amount:  1500,

		TransactionRef: "transaction-1",

		Train: &rtdf.TrainOrderDetails{
			ScheduleRef: f.schedule.PrimaryIdentifier,
			SeatTypeRef: "second-class",
			Range:       rtdf.StationRange{From: "station-a", To: "station-c"},
			Passenger:   rtdf.PersonalInfo{Name: "Passenger " + identifier},
		},
	}

	f.orders.orders[identifier] = order

	return order
}

func (f *bookingFixture) occupantCount() int {
	total := 0
	for _, availability := range f.schedule.Availability {
		total += len(availability.Occupied)
	}

	return total
}

func TestBookTicket(t *testing.T) {
	fixture := newBookingFixture(t, 1)
	fixture.addTrainOrder("order-1", rtdf.OrderStatusPaid)

	if err := fixture.orchestrator.BookTicket(context.Background(), "order-1"); err != nil {
		t.Fatalf("expected booking to succeed, got %v", err)
	}

	order := fixture.orders.orders["order-1"]
	if order.Status != rtdf.OrderStatusOngoing {
		t.Fatalf("expected Ongoing, got %s", order.Status)
	}
	if order.Train.SeatRef != "2A" {
		t.Fatalf("expected seat 2A on the order, got %q", order.Train.SeatRef)
	}

	if fixture.schedules.saves != 1 {
		t.Fatalf("expected 1 schedule save, got %d", fixture.schedules.saves)
	}

	if len(fixture.notifier.notifications) != 1 || fixture.notifier.notifications[0].Status != rtdf.OrderStatusOngoing {
		t.Fatalf("expected an Ongoing notification, got %+v", fixture.notifier.notifications)
	}
}

func TestBookTicketRequiresPaidOrder(t *testing.T) {
	fixture := newBookingFixture(t, 1)
	fixture.addTrainOrder("order-1", rtdf.OrderStatusUnpaid)

	err := fixture.orchestrator.BookTicket(context.Background(), "order-1")

	var invalidStatus InvalidOrderStatusError
	if !errors.As(err, &invalidStatus) {
		t.Fatalf("expected InvalidOrderStatusError, got %v", err)
	}
	if invalidStatus.OrderRef != "order-1" || invalidStatus.Status != rtdf.OrderStatusUnpaid {
		t.Fatalf("unexpected error details %+v", invalidStatus)
	}
}

func TestBookTicketExhaustionFailsOrder(t *testing.T) {
	fixture := newBookingFixture(t, 1)
	fixture.addTrainOrder("order-1", rtdf.OrderStatusPaid)
	fixture.addTrainOrder("order-2", rtdf.OrderStatusPaid)

	if err := fixture.orchestrator.BookTicket(context.Background(), "order-1"); err != nil {
		t.Fatalf("expected first booking to succeed, got %v", err)
	}

	err := fixture.orchestrator.BookTicket(context.Background(), "order-2")
	if !errors.Is(err, ErrNoAvailableTickets) {
		t.Fatalf("expected ErrNoAvailableTickets, got %v", err)
	}

	if fixture.orders.orders["order-2"].Status != rtdf.OrderStatusFailed {
		t.Fatalf("expected Failed, got %s", fixture.orders.orders["order-2"].Status)
	}
}

func TestCancelTicketReleasesSeatAndRefunds(t *testing.T) {
	fixture := newBookingFixture(t, 1)
	fixture.addTrainOrder("order-1", rtdf.OrderStatusPaid)

	if err := fixture.orchestrator.BookTicket(context.Background(), "order-1"); err != nil {
		t.Fatalf("expected booking to succeed, got %v", err)
	}
	if fixture.occupantCount() != 1 {
		t.Fatalf("expected 1 occupant after booking, got %d", fixture.occupantCount())
	}

	if err := fixture.orchestrator.CancelTicket(context.Background(), "order-1"); err != nil {
		t.Fatalf("expected cancellation to succeed, got %v", err)
	}

	if fixture.orders.orders["order-1"].Status != rtdf.OrderStatusCancelled {
		t.Fatalf("expected Cancelled, got %s", fixture.orders.orders["order-1"].Status)
	}
	if fixture.occupantCount() != 0 {
		t.Fatalf("expected seat release, got %d occupants", fixture.occupantCount())
	}

	if len(fixture.refunder.calls) != 1 {
		t.Fatalf("expected 1 refund call, got %d", len(fixture.refunder.calls))
	}
	call := fixture.refunder.calls[0]
	if call.TransactionRef != "transaction-1" || len(call.OrderRefs) != 1 || call.OrderRefs[0] != "order-1" {
		t.Fatalf("unexpected refund call %+v", call)
	}
}

func TestCancelTicketUnpaidSkipsRefund(t *testing.T) {
	fixture := newBookingFixture(t, 1)
	fixture.addTrainOrder("order-1", rtdf.OrderStatusUnpaid)

	if err := fixture.orchestrator.CancelTicket(context.Background(), "order-1"); err != nil {
		t.Fatalf("expected cancellation to succeed, got %v", err)
	}

	if len(fixture.refunder.calls) != 0 {
		t.Fatalf("expected no refund for an unpaid order, got %d calls", len(fixture.refunder.calls))
	}
}

func TestBookGroupAtomicRollsBackOnFailure(t *testing.T) {
	fixture := newBookingFixture(t, 2)
	fixture.addTrainOrder("order-1", rtdf.OrderStatusPaid)
	fixture.addTrainOrder("order-2", rtdf.OrderStatusPaid)
	fixture.addTrainOrder("order-3", rtdf.OrderStatusPaid)

	booked, err := fixture.orchestrator.BookGroup(context.Background(), []string{"order-1", "order-2", "order-3"}, true)
	if !errors.Is(err, ErrNoAvailableTickets) {
		t.Fatalf("expected ErrNoAvailableTickets, got %v", err)
	}
	if booked != nil {
		t.Fatalf("expected no booked orders, got %d", len(booked))
	}

	if fixture.orders.orders["order-1"].Status != rtdf.OrderStatusCancelled {
		t.Fatalf("expected order-1 Cancelled, got %s", fixture.orders.orders["order-1"].Status)
	}
	if fixture.orders.orders["order-2"].Status != rtdf.OrderStatusCancelled {
		t.Fatalf("expected order-2 Cancelled, got %s", fixture.orders.orders["order-2"].Status)
	}
	if fixture.orders.orders["order-3"].Status != rtdf.OrderStatusFailed {
		t.Fatalf("expected order-3 Failed, got %s", fixture.orders.orders["order-3"].Status)
	}

	if fixture.occupantCount() != 0 {
		t.Fatalf("expected every seat released after rollback, got %d occupants", fixture.occupantCount())
	}
}

func TestBookGroupNonAtomicSkipsFailures(t *testing.T) {
	fixture := newBookingFixture(t, 2)
	fixture.addTrainOrder("order-1", rtdf.OrderStatusPaid)
	fixture.addTrainOrder("order-2", rtdf.OrderStatusPaid)
	fixture.addTrainOrder("order-3", rtdf.OrderStatusPaid)

	booked, err := fixture.orchestrator.BookGroup(context.Background(), []string{"order-1", "order-2", "order-3"}, false)
	if err != nil {
		t.Fatalf("expected non-atomic group to succeed, got %v", err)
	}

	if len(booked) != 2 {
		t.Fatalf("expected 2 booked orders, got %d", len(booked))
	}

	if fixture.orders.orders["order-1"].Status != rtdf.OrderStatusOngoing {
		t.Fatalf("expected order-1 Ongoing, got %s", fixture.orders.orders["order-1"].Status)
	}
	if fixture.orders.orders["order-3"].Status != rtdf.OrderStatusFailed {
		t.Fatalf("expected order-3 Failed, got %s", fixture.orders.orders["order-3"].Status)
	}
}

func TestBookGroupExcludesSimplifiedKinds(t *testing.T) {
	fixture := newBookingFixture(t, 2)
	fixture.addTrainOrder("order-1", rtdf.OrderStatusPaid)

	fixture.orders.orders["order-2"] = &rtdf.Order{
		PrimaryIdentifier: "order-2",
		Kind:              rtdf.OrderKindDish,
		Status:            rtdf.OrderStatusPaid,
		Dish:              &rtdf.DishOrderDetails{DishRef: "dish-1", Quantity: 2},
	}

	booked, err := fixture.orchestrator.BookGroup(context.Background(), []string{"order-1", "order-2"}, true)
	if err != nil {
		t.Fatalf("expected group to succeed, got %v", err)
	}

	if len(booked) != 1 || booked[0].PrimaryIdentifier != "order-1" {
		t.Fatalf("expected only the train order in the result, got %+v", booked)
	}

	if fixture.orders.orders["order-2"].Status != rtdf.OrderStatusOngoing {
		t.Fatalf("expected the dish order to still be booked, got %s", fixture.orders.orders["order-2"].Status)
	}
}
