package routes

import (
	"github.com/railgo/railgo/pkg/booking"
	"github.com/railgo/railgo/pkg/payment"
	"github.com/railgo/railgo/pkg/planner"
	"github.com/railgo/railgo/pkg/repository"
)

var (
	journeyPlanner *planner.Planner
	orchestrator   *booking.Orchestrator
	paymentSaga    *payment.Saga

	scheduleRepository *repository.ScheduleRepository
	orderRepository    *repository.OrderRepository
	networkRepository  *repository.NetworkRepository
)

// Setup wires the shared service instances the route handlers dispatch to.
func Setup(p *planner.Planner, o *booking.Orchestrator, s *payment.Saga, schedules *repository.ScheduleRepository, orders *repository.OrderRepository, network *repository.NetworkRepository) {
	journeyPlanner = p
	orchestrator = o
	paymentSaga = s

	scheduleRepository = schedules
	orderRepository = orders
	networkRepository = network
}
