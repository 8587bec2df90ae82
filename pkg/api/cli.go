package api

import (
	"github.com/railgo/railgo/pkg/api/routes"
	"github.com/railgo/railgo/pkg/booking"
	"github.com/railgo/railgo/pkg/database"
	"github.com/railgo/railgo/pkg/notify"
	"github.com/railgo/railgo/pkg/payment"
	"github.com/railgo/railgo/pkg/planner"
	"github.com/railgo/railgo/pkg/redis_client"
	"github.com/railgo/railgo/pkg/repository"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the core web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}

					scheduleRepository := repository.NewScheduleRepository()
					orderRepository := repository.NewOrderRepository()
					transactionRepository := repository.NewTransactionRepository()
					userRepository := repository.NewUserRepository()
					networkRepository := repository.NewNetworkRepository()

					publisher := notify.NewPublisher()

					journeyPlanner := planner.NewPlanner(networkRepository, scheduleRepository)
					journeyPlanner.SetupCache()

					saga := payment.NewSaga(transactionRepository, orderRepository, userRepository, publisher)
					orchestrator := booking.NewOrchestrator(scheduleRepository, orderRepository, networkRepository, publisher, saga)

					routes.Setup(journeyPlanner, orchestrator, saga, scheduleRepository, orderRepository, networkRepository)

					return SetupServer(c.String("listen"))
				},
			},
		},
	}
}
