package notify

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/railgo/railgo/pkg/booking"
	"github.com/railgo/railgo/pkg/consumer"
	"github.com/railgo/railgo/pkg/database"
	"github.com/railgo/railgo/pkg/payment"
	"github.com/railgo/railgo/pkg/redis_client"
	"github.com/railgo/railgo/pkg/repository"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "notify",
		Usage: "Provides the order status notification system",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the paid-order consumer",
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

					publisher := NewPublisher()

					saga := payment.NewSaga(transactionRepository, orderRepository, userRepository, publisher)
					orchestrator := booking.NewOrchestrator(scheduleRepository, orderRepository, networkRepository, publisher, saga)

					redisConsumer := consumer.RedisConsumer{
						QueueName:       StatusQueueName,
						NumberConsumers: 5,
						BatchSize:       20,
						Timeout:         2 * time.Second,
						Consumer:        NewStatusBatchConsumer(orchestrator),
					}
					redisConsumer.Setup()

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT)
					defer signal.Stop(signals)

					<-signals // wait for signal
					go func() {
						<-signals // hard exit on second signal (in case shutdown gets stuck)
						os.Exit(1)
					}()

					<-redis_client.QueueConnection.StopAllConsuming() // wait for all Consume() calls to finish

					return nil
				},
			},
		},
	}
}
