package planner

import (
	"context"
	"time"

	"github.com/kr/pretty"
	"github.com/railgo/railgo/pkg/database"
	"github.com/railgo/railgo/pkg/redis_client"
	"github.com/railgo/railgo/pkg/repository"
	"github.com/railgo/railgo/pkg/rtdf"
	"github.com/railgo/railgo/pkg/util"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "planner",
		Usage: "Provides the journey planner",
		Subcommands: []*cli.Command{
			{
				Name:  "plan",
				Usage: "resolve a station pair against the connection board",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "date",
						Usage:    "operating date (YYYY-MM-DD)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "from",
						Usage:    "origin station identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "to",
						Usage:    "destination station identifier",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}

					date, err := time.Parse("2006-01-02", c.String("date"))
					if err != nil {
						return err
					}

					networkRepository := repository.NewNetworkRepository()
					scheduleRepository := repository.NewScheduleRepository()

					journeyPlanner := NewPlanner(networkRepository, scheduleRepository)
					journeyPlanner.SetupCache()

					pairs := []rtdf.StationRange{{From: c.String("from"), To: c.String("to")}}

					routes, err := networkRepository.GetRoutes(context.Background())
					if err != nil {
						return err
					}

					stationGraph := BuildStationGraph(routes)
					pretty.Println("adjacent routes:", stationGraph.AdjacentRoutes(c.String("from"), c.String("to")))

					directSchedules, err := journeyPlanner.DirectSchedules(context.Background(), date, pairs)
					if err != nil {
						return err
					}
					pretty.Println("direct:", directSchedules)
					for _, schedule := range directSchedules {
						pretty.Println(schedule.PrimaryIdentifier, "departs", util.DateAtOffset(date, schedule.OriginDeparture))
					}

					transferOptions, err := journeyPlanner.TransferSchedules(context.Background(), date, pairs)
					if err != nil {
						return err
					}
					pretty.Println("transfer:", transferOptions)

					return nil
				},
			},
		},
	}
}
