package main

import (
	"os"
	"time"

	"github.com/railgo/railgo/pkg/api"
	"github.com/railgo/railgo/pkg/notify"
	"github.com/railgo/railgo/pkg/planner"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("RAILGO_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("RAILGO_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "railgo",
		Description: "Single binary of truth for railgo - runs all the services",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			planner.RegisterCLI(),
			notify.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
