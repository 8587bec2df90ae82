package routes

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/railgo/railgo/pkg/rtdf"
)

func JourneysRouter(router fiber.Router) {
	router.Get("/direct/:origin/:destination", getDirectJourneys)
	router.Get("/transfer/:origin/:destination", getTransferJourneys)
}

func journeyQuery(c *fiber.Ctx) (time.Time, []rtdf.StationRange, error) {
	date, err := time.Parse("2006-01-02", c.Query("date", time.Now().UTC().Format("2006-01-02")))
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("%w: %s", rtdf.ErrInvalidDate, c.Query("date"))
	}

	pairs := []rtdf.StationRange{
		{
			From: c.Params("origin"),
			To:   c.Params("destination"),
		},
	}

	return date, pairs, nil
}

func getDirectJourneys(c *fiber.Ctx) error {
	date, pairs, err := journeyQuery(c)
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	schedules, err := journeyPlanner.DirectSchedules(context.Background(), date, pairs)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(schedules)
}

func getTransferJourneys(c *fiber.Ctx) error {
	date, pairs, err := journeyQuery(c)
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	options, err := journeyPlanner.TransferSchedules(context.Background(), date, pairs)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(options)
}
