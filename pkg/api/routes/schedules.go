package routes

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/railgo/railgo/pkg/inventory"
	"github.com/railgo/railgo/pkg/rtdf"
)

func SchedulesRouter(router fiber.Router) {
	router.Get("/:identifier", getSchedule)
	router.Post("/", materializeSchedule)

	router.Get("/availability/:identifier/count", getAvailableSeatsCount)
}

func getSchedule(c *fiber.Ctx) error {
	schedule, err := scheduleRepository.FindSchedule(context.Background(), c.Params("identifier"))
	if err != nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(schedule)
}

type materializeScheduleRequest struct {
	TrainRef string `json:"train_ref"`
	Date     string `json:"date"`

	OriginDeparture int64 `json:"origin_departure"`
}

func materializeSchedule(c *fiber.Ctx) error {
	var request materializeScheduleRequest
	if err := c.BodyParser(&request); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	date, err := time.Parse("2006-01-02", request.Date)
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": fmt.Sprintf("%s: %s", rtdf.ErrInvalidDate, request.Date),
		})
	}

	train, err := networkRepository.GetTrain(context.Background(), request.TrainRef)
	if err != nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	route, err := networkRepository.GetRoute(context.Background(), train.RouteRef)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	schedule, err := rtdf.MaterializeSchedule(train, route, date, request.OriginDeparture)
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := scheduleRepository.InsertSchedule(context.Background(), schedule); err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.SendStatus(fiber.StatusCreated)
	return c.JSON(schedule)
}

func getAvailableSeatsCount(c *fiber.Ctx) error {
	availabilityID := c.Params("identifier")

	schedule, err := scheduleRepository.FindScheduleByAvailability(context.Background(), availabilityID)
	if err != nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	route, err := networkRepository.GetRoute(context.Background(), schedule.RouteRef)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	count, err := inventory.Engine{}.AvailableSeatsCount(schedule, route, availabilityID)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"availability": availabilityID,
		"count":        count,
	})
}
