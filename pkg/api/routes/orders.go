package routes

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/railgo/railgo/pkg/booking"
)

func OrdersRouter(router fiber.Router) {
	router.Get("/:identifier", getOrder)

	router.Post("/group", bookOrderGroup)
	router.Post("/:identifier/cancel", cancelOrder)
}

func getOrder(c *fiber.Ctx) error {
	order, err := orderRepository.FindOrder(context.Background(), c.Params("identifier"))
	if err != nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(order)
}

type bookOrderGroupRequest struct {
	OrderRefs []string `json:"order_refs"`
	Atomic    bool     `json:"atomic"`
}

func bookOrderGroup(c *fiber.Ctx) error {
	var request bookOrderGroupRequest
	if err := c.BodyParser(&request); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	booked, err := orchestrator.BookGroup(context.Background(), request.OrderRefs, request.Atomic)
	if err != nil {
		status := fiber.StatusConflict

		var invalidStatus booking.InvalidOrderStatusError
		if errors.As(err, &invalidStatus) {
			status = fiber.StatusBadRequest
		}

		c.SendStatus(status)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(booked)
}

func cancelOrder(c *fiber.Ctx) error {
	err := orchestrator.CancelTicket(context.Background(), c.Params("identifier"))
	if err != nil {
		status := fiber.StatusConflict

		var invalidStatus booking.InvalidOrderStatusError
		if errors.As(err, &invalidStatus) {
			status = fiber.StatusBadRequest
		}

		c.SendStatus(status)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"cancelled": c.Params("identifier"),
	})
}
