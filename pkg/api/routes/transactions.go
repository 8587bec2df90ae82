package routes

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/railgo/railgo/pkg/payment"
)

func TransactionsRouter(router fiber.Router) {
	router.Get("/:identifier", getTransaction)
	router.Get("/:identifier/orders", getTransactionOrders)

	router.Post("/:identifier/pay", payTransaction)
	router.Post("/:identifier/refund", refundTransaction)
}

func getTransaction(c *fiber.Ctx) error {
	transaction, err := paymentSaga.Transactions.FindTransaction(context.Background(), c.Params("identifier"))
	if err != nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(transaction)
}

func getTransactionOrders(c *fiber.Ctx) error {
	orders, err := orderRepository.FindOrdersByTransaction(context.Background(), c.Params("identifier"))
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(orders)
}

func payTransaction(c *fiber.Ctx) error {
	err := paymentSaga.Pay(context.Background(), c.Params("identifier"))
	if err != nil {
		status := fiber.StatusConflict

		if errors.Is(err, payment.ErrInsufficientBalance) || errors.Is(err, payment.ErrNegativeAmountPayment) {
			status = fiber.StatusBadRequest
		}

		c.SendStatus(status)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"paid": c.Params("identifier"),
	})
}

type refundTransactionRequest struct {
	OrderRefs []string `json:"order_refs"`
}

func refundTransaction(c *fiber.Ctx) error {
	var request refundTransactionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&request); err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	transactionRef := c.Params("identifier")

	var refund interface{}
	var err error

	// No explicit order subset means a full refund
	if len(request.OrderRefs) == 0 {
		refund, err = paymentSaga.RefundTransaction(context.Background(), transactionRef)
	} else {
		refund, err = paymentSaga.RefundOrders(context.Background(), transactionRef, request.OrderRefs)
	}

	if err != nil {
		c.SendStatus(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(refund)
}
