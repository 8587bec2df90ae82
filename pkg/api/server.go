package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/railgo/railgo/pkg/api/routes"
)

func SetupServer(listen string) error {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.JourneysRouter(group.Group("/journeys"))

	routes.SchedulesRouter(group.Group("/schedules"))

	routes.OrdersRouter(group.Group("/orders"))

	routes.TransactionsRouter(group.Group("/transactions"))

	return webApp.Listen(listen)
}
