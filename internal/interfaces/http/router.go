package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Movements *inventory.MovementUseCase
	Queries   *inventory.QueryUseCase
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	inv := api.Group("/inventory")
	handler := NewInventoryHandler(deps.Movements, deps.Queries, deps.Log)
	inv.Post("/entries", handler.RegisterEntry)
	inv.Post("/exits", handler.RegisterExit)
	inv.Get("/stock", handler.ListStock)
	inv.Get("/transactions", handler.ListTransactions)
}
