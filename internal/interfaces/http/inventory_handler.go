package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// InventoryHandler maneja las peticiones HTTP de movimientos y consultas de stock.
type InventoryHandler struct {
	movements *inventory.MovementUseCase
	queries   *inventory.QueryUseCase
	log       *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(movements *inventory.MovementUseCase, queries *inventory.QueryUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{movements: movements, queries: queries, log: log}
}

// RegisterEntry registra una entrada de producto.
// POST /api/inventory/entries
func (h *InventoryHandler) RegisterEntry(c *fiber.Ctx) error {
	in, err := h.parseMovement(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.movements.RegisterEntry(c.Context(), in)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{
		Message: "entrada registrada",
		Data:    dto.NewStockItemDTO(*item),
	})
}

// RegisterExit registra una salida de producto.
// POST /api/inventory/exits
func (h *InventoryHandler) RegisterExit(c *fiber.Ctx) error {
	in, err := h.parseMovement(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// En salidas el valor unitario suministrado se ignora: vale el del stock
	in.UnitValue = nil
	item, err := h.movements.RegisterExit(c.Context(), in)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(dto.MessageResponse{
		Message: "salida registrada",
		Data:    dto.NewStockItemDTO(*item),
	})
}

// ListStock devuelve el listado completo de stock actual.
// GET /api/inventory/stock
func (h *InventoryHandler) ListStock(c *fiber.Ctx) error {
	items, err := h.queries.ListStock(c.Context())
	if err != nil {
		return h.mapError(c, err)
	}
	out := make([]dto.StockItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewStockItemDTO(it))
	}
	return c.JSON(dto.MessageResponse{Message: "stock actual", Data: out})
}

// ListTransactions devuelve el histórico de movimientos con filtros opcionales.
// GET /api/inventory/transactions?start=&end=&product_type=
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	filter := repository.TransactionFilter{ProductType: c.Query("product_type")}

	start, err := parseDateParam(c.Query("start"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetro start inválido (RFC3339 o YYYY-MM-DD)"})
	}
	end, err := parseDateParam(c.Query("end"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetro end inválido (RFC3339 o YYYY-MM-DD)"})
	}
	filter.Start, filter.End = start, end

	recs, err := h.queries.ListTransactions(c.Context(), filter)
	if err != nil {
		return h.mapError(c, err)
	}
	out := make([]dto.TransactionDTO, 0, len(recs))
	for _, rec := range recs {
		out = append(out, dto.NewTransactionDTO(rec))
	}
	return c.JSON(dto.MessageResponse{Message: "histórico de movimientos", Data: out})
}

func (h *InventoryHandler) parseMovement(c *fiber.Ctx) (inventory.MovementInput, error) {
	var req dto.MovementRequest
	if err := c.BodyParser(&req); err != nil {
		return inventory.MovementInput{}, err
	}
	in := inventory.MovementInput{
		ProductName: req.ProductName,
		ProductType: req.ProductType,
		Quantity:    req.Quantity,
		UnitValue:   req.UnitValue,
	}
	if req.MovementDate != nil {
		in.Date = *req.MovementDate
	}
	return in, nil
}

// mapError traduce errores de dominio a respuestas HTTP: validación y not-found
// a errores de cliente con mensaje descriptivo; todo lo demás a 500 con mensaje
// genérico, con el detalle en el log pero nunca en la respuesta.
func (h *InventoryHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnitValueRequired):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	}
	h.log.Error().Err(err).Str("path", c.Path()).Msg("operación de inventario fallida")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "ocurrió un error interno"})
}

// parseDateParam acepta RFC3339 o fecha sola (YYYY-MM-DD); vacío devuelve nil.
func parseDateParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New("formato de fecha inválido")
}
