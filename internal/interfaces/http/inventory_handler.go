package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/application/inventory"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
	"github.com/jhoicas/manufactura-api/internal/infrastructure/metrics"
)

// InventoryHandler maneja las peticiones HTTP de transacciones de stock, vistas
// de inventario y registro de movimientos (protegido).
type InventoryHandler struct {
	transactions *inventory.StockTransactionUseCase
	views        *inventory.ViewsUseCase
	movements    *inventory.MovementQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(transactions *inventory.StockTransactionUseCase, views *inventory.ViewsUseCase, movements *inventory.MovementQueryUseCase) *InventoryHandler {
	return &InventoryHandler{transactions: transactions, views: views, movements: movements}
}

// RegisterTransaction godoc
// @Summary      Registrar transacción de stock
// @Description  receipt/return suma, consumption/sale/production resta,
//               adjustment conserva el signo, transfer genera dos patas con el
//               mismo transaction_id. location_id vacío usa la bodega principal.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockTransactionRequest  true  "type, sku y quantity requeridos; transfer usa from/to"
// @Success      201  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions [post]
func (h *InventoryHandler) RegisterTransaction(c *fiber.Ctx) error {
	var in dto.StockTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.transactions.Register(c.Context(), inventory.TransactionInput{
		Type:           in.Type,
		SKU:            in.SKU,
		ItemName:       in.ItemName,
		Quantity:       in.Quantity,
		LocationID:     in.LocationID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		UnitCost:       in.UnitCost,
		Reference:      in.Reference,
		Notes:          in.Notes,
		PerformedBy:    GetUserID(c),
		Date:           in.Date,
	})
	if err != nil {
		return respondError(c, err)
	}
	metrics.MovementsRecorded.WithLabelValues(mov.Type).Inc()
	return c.Status(fiber.StatusCreated).JSON(inventory.ToMovementResponse(mov))
}

// PerLocation godoc
// @Summary      Inventario por ubicación
// @Description  Filas del libro de la ubicación con metadatos del catálogo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la ubicación"
// @Success      200  {array}   dto.LocationInventoryRow
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/locations/{id} [get]
func (h *InventoryHandler) PerLocation(c *fiber.Ctx) error {
	rows, err := h.views.PerLocation(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(rows), "items": rows})
}

// Aggregate godoc
// @Summary      Inventario agregado
// @Description  Vista global por SKU con el desglose por ubicación.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AggregateInventoryRow
// @Router       /api/inventory/aggregate [get]
func (h *InventoryHandler) Aggregate(c *fiber.Ctx) error {
	rows, err := h.views.Aggregate(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(rows), "items": rows})
}

// LowStock godoc
// @Summary      Reporte de stock bajo
// @Description  SKUs cuyo disponible (existencia − asignado) está en o bajo el
//               punto de reorden.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockRow
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	rows, err := h.views.LowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(rows), "items": rows})
}

// ListMovements godoc
// @Summary      Listar movimientos de stock
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        sku       query  string  false  "filtrar por SKU"
// @Param        type      query  string  false  "filtrar por tipo de movimiento"
// @Param        location  query  string  false  "coincide con origen o destino"
// @Param        from      query  string  false  "fecha inicial (RFC 3339)"
// @Param        to        query  string  false  "fecha final (RFC 3339)"
// @Param        limit     query  int     false  "máx. por página (default 50, tope 500)"
// @Param        offset    query  int     false  "desplazamiento"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	filter := repository.MovementFilter{
		SKU:      c.Query("sku"),
		Type:     c.Query("type"),
		Location: c.Query("location"),
		Limit:    c.QueryInt("limit"),
		Offset:   c.QueryInt("offset"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC 3339"})
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC 3339"})
		}
		filter.To = &t
	}
	movs, err := h.movements.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, inventory.ToMovementResponse(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// GetMovement godoc
// @Summary      Obtener movimiento por ID
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de fila o MOV####"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	mov, err := h.movements.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inventory.ToMovementResponse(mov))
}

// DeleteMovement godoc
// @Summary      Eliminar entrada del registro de movimientos
// @Description  No revierte el efecto en el libro; las correcciones de stock se
//               hacen con un movimiento de ajuste.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de fila o MOV####"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [delete]
func (h *InventoryHandler) DeleteMovement(c *fiber.Ctx) error {
	if err := h.movements.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
