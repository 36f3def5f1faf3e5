package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/application/manufacturing"
)

// PurgeHandler maneja el borrado total de datos de manufactura (protegido,
// solo admin).
type PurgeHandler struct {
	uc *manufacturing.PurgeUseCase
}

// NewPurgeHandler construye el handler.
func NewPurgeHandler(uc *manufacturing.PurgeUseCase) *PurgeHandler {
	return &PurgeHandler{uc: uc}
}

// Purge godoc
// @Summary      Purgar todos los datos de manufactura
// @Description  Elimina libro, movimientos, órdenes, BOMs, catálogo,
//               ubicaciones y proveedores en una sola transacción. Requiere
//               confirm=true; sin él responde 409.
// @Tags         manufacturing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PurgeRequest  true  "confirm debe ser true"
// @Success      200  {object}  dto.PurgeResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/manufacturing/purge [post]
func (h *PurgeHandler) Purge(c *fiber.Ctx) error {
	var in dto.PurgeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.PurgeAll(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
