package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/application/manufacturing"
	"github.com/jhoicas/manufactura-api/internal/domain"
)

// BOMHandler maneja las peticiones HTTP de listas de materiales (protegido).
type BOMHandler struct {
	uc *manufacturing.BOMUseCase
}

// NewBOMHandler construye el handler.
func NewBOMHandler(uc *manufacturing.BOMUseCase) *BOMHandler {
	return &BOMHandler{uc: uc}
}

// Create godoc
// @Summary      Crear BOM
// @Description  Los costos por componente y los totales se recalculan en el
//               servidor; los totales enviados por el cliente se ignoran.
// @Tags         boms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBOMRequest  true  "product_sku, product_name y components requeridos"
// @Success      201  {object}  dto.BOMResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boms [post]
func (h *BOMHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBOMRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar BOMs
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máx. por página (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.BOMListResponse
// @Router       /api/boms [get]
func (h *BOMHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	out, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener BOM por ID o SKU de producto
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la BOM o SKU del producto terminado"
// @Success      200  {object}  dto.BOMResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boms/{id} [get]
func (h *BOMHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.Get(c.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		out, err = h.uc.GetByProductSKU(c.Context(), id)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar BOM
// @Description  Cambiar componentes o tasas de mano de obra/indirectos
//               recalcula los costos en el servidor.
// @Tags         boms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la BOM"
// @Param        body  body  dto.UpdateBOMRequest  true  "campos a modificar"
// @Success      200  {object}  dto.BOMResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boms/{id} [put]
func (h *BOMHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBOMRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar BOM
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la BOM"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/boms/{id} [delete]
func (h *BOMHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
