package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/infrastructure/metrics"
)

// respondError traduce errores de dominio a códigos HTTP. Los handlers solo
// distinguen los casos donde necesitan un mensaje específico; el resto pasa
// por aquí.
//
//	400 entrada inválida
//	404 no encontrado
//	409 stock insuficiente, duplicado, referencia bloqueante,
//	    transición no permitida, estado modificado concurrentemente,
//	    falta confirmación
//	504 transacción excedió el límite de tiempo
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		metrics.InsufficientStock.Inc()
		var ins *domain.InsufficientStockError
		if errors.As(err, &ins) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: ins.Error()})
		}
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un recurso con ese identificador"})
	case errors.Is(err, domain.ErrConstraintViolation):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONSTRAINT", Message: "eliminación bloqueada por referencias existentes"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
	case errors.Is(err, domain.ErrStaleOrderState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STALE_STATE", Message: "la orden fue modificada por otra operación, reintente"})
	case errors.Is(err, domain.ErrConfirmationNeeded):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFIRMATION_NEEDED", Message: "la operación requiere confirm=true"})
	case errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusGatewayTimeout).JSON(dto.ErrorResponse{Code: "TX_TIMEOUT", Message: "la transacción excedió el límite de tiempo"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
