package inventory

import (
	"context"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

// MovementQueryUseCase consulta el registro de movimientos (solo lectura más
// el borrado administrativo de una entrada puntual).
type MovementQueryUseCase struct {
	movements repository.StockMovementRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(movements repository.StockMovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movements: movements}
}

// List lista movimientos con filtros opcionales.
func (uc *MovementQueryUseCase) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}
	return uc.movements.List(ctx, filter)
}

// Get obtiene un movimiento por ID.
func (uc *MovementQueryUseCase) Get(ctx context.Context, id string) (*entity.StockMovement, error) {
	mov, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return mov, nil
}

// ToMovementResponse mapea una entrada del registro a su DTO de salida.
func ToMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		MovementID:    m.MovementID,
		TransactionID: m.TransactionID,
		Date:          m.Date,
		Type:          m.Type,
		ItemName:      m.ItemName,
		SKU:           m.SKU,
		Quantity:      m.Quantity,
		FromLocation:  m.FromLocation,
		ToLocation:    m.ToLocation,
		Reference:     m.Reference,
		PerformedBy:   m.PerformedBy,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
	}
}

// Delete elimina una entrada del registro. No revierte el efecto en el libro:
// las correcciones de stock se hacen con un movimiento de ajuste.
func (uc *MovementQueryUseCase) Delete(ctx context.Context, id string) error {
	mov, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if mov == nil {
		return domain.ErrNotFound
	}
	return uc.movements.Delete(ctx, id)
}
