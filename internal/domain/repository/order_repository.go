package repository

import (
	"context"

	"github.com/jhoicas/manufactura-api/internal/domain/entity"
)

// OrderFilter acota el listado de órdenes de producción.
type OrderFilter struct {
	Status     string
	ProductSKU string
	Limit      int
	Offset     int
}

// ProductionOrderRepository define el puerto de persistencia para órdenes de producción (DIP).
type ProductionOrderRepository interface {
	Create(ctx context.Context, order *entity.ProductionOrder) error
	GetByID(ctx context.Context, id string) (*entity.ProductionOrder, error)
	// GetByIDForUpdate relee la orden bloqueando la fila: toda transición debe
	// verificar el estado vigente dentro de la transacción, no un snapshot previo.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.ProductionOrder, error)
	List(ctx context.Context, filter OrderFilter) ([]*entity.ProductionOrder, error)
	Update(ctx context.Context, order *entity.ProductionOrder) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	// NextWorkOrderNumber reserva el siguiente número WO-#### desde la secuencia.
	NextWorkOrderNumber(ctx context.Context) (string, error)
}
