package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-api/internal/domain/entity"
)

// CatalogItemRepository define el puerto de persistencia para el catálogo maestro (DIP).
// Los contadores de asignación se mutan SOLO vía deltas firmados (Apply*Delta):
// varias órdenes de producción pueden reservar el mismo SKU concurrentemente y
// una escritura absoluta perdería actualizaciones intercaladas.
type CatalogItemRepository interface {
	Create(ctx context.Context, item *entity.CatalogItem) error
	GetByID(ctx context.Context, id string) (*entity.CatalogItem, error)
	GetBySKU(ctx context.Context, sku string) (*entity.CatalogItem, error)
	// GetBySKUForUpdate bloquea la fila (SELECT FOR UPDATE) para secuencias
	// leer-verificar-decrementar dentro de una transacción.
	GetBySKUForUpdate(ctx context.Context, sku string) (*entity.CatalogItem, error)
	GetBySKUAndType(ctx context.Context, sku, itemType string) (*entity.CatalogItem, error)
	List(ctx context.Context, limit, offset int) ([]*entity.CatalogItem, error)
	ListSKUs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, item *entity.CatalogItem) error
	// UpdateAggregate escribe el espejo agregado recalculado desde el libro.
	UpdateAggregate(ctx context.Context, sku string, quantity, totalValue decimal.Decimal, status string) error
	UpdateUnitCost(ctx context.Context, sku string, unitCost decimal.Decimal) error
	ApplyAllocatedDelta(ctx context.Context, sku string, delta decimal.Decimal) error
	ApplyInProductionDelta(ctx context.Context, sku string, delta decimal.Decimal) error
	ApplyCompletedDelta(ctx context.Context, sku string, delta decimal.Decimal) error
	SetStatus(ctx context.Context, sku, status string) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	// NextSKU reserva el siguiente código SKU#### desde la secuencia dedicada.
	NextSKU(ctx context.Context) (string, error)
}
