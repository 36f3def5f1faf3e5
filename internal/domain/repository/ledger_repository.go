package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-api/internal/domain/entity"
)

// LocationInventoryRepository define el puerto del libro por (ubicación, SKU) (DIP).
type LocationInventoryRepository interface {
	// GetForUpdate obtiene la fila bloqueándola (SELECT FOR UPDATE); devuelve
	// nil sin error si no existe.
	GetForUpdate(ctx context.Context, locationID, sku string) (*entity.LocationInventory, error)
	Get(ctx context.Context, locationID, sku string) (*entity.LocationInventory, error)
	Create(ctx context.Context, row *entity.LocationInventory) error
	Update(ctx context.Context, row *entity.LocationInventory) error
	ListByLocation(ctx context.Context, locationID string) ([]*entity.LocationInventory, error)
	ListBySKU(ctx context.Context, sku string) ([]*entity.LocationInventory, error)
	// SumBySKU suma la cantidad del SKU sobre todas las ubicaciones (SUM en BD).
	SumBySKU(ctx context.Context, sku string) (decimal.Decimal, error)
	CountByLocation(ctx context.Context, locationID string) (int, error)
	// HasStockOrAllocation responde si alguna fila de la ubicación tiene
	// cantidad distinta de cero (guardia de borrado de ubicaciones).
	HasStockOrAllocation(ctx context.Context, locationID string) (bool, error)
	DeleteByLocation(ctx context.Context, locationID string) error
	DeleteBySKU(ctx context.Context, sku string) error
	DeleteAll(ctx context.Context) (int64, error)
}
