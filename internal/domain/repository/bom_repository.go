package repository

import (
	"context"

	"github.com/jhoicas/manufactura-api/internal/domain/entity"
)

// BOMRepository define el puerto de persistencia para listas de materiales (DIP).
type BOMRepository interface {
	Create(ctx context.Context, bom *entity.BOM) error
	GetByID(ctx context.Context, id string) (*entity.BOM, error)
	GetByProductSKU(ctx context.Context, productSKU string) (*entity.BOM, error)
	List(ctx context.Context, limit, offset int) ([]*entity.BOM, error)
	Update(ctx context.Context, bom *entity.BOM) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	// ExistsForProduct responde si alguna BOM referencia el ítem del catálogo
	// como producto terminado (guardia de borrado del catálogo).
	ExistsForProduct(ctx context.Context, inventoryItemID, sku string) (bool, error)
}
