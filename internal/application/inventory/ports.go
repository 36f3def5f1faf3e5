package inventory

import (
	"context"

	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

// Repos agrupa los repositorios de inventario atados a una misma transacción.
type Repos struct {
	Locations repository.LocationRepository
	Catalog   repository.CatalogItemRepository
	Ledger    repository.LocationInventoryRepository
	Movements repository.StockMovementRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario: si fn devuelve error no persiste ninguna escritura parcial.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
