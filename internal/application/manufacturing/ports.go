package manufacturing

import (
	"context"

	"github.com/jhoicas/manufactura-api/internal/application/inventory"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

// Repos agrupa los repositorios de manufactura atados a una misma transacción.
// Embebe los de inventario porque toda transición de orden muta el libro y el
// registro de movimientos en la misma tx.
type Repos struct {
	inventory.Repos
	BOMs      repository.BOMRepository
	Orders    repository.ProductionOrderRepository
	Suppliers repository.SupplierRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD con repositorios atados
// a esa tx. Si fn devuelve error no persiste ninguna escritura parcial.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

// WorkOrderRenderer genera el documento imprimible de una orden de trabajo
// (viajera de producción con la tabla de componentes de la BOM).
type WorkOrderRenderer interface {
	RenderWorkOrder(order *entity.ProductionOrder, bom *entity.BOM) ([]byte, error)
}
