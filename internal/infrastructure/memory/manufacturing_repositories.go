package memory

import (
	"context"

	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// BOMs
// ──────────────────────────────────────────────────────────────────────────────

// BOMRepository vista en memoria del puerto de listas de materiales.
type BOMRepository struct{ s *Store }

// NewBOMRepository construye el repositorio sobre el Store.
func NewBOMRepository(s *Store) *BOMRepository { return &BOMRepository{s: s} }

var _ repository.BOMRepository = (*BOMRepository)(nil)

func cloneBOM(b *entity.BOM) *entity.BOM {
	cp := *b
	cp.Components = append([]entity.Component(nil), b.Components...)
	return &cp
}

func (r *BOMRepository) Create(ctx context.Context, bom *entity.BOM) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.boms[bom.ID] = cloneBOM(bom)
	r.s.bomOrder = append(r.s.bomOrder, bom.ID)
	return nil
}

func (r *BOMRepository) GetByID(ctx context.Context, id string) (*entity.BOM, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b, ok := r.s.boms[id]; ok {
		return cloneBOM(b), nil
	}
	return nil, nil
}

func (r *BOMRepository) GetByProductSKU(ctx context.Context, productSKU string) (*entity.BOM, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.boms {
		if b.ProductSKU == productSKU {
			return cloneBOM(b), nil
		}
	}
	return nil, nil
}

func (r *BOMRepository) List(ctx context.Context, limit, offset int) ([]*entity.BOM, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.BOM, 0, len(r.s.bomOrder))
	for _, id := range r.s.bomOrder {
		out = append(out, cloneBOM(r.s.boms[id]))
	}
	return paginate(out, limit, offset), nil
}

func (r *BOMRepository) Update(ctx context.Context, bom *entity.BOM) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.boms[bom.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.boms[bom.ID] = cloneBOM(bom)
	return nil
}

func (r *BOMRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.boms[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.boms, id)
	r.s.bomOrder = removeFromOrder(r.s.bomOrder, id)
	return nil
}

func (r *BOMRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := int64(len(r.s.boms))
	r.s.boms = map[string]*entity.BOM{}
	r.s.bomOrder = nil
	return n, nil
}

func (r *BOMRepository) ExistsForProduct(ctx context.Context, inventoryItemID, sku string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.boms {
		if (inventoryItemID != "" && b.InventoryItemID == inventoryItemID) || (sku != "" && b.ProductSKU == sku) {
			return true, nil
		}
	}
	return false, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de producción
// ──────────────────────────────────────────────────────────────────────────────

// ProductionOrderRepository vista en memoria del puerto de órdenes.
type ProductionOrderRepository struct{ s *Store }

// NewProductionOrderRepository construye el repositorio sobre el Store.
func NewProductionOrderRepository(s *Store) *ProductionOrderRepository {
	return &ProductionOrderRepository{s: s}
}

var _ repository.ProductionOrderRepository = (*ProductionOrderRepository)(nil)

func (r *ProductionOrderRepository) Create(ctx context.Context, order *entity.ProductionOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *order
	r.s.orders[order.ID] = &cp
	r.s.orderOrder = append(r.s.orderOrder, order.ID)
	return nil
}

func (r *ProductionOrderRepository) GetByID(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o, ok := r.s.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	for _, o := range r.s.orders {
		if o.WorkOrderNumber == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

// GetByIDForUpdate no bloquea fila alguna: las corridas transaccionales ya
// serializan sobre el Store completo.
func (r *ProductionOrderRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductionOrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.ProductionOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ProductionOrder
	for i := len(r.s.orderOrder) - 1; i >= 0; i-- {
		o := r.s.orders[r.s.orderOrder[i]]
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.ProductSKU != "" && o.ProductSKU != filter.ProductSKU {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (r *ProductionOrderRepository) Update(ctx context.Context, order *entity.ProductionOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[order.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *order
	r.s.orders[order.ID] = &cp
	return nil
}

func (r *ProductionOrderRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.orders, id)
	r.s.orderOrder = removeFromOrder(r.s.orderOrder, id)
	return nil
}

func (r *ProductionOrderRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := int64(len(r.s.orders))
	r.s.orders = map[string]*entity.ProductionOrder{}
	r.s.orderOrder = nil
	return n, nil
}

func (r *ProductionOrderRepository) NextWorkOrderNumber(ctx context.Context) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.nextWorkOrder(), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedores
// ──────────────────────────────────────────────────────────────────────────────

// SupplierRepository vista en memoria del puerto de proveedores.
type SupplierRepository struct{ s *Store }

// NewSupplierRepository construye el repositorio sobre el Store.
func NewSupplierRepository(s *Store) *SupplierRepository { return &SupplierRepository{s: s} }

var _ repository.SupplierRepository = (*SupplierRepository)(nil)

func (r *SupplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *supplier
	r.s.suppliers[supplier.ID] = &cp
	r.s.supplierOrder = append(r.s.supplierOrder, supplier.ID)
	return nil
}

func (r *SupplierRepository) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sup, ok := r.s.suppliers[id]; ok {
		cp := *sup
		return &cp, nil
	}
	return nil, nil
}

func (r *SupplierRepository) List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Supplier, 0, len(r.s.supplierOrder))
	for _, id := range r.s.supplierOrder {
		cp := *r.s.suppliers[id]
		out = append(out, &cp)
	}
	return paginate(out, limit, offset), nil
}

func (r *SupplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[supplier.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *supplier
	r.s.suppliers[supplier.ID] = &cp
	return nil
}

func (r *SupplierRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.suppliers, id)
	r.s.supplierOrder = removeFromOrder(r.s.supplierOrder, id)
	return nil
}

func (r *SupplierRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := int64(len(r.s.suppliers))
	r.s.suppliers = map[string]*entity.Supplier{}
	r.s.supplierOrder = nil
	return n, nil
}
