package memory

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Ubicaciones
// ──────────────────────────────────────────────────────────────────────────────

// LocationRepository vista en memoria del puerto de ubicaciones.
type LocationRepository struct{ s *Store }

// NewLocationRepository construye el repositorio sobre el Store.
func NewLocationRepository(s *Store) *LocationRepository { return &LocationRepository{s: s} }

var _ repository.LocationRepository = (*LocationRepository)(nil)

func (r *LocationRepository) Create(ctx context.Context, location *entity.StockLocation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.locations {
		if l.Code == location.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *location
	r.s.locations[location.ID] = &cp
	r.s.locationOrder = append(r.s.locationOrder, location.ID)
	return nil
}

func (r *LocationRepository) GetByID(ctx context.Context, id string) (*entity.StockLocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l, ok := r.s.locations[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (r *LocationRepository) GetByCode(ctx context.Context, code string) (*entity.StockLocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.locations {
		if l.Code == code {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *LocationRepository) List(ctx context.Context, limit, offset int) ([]*entity.StockLocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.StockLocation, 0, len(r.s.locationOrder))
	for _, id := range r.s.locationOrder {
		cp := *r.s.locations[id]
		out = append(out, &cp)
	}
	return paginate(out, limit, offset), nil
}

func (r *LocationRepository) Update(ctx context.Context, location *entity.StockLocation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.locations[location.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *location
	r.s.locations[location.ID] = &cp
	return nil
}

func (r *LocationRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.locations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.locations, id)
	r.s.locationOrder = removeFromOrder(r.s.locationOrder, id)
	return nil
}

func (r *LocationRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := int64(len(r.s.locations))
	r.s.locations = map[string]*entity.StockLocation{}
	r.s.locationOrder = nil
	return n, nil
}

func (r *LocationRepository) NextCode(ctx context.Context) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.nextLocationCode(), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

// CatalogItemRepository vista en memoria del puerto del catálogo.
type CatalogItemRepository struct{ s *Store }

// NewCatalogItemRepository construye el repositorio sobre el Store.
func NewCatalogItemRepository(s *Store) *CatalogItemRepository { return &CatalogItemRepository{s: s} }

var _ repository.CatalogItemRepository = (*CatalogItemRepository)(nil)

func (r *CatalogItemRepository) Create(ctx context.Context, item *entity.CatalogItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.catalog {
		if it.SKU == item.SKU {
			return domain.ErrDuplicate
		}
	}
	cp := *item
	r.s.catalog[item.ID] = &cp
	r.s.catalogOrder = append(r.s.catalogOrder, item.ID)
	return nil
}

func (r *CatalogItemRepository) GetByID(ctx context.Context, id string) (*entity.CatalogItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if it, ok := r.s.catalog[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, nil
}

func (r *CatalogItemRepository) getBySKULocked(sku string) *entity.CatalogItem {
	for _, it := range r.s.catalog {
		if it.SKU == sku {
			return it
		}
	}
	return nil
}

func (r *CatalogItemRepository) GetBySKU(ctx context.Context, sku string) (*entity.CatalogItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if it := r.getBySKULocked(sku); it != nil {
		cp := *it
		return &cp, nil
	}
	return nil, nil
}

// GetBySKUForUpdate no bloquea fila alguna: las corridas transaccionales ya
// serializan sobre el Store completo.
func (r *CatalogItemRepository) GetBySKUForUpdate(ctx context.Context, sku string) (*entity.CatalogItem, error) {
	return r.GetBySKU(ctx, sku)
}

func (r *CatalogItemRepository) GetBySKUAndType(ctx context.Context, sku, itemType string) (*entity.CatalogItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if it := r.getBySKULocked(sku); it != nil && it.Type == itemType {
		cp := *it
		return &cp, nil
	}
	return nil, nil
}

func (r *CatalogItemRepository) List(ctx context.Context, limit, offset int) ([]*entity.CatalogItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.CatalogItem, 0, len(r.s.catalogOrder))
	for _, id := range r.s.catalogOrder {
		cp := *r.s.catalog[id]
		out = append(out, &cp)
	}
	return paginate(out, limit, offset), nil
}

func (r *CatalogItemRepository) ListSKUs(ctx context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	skus := make([]string, 0, len(r.s.catalogOrder))
	for _, id := range r.s.catalogOrder {
		skus = append(skus, r.s.catalog[id].SKU)
	}
	return skus, nil
}

func (r *CatalogItemRepository) Update(ctx context.Context, item *entity.CatalogItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.catalog[item.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *item
	r.s.catalog[item.ID] = &cp
	return nil
}

func (r *CatalogItemRepository) UpdateAggregate(ctx context.Context, sku string, quantity, totalValue decimal.Decimal, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it := r.getBySKULocked(sku)
	if it == nil {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	it.TotalValue = totalValue
	it.Status = status
	return nil
}

func (r *CatalogItemRepository) UpdateUnitCost(ctx context.Context, sku string, unitCost decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it := r.getBySKULocked(sku)
	if it == nil {
		return domain.ErrNotFound
	}
	it.UnitCost = unitCost
	return nil
}

func (r *CatalogItemRepository) ApplyAllocatedDelta(ctx context.Context, sku string, delta decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it := r.getBySKULocked(sku)
	if it == nil {
		return domain.ErrNotFound
	}
	it.AllocatedQuantity = it.AllocatedQuantity.Add(delta)
	return nil
}

func (r *CatalogItemRepository) ApplyInProductionDelta(ctx context.Context, sku string, delta decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it := r.getBySKULocked(sku)
	if it == nil {
		return domain.ErrNotFound
	}
	it.InProductionQuantity = it.InProductionQuantity.Add(delta)
	return nil
}

func (r *CatalogItemRepository) ApplyCompletedDelta(ctx context.Context, sku string, delta decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it := r.getBySKULocked(sku)
	if it == nil {
		return domain.ErrNotFound
	}
	it.CompletedQuantity = it.CompletedQuantity.Add(delta)
	return nil
}

func (r *CatalogItemRepository) SetStatus(ctx context.Context, sku, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it := r.getBySKULocked(sku)
	if it == nil {
		return domain.ErrNotFound
	}
	it.Status = status
	return nil
}

func (r *CatalogItemRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.catalog[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.catalog, id)
	r.s.catalogOrder = removeFromOrder(r.s.catalogOrder, id)
	return nil
}

func (r *CatalogItemRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := int64(len(r.s.catalog))
	r.s.catalog = map[string]*entity.CatalogItem{}
	r.s.catalogOrder = nil
	return n, nil
}

func (r *CatalogItemRepository) NextSKU(ctx context.Context) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.nextSKU(), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Libro por (ubicación, SKU)
// ──────────────────────────────────────────────────────────────────────────────

// LocationInventoryRepository vista en memoria del puerto del libro.
type LocationInventoryRepository struct{ s *Store }

// NewLocationInventoryRepository construye el repositorio sobre el Store.
func NewLocationInventoryRepository(s *Store) *LocationInventoryRepository {
	return &LocationInventoryRepository{s: s}
}

var _ repository.LocationInventoryRepository = (*LocationInventoryRepository)(nil)

func (r *LocationInventoryRepository) Get(ctx context.Context, locationID, sku string) (*entity.LocationInventory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if row, ok := r.s.ledger[ledgerKey(locationID, sku)]; ok {
		cp := *row
		return &cp, nil
	}
	return nil, nil
}

// GetForUpdate no bloquea fila alguna: ver GetBySKUForUpdate.
func (r *LocationInventoryRepository) GetForUpdate(ctx context.Context, locationID, sku string) (*entity.LocationInventory, error) {
	return r.Get(ctx, locationID, sku)
}

func (r *LocationInventoryRepository) Create(ctx context.Context, row *entity.LocationInventory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := ledgerKey(row.LocationID, row.SKU)
	if _, ok := r.s.ledger[key]; ok {
		return domain.ErrDuplicate
	}
	cp := *row
	r.s.ledger[key] = &cp
	return nil
}

func (r *LocationInventoryRepository) Update(ctx context.Context, row *entity.LocationInventory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := ledgerKey(row.LocationID, row.SKU)
	if _, ok := r.s.ledger[key]; !ok {
		return domain.ErrNotFound
	}
	cp := *row
	r.s.ledger[key] = &cp
	return nil
}

func (r *LocationInventoryRepository) ListByLocation(ctx context.Context, locationID string) ([]*entity.LocationInventory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.LocationInventory
	for key, row := range r.s.ledger {
		if strings.HasPrefix(key, locationID+"|") {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *LocationInventoryRepository) ListBySKU(ctx context.Context, sku string) ([]*entity.LocationInventory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.LocationInventory
	for _, row := range r.s.ledger {
		if row.SKU == sku {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *LocationInventoryRepository) SumBySKU(ctx context.Context, sku string) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, row := range r.s.ledger {
		if row.SKU == sku {
			sum = sum.Add(row.Quantity)
		}
	}
	return sum, nil
}

func (r *LocationInventoryRepository) CountByLocation(ctx context.Context, locationID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, row := range r.s.ledger {
		if row.LocationID == locationID {
			n++
		}
	}
	return n, nil
}

func (r *LocationInventoryRepository) HasStockOrAllocation(ctx context.Context, locationID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, row := range r.s.ledger {
		if row.LocationID == locationID && !row.Quantity.IsZero() {
			return true, nil
		}
	}
	return false, nil
}

func (r *LocationInventoryRepository) DeleteByLocation(ctx context.Context, locationID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key, row := range r.s.ledger {
		if row.LocationID == locationID {
			delete(r.s.ledger, key)
		}
	}
	return nil
}

func (r *LocationInventoryRepository) DeleteBySKU(ctx context.Context, sku string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key, row := range r.s.ledger {
		if row.SKU == sku {
			delete(r.s.ledger, key)
		}
	}
	return nil
}

func (r *LocationInventoryRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := int64(len(r.s.ledger))
	r.s.ledger = map[string]*entity.LocationInventory{}
	return n, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de movimientos
// ──────────────────────────────────────────────────────────────────────────────

// StockMovementRepository vista en memoria del registro de movimientos.
type StockMovementRepository struct{ s *Store }

// NewStockMovementRepository construye el repositorio sobre el Store.
func NewStockMovementRepository(s *Store) *StockMovementRepository {
	return &StockMovementRepository{s: s}
}

var _ repository.StockMovementRepository = (*StockMovementRepository)(nil)

func (r *StockMovementRepository) Create(ctx context.Context, movement *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *movement
	r.s.movements[movement.ID] = &cp
	r.s.movementOrder = append(r.s.movementOrder, movement.ID)
	return nil
}

func (r *StockMovementRepository) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m := r.findLocked(id); m != nil {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

// findLocked resuelve por ID de fila o por código MOV####.
func (r *StockMovementRepository) findLocked(id string) *entity.StockMovement {
	if m, ok := r.s.movements[id]; ok {
		return m
	}
	for _, m := range r.s.movements {
		if m.MovementID == id {
			return m
		}
	}
	return nil
}

func (r *StockMovementRepository) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockMovement
	// más recientes primero, igual que el ORDER BY date DESC del backend SQL
	for i := len(r.s.movementOrder) - 1; i >= 0; i-- {
		m := r.s.movements[r.s.movementOrder[i]]
		if filter.SKU != "" && m.SKU != filter.SKU {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if filter.Location != "" && m.FromLocation != filter.Location && m.ToLocation != filter.Location {
			continue
		}
		if filter.From != nil && m.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.Date.After(*filter.To) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (r *StockMovementRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m := r.findLocked(id)
	if m == nil {
		return domain.ErrNotFound
	}
	delete(r.s.movements, m.ID)
	r.s.movementOrder = removeFromOrder(r.s.movementOrder, m.ID)
	return nil
}

func (r *StockMovementRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := int64(len(r.s.movements))
	r.s.movements = map[string]*entity.StockMovement{}
	r.s.movementOrder = nil
	return n, nil
}

func (r *StockMovementRepository) NextMovementID(ctx context.Context) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.nextMovementID(), nil
}
