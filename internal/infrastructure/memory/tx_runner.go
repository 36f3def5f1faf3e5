package memory

import (
	"context"

	"github.com/jhoicas/manufactura-api/internal/application/inventory"
	"github.com/jhoicas/manufactura-api/internal/application/manufacturing"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
)

// snapshot copia profunda del estado mutable, para simular rollback.
type snapshot struct {
	locations map[string]*entity.StockLocation
	catalog   map[string]*entity.CatalogItem
	ledger    map[string]*entity.LocationInventory
	movements map[string]*entity.StockMovement
	boms      map[string]*entity.BOM
	orders    map[string]*entity.ProductionOrder
	suppliers map[string]*entity.Supplier

	locationOrder []string
	catalogOrder  []string
	movementOrder []string
	bomOrder      []string
	orderOrder    []string
	supplierOrder []string
}

func (s *Store) take() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		locations: make(map[string]*entity.StockLocation, len(s.locations)),
		catalog:   make(map[string]*entity.CatalogItem, len(s.catalog)),
		ledger:    make(map[string]*entity.LocationInventory, len(s.ledger)),
		movements: make(map[string]*entity.StockMovement, len(s.movements)),
		boms:      make(map[string]*entity.BOM, len(s.boms)),
		orders:    make(map[string]*entity.ProductionOrder, len(s.orders)),
		suppliers: make(map[string]*entity.Supplier, len(s.suppliers)),

		locationOrder: append([]string(nil), s.locationOrder...),
		catalogOrder:  append([]string(nil), s.catalogOrder...),
		movementOrder: append([]string(nil), s.movementOrder...),
		bomOrder:      append([]string(nil), s.bomOrder...),
		orderOrder:    append([]string(nil), s.orderOrder...),
		supplierOrder: append([]string(nil), s.supplierOrder...),
	}
	for k, v := range s.locations {
		cp := *v
		snap.locations[k] = &cp
	}
	for k, v := range s.catalog {
		cp := *v
		snap.catalog[k] = &cp
	}
	for k, v := range s.ledger {
		cp := *v
		snap.ledger[k] = &cp
	}
	for k, v := range s.movements {
		cp := *v
		snap.movements[k] = &cp
	}
	for k, v := range s.boms {
		snap.boms[k] = cloneBOM(v)
	}
	for k, v := range s.orders {
		cp := *v
		snap.orders[k] = &cp
	}
	for k, v := range s.suppliers {
		cp := *v
		snap.suppliers[k] = &cp
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations = snap.locations
	s.catalog = snap.catalog
	s.ledger = snap.ledger
	s.movements = snap.movements
	s.boms = snap.boms
	s.orders = snap.orders
	s.suppliers = snap.suppliers
	s.locationOrder = snap.locationOrder
	s.catalogOrder = snap.catalogOrder
	s.movementOrder = snap.movementOrder
	s.bomOrder = snap.bomOrder
	s.orderOrder = snap.orderOrder
	s.supplierOrder = snap.supplierOrder
}

// TxRunner corre fn serializada sobre el Store con semántica de rollback: si
// fn falla, el estado vuelve al snapshot previo. Las secuencias no se
// restauran, igual que nextval en PostgreSQL.
type TxRunner struct{ s *Store }

// NewTxRunner construye el runner de inventario sobre el Store.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

var _ inventory.TxRunner = (*TxRunner)(nil)

func (t *TxRunner) Run(ctx context.Context, fn func(r inventory.Repos) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	snap := t.s.take()
	if err := fn(inventoryRepos(t.s)); err != nil {
		t.s.restore(snap)
		return err
	}
	// Un deadline vencido durante fn aborta el commit, igual que en PostgreSQL.
	if err := ctx.Err(); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

// ManufacturingTxRunner igual que TxRunner pero con los repositorios de
// manufactura incluidos.
type ManufacturingTxRunner struct{ s *Store }

// NewManufacturingTxRunner construye el runner de manufactura sobre el Store.
func NewManufacturingTxRunner(s *Store) *ManufacturingTxRunner {
	return &ManufacturingTxRunner{s: s}
}

var _ manufacturing.TxRunner = (*ManufacturingTxRunner)(nil)

func (t *ManufacturingTxRunner) Run(ctx context.Context, fn func(r manufacturing.Repos) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	snap := t.s.take()
	err := fn(manufacturing.Repos{
		Repos:     inventoryRepos(t.s),
		BOMs:      NewBOMRepository(t.s),
		Orders:    NewProductionOrderRepository(t.s),
		Suppliers: NewSupplierRepository(t.s),
	})
	if err != nil {
		t.s.restore(snap)
		return err
	}
	// Un deadline vencido durante fn aborta el commit, igual que en PostgreSQL.
	if err := ctx.Err(); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

func inventoryRepos(s *Store) inventory.Repos {
	return inventory.Repos{
		Locations: NewLocationRepository(s),
		Catalog:   NewCatalogItemRepository(s),
		Ledger:    NewLocationInventoryRepository(s),
		Movements: NewStockMovementRepository(s),
	}
}
