package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/manufactura-api/internal/application/inventory"
	"github.com/jhoicas/manufactura-api/internal/application/manufacturing"
)

// Ensure TxRunner implements both runners.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ manufacturing.TxRunner = (*ManufacturingTxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con los
// repositorios de inventario atados a esa tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func inventoryRepos(q Querier) inventory.Repos {
	return inventory.Repos{
		Locations: NewLocationRepository(q),
		Catalog:   NewCatalogItemRepository(q),
		Ledger:    NewLocationInventoryRepository(q),
		Movements: NewStockMovementRepository(q),
	}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(inventoryRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ManufacturingTxRunner como TxRunner pero con los repositorios de manufactura
// además de los de inventario (transiciones de órdenes, purga).
type ManufacturingTxRunner struct {
	pool *pgxpool.Pool
}

// NewManufacturingTxRunner construye el runner con el pool.
func NewManufacturingTxRunner(pool *pgxpool.Pool) *ManufacturingTxRunner {
	return &ManufacturingTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *ManufacturingTxRunner) Run(ctx context.Context, fn func(repos manufacturing.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := manufacturing.Repos{
		Repos:     inventoryRepos(tx),
		BOMs:      NewBOMRepository(tx),
		Orders:    NewProductionOrderRepository(tx),
		Suppliers: NewSupplierRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
