package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

var _ repository.LocationInventoryRepository = (*LocationInventoryRepo)(nil)

// LocationInventoryRepo implementación del libro por (ubicación, SKU) sobre PostgreSQL.
type LocationInventoryRepo struct {
	q Querier
}

// NewLocationInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationInventoryRepository(q Querier) *LocationInventoryRepo {
	return &LocationInventoryRepo{q: q}
}

const ledgerColumns = `id, location_id, sku, item_name, quantity, unit_cost, reorder_point,
	status, last_restocked, created_at, updated_at`

func scanLedgerRow(row pgx.Row) (*entity.LocationInventory, error) {
	var l entity.LocationInventory
	err := row.Scan(
		&l.ID, &l.LocationID, &l.SKU, &l.ItemName, &l.Quantity, &l.UnitCost,
		&l.ReorderPoint, &l.Status, &l.LastRestocked, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LocationInventoryRepo) getOne(ctx context.Context, suffix, locationID, sku string) (*entity.LocationInventory, error) {
	query := `SELECT ` + ledgerColumns + ` FROM location_inventory WHERE location_id = $1 AND sku = $2` + suffix
	row, err := scanLedgerRow(r.q.QueryRow(ctx, query, locationID, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fila de libro: %w", err)
	}
	return row, nil
}

// GetForUpdate obtiene la fila bloqueándola (SELECT FOR UPDATE); nil sin error si no existe.
func (r *LocationInventoryRepo) GetForUpdate(ctx context.Context, locationID, sku string) (*entity.LocationInventory, error) {
	return r.getOne(ctx, ` FOR UPDATE`, locationID, sku)
}

// Get obtiene la fila sin bloquear; nil sin error si no existe.
func (r *LocationInventoryRepo) Get(ctx context.Context, locationID, sku string) (*entity.LocationInventory, error) {
	return r.getOne(ctx, ``, locationID, sku)
}

// Create inserta la fila; (ubicación, SKU) duplicado => ErrDuplicate.
func (r *LocationInventoryRepo) Create(ctx context.Context, row *entity.LocationInventory) error {
	query := `
		INSERT INTO location_inventory (id, location_id, sku, item_name, quantity,
			unit_cost, reorder_point, status, last_restocked, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err := r.q.Exec(ctx, query,
		row.ID, row.LocationID, row.SKU, row.ItemName, row.Quantity,
		row.UnitCost, row.ReorderPoint, row.Status, row.LastRestocked,
		row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert fila de libro: %w", err)
	}
	return nil
}

// Update escribe la fila completa (tras un delta aplicado bajo FOR UPDATE).
func (r *LocationInventoryRepo) Update(ctx context.Context, row *entity.LocationInventory) error {
	query := `
		UPDATE location_inventory
		SET item_name = $2, quantity = $3, unit_cost = $4, reorder_point = $5,
			status = $6, last_restocked = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		row.ID, row.ItemName, row.Quantity, row.UnitCost, row.ReorderPoint,
		row.Status, row.LastRestocked, row.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update fila de libro: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LocationInventoryRepo) list(ctx context.Context, where string, arg any) ([]*entity.LocationInventory, error) {
	rows, err := r.q.Query(ctx, `SELECT `+ledgerColumns+` FROM location_inventory `+where+` ORDER BY sku`, arg)
	if err != nil {
		return nil, fmt.Errorf("listar libro: %w", err)
	}
	defer rows.Close()

	var out []*entity.LocationInventory
	for rows.Next() {
		row, err := scanLedgerRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fila de libro: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListByLocation lista todas las filas de una ubicación.
func (r *LocationInventoryRepo) ListByLocation(ctx context.Context, locationID string) ([]*entity.LocationInventory, error) {
	return r.list(ctx, `WHERE location_id = $1`, locationID)
}

// ListBySKU lista las filas de un SKU en todas las ubicaciones.
func (r *LocationInventoryRepo) ListBySKU(ctx context.Context, sku string) ([]*entity.LocationInventory, error) {
	return r.list(ctx, `WHERE sku = $1`, sku)
}

// SumBySKU suma la cantidad del SKU sobre todas las ubicaciones.
func (r *LocationInventoryRepo) SumBySKU(ctx context.Context, sku string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(quantity), 0) FROM location_inventory WHERE sku = $1`, sku).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sumar libro por SKU: %w", err)
	}
	return total, nil
}

// CountByLocation cuenta las filas de una ubicación.
func (r *LocationInventoryRepo) CountByLocation(ctx context.Context, locationID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM location_inventory WHERE location_id = $1`, locationID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("contar filas de libro: %w", err)
	}
	return n, nil
}

// HasStockOrAllocation responde si alguna fila de la ubicación tiene cantidad
// distinta de cero (guardia de borrado de ubicaciones).
func (r *LocationInventoryRepo) HasStockOrAllocation(ctx context.Context, locationID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM location_inventory WHERE location_id = $1 AND quantity <> 0)`
	err := r.q.QueryRow(ctx, query, locationID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("verificar stock en ubicación: %w", err)
	}
	return exists, nil
}

// DeleteByLocation elimina todas las filas de una ubicación.
func (r *LocationInventoryRepo) DeleteByLocation(ctx context.Context, locationID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM location_inventory WHERE location_id = $1`, locationID)
	if err != nil {
		return fmt.Errorf("delete libro por ubicación: %w", err)
	}
	return nil
}

// DeleteBySKU elimina las filas de un SKU en todas las ubicaciones.
func (r *LocationInventoryRepo) DeleteBySKU(ctx context.Context, sku string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM location_inventory WHERE sku = $1`, sku)
	if err != nil {
		return fmt.Errorf("delete libro por SKU: %w", err)
	}
	return nil
}

// DeleteAll elimina todo el libro y devuelve el conteo (purga).
func (r *LocationInventoryRepo) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM location_inventory`)
	if err != nil {
		return 0, fmt.Errorf("purgar libro: %w", err)
	}
	return tag.RowsAffected(), nil
}
