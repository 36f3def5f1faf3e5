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

var _ repository.CatalogItemRepository = (*CatalogItemRepo)(nil)

// CatalogItemRepo implementación de CatalogItemRepository sobre PostgreSQL.
type CatalogItemRepo struct {
	q Querier
}

// NewCatalogItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogItemRepository(q Querier) *CatalogItemRepo {
	return &CatalogItemRepo{q: q}
}

const catalogColumns = `id, sku, name, category, type, unit, quantity, allocated_quantity,
	in_production_quantity, completed_quantity, reorder_point, reorder_qty, unit_cost,
	total_value, status, supplier, location_id, last_restocked, created_at, updated_at`

func scanCatalogItem(row pgx.Row) (*entity.CatalogItem, error) {
	var i entity.CatalogItem
	err := row.Scan(
		&i.ID, &i.SKU, &i.Name, &i.Category, &i.Type, &i.Unit,
		&i.Quantity, &i.AllocatedQuantity, &i.InProductionQuantity, &i.CompletedQuantity,
		&i.ReorderPoint, &i.ReorderQty, &i.UnitCost, &i.TotalValue,
		&i.Status, &i.Supplier, &i.LocationID, &i.LastRestocked, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// Create inserta el ítem; SKU duplicado => ErrDuplicate.
func (r *CatalogItemRepo) Create(ctx context.Context, item *entity.CatalogItem) error {
	query := `
		INSERT INTO catalog_items (id, sku, name, category, type, unit, quantity,
			allocated_quantity, in_production_quantity, completed_quantity, reorder_point,
			reorder_qty, unit_cost, total_value, status, supplier, location_id,
			last_restocked, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.SKU, item.Name, item.Category, item.Type, item.Unit, item.Quantity,
		item.AllocatedQuantity, item.InProductionQuantity, item.CompletedQuantity,
		item.ReorderPoint, item.ReorderQty, item.UnitCost, item.TotalValue,
		item.Status, item.Supplier, item.LocationID, item.LastRestocked,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert ítem de catálogo: %w", err)
	}
	return nil
}

func (r *CatalogItemRepo) getOne(ctx context.Context, where string, args ...any) (*entity.CatalogItem, error) {
	item, err := scanCatalogItem(r.q.QueryRow(ctx, `SELECT `+catalogColumns+` FROM catalog_items `+where, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ítem de catálogo: %w", err)
	}
	return item, nil
}

// GetByID obtiene un ítem por ID; nil sin error si no existe.
func (r *CatalogItemRepo) GetByID(ctx context.Context, id string) (*entity.CatalogItem, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

// GetBySKU obtiene un ítem por SKU; nil sin error si no existe.
func (r *CatalogItemRepo) GetBySKU(ctx context.Context, sku string) (*entity.CatalogItem, error) {
	return r.getOne(ctx, `WHERE sku = $1`, sku)
}

// GetBySKUForUpdate obtiene el ítem bloqueando la fila (SELECT FOR UPDATE).
func (r *CatalogItemRepo) GetBySKUForUpdate(ctx context.Context, sku string) (*entity.CatalogItem, error) {
	return r.getOne(ctx, `WHERE sku = $1 FOR UPDATE`, sku)
}

// GetBySKUAndType obtiene un ítem por SKU y tipo (cadena de resolución de
// producto terminado).
func (r *CatalogItemRepo) GetBySKUAndType(ctx context.Context, sku, itemType string) (*entity.CatalogItem, error) {
	return r.getOne(ctx, `WHERE sku = $1 AND type = $2`, sku, itemType)
}

// List lista ítems ordenados por SKU.
func (r *CatalogItemRepo) List(ctx context.Context, limit, offset int) ([]*entity.CatalogItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+catalogColumns+` FROM catalog_items ORDER BY sku LIMIT NULLIF($1, 0) OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar ítems de catálogo: %w", err)
	}
	defer rows.Close()

	var out []*entity.CatalogItem
	for rows.Next() {
		item, err := scanCatalogItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ítem de catálogo: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// ListSKUs lista todos los SKUs del catálogo (clonado del sincronizador).
func (r *CatalogItemRepo) ListSKUs(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT sku FROM catalog_items ORDER BY sku`)
	if err != nil {
		return nil, fmt.Errorf("listar SKUs: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var sku string
		if err := rows.Scan(&sku); err != nil {
			return nil, fmt.Errorf("scan SKU: %w", err)
		}
		out = append(out, sku)
	}
	return out, rows.Err()
}

// Update escribe los campos descriptivos y de reorden del ítem. Los contadores
// de asignación NO se escriben aquí: solo vía Apply*Delta.
func (r *CatalogItemRepo) Update(ctx context.Context, item *entity.CatalogItem) error {
	query := `
		UPDATE catalog_items
		SET name = $2, category = $3, type = $4, unit = $5, reorder_point = $6,
			reorder_qty = $7, unit_cost = $8, total_value = $9, status = $10,
			supplier = $11, location_id = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Category, item.Type, item.Unit, item.ReorderPoint,
		item.ReorderQty, item.UnitCost, item.TotalValue, item.Status,
		item.Supplier, item.LocationID, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ítem de catálogo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateAggregate escribe el espejo agregado recalculado desde el libro.
func (r *CatalogItemRepo) UpdateAggregate(ctx context.Context, sku string, quantity, totalValue decimal.Decimal, status string) error {
	query := `
		UPDATE catalog_items
		SET quantity = $2, total_value = $3, status = $4, updated_at = now()
		WHERE sku = $1`
	tag, err := r.q.Exec(ctx, query, sku, quantity, totalValue, status)
	if err != nil {
		return fmt.Errorf("update agregado de catálogo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateUnitCost escribe el costo unitario y recalcula total_value en BD.
func (r *CatalogItemRepo) UpdateUnitCost(ctx context.Context, sku string, unitCost decimal.Decimal) error {
	query := `
		UPDATE catalog_items
		SET unit_cost = $2, total_value = quantity * $2, updated_at = now()
		WHERE sku = $1`
	_, err := r.q.Exec(ctx, query, sku, unitCost)
	if err != nil {
		return fmt.Errorf("update costo unitario: %w", err)
	}
	return nil
}

// ApplyAllocatedDelta suma un delta firmado al reservado: correcto bajo
// órdenes concurrentes sobre el mismo SKU, a diferencia de una escritura
// absoluta.
func (r *CatalogItemRepo) ApplyAllocatedDelta(ctx context.Context, sku string, delta decimal.Decimal) error {
	query := `
		UPDATE catalog_items
		SET allocated_quantity = allocated_quantity + $2, updated_at = now()
		WHERE sku = $1`
	tag, err := r.q.Exec(ctx, query, sku, delta)
	if err != nil {
		return fmt.Errorf("delta de reservado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ApplyInProductionDelta suma un delta firmado al contador en producción.
func (r *CatalogItemRepo) ApplyInProductionDelta(ctx context.Context, sku string, delta decimal.Decimal) error {
	query := `
		UPDATE catalog_items
		SET in_production_quantity = in_production_quantity + $2, updated_at = now()
		WHERE sku = $1`
	tag, err := r.q.Exec(ctx, query, sku, delta)
	if err != nil {
		return fmt.Errorf("delta en producción: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ApplyCompletedDelta suma un delta firmado al contador de producido.
func (r *CatalogItemRepo) ApplyCompletedDelta(ctx context.Context, sku string, delta decimal.Decimal) error {
	query := `
		UPDATE catalog_items
		SET completed_quantity = completed_quantity + $2, updated_at = now()
		WHERE sku = $1`
	tag, err := r.q.Exec(ctx, query, sku, delta)
	if err != nil {
		return fmt.Errorf("delta de producido: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetStatus escribe el estado del ítem (marca en producción).
func (r *CatalogItemRepo) SetStatus(ctx context.Context, sku, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE catalog_items SET status = $2, updated_at = now() WHERE sku = $1`, sku, status)
	if err != nil {
		return fmt.Errorf("set estado de ítem: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el ítem por ID.
func (r *CatalogItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM catalog_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ítem de catálogo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteAll elimina todos los ítems y devuelve el conteo (purga).
func (r *CatalogItemRepo) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM catalog_items`)
	if err != nil {
		return 0, fmt.Errorf("purgar catálogo: %w", err)
	}
	return tag.RowsAffected(), nil
}

// NextSKU reserva el siguiente código SKU#### desde la secuencia dedicada.
func (r *CatalogItemRepo) NextSKU(ctx context.Context) (string, error) {
	var sku string
	err := r.q.QueryRow(ctx, `SELECT 'SKU' || lpad(nextval('sku_code_seq')::text, 4, '0')`).Scan(&sku)
	if err != nil {
		return "", fmt.Errorf("siguiente SKU: %w", err)
	}
	return sku, nil
}
