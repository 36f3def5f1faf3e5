package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo implementación de BOMRepository sobre PostgreSQL. Los componentes se
// almacenan como JSONB tipado: se (de)serializan una sola vez en esta frontera.
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

const bomColumns = `id, product_sku, product_name, inventory_item_id, version, status,
	effective_date, components, labor_cost, overhead_cost, total_material_cost,
	total_cost, estimated_time, notes, created_at, updated_at`

func scanBOM(row pgx.Row) (*entity.BOM, error) {
	var b entity.BOM
	err := row.Scan(
		&b.ID, &b.ProductSKU, &b.ProductName, &b.InventoryItemID, &b.Version, &b.Status,
		&b.EffectiveDate, &b.Components, &b.LaborCost, &b.OverheadCost,
		&b.TotalMaterialCost, &b.TotalCost, &b.EstimatedTime, &b.Notes,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserta la BOM.
func (r *BOMRepo) Create(ctx context.Context, bom *entity.BOM) error {
	query := `
		INSERT INTO boms (id, product_sku, product_name, inventory_item_id, version,
			status, effective_date, components, labor_cost, overhead_cost,
			total_material_cost, total_cost, estimated_time, notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`
	_, err := r.q.Exec(ctx, query,
		bom.ID, bom.ProductSKU, bom.ProductName, bom.InventoryItemID, bom.Version,
		bom.Status, bom.EffectiveDate, bom.Components, bom.LaborCost, bom.OverheadCost,
		bom.TotalMaterialCost, bom.TotalCost, bom.EstimatedTime, bom.Notes,
		bom.CreatedAt, bom.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert BOM: %w", err)
	}
	return nil
}

func (r *BOMRepo) getOne(ctx context.Context, where string, args ...any) (*entity.BOM, error) {
	bom, err := scanBOM(r.q.QueryRow(ctx, `SELECT `+bomColumns+` FROM boms `+where, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get BOM: %w", err)
	}
	return bom, nil
}

// GetByID obtiene una BOM por ID; nil sin error si no existe.
func (r *BOMRepo) GetByID(ctx context.Context, id string) (*entity.BOM, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

// GetByProductSKU obtiene la BOM activa más reciente de un producto terminado.
func (r *BOMRepo) GetByProductSKU(ctx context.Context, productSKU string) (*entity.BOM, error) {
	return r.getOne(ctx, `WHERE product_sku = $1 ORDER BY created_at DESC LIMIT 1`, productSKU)
}

// List lista BOMs de la más reciente a la más antigua.
func (r *BOMRepo) List(ctx context.Context, limit, offset int) ([]*entity.BOM, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+bomColumns+` FROM boms ORDER BY created_at DESC LIMIT NULLIF($1, 0) OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar BOMs: %w", err)
	}
	defer rows.Close()

	var out []*entity.BOM
	for rows.Next() {
		bom, err := scanBOM(rows)
		if err != nil {
			return nil, fmt.Errorf("scan BOM: %w", err)
		}
		out = append(out, bom)
	}
	return out, rows.Err()
}

// Update escribe la BOM completa (costos ya recalculados por el caso de uso).
func (r *BOMRepo) Update(ctx context.Context, bom *entity.BOM) error {
	query := `
		UPDATE boms
		SET product_name = $2, version = $3, status = $4, effective_date = $5,
			components = $6, labor_cost = $7, overhead_cost = $8,
			total_material_cost = $9, total_cost = $10, estimated_time = $11,
			notes = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		bom.ID, bom.ProductName, bom.Version, bom.Status, bom.EffectiveDate,
		bom.Components, bom.LaborCost, bom.OverheadCost,
		bom.TotalMaterialCost, bom.TotalCost, bom.EstimatedTime,
		bom.Notes, bom.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update BOM: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la BOM por ID.
func (r *BOMRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM boms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete BOM: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteAll elimina todas las BOMs y devuelve el conteo (purga).
func (r *BOMRepo) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM boms`)
	if err != nil {
		return 0, fmt.Errorf("purgar BOMs: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ExistsForProduct responde si alguna BOM referencia el ítem del catálogo como
// producto terminado (por vínculo directo o por SKU).
func (r *BOMRepo) ExistsForProduct(ctx context.Context, inventoryItemID, sku string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM boms WHERE inventory_item_id = $1 OR product_sku = $2)`
	err := r.q.QueryRow(ctx, query, inventoryItemID, sku).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("verificar BOM por producto: %w", err)
	}
	return exists, nil
}
