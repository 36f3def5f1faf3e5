package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

// ProductionOrderRepo implementación de ProductionOrderRepository sobre PostgreSQL.
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

const orderColumns = `id, bom_id, product_sku, product_name, quantity, quantity_produced,
	status, priority, work_order_number, allocation_type, client_id, assigned_to,
	total_cost, start_date, target_date, completed_date, notes, created_by,
	created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.ProductionOrder, error) {
	var o entity.ProductionOrder
	err := row.Scan(
		&o.ID, &o.BOMID, &o.ProductSKU, &o.ProductName, &o.Quantity, &o.QuantityProduced,
		&o.Status, &o.Priority, &o.WorkOrderNumber, &o.AllocationType, &o.ClientID,
		&o.AssignedTo, &o.TotalCost, &o.StartDate, &o.TargetDate, &o.CompletedDate,
		&o.Notes, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserta la orden.
func (r *ProductionOrderRepo) Create(ctx context.Context, o *entity.ProductionOrder) error {
	query := `
		INSERT INTO production_orders (id, bom_id, product_sku, product_name, quantity,
			quantity_produced, status, priority, work_order_number, allocation_type,
			client_id, assigned_to, total_cost, start_date, target_date, completed_date,
			notes, created_by, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.BOMID, o.ProductSKU, o.ProductName, o.Quantity,
		o.QuantityProduced, o.Status, o.Priority, o.WorkOrderNumber, o.AllocationType,
		o.ClientID, o.AssignedTo, o.TotalCost, o.StartDate, o.TargetDate, o.CompletedDate,
		o.Notes, o.CreatedBy, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert orden de producción: %w", err)
	}
	return nil
}

func (r *ProductionOrderRepo) getOne(ctx context.Context, suffix, id string) (*entity.ProductionOrder, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM production_orders WHERE id = $1`+suffix, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden de producción: %w", err)
	}
	return o, nil
}

// GetByID obtiene una orden por ID; nil sin error si no existe.
func (r *ProductionOrderRepo) GetByID(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	return r.getOne(ctx, ``, id)
}

// GetByIDForUpdate relee la orden bloqueando la fila (SELECT FOR UPDATE): la
// guardia optimista de las transiciones se evalúa contra este estado, dentro
// de la transacción.
func (r *ProductionOrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	return r.getOne(ctx, ` FOR UPDATE`, id)
}

// List lista órdenes de la más reciente a la más antigua, con filtros opcionales.
func (r *ProductionOrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.ProductionOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM production_orders WHERE 1=1`
	args := []any{}
	n := 0
	next := func(v any) string {
		n++
		args = append(args, v)
		return "$" + strconv.Itoa(n)
	}
	if filter.Status != "" {
		query += ` AND status = ` + next(filter.Status)
	}
	if filter.ProductSKU != "" {
		query += ` AND product_sku = ` + next(filter.ProductSKU)
	}
	query += ` ORDER BY created_at DESC LIMIT NULLIF(` + next(filter.Limit) + `::int, 0) OFFSET ` + next(filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar órdenes: %w", err)
	}
	defer rows.Close()

	var out []*entity.ProductionOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan orden: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Update escribe la orden completa.
func (r *ProductionOrderRepo) Update(ctx context.Context, o *entity.ProductionOrder) error {
	query := `
		UPDATE production_orders
		SET quantity = $2, quantity_produced = $3, status = $4, priority = $5,
			allocation_type = $6, client_id = $7, assigned_to = $8, total_cost = $9,
			start_date = $10, target_date = $11, completed_date = $12, notes = $13,
			updated_at = $14
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		o.ID, o.Quantity, o.QuantityProduced, o.Status, o.Priority,
		o.AllocationType, o.ClientID, o.AssignedTo, o.TotalCost,
		o.StartDate, o.TargetDate, o.CompletedDate, o.Notes, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update orden de producción: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la orden por ID.
func (r *ProductionOrderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM production_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete orden de producción: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteAll elimina todas las órdenes y devuelve el conteo (purga).
func (r *ProductionOrderRepo) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM production_orders`)
	if err != nil {
		return 0, fmt.Errorf("purgar órdenes: %w", err)
	}
	return tag.RowsAffected(), nil
}

// NextWorkOrderNumber reserva el siguiente número WO-#### desde la secuencia.
func (r *ProductionOrderRepo) NextWorkOrderNumber(ctx context.Context) (string, error) {
	var wo string
	err := r.q.QueryRow(ctx, `SELECT 'WO-' || lpad(nextval('work_order_seq')::text, 4, '0')`).Scan(&wo)
	if err != nil {
		return "", fmt.Errorf("siguiente número de orden de trabajo: %w", err)
	}
	return wo, nil
}
