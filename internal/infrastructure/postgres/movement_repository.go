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

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del registro de movimientos sobre PostgreSQL.
// Solo-añadir: no expone Update.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, movement_id, transaction_id, date, type, item_name, sku,
	quantity, from_location, to_location, reference, performed_by, notes, created_at`

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(
		&m.ID, &m.MovementID, &m.TransactionID, &m.Date, &m.Type, &m.ItemName, &m.SKU,
		&m.Quantity, &m.FromLocation, &m.ToLocation, &m.Reference, &m.PerformedBy,
		&m.Notes, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create anexa un movimiento al registro.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, movement_id, transaction_id, date, type,
			item_name, sku, quantity, from_location, to_location, reference,
			performed_by, notes, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.MovementID, m.TransactionID, m.Date, m.Type,
		m.ItemName, m.SKU, m.Quantity, m.FromLocation, m.ToLocation, m.Reference,
		m.PerformedBy, m.Notes, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID de fila o por código MOV####.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx,
		`SELECT `+movementColumns+` FROM stock_movements WHERE id::text = $1 OR movement_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimiento: %w", err)
	}
	return m, nil
}

// List lista movimientos del más reciente al más antiguo, con filtros opcionales.
func (r *StockMovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE 1=1`
	args := []any{}
	n := 0
	next := func(v any) string {
		n++
		args = append(args, v)
		return "$" + strconv.Itoa(n)
	}
	if filter.SKU != "" {
		query += ` AND sku = ` + next(filter.SKU)
	}
	if filter.Type != "" {
		query += ` AND type = ` + next(filter.Type)
	}
	if filter.Location != "" {
		p := next(filter.Location)
		query += ` AND (from_location = ` + p + ` OR to_location = ` + p + `)`
	}
	if filter.From != nil {
		query += ` AND date >= ` + next(*filter.From)
	}
	if filter.To != nil {
		query += ` AND date <= ` + next(*filter.To)
	}
	query += ` ORDER BY created_at DESC LIMIT NULLIF(` + next(filter.Limit) + `::int, 0) OFFSET ` + next(filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Delete elimina un movimiento (corrección administrativa del registro).
func (r *StockMovementRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE id::text = $1 OR movement_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movimiento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteAll elimina todo el registro y devuelve el conteo (purga).
func (r *StockMovementRepo) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_movements`)
	if err != nil {
		return 0, fmt.Errorf("purgar movimientos: %w", err)
	}
	return tag.RowsAffected(), nil
}

// NextMovementID reserva el siguiente código MOV#### desde la secuencia
// dedicada. La secuencia garantiza unicidad bajo escritores concurrentes;
// puede dejar huecos si una transacción revierte.
func (r *StockMovementRepo) NextMovementID(ctx context.Context) (string, error) {
	var code string
	err := r.q.QueryRow(ctx, `SELECT 'MOV' || lpad(nextval('movement_code_seq')::text, 4, '0')`).Scan(&code)
	if err != nil {
		return "", fmt.Errorf("siguiente código de movimiento: %w", err)
	}
	return code, nil
}
