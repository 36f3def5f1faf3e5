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

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

const locationColumns = `id, code, name, type, status, created_at, updated_at`

func scanLocation(row pgx.Row) (*entity.StockLocation, error) {
	var l entity.StockLocation
	err := row.Scan(&l.ID, &l.Code, &l.Name, &l.Type, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create inserta la ubicación; código duplicado => ErrDuplicate.
func (r *LocationRepo) Create(ctx context.Context, loc *entity.StockLocation) error {
	query := `
		INSERT INTO stock_locations (id, code, name, type, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, loc.ID, loc.Code, loc.Name, loc.Type, loc.Status, loc.CreatedAt, loc.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert ubicación: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID; nil sin error si no existe.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.StockLocation, error) {
	loc, err := scanLocation(r.q.QueryRow(ctx, `SELECT `+locationColumns+` FROM stock_locations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ubicación: %w", err)
	}
	return loc, nil
}

// GetByCode obtiene una ubicación por código; nil sin error si no existe.
func (r *LocationRepo) GetByCode(ctx context.Context, code string) (*entity.StockLocation, error) {
	loc, err := scanLocation(r.q.QueryRow(ctx, `SELECT `+locationColumns+` FROM stock_locations WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ubicación por código: %w", err)
	}
	return loc, nil
}

// List lista ubicaciones ordenadas por código.
func (r *LocationRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockLocation, error) {
	// limit 0 = sin límite (el sincronizador recorre todas las ubicaciones).
	rows, err := r.q.Query(ctx, `SELECT `+locationColumns+` FROM stock_locations ORDER BY code LIMIT NULLIF($1, 0) OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar ubicaciones: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockLocation
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ubicación: %w", err)
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}

// Update actualiza los campos mutables de la ubicación.
func (r *LocationRepo) Update(ctx context.Context, loc *entity.StockLocation) error {
	query := `
		UPDATE stock_locations
		SET name = $2, type = $3, status = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, loc.ID, loc.Name, loc.Type, loc.Status, loc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update ubicación: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la ubicación por ID.
func (r *LocationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ubicación: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteAll elimina todas las ubicaciones y devuelve el conteo (purga).
func (r *LocationRepo) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_locations`)
	if err != nil {
		return 0, fmt.Errorf("purgar ubicaciones: %w", err)
	}
	return tag.RowsAffected(), nil
}

// NextCode reserva el siguiente código LOC### desde la secuencia dedicada.
func (r *LocationRepo) NextCode(ctx context.Context) (string, error) {
	var code string
	err := r.q.QueryRow(ctx, `SELECT 'LOC' || lpad(nextval('location_code_seq')::text, 3, '0')`).Scan(&code)
	if err != nil {
		return "", fmt.Errorf("siguiente código de ubicación: %w", err)
	}
	return code, nil
}
