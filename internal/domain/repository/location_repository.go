package repository

import (
	"context"

	"github.com/jhoicas/manufactura-api/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para ubicaciones de stock (DIP).
type LocationRepository interface {
	Create(ctx context.Context, location *entity.StockLocation) error
	GetByID(ctx context.Context, id string) (*entity.StockLocation, error)
	GetByCode(ctx context.Context, code string) (*entity.StockLocation, error)
	List(ctx context.Context, limit, offset int) ([]*entity.StockLocation, error)
	Update(ctx context.Context, location *entity.StockLocation) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	// NextCode reserva el siguiente código LOC### desde la secuencia dedicada.
	NextCode(ctx context.Context) (string, error)
}
