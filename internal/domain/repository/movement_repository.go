package repository

import (
	"context"
	"time"

	"github.com/jhoicas/manufactura-api/internal/domain/entity"
)

// MovementFilter acota el listado de movimientos.
type MovementFilter struct {
	SKU      string
	Type     string
	Location string // coincide con origen o destino
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// StockMovementRepository define el puerto del registro de movimientos (DIP).
// El registro es de solo-añadir: no hay Update.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	// NextMovementID reserva el siguiente código MOV#### desde la secuencia
	// dedicada. Monotónico de mejor esfuerzo: puede haber huecos.
	NextMovementID(ctx context.Context) (string, error)
}
