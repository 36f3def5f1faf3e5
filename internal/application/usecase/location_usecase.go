package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/application/inventory"
	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

// LocationUseCase casos de uso CRUD para ubicaciones de stock.
type LocationUseCase struct {
	repo     repository.LocationRepository
	txRunner inventory.TxRunner
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository, txRunner inventory.TxRunner) *LocationUseCase {
	return &LocationUseCase{repo: repo, txRunner: txRunner}
}

// Create crea una ubicación; sin código explícito reserva el siguiente LOC###.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	code := in.Code
	if code == "" {
		var err error
		if code, err = uc.repo.NextCode(ctx); err != nil {
			return nil, err
		}
	}
	now := time.Now()
	loc := &entity.StockLocation{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      in.Name,
		Type:      defaultString(in.Type, entity.LocationTypeWarehouse),
		Status:    defaultString(in.Status, entity.LocationStatusActive),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// Get obtiene una ubicación por ID.
func (uc *LocationUseCase) Get(ctx context.Context, id string) (*dto.LocationResponse, error) {
	loc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	return toLocationResponse(loc), nil
}

// List lista ubicaciones con paginación.
func (uc *LocationUseCase) List(ctx context.Context, limit, offset int) (*dto.LocationListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, loc := range list {
		items = append(items, *toLocationResponse(loc))
	}
	return &dto.LocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza campos descriptivos de una ubicación.
func (uc *LocationUseCase) Update(ctx context.Context, id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	loc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		loc.Name = *in.Name
	}
	if in.Type != nil {
		loc.Type = *in.Type
	}
	if in.Status != nil {
		loc.Status = *in.Status
	}
	loc.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// Delete elimina una ubicación solo si ninguna fila del libro tiene cantidad
// distinta de cero y ningún ítem asignado a ella mantiene reservas; las filas
// placeholder en cero se eliminan junto con la ubicación, en una transacción.
func (uc *LocationUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(r inventory.Repos) error {
		loc, err := r.Locations.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.ErrNotFound
		}
		nonZero, err := r.Ledger.HasStockOrAllocation(ctx, id)
		if err != nil {
			return err
		}
		if nonZero {
			return domain.ErrConstraintViolation
		}
		rows, err := r.Ledger.ListByLocation(ctx, id)
		if err != nil {
			return err
		}
		for _, row := range rows {
			item, err := r.Catalog.GetBySKU(ctx, row.SKU)
			if err != nil {
				return err
			}
			if item != nil && item.LocationID != nil && *item.LocationID == id &&
				item.AllocatedQuantity.GreaterThan(decimal.Zero) {
				return domain.ErrConstraintViolation
			}
		}
		if err := r.Ledger.DeleteByLocation(ctx, id); err != nil {
			return err
		}
		return r.Locations.Delete(ctx, id)
	})
}

func toLocationResponse(loc *entity.StockLocation) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:        loc.ID,
		Code:      loc.Code,
		Name:      loc.Name,
		Type:      loc.Type,
		Status:    loc.Status,
		CreatedAt: loc.CreatedAt,
		UpdatedAt: loc.UpdatedAt,
	}
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
