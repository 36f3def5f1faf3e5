package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/application/inventory"
	"github.com/jhoicas/manufactura-api/internal/application/manufacturing"
	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	domaininv "github.com/jhoicas/manufactura-api/internal/domain/inventory"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

// CatalogUseCase casos de uso CRUD para el catálogo maestro de ítems. Usa el
// runner de manufactura porque Delete necesita consultar BOMs dentro de la
// misma transacción.
type CatalogUseCase struct {
	repo     repository.CatalogItemRepository
	txRunner manufacturing.TxRunner
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.CatalogItemRepository, txRunner manufacturing.TxRunner) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, txRunner: txRunner}
}

// Create crea el ítem maestro. Si trae cantidad inicial distinta de cero, esa
// cantidad nace como fila del libro en la ubicación por defecto con su
// movimiento de ajuste, en la misma transacción: el agregado del catálogo
// nunca existe sin respaldo en el libro.
func (uc *CatalogUseCase) Create(ctx context.Context, in dto.CreateItemRequest, performedBy string) (*dto.ItemResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.CatalogItem
	err := uc.txRunner.Run(ctx, func(r manufacturing.Repos) error {
		sku := in.SKU
		if sku == "" {
			var err error
			if sku, err = r.Catalog.NextSKU(ctx); err != nil {
				return err
			}
		}
		if existing, err := r.Catalog.GetBySKU(ctx, sku); err != nil {
			return err
		} else if existing != nil {
			return domain.ErrDuplicate
		}

		now := time.Now()
		item := &entity.CatalogItem{
			ID:           uuid.New().String(),
			SKU:          sku,
			Name:         in.Name,
			Category:     defaultString(in.Category, "components"),
			Type:         defaultString(in.Type, entity.ItemTypeRawMaterial),
			Unit:         defaultString(in.Unit, "pcs"),
			Quantity:     decimal.Zero,
			ReorderPoint: in.ReorderPoint,
			ReorderQty:   in.ReorderQty,
			UnitCost:     in.UnitCost,
			TotalValue:   decimal.Zero,
			Status:       entity.StockStatusOutOfStock,
			Supplier:     in.Supplier,
			LocationID:   in.LocationID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := r.Catalog.Create(ctx, item); err != nil {
			return err
		}

		if !in.Quantity.IsZero() {
			locationID := ""
			if in.LocationID != nil {
				locationID = *in.LocationID
			}
			loc, err := inventory.ResolveLocation(ctx, r.Repos, locationID)
			if err != nil {
				return err
			}
			cost := in.UnitCost
			rp := in.ReorderPoint
			if _, err := inventory.ApplyLocationDelta(ctx, r.Repos, inventory.ApplyDeltaInput{
				LocationID:     loc.ID,
				SKU:            sku,
				ItemName:       in.Name,
				Delta:          in.Quantity,
				UnitCost:       &cost,
				ReorderPoint:   &rp,
				AllowNegative:  true,
				TouchRestocked: true,
			}); err != nil {
				return err
			}
			if _, err := inventory.AppendMovement(ctx, r.Repos, inventory.MovementInput{
				Type:        entity.MovementTypeAdjustment,
				SKU:         sku,
				ItemName:    in.Name,
				Quantity:    in.Quantity,
				ToLocation:  loc.Code,
				PerformedBy: performedBy,
				Notes:       "stock inicial",
			}); err != nil {
				return err
			}
		}
		updated, err := inventory.RecomputeCatalogAggregate(ctx, r.Repos, sku)
		if err != nil {
			return err
		}
		item.Quantity = updated.Quantity
		item.TotalValue = updated.TotalValue
		item.Status = updated.Status
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToItemResponse(out), nil
}

// Get obtiene un ítem por ID.
func (uc *CatalogUseCase) Get(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return ToItemResponse(item), nil
}

// GetBySKU obtiene un ítem por SKU.
func (uc *CatalogUseCase) GetBySKU(ctx context.Context, sku string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return ToItemResponse(item), nil
}

// List lista ítems con paginación.
func (uc *CatalogUseCase) List(ctx context.Context, limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *ToItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update parcha campos descriptivos y de reorden. Si cambia el costo unitario
// se recalcula el valor total con la cantidad espejo vigente; la cantidad en
// sí solo cambia vía transacciones de stock.
func (uc *CatalogUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Type != nil {
		item.Type = *in.Type
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.ReorderPoint != nil {
		item.ReorderPoint = *in.ReorderPoint
	}
	if in.ReorderQty != nil {
		item.ReorderQty = *in.ReorderQty
	}
	if in.UnitCost != nil {
		item.UnitCost = *in.UnitCost
	}
	if in.Supplier != nil {
		item.Supplier = *in.Supplier
	}
	if in.LocationID != nil {
		item.LocationID = in.LocationID
	}
	item.TotalValue = item.Quantity.Mul(item.UnitCost)
	item.Status = domaininv.DeriveStatus(item.Quantity, item.ReorderPoint)
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// Delete elimina un ítem salvo que alguna BOM lo referencie como producto
// terminado. La guardia de BOMs y el borrado de las filas del libro corren en
// la misma transacción: una BOM creada en paralelo no puede quedar apuntando a
// un producto recién borrado.
func (uc *CatalogUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(r manufacturing.Repos) error {
		item, err := r.Catalog.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		referenced, err := r.BOMs.ExistsForProduct(ctx, item.ID, item.SKU)
		if err != nil {
			return err
		}
		if referenced {
			return domain.ErrConstraintViolation
		}
		if err := r.Ledger.DeleteBySKU(ctx, item.SKU); err != nil {
			return err
		}
		return r.Catalog.Delete(ctx, id)
	})
}

// ToItemResponse mapea la entidad al DTO de salida.
func ToItemResponse(item *entity.CatalogItem) *dto.ItemResponse {
	if item == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:                   item.ID,
		SKU:                  item.SKU,
		Name:                 item.Name,
		Category:             item.Category,
		Type:                 item.Type,
		Unit:                 item.Unit,
		Quantity:             item.Quantity,
		AllocatedQuantity:    item.AllocatedQuantity,
		InProductionQuantity: item.InProductionQuantity,
		CompletedQuantity:    item.CompletedQuantity,
		Available:            item.Available(),
		ReorderPoint:         item.ReorderPoint,
		ReorderQty:           item.ReorderQty,
		UnitCost:             item.UnitCost,
		TotalValue:           item.TotalValue,
		Status:               item.Status,
		Supplier:             item.Supplier,
		LocationID:           item.LocationID,
		LastRestocked:        item.LastRestocked,
		CreatedAt:            item.CreatedAt,
		UpdatedAt:            item.UpdatedAt,
	}
}
