package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	domaininv "github.com/jhoicas/manufactura-api/internal/domain/inventory"
)

// ApplyDeltaInput parámetros para mutar una fila del libro por ubicación.
// UnitCost y ReorderPoint solo se escriben si vienen informados; nunca se
// ponen en cero de forma implícita.
type ApplyDeltaInput struct {
	LocationID     string
	SKU            string
	ItemName       string
	Delta          decimal.Decimal
	UnitCost       *decimal.Decimal
	ReorderPoint   *decimal.Decimal
	AllowNegative  bool // solo los ajustes pueden dejar la cantidad negativa
	TouchRestocked bool
}

// ApplyLocationDelta crea la fila con cantidad cero si no existe, bloquea la
// fila, aplica el delta y recalcula el estado de la fila. Debe ejecutarse
// dentro de la misma transacción que el recálculo del espejo del catálogo.
func ApplyLocationDelta(ctx context.Context, r Repos, in ApplyDeltaInput) (*entity.LocationInventory, error) {
	now := time.Now()
	row, err := r.Ledger.GetForUpdate(ctx, in.LocationID, in.SKU)
	if err != nil {
		return nil, err
	}
	created := false
	if row == nil {
		row = &entity.LocationInventory{
			ID:         uuid.New().String(),
			LocationID: in.LocationID,
			SKU:        in.SKU,
			ItemName:   in.ItemName,
			Quantity:   decimal.Zero,
			Status:     entity.StockStatusOutOfStock,
			CreatedAt:  now,
		}
		created = true
	}

	newQty := row.Quantity.Add(in.Delta)
	if newQty.IsNegative() && !in.AllowNegative {
		return nil, &domain.InsufficientStockError{
			SKU:        in.SKU,
			LocationID: in.LocationID,
			Available:  row.Quantity,
			Required:   in.Delta.Neg(),
		}
	}

	row.Quantity = newQty
	if in.ItemName != "" {
		row.ItemName = in.ItemName
	}
	if in.UnitCost != nil {
		row.UnitCost = *in.UnitCost
	}
	if in.ReorderPoint != nil {
		row.ReorderPoint = *in.ReorderPoint
	}
	if in.TouchRestocked {
		t := now
		row.LastRestocked = &t
	}
	row.Status = domaininv.DeriveStatus(row.Quantity, row.ReorderPoint)
	row.UpdatedAt = now

	if created {
		if err := r.Ledger.Create(ctx, row); err != nil {
			return nil, err
		}
		return row, nil
	}
	if err := r.Ledger.Update(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// RecomputeCatalogAggregate suma la cantidad del SKU sobre todas las
// ubicaciones y la escribe en el espejo del catálogo junto con el valor total
// y el estado derivado. Debe correr tras toda mutación del libro que no sea
// puramente de asignación; el libro manda cuando ambos difieren.
func RecomputeCatalogAggregate(ctx context.Context, r Repos, sku string) (*entity.CatalogItem, error) {
	item, err := r.Catalog.GetBySKUForUpdate(ctx, sku)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	total, err := r.Ledger.SumBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	totalValue := total.Mul(item.UnitCost)
	status := domaininv.DeriveStatus(total, item.ReorderPoint)
	if err := r.Catalog.UpdateAggregate(ctx, sku, total, totalValue, status); err != nil {
		return nil, err
	}
	item.Quantity = total
	item.TotalValue = totalValue
	item.Status = status
	return item, nil
}

// ResolveLocation devuelve la ubicación pedida o, si el ID viene vacío, la
// bodega principal LOC001, creándola perezosamente si todavía no existe.
func ResolveLocation(ctx context.Context, r Repos, locationID string) (*entity.StockLocation, error) {
	if locationID != "" {
		loc, err := r.Locations.GetByID(ctx, locationID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, domain.ErrNotFound
		}
		return loc, nil
	}
	loc, err := r.Locations.GetByCode(ctx, entity.MainLocationCode)
	if err != nil {
		return nil, err
	}
	if loc != nil {
		return loc, nil
	}
	now := time.Now()
	loc = &entity.StockLocation{
		ID:        uuid.New().String(),
		Code:      entity.MainLocationCode,
		Name:      "Bodega principal",
		Type:      entity.LocationTypeWarehouse,
		Status:    entity.LocationStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.Locations.Create(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}
