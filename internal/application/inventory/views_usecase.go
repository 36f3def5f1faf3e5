package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/domain"
	domaininv "github.com/jhoicas/manufactura-api/internal/domain/inventory"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
	"github.com/jhoicas/manufactura-api/pkg/logger"
)

// ViewsUseCase construye las vistas de inventario por ubicación y agregada.
// Lecturas fuera de transacción: la consistencia Σ por-ubicación = agregado
// está garantizada al commit de cada mutación, no aquí.
type ViewsUseCase struct {
	locations repository.LocationRepository
	catalog   repository.CatalogItemRepository
	ledger    repository.LocationInventoryRepository
	syncer    *SyncUseCase
	log       *logger.Logger
}

// NewViewsUseCase construye el caso de uso.
func NewViewsUseCase(
	locations repository.LocationRepository,
	catalog repository.CatalogItemRepository,
	ledger repository.LocationInventoryRepository,
	syncer *SyncUseCase,
	log *logger.Logger,
) *ViewsUseCase {
	return &ViewsUseCase{locations: locations, catalog: catalog, ledger: ledger, syncer: syncer, log: log}
}

// PerLocation devuelve las filas del libro de una ubicación conocida,
// enriquecidas con metadatos del catálogo: el catálogo manda en los campos
// descriptivos, el libro manda en cantidad y costo. Si la ubicación existe
// pero aún no tiene filas, corre el sincronizador para esa ubicación antes de
// responder; un catálogo vacío produce lista vacía, no error.
func (uc *ViewsUseCase) PerLocation(ctx context.Context, locationID string) ([]dto.LocationInventoryRow, error) {
	loc, err := uc.locations.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}

	count, err := uc.ledger.CountByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		if _, err := uc.syncer.EnsureLocation(ctx, locationID); err != nil {
			uc.log.Warn().Err(err).Str("location_id", locationID).
				Msg("cobertura perezosa de ubicación falló; se responde lo existente")
		}
	}

	rows, err := uc.ledger.ListByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationInventoryRow, 0, len(rows))
	for _, row := range rows {
		r := dto.LocationInventoryRow{
			SKU:           row.SKU,
			ItemName:      row.ItemName,
			LocationID:    row.LocationID,
			LocationCode:  loc.Code,
			Quantity:      row.Quantity,
			UnitCost:      row.UnitCost,
			ReorderPoint:  row.ReorderPoint,
			Status:        row.Status,
			LastRestocked: row.LastRestocked,
		}
		item, err := uc.catalog.GetBySKU(ctx, row.SKU)
		if err != nil {
			return nil, err
		}
		if item != nil {
			r.ItemName = item.Name
			r.Unit = item.Unit
			r.Category = item.Category
			r.Supplier = item.Supplier
			r.ReorderQty = item.ReorderQty
		}
		out = append(out, r)
	}
	return out, nil
}

// Aggregate devuelve una fila por SKU sumada sobre todas las ubicaciones, con
// el desglose locations[] para presentación. Incluye SKUs del catálogo sin
// filas en el libro (cero en todas partes).
func (uc *ViewsUseCase) Aggregate(ctx context.Context) ([]dto.AggregateInventoryRow, error) {
	items, err := uc.catalog.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AggregateInventoryRow, 0, len(items))
	for _, item := range items {
		row := dto.AggregateInventoryRow{
			SKU:               item.SKU,
			Name:              item.Name,
			Unit:              item.Unit,
			Category:          item.Category,
			Quantity:          decimal.Zero,
			AllocatedQuantity: item.AllocatedQuantity,
			UnitCost:          item.UnitCost,
			ReorderPoint:      item.ReorderPoint,
			Status:            item.Status,
		}
		ledgerRows, err := uc.ledger.ListBySKU(ctx, item.SKU)
		if err != nil {
			return nil, err
		}
		for _, lr := range ledgerRows {
			row.Quantity = row.Quantity.Add(lr.Quantity)
			row.Locations = append(row.Locations, dto.LocationBreakdown{
				LocationID: lr.LocationID,
				Quantity:   lr.Quantity,
				UnitCost:   lr.UnitCost,
				Status:     lr.Status,
			})
		}
		row.Available = row.Quantity.Sub(item.AllocatedQuantity)
		row.TotalValue = row.Quantity.Mul(item.UnitCost)
		out = append(out, row)
	}
	return out, nil
}

// LowStock devuelve los SKUs cuya cantidad disponible (en mano − asignada) está
// en o bajo el punto de reorden, con la cantidad de pedido sugerida.
func (uc *ViewsUseCase) LowStock(ctx context.Context) ([]dto.LowStockRow, error) {
	items, err := uc.catalog.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	var out []dto.LowStockRow
	for _, item := range items {
		available := item.Available()
		if available.GreaterThan(item.ReorderPoint) {
			continue
		}
		out = append(out, dto.LowStockRow{
			SKU:          item.SKU,
			Name:         item.Name,
			Available:    available,
			OnHand:       item.Quantity,
			Allocated:    item.AllocatedQuantity,
			ReorderPoint: item.ReorderPoint,
			SuggestedQty: item.ReorderQty,
			Status:       domaininv.DeriveStatus(available, item.ReorderPoint),
			Supplier:     item.Supplier,
		})
	}
	return out, nil
}
