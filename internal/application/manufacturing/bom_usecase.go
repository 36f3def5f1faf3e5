package manufacturing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	domainmfg "github.com/jhoicas/manufactura-api/internal/domain/manufacturing"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

// BOMUseCase casos de uso para listas de materiales y su roll-up de costos.
type BOMUseCase struct {
	boms    repository.BOMRepository
	catalog repository.CatalogItemRepository
}

// NewBOMUseCase construye el caso de uso.
func NewBOMUseCase(boms repository.BOMRepository, catalog repository.CatalogItemRepository) *BOMUseCase {
	return &BOMUseCase{boms: boms, catalog: catalog}
}

// Create crea una BOM. El ítem del catálogo del producto terminado debe existir
// y su SKU coincidir con product_sku; la BOM queda ligada a él por
// InventoryItemID para que la completación lo resuelva sin ambigüedad.
func (uc *BOMUseCase) Create(ctx context.Context, in dto.CreateBOMRequest) (*dto.BOMResponse, error) {
	if in.ProductSKU == "" || in.ProductName == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.catalog.GetBySKU(ctx, in.ProductSKU)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.SKU != in.ProductSKU {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	bom := &entity.BOM{
		ID:              uuid.New().String(),
		ProductSKU:      in.ProductSKU,
		ProductName:     in.ProductName,
		InventoryItemID: item.ID,
		Version:         defaultStr(in.Version, "1.0"),
		Status:          defaultStr(in.Status, entity.BOMStatusActive),
		EffectiveDate:   now,
		Components:      componentsFromDTO(in.Components),
		LaborCost:       in.LaborCost,
		OverheadCost:    in.OverheadCost,
		EstimatedTime:   in.EstimatedTime,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.EffectiveDate != nil {
		bom.EffectiveDate = *in.EffectiveDate
	}
	bom.TotalMaterialCost, bom.TotalCost = domainmfg.RollUpCosts(bom.Components, bom.LaborCost, bom.OverheadCost)

	if err := uc.boms.Create(ctx, bom); err != nil {
		return nil, err
	}
	return toBOMResponse(bom), nil
}

// Get obtiene una BOM por ID.
func (uc *BOMUseCase) Get(ctx context.Context, id string) (*dto.BOMResponse, error) {
	bom, err := uc.boms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, domain.ErrNotFound
	}
	return toBOMResponse(bom), nil
}

// GetByProductSKU obtiene la BOM de un producto terminado.
func (uc *BOMUseCase) GetByProductSKU(ctx context.Context, sku string) (*dto.BOMResponse, error) {
	bom, err := uc.boms.GetByProductSKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, domain.ErrNotFound
	}
	return toBOMResponse(bom), nil
}

// List lista BOMs con paginación.
func (uc *BOMUseCase) List(ctx context.Context, limit, offset int) (*dto.BOMListResponse, error) {
	list, err := uc.boms.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BOMResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBOMResponse(b))
	}
	return &dto.BOMListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update parcha la BOM. Cualquier cambio en componentes, mano de obra u
// overhead dispara el recálculo completo de costos.
func (uc *BOMUseCase) Update(ctx context.Context, id string, in dto.UpdateBOMRequest) (*dto.BOMResponse, error) {
	bom, err := uc.boms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, domain.ErrNotFound
	}

	recompute := false
	if in.ProductName != nil {
		bom.ProductName = *in.ProductName
	}
	if in.Version != nil {
		bom.Version = *in.Version
	}
	if in.Status != nil {
		bom.Status = *in.Status
	}
	if in.EffectiveDate != nil {
		bom.EffectiveDate = *in.EffectiveDate
	}
	if in.Components != nil {
		bom.Components = componentsFromDTO(in.Components)
		recompute = true
	}
	if in.LaborCost != nil {
		bom.LaborCost = *in.LaborCost
		recompute = true
	}
	if in.OverheadCost != nil {
		bom.OverheadCost = *in.OverheadCost
		recompute = true
	}
	if in.EstimatedTime != nil {
		bom.EstimatedTime = *in.EstimatedTime
	}
	if in.Notes != nil {
		bom.Notes = *in.Notes
	}
	if recompute {
		bom.TotalMaterialCost, bom.TotalCost = domainmfg.RollUpCosts(bom.Components, bom.LaborCost, bom.OverheadCost)
	}
	bom.UpdatedAt = time.Now()

	if err := uc.boms.Update(ctx, bom); err != nil {
		return nil, err
	}
	return toBOMResponse(bom), nil
}

// Delete elimina una BOM.
func (uc *BOMUseCase) Delete(ctx context.Context, id string) error {
	bom, err := uc.boms.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if bom == nil {
		return domain.ErrNotFound
	}
	return uc.boms.Delete(ctx, id)
}

func componentsFromDTO(in []dto.ComponentDTO) []entity.Component {
	out := make([]entity.Component, 0, len(in))
	for _, c := range in {
		out = append(out, entity.Component{
			SKU:      c.SKU,
			Name:     c.Name,
			Quantity: c.Quantity,
			Unit:     c.Unit,
			UnitCost: c.UnitCost,
		})
	}
	return out
}

func toBOMResponse(bom *entity.BOM) *dto.BOMResponse {
	components := make([]dto.BOMComponentResponse, 0, len(bom.Components))
	for _, c := range bom.Components {
		components = append(components, dto.BOMComponentResponse{
			SKU:       c.SKU,
			Name:      c.Name,
			Quantity:  c.Quantity,
			Unit:      c.Unit,
			UnitCost:  c.UnitCost,
			TotalCost: c.TotalCost,
		})
	}
	return &dto.BOMResponse{
		ID:                bom.ID,
		ProductSKU:        bom.ProductSKU,
		ProductName:       bom.ProductName,
		InventoryItemID:   bom.InventoryItemID,
		Version:           bom.Version,
		Status:            bom.Status,
		EffectiveDate:     bom.EffectiveDate,
		Components:        components,
		LaborCost:         bom.LaborCost,
		OverheadCost:      bom.OverheadCost,
		TotalMaterialCost: bom.TotalMaterialCost,
		TotalCost:         bom.TotalCost,
		EstimatedTime:     bom.EstimatedTime,
		Notes:             bom.Notes,
		CreatedAt:         bom.CreatedAt,
		UpdatedAt:         bom.UpdatedAt,
	}
}

func defaultStr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
