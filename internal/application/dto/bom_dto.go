package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComponentDTO línea de la lista de materiales (cantidad por unidad de salida).
type ComponentDTO struct {
	SKU      string          `json:"sku" validate:"required"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// CreateBOMRequest entrada para crear una lista de materiales. El ítem del
// catálogo del producto terminado debe existir y su SKU coincidir con
// product_sku.
type CreateBOMRequest struct {
	ProductSKU    string          `json:"product_sku" validate:"required"`
	ProductName   string          `json:"product_name" validate:"required"`
	Version       string          `json:"version"`
	Status        string          `json:"status"`
	EffectiveDate *time.Time      `json:"effective_date,omitempty"`
	Components    []ComponentDTO  `json:"components"`
	LaborCost     decimal.Decimal `json:"labor_cost"`
	OverheadCost  decimal.Decimal `json:"overhead_cost"`
	EstimatedTime int             `json:"estimated_time"`
	Notes         string          `json:"notes"`
}

// UpdateBOMRequest entrada para actualizar una BOM; cualquier cambio en
// components, labor_cost u overhead_cost dispara el recálculo completo de
// costos, el resto son parches independientes.
type UpdateBOMRequest struct {
	ProductName   *string          `json:"product_name"`
	Version       *string          `json:"version"`
	Status        *string          `json:"status"`
	EffectiveDate *time.Time       `json:"effective_date"`
	Components    []ComponentDTO   `json:"components"`
	LaborCost     *decimal.Decimal `json:"labor_cost"`
	OverheadCost  *decimal.Decimal `json:"overhead_cost"`
	EstimatedTime *int             `json:"estimated_time"`
	Notes         *string          `json:"notes"`
}

// BOMComponentResponse componente con su costo total calculado.
type BOMComponentResponse struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// BOMResponse salida de una lista de materiales.
type BOMResponse struct {
	ID                string                 `json:"id"`
	ProductSKU        string                 `json:"product_sku"`
	ProductName       string                 `json:"product_name"`
	InventoryItemID   string                 `json:"inventory_item_id"`
	Version           string                 `json:"version"`
	Status            string                 `json:"status"`
	EffectiveDate     time.Time              `json:"effective_date"`
	Components        []BOMComponentResponse `json:"components"`
	LaborCost         decimal.Decimal        `json:"labor_cost"`
	OverheadCost      decimal.Decimal        `json:"overhead_cost"`
	TotalMaterialCost decimal.Decimal        `json:"total_material_cost"`
	TotalCost         decimal.Decimal        `json:"total_cost"`
	EstimatedTime     int                    `json:"estimated_time"`
	Notes             string                 `json:"notes,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// BOMListResponse lista paginada de BOMs.
type BOMListResponse struct {
	Items []BOMResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}
