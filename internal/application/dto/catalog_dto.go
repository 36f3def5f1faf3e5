package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un ítem del catálogo maestro.
// SKU vacío genera el siguiente SKU#### desde la secuencia.
type CreateItemRequest struct {
	SKU          string          `json:"sku" validate:"omitempty,max=100"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Category     string          `json:"category"`
	Type         string          `json:"type"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	ReorderQty   decimal.Decimal `json:"reorder_qty"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Supplier     string          `json:"supplier"`
	LocationID   *string         `json:"location_id,omitempty"`
}

// UpdateItemRequest entrada para actualizar un ítem (parches independientes).
// La cantidad agregada no se actualiza por aquí: es un espejo del libro y solo
// cambia vía transacciones de stock.
type UpdateItemRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category     *string          `json:"category"`
	Type         *string          `json:"type"`
	Unit         *string          `json:"unit"`
	ReorderPoint *decimal.Decimal `json:"reorder_point"`
	ReorderQty   *decimal.Decimal `json:"reorder_qty"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
	Supplier     *string          `json:"supplier"`
	LocationID   *string          `json:"location_id"`
}

// ItemResponse salida de un ítem del catálogo.
type ItemResponse struct {
	ID                   string          `json:"id"`
	SKU                  string          `json:"sku"`
	Name                 string          `json:"name"`
	Category             string          `json:"category"`
	Type                 string          `json:"type"`
	Unit                 string          `json:"unit"`
	Quantity             decimal.Decimal `json:"quantity"`
	AllocatedQuantity    decimal.Decimal `json:"allocated_quantity"`
	InProductionQuantity decimal.Decimal `json:"in_production_quantity"`
	CompletedQuantity    decimal.Decimal `json:"completed_quantity"`
	Available            decimal.Decimal `json:"available"`
	ReorderPoint         decimal.Decimal `json:"reorder_point"`
	ReorderQty           decimal.Decimal `json:"reorder_qty"`
	UnitCost             decimal.Decimal `json:"unit_cost"`
	TotalValue           decimal.Decimal `json:"total_value"`
	Status               string          `json:"status"`
	Supplier             string          `json:"supplier"`
	LocationID           *string         `json:"location_id,omitempty"`
	LastRestocked        *time.Time      `json:"last_restocked,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// ItemListResponse lista paginada de ítems del catálogo.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
