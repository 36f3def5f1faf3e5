package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockTransactionRequest body para POST /api/inventory/transactions.
// Para receipt/sale/adjustment: sku, quantity, location_id (vacío = bodega
// principal). Para transfer: from_location_id y to_location_id.
type StockTransactionRequest struct {
	Type           string           `json:"type" validate:"required"`
	SKU            string           `json:"sku" validate:"required"`
	ItemName       string           `json:"item_name"`
	Quantity       decimal.Decimal  `json:"quantity"`
	LocationID     string           `json:"location_id,omitempty"`
	FromLocationID string           `json:"from_location_id,omitempty"`
	ToLocationID   string           `json:"to_location_id,omitempty"`
	UnitCost       *decimal.Decimal `json:"unit_cost,omitempty"`
	Reference      string           `json:"reference"`
	Notes          string           `json:"notes"`
	Date           *time.Time       `json:"date,omitempty"`
}

// MovementResponse salida de una entrada del registro de movimientos.
type MovementResponse struct {
	ID            string          `json:"id"`
	MovementID    string          `json:"movement_id"`
	TransactionID string          `json:"transaction_id"`
	Date          time.Time       `json:"date"`
	Type          string          `json:"type"`
	ItemName      string          `json:"item_name"`
	SKU           string          `json:"sku"`
	Quantity      decimal.Decimal `json:"quantity"`
	FromLocation  string          `json:"from_location,omitempty"`
	ToLocation    string          `json:"to_location,omitempty"`
	Reference     string          `json:"reference,omitempty"`
	PerformedBy   string          `json:"performed_by"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// LocationInventoryRow fila de la vista por ubicación: el catálogo manda en
// los campos descriptivos, el libro en cantidad y costo.
type LocationInventoryRow struct {
	SKU           string          `json:"sku"`
	ItemName      string          `json:"item_name"`
	Unit          string          `json:"unit"`
	Category      string          `json:"category"`
	Supplier      string          `json:"supplier,omitempty"`
	LocationID    string          `json:"location_id"`
	LocationCode  string          `json:"location_code"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	ReorderPoint  decimal.Decimal `json:"reorder_point"`
	ReorderQty    decimal.Decimal `json:"reorder_qty"`
	Status        string          `json:"status"`
	LastRestocked *time.Time      `json:"last_restocked,omitempty"`
}

// LocationBreakdown desglose por ubicación dentro de la vista agregada.
type LocationBreakdown struct {
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	Status     string          `json:"status"`
}

// AggregateInventoryRow una fila por SKU sumada sobre todas las ubicaciones.
type AggregateInventoryRow struct {
	SKU               string              `json:"sku"`
	Name              string              `json:"name"`
	Unit              string              `json:"unit"`
	Category          string              `json:"category"`
	Quantity          decimal.Decimal     `json:"quantity"`
	AllocatedQuantity decimal.Decimal     `json:"allocated_quantity"`
	Available         decimal.Decimal     `json:"available"`
	UnitCost          decimal.Decimal     `json:"unit_cost"`
	TotalValue        decimal.Decimal     `json:"total_value"`
	ReorderPoint      decimal.Decimal     `json:"reorder_point"`
	Status            string              `json:"status"`
	Locations         []LocationBreakdown `json:"locations"`
}

// LowStockRow SKU con disponible (en mano − asignado) en o bajo el punto de reorden.
type LowStockRow struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	OnHand       decimal.Decimal `json:"on_hand"`
	Allocated    decimal.Decimal `json:"allocated"`
	Available    decimal.Decimal `json:"available"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	SuggestedQty decimal.Decimal `json:"suggested_qty"`
	Status       string          `json:"status"`
	Supplier     string          `json:"supplier,omitempty"`
}
