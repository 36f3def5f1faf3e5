package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest entrada para crear una orden de producción. La reserva de
// componentes bajo requested ocurre en la misma transacción que la creación.
type CreateOrderRequest struct {
	BOMID          string          `json:"bom_id" validate:"required"`
	Quantity       decimal.Decimal `json:"quantity"`
	Priority       string          `json:"priority"`
	AllocationType string          `json:"allocation_type"`
	ClientID       *string         `json:"client_id,omitempty"`
	AssignedTo     string          `json:"assigned_to"`
	StartDate      *time.Time      `json:"start_date,omitempty"`
	TargetDate     *time.Time      `json:"target_date,omitempty"`
	Notes          string          `json:"notes"`
}

// TransitionOrderRequest entrada para cambiar el estado de una orden.
// ExpectedStatus es la guardia optimista: el estado que el llamador observó;
// si al releer dentro de la transacción difiere, la transición se rechaza.
type TransitionOrderRequest struct {
	Status           string           `json:"status" validate:"required"`
	ExpectedStatus   string           `json:"expected_status" validate:"required"`
	QuantityProduced *decimal.Decimal `json:"quantity_produced,omitempty"`
}

// UpdateOrderRequest parches de campos sin efecto de stock.
type UpdateOrderRequest struct {
	Priority   *string    `json:"priority"`
	AssignedTo *string    `json:"assigned_to"`
	StartDate  *time.Time `json:"start_date"`
	TargetDate *time.Time `json:"target_date"`
	Notes      *string    `json:"notes"`
}

// ConsumeRequest deduce componentes de la BOM para una cantidad producida
// parcial, sin transición de estado.
type ConsumeRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// StockWarning faltante tolerado durante una completación (se registra y se
// continúa en lugar de bloquear la orden).
type StockWarning struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Available decimal.Decimal `json:"available"`
	Required  decimal.Decimal `json:"required"`
	Shortfall decimal.Decimal `json:"shortfall"`
}

// OrderResponse salida de una orden de producción.
type OrderResponse struct {
	ID               string          `json:"id"`
	BOMID            string          `json:"bom_id"`
	ProductSKU       string          `json:"product_sku"`
	ProductName      string          `json:"product_name"`
	Quantity         decimal.Decimal `json:"quantity"`
	QuantityProduced decimal.Decimal `json:"quantity_produced"`
	Status           string          `json:"status"`
	Priority         string          `json:"priority"`
	WorkOrderNumber  string          `json:"work_order_number"`
	AllocationType   string          `json:"allocation_type"`
	ClientID         *string         `json:"client_id,omitempty"`
	AssignedTo       string          `json:"assigned_to"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	StartDate        *time.Time      `json:"start_date,omitempty"`
	TargetDate       *time.Time      `json:"target_date,omitempty"`
	CompletedDate    *time.Time      `json:"completed_date,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	CreatedBy        string          `json:"created_by"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Warnings         []StockWarning  `json:"stock_warnings,omitempty"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// PurgeRequest body para el purgado manual de datos de manufactura.
// Confirm debe venir en true: sin confirmación explícita no se borra nada.
type PurgeRequest struct {
	Confirm bool `json:"confirm"`
}

// PurgeResponse conteos de todo lo eliminado, en orden de dependencia.
type PurgeResponse struct {
	LedgerRows   int64 `json:"ledger_rows"`
	Movements    int64 `json:"movements"`
	Orders       int64 `json:"orders"`
	BOMs         int64 `json:"boms"`
	CatalogItems int64 `json:"catalog_items"`
	Locations    int64 `json:"locations"`
	Suppliers    int64 `json:"suppliers"`
}
