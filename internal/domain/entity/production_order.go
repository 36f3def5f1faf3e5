package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de producción.
const (
	OrderStatusRequested    = "requested"
	OrderStatusReceived     = "received"
	OrderStatusInProduction = "in_production"
	OrderStatusCompleted    = "completed"
	OrderStatusCancelled    = "cancelled"
)

// Prioridades.
const (
	OrderPriorityLow    = "low"
	OrderPriorityNormal = "normal"
	OrderPriorityHigh   = "high"
	OrderPriorityUrgent = "urgent"
)

// Tipos de asignación del producto terminado.
const (
	AllocationTypeStock  = "stock"
	AllocationTypeClient = "client"
)

// ProductionOrder orquesta reserva, consumo y recepción de producto terminado
// contra una BOM. No posee stock: todos los efectos pasan por el libro por
// ubicación y el registro de movimientos, siempre como deltas firmados.
type ProductionOrder struct {
	ID               string
	BOMID            string
	ProductSKU       string
	ProductName      string
	Quantity         decimal.Decimal // cantidad ordenada
	QuantityProduced decimal.Decimal
	Status           string
	Priority         string
	WorkOrderNumber  string // WO-#### desde secuencia
	AllocationType   string
	ClientID         *string
	AssignedTo       string
	TotalCost        decimal.Decimal
	StartDate        *time.Time
	TargetDate       *time.Time
	CompletedDate    *time.Time
	Notes            string
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
