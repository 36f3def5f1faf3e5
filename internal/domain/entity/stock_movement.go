package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeReceipt     = "receipt"
	MovementTypeConsumption = "consumption"
	MovementTypeProduction  = "production"
	MovementTypeTransfer    = "transfer"
	MovementTypeAdjustment  = "adjustment"
	MovementTypeSale        = "sale"
	MovementTypeReturn      = "return"
)

// StockMovement es una entrada inmutable del registro de movimientos.
// MovementID tiene formato MOV#### generado desde una secuencia: monotónico de
// mejor esfuerzo, los consumidores no deben asumir numeración sin huecos bajo
// escritores concurrentes (la fila se identifica además por su propio ID).
// Quantity es firmada: receipt/return positiva, consumption/sale/production
// negativa, adjustment conserva el signo del llamador. Un movimiento con
// cantidad cero es válido y representa un evento puro de (des)asignación.
type StockMovement struct {
	ID            string
	MovementID    string
	TransactionID string // agrupa las patas de una misma operación (ej. transfer)
	Date          time.Time
	Type          string
	ItemName      string
	SKU           string
	Quantity      decimal.Decimal
	FromLocation  string
	ToLocation    string
	Reference     string
	PerformedBy   string
	Notes         string
	CreatedAt     time.Time
}
