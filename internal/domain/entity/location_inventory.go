package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LocationInventory es la fila del libro por (ubicación, SKU): única fuente de
// verdad de cuánto stock hay en cada ubicación. El estado se deriva de la
// cantidad de ESTA fila, no del agregado del catálogo.
type LocationInventory struct {
	ID            string
	LocationID    string
	SKU           string
	ItemName      string
	Quantity      decimal.Decimal
	UnitCost      decimal.Decimal
	ReorderPoint  decimal.Decimal
	Status        string
	LastRestocked *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
