package entity

import "time"

// Estados de una ubicación de stock.
const (
	LocationStatusActive   = "active"
	LocationStatusInactive = "inactive"
)

// Tipos de ubicación.
const (
	LocationTypeWarehouse = "warehouse"
	LocationTypeSite      = "site"
)

// Código de la bodega principal, creada perezosamente cuando una operación
// necesita una ubicación y no recibió ninguna.
const MainLocationCode = "LOC001"

// StockLocation representa una ubicación física o lógica de inventario (bodega, obra).
// Code es único con formato LOC### y se genera desde una secuencia si no se entrega.
type StockLocation struct {
	ID        string
	Code      string
	Name      string
	Type      string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
