package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de stock derivados de cantidad vs punto de reorden.
const (
	StockStatusInStock      = "in_stock"
	StockStatusLowStock     = "low_stock"
	StockStatusOutOfStock   = "out_of_stock"
	StockStatusInProduction = "in_production"
)

// Tipos de ítem del catálogo.
const (
	ItemTypeRawMaterial  = "raw_material"
	ItemTypeComponent    = "component"
	ItemTypeFinishedGood = "finished_good"
)

// CatalogItem es el registro maestro de un SKU. Quantity es un espejo agregado
// recalculado desde el libro por ubicación (la suma por ubicaciones manda);
// AllocatedQuantity se muta solo con incrementos/decrementos firmados dentro de
// una transacción, nunca con asignaciones absolutas.
type CatalogItem struct {
	ID                   string
	SKU                  string // único, formato SKU#### si se autogenera
	Name                 string
	Category             string
	Type                 string
	Unit                 string
	Quantity             decimal.Decimal // agregado: Σ LocationInventory.Quantity
	AllocatedQuantity    decimal.Decimal // reservado por órdenes de producción
	InProductionQuantity decimal.Decimal
	CompletedQuantity    decimal.Decimal
	ReorderPoint         decimal.Decimal
	ReorderQty           decimal.Decimal
	UnitCost             decimal.Decimal
	TotalValue           decimal.Decimal // Quantity × UnitCost
	Status               string
	Supplier             string
	LocationID           *string // ubicación por defecto para clones nuevos
	LastRestocked        *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Available devuelve la cantidad disponible para nuevas reservas: en mano menos asignado.
func (i *CatalogItem) Available() decimal.Decimal {
	return i.Quantity.Sub(i.AllocatedQuantity)
}
