package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una lista de materiales.
const (
	BOMStatusActive   = "active"
	BOMStatusDraft    = "draft"
	BOMStatusObsolete = "obsolete"
)

// Component es una línea tipada de la lista de materiales: cantidad requerida
// por unidad de producto terminado. TotalCost = Quantity × UnitCost.
type Component struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	UnitCost  decimal.Decimal `json:"unitCost"`
	TotalCost decimal.Decimal `json:"totalCost"`
}

// BOM es la lista de materiales versionada de un producto terminado.
// InventoryItemID referencia el ítem del catálogo cuyo SKU es ProductSKU;
// TotalMaterialCost y TotalCost se recalculan en cada cambio de componentes,
// mano de obra u overhead.
type BOM struct {
	ID                string
	ProductSKU        string
	ProductName       string
	InventoryItemID   string
	Version           string
	Status            string
	EffectiveDate     time.Time
	Components        []Component
	LaborCost         decimal.Decimal
	OverheadCost      decimal.Decimal
	TotalMaterialCost decimal.Decimal
	TotalCost         decimal.Decimal
	EstimatedTime     int // minutos por unidad
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
