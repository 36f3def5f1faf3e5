package manufacturing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-api/internal/domain/entity"
)

// RollUpCosts recalcula los costos derivados de una BOM: el costo total de cada
// componente (cantidad × costo unitario), el costo total de materiales y el
// costo total (materiales + mano de obra + overhead). Muta los componentes
// recibidos y devuelve (totalMaterial, total).
func RollUpCosts(components []entity.Component, laborCost, overheadCost decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	totalMaterial := decimal.Zero
	for i := range components {
		components[i].TotalCost = components[i].Quantity.Mul(components[i].UnitCost)
		totalMaterial = totalMaterial.Add(components[i].TotalCost)
	}
	return totalMaterial, totalMaterial.Add(laborCost).Add(overheadCost)
}

// RequiredQuantity devuelve la cantidad de un componente necesaria para
// producir orderQty unidades del producto terminado.
func RequiredQuantity(perUnit, orderQty decimal.Decimal) decimal.Decimal {
	return perUnit.Mul(orderQty)
}
