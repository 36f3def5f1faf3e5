package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-api/internal/domain/entity"
)

// DeriveStatus calcula el estado de stock a partir de cantidad y punto de reorden:
// out_of_stock si cantidad ≤ 0; low_stock si 0 < cantidad ≤ punto de reorden;
// in_stock en otro caso.
func DeriveStatus(quantity, reorderPoint decimal.Decimal) string {
	switch {
	case quantity.LessThanOrEqual(decimal.Zero):
		return entity.StockStatusOutOfStock
	case quantity.LessThanOrEqual(reorderPoint):
		return entity.StockStatusLowStock
	default:
		return entity.StockStatusInStock
	}
}

// NormalizeMovementQuantity aplica la convención de signos del registro de
// movimientos: receipt y return siempre positivos; consumption, sale y
// production siempre negativos; adjustment conserva el signo del llamador.
// Para transfer el signo depende de la pata (negativo en origen, positivo en
// destino), así que la cantidad se devuelve en valor absoluto y el llamador
// niega la pata de salida.
func NormalizeMovementQuantity(movementType string, quantity decimal.Decimal) decimal.Decimal {
	switch movementType {
	case entity.MovementTypeReceipt, entity.MovementTypeReturn, entity.MovementTypeTransfer:
		return quantity.Abs()
	case entity.MovementTypeConsumption, entity.MovementTypeSale, entity.MovementTypeProduction:
		return quantity.Abs().Neg()
	default: // adjustment
		return quantity
	}
}

// AverageCost implementa el costo promedio ponderado al recibir stock:
// ((cantActual × costoActual) + (cantEntrada × costoEntrada)) / (cantActual + cantEntrada).
func AverageCost(currentQty, currentCost, inQty, inCost decimal.Decimal) decimal.Decimal {
	sum := currentQty.Add(inQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := currentQty.Mul(currentCost).Add(inQty.Mul(inCost))
	return num.Div(sum)
}
