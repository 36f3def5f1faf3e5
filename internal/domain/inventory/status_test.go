package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name         string
		quantity     string
		reorderPoint string
		want         string
	}{
		{"cantidad negativa es out_of_stock", "-3", "5", entity.StockStatusOutOfStock},
		{"cantidad cero es out_of_stock", "0", "5", entity.StockStatusOutOfStock},
		{"cero con punto de reorden cero sigue siendo out_of_stock", "0", "0", entity.StockStatusOutOfStock},
		{"igual al punto de reorden es low_stock", "5", "5", entity.StockStatusLowStock},
		{"bajo el punto de reorden es low_stock", "2", "5", entity.StockStatusLowStock},
		{"sobre el punto de reorden es in_stock", "6", "5", entity.StockStatusInStock},
		{"positivo con punto de reorden cero es in_stock", "0.001", "0", entity.StockStatusInStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.DeriveStatus(d(tc.quantity), d(tc.reorderPoint))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeMovementQuantity(t *testing.T) {
	// Las entradas siempre suman, sin importar el signo que envíe el llamador.
	assert.True(t, d("5").Equal(inventory.NormalizeMovementQuantity(entity.MovementTypeReceipt, d("-5"))))
	assert.True(t, d("5").Equal(inventory.NormalizeMovementQuantity(entity.MovementTypeReturn, d("5"))))

	// Las salidas siempre restan.
	assert.True(t, d("-4").Equal(inventory.NormalizeMovementQuantity(entity.MovementTypeSale, d("4"))))
	assert.True(t, d("-4").Equal(inventory.NormalizeMovementQuantity(entity.MovementTypeConsumption, d("-4"))))
	assert.True(t, d("-4").Equal(inventory.NormalizeMovementQuantity(entity.MovementTypeProduction, d("4"))))

	// El ajuste conserva el signo del llamador.
	assert.True(t, d("-7").Equal(inventory.NormalizeMovementQuantity(entity.MovementTypeAdjustment, d("-7"))))
	assert.True(t, d("7").Equal(inventory.NormalizeMovementQuantity(entity.MovementTypeAdjustment, d("7"))))

	// Transfer se normaliza a valor absoluto; el llamador niega la pata de salida.
	assert.True(t, d("3").Equal(inventory.NormalizeMovementQuantity(entity.MovementTypeTransfer, d("-3"))))
}

func TestAverageCost(t *testing.T) {
	// 10 unidades a $2 más 10 unidades a $4 = promedio $3.
	got := inventory.AverageCost(d("10"), d("2"), d("10"), d("4"))
	assert.True(t, d("3").Equal(got), "esperaba 3, obtuve %s", got)

	// Sin stock previo el costo es el de la entrada.
	got = inventory.AverageCost(d("0"), d("0"), d("5"), d("7.5"))
	assert.True(t, d("7.5").Equal(got))

	// Suma no positiva (stock negativo por ajustes) no divide por cero.
	got = inventory.AverageCost(d("-5"), d("2"), d("5"), d("4"))
	assert.True(t, got.IsZero())
}
