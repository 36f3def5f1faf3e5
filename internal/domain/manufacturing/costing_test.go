package manufacturing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/manufacturing"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRollUpCosts(t *testing.T) {
	components := []entity.Component{
		{SKU: "SKU0001", Name: "Perfil", Quantity: d("2"), UnitCost: d("3.50")},
		{SKU: "SKU0002", Name: "Tornillo", Quantity: d("10"), UnitCost: d("0.15")},
	}

	totalMaterial, total := manufacturing.RollUpCosts(components, d("5"), d("2.50"))

	// TotalCost por componente = cantidad × costo unitario
	assert.True(t, d("7").Equal(components[0].TotalCost))
	assert.True(t, d("1.5").Equal(components[1].TotalCost))

	// totalMaterial = Σ TotalCost; total = materiales + mano de obra + overhead
	assert.True(t, d("8.5").Equal(totalMaterial), "esperaba 8.5, obtuve %s", totalMaterial)
	assert.True(t, d("16").Equal(total), "esperaba 16, obtuve %s", total)
}

func TestRollUpCosts_SinComponentes(t *testing.T) {
	totalMaterial, total := manufacturing.RollUpCosts(nil, d("12"), d("3"))
	assert.True(t, totalMaterial.IsZero())
	assert.True(t, d("15").Equal(total))
}

func TestRollUpCosts_IgnoraTotalesDelLlamador(t *testing.T) {
	// Un TotalCost enviado por el cliente se sobreescribe siempre.
	components := []entity.Component{
		{SKU: "SKU0001", Quantity: d("4"), UnitCost: d("2"), TotalCost: d("999")},
	}
	totalMaterial, _ := manufacturing.RollUpCosts(components, decimal.Zero, decimal.Zero)
	assert.True(t, d("8").Equal(components[0].TotalCost))
	assert.True(t, d("8").Equal(totalMaterial))
}

func TestRequiredQuantity(t *testing.T) {
	assert.True(t, d("6").Equal(manufacturing.RequiredQuantity(d("2"), d("3"))))
	assert.True(t, d("1.25").Equal(manufacturing.RequiredQuantity(d("0.5"), d("2.5"))))
}
