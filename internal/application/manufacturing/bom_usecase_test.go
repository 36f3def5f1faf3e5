package manufacturing_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/application/manufacturing"
	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/infrastructure/memory"
)

func newBOMUC(t *testing.T) (*manufacturing.BOMUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	item := &entity.CatalogItem{
		ID:        uuid.New().String(),
		SKU:       "SKU0100",
		Name:      "Mesa de acero",
		Type:      entity.ItemTypeFinishedGood,
		Status:    entity.StockStatusOutOfStock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, memory.NewCatalogItemRepository(store).Create(context.Background(), item))
	return manufacturing.NewBOMUseCase(memory.NewBOMRepository(store), memory.NewCatalogItemRepository(store)), store
}

func TestBOM_CrearCalculaCostos(t *testing.T) {
	ctx := context.Background()
	uc, _ := newBOMUC(t)

	out, err := uc.Create(ctx, dto.CreateBOMRequest{
		ProductSKU:  "SKU0100",
		ProductName: "Mesa de acero",
		Components: []dto.ComponentDTO{
			{SKU: "SKU0001", Name: "Perfil", Quantity: d("2"), Unit: "und", UnitCost: d("3.50")},
			{SKU: "SKU0002", Name: "Tornillo", Quantity: d("10"), Unit: "und", UnitCost: d("0.15")},
		},
		LaborCost:    d("5"),
		OverheadCost: d("2.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "1.0", out.Version)
	assert.Equal(t, entity.BOMStatusActive, out.Status)
	assert.NotEmpty(t, out.InventoryItemID, "la BOM queda ligada al ítem del catálogo")

	// material = 2×3.50 + 10×0.15 = 8.50; total = 8.50 + 5 + 2.50 = 16
	assert.True(t, out.TotalMaterialCost.Equal(d("8.50")))
	assert.True(t, out.TotalCost.Equal(d("16")))
	require.Len(t, out.Components, 2)
	assert.True(t, out.Components[0].TotalCost.Equal(d("7")))
	assert.True(t, out.Components[1].TotalCost.Equal(d("1.50")))
}

func TestBOM_CrearExigeProductoExistente(t *testing.T) {
	ctx := context.Background()
	uc, _ := newBOMUC(t)

	_, err := uc.Create(ctx, dto.CreateBOMRequest{ProductSKU: "SKU9999", ProductName: "Fantasma"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, dto.CreateBOMRequest{ProductSKU: "", ProductName: "Sin SKU"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBOM_ActualizarRecalculaSoloConCambiosDeCosto(t *testing.T) {
	ctx := context.Background()
	uc, _ := newBOMUC(t)

	created, err := uc.Create(ctx, dto.CreateBOMRequest{
		ProductSKU:  "SKU0100",
		ProductName: "Mesa de acero",
		Components: []dto.ComponentDTO{
			{SKU: "SKU0001", Name: "Perfil", Quantity: d("2"), UnitCost: d("3.50")},
		},
		LaborCost: d("5"),
	})
	require.NoError(t, err)
	assert.True(t, created.TotalCost.Equal(d("12")))

	// Parche sin efecto de costo: los totales no cambian.
	notas := "revisión de planos"
	out, err := uc.Update(ctx, created.ID, dto.UpdateBOMRequest{Notes: &notas})
	require.NoError(t, err)
	assert.True(t, out.TotalCost.Equal(d("12")))

	// Cambiar mano de obra dispara el recálculo.
	labor := d("8")
	out, err = uc.Update(ctx, created.ID, dto.UpdateBOMRequest{LaborCost: &labor})
	require.NoError(t, err)
	assert.True(t, out.TotalMaterialCost.Equal(d("7")))
	assert.True(t, out.TotalCost.Equal(d("15")))

	// Reemplazar componentes también.
	out, err = uc.Update(ctx, created.ID, dto.UpdateBOMRequest{
		Components: []dto.ComponentDTO{
			{SKU: "SKU0001", Name: "Perfil", Quantity: d("4"), UnitCost: d("3.50")},
		},
	})
	require.NoError(t, err)
	assert.True(t, out.TotalMaterialCost.Equal(d("14")))
	assert.True(t, out.TotalCost.Equal(d("22")))
}

func TestBOM_ObtenerPorProducto(t *testing.T) {
	ctx := context.Background()
	uc, _ := newBOMUC(t)

	created, err := uc.Create(ctx, dto.CreateBOMRequest{ProductSKU: "SKU0100", ProductName: "Mesa de acero"})
	require.NoError(t, err)

	out, err := uc.GetByProductSKU(ctx, "SKU0100")
	require.NoError(t, err)
	assert.Equal(t, created.ID, out.ID)

	_, err = uc.GetByProductSKU(ctx, "SKU0999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBOM_Eliminar(t *testing.T) {
	ctx := context.Background()
	uc, _ := newBOMUC(t)

	created, err := uc.Create(ctx, dto.CreateBOMRequest{ProductSKU: "SKU0100", ProductName: "Mesa de acero"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrNotFound)
}
