package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/application/usecase"
	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
	"github.com/jhoicas/manufactura-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func movementFilterAll() repository.MovementFilter { return repository.MovementFilter{} }

func newCatalogUC(store *memory.Store) *usecase.CatalogUseCase {
	return usecase.NewCatalogUseCase(
		memory.NewCatalogItemRepository(store),
		memory.NewManufacturingTxRunner(store),
	)
}

func TestCatalog_CrearConStockInicial(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := newCatalogUC(store)

	out, err := uc.Create(ctx, dto.CreateItemRequest{
		Name:         "Tornillo 3/8",
		Quantity:     d("12"),
		UnitCost:     d("0.15"),
		ReorderPoint: d("20"),
	}, "bodeguero-1")
	require.NoError(t, err)
	assert.Equal(t, "SKU0001", out.SKU, "SKU autogenerado desde la secuencia")
	assert.True(t, out.Quantity.Equal(d("12")))
	assert.Equal(t, entity.StockStatusLowStock, out.Status, "12 ≤ punto de reorden 20")

	// La cantidad inicial nace como fila del libro en la bodega principal,
	// con su movimiento de ajuste.
	loc, err := memory.NewLocationRepository(store).GetByCode(ctx, entity.MainLocationCode)
	require.NoError(t, err)
	require.NotNil(t, loc)
	row, err := memory.NewLocationInventoryRepository(store).Get(ctx, loc.ID, out.SKU)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.True(t, row.Quantity.Equal(d("12")))

	movs, err := memory.NewStockMovementRepository(store).List(ctx, movementFilterAll())
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeAdjustment, movs[0].Type)
	assert.Equal(t, "stock inicial", movs[0].Notes)
	assert.Equal(t, "bodeguero-1", movs[0].PerformedBy)
}

func TestCatalog_CrearRechazaSKUDuplicado(t *testing.T) {
	ctx := context.Background()
	uc := newCatalogUC(memory.NewStore())

	_, err := uc.Create(ctx, dto.CreateItemRequest{SKU: "SKU0001", Name: "Tornillo"}, "admin-1")
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateItemRequest{SKU: "SKU0001", Name: "Otro tornillo"}, "admin-1")
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateItemRequest{Name: ""}, "admin-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCatalog_EliminarBloqueadoPorBOM(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := newCatalogUC(store)

	out, err := uc.Create(ctx, dto.CreateItemRequest{
		Name: "Mesa de acero", Type: entity.ItemTypeFinishedGood,
	}, "admin-1")
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, memory.NewBOMRepository(store).Create(ctx, &entity.BOM{
		ID:              uuid.New().String(),
		ProductSKU:      out.SKU,
		ProductName:     out.Name,
		InventoryItemID: out.ID,
		Version:         "1.0",
		Status:          entity.BOMStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}))

	err = uc.Delete(ctx, out.ID)
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)

	// Sigue existiendo.
	got, err := uc.Get(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.SKU, got.SKU)
}

func TestCatalog_EliminarArrastraFilasDelLibro(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := newCatalogUC(store)

	out, err := uc.Create(ctx, dto.CreateItemRequest{
		Name: "Tornillo 3/8", Quantity: d("5"),
	}, "admin-1")
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, out.ID))

	loc, err := memory.NewLocationRepository(store).GetByCode(ctx, entity.MainLocationCode)
	require.NoError(t, err)
	row, err := memory.NewLocationInventoryRepository(store).Get(ctx, loc.ID, out.SKU)
	require.NoError(t, err)
	assert.Nil(t, row, "las filas del libro se eliminan con el ítem")

	_, err = uc.Get(ctx, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalog_ActualizarNoTocaElAgregado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := newCatalogUC(store)

	out, err := uc.Create(ctx, dto.CreateItemRequest{
		Name: "Tornillo 3/8", Quantity: d("5"), UnitCost: d("0.15"),
	}, "admin-1")
	require.NoError(t, err)

	nombre := "Tornillo hexagonal 3/8"
	updated, err := uc.Update(ctx, out.ID, dto.UpdateItemRequest{Name: &nombre})
	require.NoError(t, err)
	assert.Equal(t, nombre, updated.Name)
	assert.True(t, updated.Quantity.Equal(d("5")), "el espejo agregado solo cambia vía transacciones de stock")
}
