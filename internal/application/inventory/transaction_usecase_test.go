package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/manufactura-api/internal/application/inventory"
	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
	"github.com/jhoicas/manufactura-api/internal/infrastructure/memory"
	"github.com/jhoicas/manufactura-api/pkg/logger"
)

func moveFilterAll() repository.MovementFilter { return repository.MovementFilter{} }

func moveFilterType(movType string) repository.MovementFilter {
	return repository.MovementFilter{Type: movType}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// seedLocation inserta una ubicación directamente en el almacén en memoria.
func seedLocation(t *testing.T, store *memory.Store, code, name string) *entity.StockLocation {
	t.Helper()
	now := time.Now()
	loc := &entity.StockLocation{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      name,
		Type:      entity.LocationTypeWarehouse,
		Status:    entity.LocationStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, memory.NewLocationRepository(store).Create(context.Background(), loc))
	return loc
}

// seedItem inserta un ítem de catálogo con el espejo agregado en cero.
func seedItem(t *testing.T, store *memory.Store, sku, name string, unitCost, reorderPoint decimal.Decimal) *entity.CatalogItem {
	t.Helper()
	now := time.Now()
	item := &entity.CatalogItem{
		ID:           uuid.New().String(),
		SKU:          sku,
		Name:         name,
		Type:         entity.ItemTypeRawMaterial,
		Unit:         "und",
		UnitCost:     unitCost,
		ReorderPoint: reorderPoint,
		Status:       entity.StockStatusOutOfStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, memory.NewCatalogItemRepository(store).Create(context.Background(), item))
	return item
}

func TestRegister_ReciboActualizaLibroYEspejo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	loc := seedLocation(t, store, "LOC001", "Bodega principal")
	seedItem(t, store, "SKU0001", "Tornillo 3/8", dec("2"), dec("5"))

	uc := inventory.NewStockTransactionUseCase(memory.NewTxRunner(store), testLogger())

	cost := dec("4")
	mov, err := uc.Register(ctx, inventory.TransactionInput{
		Type:        entity.MovementTypeReceipt,
		SKU:         "SKU0001",
		Quantity:    dec("10"),
		LocationID:  loc.ID,
		UnitCost:    &cost,
		PerformedBy: "bodeguero-1",
	})
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.Equal(t, "MOV0001", mov.MovementID)
	assert.True(t, mov.Quantity.Equal(dec("10")), "el recibo registra cantidad positiva")
	assert.Equal(t, loc.Code, mov.ToLocation)

	// Fila del libro creada con la cantidad y estado derivado.
	row, err := memory.NewLocationInventoryRepository(store).Get(ctx, loc.ID, "SKU0001")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.True(t, row.Quantity.Equal(dec("10")))
	assert.Equal(t, entity.StockStatusInStock, row.Status)
	assert.NotNil(t, row.LastRestocked)

	// Espejo del catálogo recalculado desde el libro; el ítem partía en cero,
	// así que el costo promedio queda en el costo del recibo.
	item, err := memory.NewCatalogItemRepository(store).GetBySKU(ctx, "SKU0001")
	require.NoError(t, err)
	assert.True(t, item.Quantity.Equal(dec("10")))
	assert.True(t, item.UnitCost.Equal(dec("4")))
	assert.True(t, item.TotalValue.Equal(dec("40")))
	assert.Equal(t, entity.StockStatusInStock, item.Status)
}

func TestRegister_ReciboPromediaCosto(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	loc := seedLocation(t, store, "LOC001", "Bodega principal")
	seedItem(t, store, "SKU0001", "Tornillo 3/8", dec("2"), dec("0"))

	uc := inventory.NewStockTransactionUseCase(memory.NewTxRunner(store), testLogger())

	first := dec("2")
	_, err := uc.Register(ctx, inventory.TransactionInput{
		Type: entity.MovementTypeReceipt, SKU: "SKU0001",
		Quantity: dec("10"), LocationID: loc.ID, UnitCost: &first,
	})
	require.NoError(t, err)

	second := dec("4")
	_, err = uc.Register(ctx, inventory.TransactionInput{
		Type: entity.MovementTypeReceipt, SKU: "SKU0001",
		Quantity: dec("10"), LocationID: loc.ID, UnitCost: &second,
	})
	require.NoError(t, err)

	item, err := memory.NewCatalogItemRepository(store).GetBySKU(ctx, "SKU0001")
	require.NoError(t, err)
	// (10×2 + 10×4) / 20 = 3
	assert.True(t, item.UnitCost.Equal(dec("3")), "costo promedio ponderado, obtuvo %s", item.UnitCost)
	assert.True(t, item.Quantity.Equal(dec("20")))
}

func TestRegister_VentaSinStockAbortaTodo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	loc := seedLocation(t, store, "LOC001", "Bodega principal")
	seedItem(t, store, "SKU0001", "Tornillo 3/8", dec("2"), dec("5"))

	uc := inventory.NewStockTransactionUseCase(memory.NewTxRunner(store), testLogger())

	_, err := uc.Register(ctx, inventory.TransactionInput{
		Type: entity.MovementTypeReceipt, SKU: "SKU0001",
		Quantity: dec("3"), LocationID: loc.ID,
	})
	require.NoError(t, err)

	_, err = uc.Register(ctx, inventory.TransactionInput{
		Type: entity.MovementTypeSale, SKU: "SKU0001",
		Quantity: dec("5"), LocationID: loc.ID,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insErr)
	assert.True(t, insErr.Available.Equal(dec("3")))
	assert.True(t, insErr.Required.Equal(dec("5")))
	assert.True(t, insErr.Shortfall().Equal(dec("2")))

	// La transacción entera se revirtió: libro intacto y sin movimiento nuevo.
	row, err := memory.NewLocationInventoryRepository(store).Get(ctx, loc.ID, "SKU0001")
	require.NoError(t, err)
	assert.True(t, row.Quantity.Equal(dec("3")))

	movs, err := memory.NewStockMovementRepository(store).List(ctx, moveFilterAll())
	require.NoError(t, err)
	assert.Len(t, movs, 1, "solo el recibo debe quedar registrado")
}

func TestRegister_AjustePuedeDejarNegativo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	loc := seedLocation(t, store, "LOC001", "Bodega principal")
	seedItem(t, store, "SKU0001", "Tornillo 3/8", dec("2"), dec("5"))

	uc := inventory.NewStockTransactionUseCase(memory.NewTxRunner(store), testLogger())

	mov, err := uc.Register(ctx, inventory.TransactionInput{
		Type: entity.MovementTypeAdjustment, SKU: "SKU0001",
		Quantity: dec("-4"), LocationID: loc.ID,
		Notes: "conteo físico",
	})
	require.NoError(t, err)
	assert.True(t, mov.Quantity.Equal(dec("-4")), "el ajuste conserva el signo del llamador")

	row, err := memory.NewLocationInventoryRepository(store).Get(ctx, loc.ID, "SKU0001")
	require.NoError(t, err)
	assert.True(t, row.Quantity.Equal(dec("-4")))
	assert.Equal(t, entity.StockStatusOutOfStock, row.Status)

	item, err := memory.NewCatalogItemRepository(store).GetBySKU(ctx, "SKU0001")
	require.NoError(t, err)
	assert.True(t, item.Quantity.Equal(dec("-4")), "el espejo refleja el libro aunque sea negativo")
}

func TestRegister_TrasladoConservaElAgregado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	origen := seedLocation(t, store, "LOC001", "Bodega principal")
	destino := seedLocation(t, store, "LOC002", "Obra norte")
	seedItem(t, store, "SKU0001", "Tornillo 3/8", dec("2"), dec("0"))

	uc := inventory.NewStockTransactionUseCase(memory.NewTxRunner(store), testLogger())

	_, err := uc.Register(ctx, inventory.TransactionInput{
		Type: entity.MovementTypeReceipt, SKU: "SKU0001",
		Quantity: dec("10"), LocationID: origen.ID,
	})
	require.NoError(t, err)

	_, err = uc.Register(ctx, inventory.TransactionInput{
		Type: entity.MovementTypeTransfer, SKU: "SKU0001",
		Quantity:       dec("4"),
		FromLocationID: origen.ID,
		ToLocationID:   destino.ID,
	})
	require.NoError(t, err)

	ledger := memory.NewLocationInventoryRepository(store)
	enOrigen, err := ledger.Get(ctx, origen.ID, "SKU0001")
	require.NoError(t, err)
	enDestino, err := ledger.Get(ctx, destino.ID, "SKU0001")
	require.NoError(t, err)
	assert.True(t, enOrigen.Quantity.Equal(dec("6")))
	assert.True(t, enDestino.Quantity.Equal(dec("4")))

	// Σ por ubicación == agregado del catálogo: un traslado no cambia el total.
	item, err := memory.NewCatalogItemRepository(store).GetBySKU(ctx, "SKU0001")
	require.NoError(t, err)
	assert.True(t, item.Quantity.Equal(dec("10")))

	// Dos patas con el mismo TransactionID, saliente negativa y entrante positiva.
	movs, err := memory.NewStockMovementRepository(store).List(ctx, moveFilterType(entity.MovementTypeTransfer))
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, movs[0].TransactionID, movs[1].TransactionID)
	sum := movs[0].Quantity.Add(movs[1].Quantity)
	assert.True(t, sum.IsZero(), "las patas del traslado se cancelan entre sí")
}

func TestRegister_TrasladoSinStockNoDejaMitades(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	origen := seedLocation(t, store, "LOC001", "Bodega principal")
	destino := seedLocation(t, store, "LOC002", "Obra norte")
	seedItem(t, store, "SKU0001", "Tornillo 3/8", dec("2"), dec("0"))

	uc := inventory.NewStockTransactionUseCase(memory.NewTxRunner(store), testLogger())

	_, err := uc.Register(ctx, inventory.TransactionInput{
		Type: entity.MovementTypeTransfer, SKU: "SKU0001",
		Quantity:       dec("4"),
		FromLocationID: origen.ID,
		ToLocationID:   destino.ID,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	ledger := memory.NewLocationInventoryRepository(store)
	enDestino, err := ledger.Get(ctx, destino.ID, "SKU0001")
	require.NoError(t, err)
	assert.Nil(t, enDestino, "el rollback no debe dejar la pata entrante")

	movs, err := memory.NewStockMovementRepository(store).List(ctx, moveFilterAll())
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestRegister_UbicacionVaciaCreaBodegaPrincipal(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedItem(t, store, "SKU0001", "Tornillo 3/8", dec("2"), dec("0"))

	uc := inventory.NewStockTransactionUseCase(memory.NewTxRunner(store), testLogger())

	mov, err := uc.Register(ctx, inventory.TransactionInput{
		Type: entity.MovementTypeReceipt, SKU: "SKU0001",
		Quantity: dec("1"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MainLocationCode, mov.ToLocation)

	loc, err := memory.NewLocationRepository(store).GetByCode(ctx, entity.MainLocationCode)
	require.NoError(t, err)
	require.NotNil(t, loc, "LOC001 se crea perezosamente")
}

func TestRegister_EntradasInvalidas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := inventory.NewStockTransactionUseCase(memory.NewTxRunner(store), testLogger())

	casos := []inventory.TransactionInput{
		{Type: "teletransporte", SKU: "SKU0001", Quantity: dec("1")},
		{Type: entity.MovementTypeReceipt, SKU: "", Quantity: dec("1")},
		{Type: entity.MovementTypeReceipt, SKU: "SKU0001", Quantity: dec("0")},
		{Type: entity.MovementTypeSale, SKU: "SKU0001", Quantity: dec("-2")},
		{Type: entity.MovementTypeTransfer, SKU: "SKU0001", Quantity: dec("1"), FromLocationID: "a", ToLocationID: "a"},
		{Type: entity.MovementTypeTransfer, SKU: "SKU0001", Quantity: dec("1"), FromLocationID: "", ToLocationID: "b"},
	}
	for _, in := range casos {
		_, err := uc.Register(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo=%s qty=%s", in.Type, in.Quantity)
	}

	// SKU bien formado pero inexistente en el catálogo.
	_, err := uc.Register(ctx, inventory.TransactionInput{
		Type: entity.MovementTypeReceipt, SKU: "SKU9999", Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
