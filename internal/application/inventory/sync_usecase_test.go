package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/manufactura-api/internal/application/inventory"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/infrastructure/memory"
)

func newSyncUC(store *memory.Store, interval time.Duration) *inventory.SyncUseCase {
	return inventory.NewSyncUseCase(
		memory.NewTxRunner(store),
		memory.NewLocationRepository(store),
		memory.NewCatalogItemRepository(store),
		testLogger(),
		interval,
	)
}

func TestSync_ClonaCadaSKUEnCadaUbicacion(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	loc1 := seedLocation(t, store, "LOC001", "Bodega principal")
	loc2 := seedLocation(t, store, "LOC002", "Obra norte")
	seedItem(t, store, "SKU0001", "Tornillo 3/8", dec("2"), dec("5"))
	seedItem(t, store, "SKU0002", "Lámina calibre 18", dec("30"), dec("2"))

	uc := newSyncUC(store, time.Minute)

	res, err := uc.Sync(ctx, false)
	require.NoError(t, err)
	assert.True(t, res.Ran)
	assert.Equal(t, 2, res.LocationsScanned)
	assert.Equal(t, 4, res.RowsCreated)
	assert.Empty(t, res.SkippedLocations)

	// Filas en cero, con costo y punto de reorden heredados del catálogo.
	ledger := memory.NewLocationInventoryRepository(store)
	for _, loc := range []*entity.StockLocation{loc1, loc2} {
		for _, sku := range []string{"SKU0001", "SKU0002"} {
			row, err := ledger.Get(ctx, loc.ID, sku)
			require.NoError(t, err)
			require.NotNil(t, row, "falta %s en %s", sku, loc.Code)
			assert.True(t, row.Quantity.IsZero())
			assert.Equal(t, entity.StockStatusOutOfStock, row.Status)
		}
	}
	row, err := ledger.Get(ctx, loc1.ID, "SKU0002")
	require.NoError(t, err)
	assert.True(t, row.UnitCost.Equal(dec("30")))
	assert.True(t, row.ReorderPoint.Equal(dec("2")))
}

func TestSync_NoDuplicaFilasExistentes(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	loc := seedLocation(t, store, "LOC001", "Bodega principal")
	seedItem(t, store, "SKU0001", "Tornillo 3/8", dec("2"), dec("5"))

	// Una fila ya existe con stock; la corrida no debe tocarla.
	txUC := inventory.NewStockTransactionUseCase(memory.NewTxRunner(store), testLogger())
	_, err := txUC.Register(ctx, inventory.TransactionInput{
		Type: entity.MovementTypeReceipt, SKU: "SKU0001",
		Quantity: dec("7"), LocationID: loc.ID,
	})
	require.NoError(t, err)

	uc := newSyncUC(store, time.Minute)
	res, err := uc.Sync(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 0, res.RowsCreated)

	row, err := memory.NewLocationInventoryRepository(store).Get(ctx, loc.ID, "SKU0001")
	require.NoError(t, err)
	assert.True(t, row.Quantity.Equal(dec("7")), "la corrida no pisa cantidades existentes")
}

func TestSync_RespetaElIntervaloSalvoForzado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedLocation(t, store, "LOC001", "Bodega principal")
	seedItem(t, store, "SKU0001", "Tornillo 3/8", dec("2"), dec("5"))

	uc := newSyncUC(store, time.Hour)

	res, err := uc.Sync(ctx, false)
	require.NoError(t, err)
	assert.True(t, res.Ran)

	// Segundo disparo dentro del intervalo: se salta sin error.
	seedItem(t, store, "SKU0002", "Lámina calibre 18", decimal.NewFromInt(30), decimal.Zero)
	res, err = uc.Sync(ctx, false)
	require.NoError(t, err)
	assert.False(t, res.Ran)
	assert.Equal(t, 0, res.RowsCreated)

	// force=true ignora el intervalo y recoge el SKU nuevo.
	res, err = uc.Sync(ctx, true)
	require.NoError(t, err)
	assert.True(t, res.Ran)
	assert.Equal(t, 1, res.RowsCreated)
}

func TestEnsureLocation_CubrePerezosamenteUnaUbicacion(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedItem(t, store, "SKU0001", "Tornillo 3/8", dec("2"), dec("5"))
	seedItem(t, store, "SKU0002", "Lámina calibre 18", dec("30"), dec("2"))
	loc := seedLocation(t, store, "LOC002", "Obra norte")

	uc := newSyncUC(store, time.Minute)

	created, err := uc.EnsureLocation(ctx, loc.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	// Idempotente: la segunda pasada no crea nada.
	created, err = uc.EnsureLocation(ctx, loc.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	n, err := memory.NewLocationInventoryRepository(store).CountByLocation(ctx, loc.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSync_CatalogoVacioNoFalla(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedLocation(t, store, "LOC001", "Bodega principal")

	uc := newSyncUC(store, time.Minute)
	res, err := uc.Sync(ctx, true)
	require.NoError(t, err)
	assert.True(t, res.Ran)
	assert.Equal(t, 1, res.LocationsScanned)
	assert.Equal(t, 0, res.RowsCreated)
}
