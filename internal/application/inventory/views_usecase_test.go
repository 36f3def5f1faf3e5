package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/manufactura-api/internal/application/inventory"
	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/infrastructure/memory"
)

func newViewsUC(store *memory.Store) *inventory.ViewsUseCase {
	locations := memory.NewLocationRepository(store)
	catalog := memory.NewCatalogItemRepository(store)
	syncer := inventory.NewSyncUseCase(memory.NewTxRunner(store), locations, catalog, testLogger(), time.Minute)
	return inventory.NewViewsUseCase(locations, catalog, memory.NewLocationInventoryRepository(store), syncer, testLogger())
}

func TestPerLocation_CuraCoberturaPerezosamente(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	loc := seedLocation(t, store, "LOC002", "Obra norte")
	seedItem(t, store, "SKU0001", "Tornillo 3/8", dec("0.15"), dec("20"))
	seedItem(t, store, "SKU0002", "Lámina calibre 18", dec("30"), dec("2"))

	uc := newViewsUC(store)

	// La ubicación aún no tiene filas: la vista las clona en cero al vuelo.
	rows, err := uc.PerLocation(ctx, loc.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.True(t, r.Quantity.IsZero())
		assert.Equal(t, entity.StockStatusOutOfStock, r.Status)
		assert.Equal(t, loc.Code, r.LocationCode)
	}

	_, err = uc.PerLocation(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAggregate_SumaSobreUbicaciones(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	loc1 := seedLocation(t, store, "LOC001", "Bodega principal")
	loc2 := seedLocation(t, store, "LOC002", "Obra norte")
	seedItem(t, store, "SKU0001", "Tornillo 3/8", dec("2"), dec("0"))
	seedItem(t, store, "SKU0002", "Lámina calibre 18", dec("30"), dec("2"))

	txUC := inventory.NewStockTransactionUseCase(memory.NewTxRunner(store), testLogger())
	for _, in := range []inventory.TransactionInput{
		{Type: entity.MovementTypeReceipt, SKU: "SKU0001", Quantity: dec("10"), LocationID: loc1.ID},
		{Type: entity.MovementTypeReceipt, SKU: "SKU0001", Quantity: dec("5"), LocationID: loc2.ID},
	} {
		_, err := txUC.Register(ctx, in)
		require.NoError(t, err)
	}

	uc := newViewsUC(store)
	rows, err := uc.Aggregate(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	bySKU := map[string]int{}
	for i, r := range rows {
		bySKU[r.SKU] = i
	}
	conStock := rows[bySKU["SKU0001"]]
	assert.True(t, conStock.Quantity.Equal(dec("15")))
	assert.Len(t, conStock.Locations, 2)
	assert.True(t, conStock.TotalValue.Equal(dec("30")))

	// SKU sin filas en el libro aparece igual, en cero.
	sinStock := rows[bySKU["SKU0002"]]
	assert.True(t, sinStock.Quantity.IsZero())
	assert.Empty(t, sinStock.Locations)
}

func TestLowStock_UsaDisponibleNoEnMano(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	loc := seedLocation(t, store, "LOC001", "Bodega principal")
	seedItem(t, store, "SKU0001", "Tornillo 3/8", dec("0.15"), dec("8"))
	seedItem(t, store, "SKU0002", "Lámina calibre 18", dec("30"), dec("2"))

	txUC := inventory.NewStockTransactionUseCase(memory.NewTxRunner(store), testLogger())
	_, err := txUC.Register(ctx, inventory.TransactionInput{
		Type: entity.MovementTypeReceipt, SKU: "SKU0001", Quantity: dec("10"), LocationID: loc.ID,
	})
	require.NoError(t, err)
	_, err = txUC.Register(ctx, inventory.TransactionInput{
		Type: entity.MovementTypeReceipt, SKU: "SKU0002", Quantity: dec("50"), LocationID: loc.ID,
	})
	require.NoError(t, err)

	// 10 en mano, 4 reservados: disponible 6 ≤ punto de reorden 8.
	require.NoError(t, memory.NewCatalogItemRepository(store).ApplyAllocatedDelta(ctx, "SKU0001", dec("4")))

	uc := newViewsUC(store)
	rows, err := uc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "SKU0001", rows[0].SKU)
	assert.True(t, rows[0].Available.Equal(dec("6")))
	assert.True(t, rows[0].OnHand.Equal(dec("10")))
	assert.Equal(t, entity.StockStatusLowStock, rows[0].Status)
}
