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
	"github.com/jhoicas/manufactura-api/internal/infrastructure/pdf"
)

func TestPurge_SinConfirmacionNoBorraNada(t *testing.T) {
	ctx := context.Background()
	env := newOrderEnv(t, "10")
	uc := manufacturing.NewPurgeUseCase(memory.NewManufacturingTxRunner(env.store), testLogger())

	_, err := uc.PurgeAll(ctx, dto.PurgeRequest{Confirm: false})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfirmationNeeded)

	// Todo sigue en su sitio.
	item, err := memory.NewCatalogItemRepository(env.store).GetBySKU(ctx, "SKU0001")
	require.NoError(t, err)
	assert.NotNil(t, item)
	bom, err := memory.NewBOMRepository(env.store).GetByID(ctx, env.bom.ID)
	require.NoError(t, err)
	assert.NotNil(t, bom)
}

func TestPurge_ConConfirmacionReportaConteos(t *testing.T) {
	ctx := context.Background()
	env := newOrderEnv(t, "10")

	orderUC := manufacturing.NewOrderUseCase(
		memory.NewManufacturingTxRunner(env.store),
		memory.NewProductionOrderRepository(env.store),
		memory.NewBOMRepository(env.store),
		pdf.NewWorkOrderPDFRenderer(),
		testLogger(),
		30*time.Second,
	)
	_, err := orderUC.Create(ctx, dto.CreateOrderRequest{BOMID: env.bom.ID, Quantity: d("1")}, "admin-1")
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, memory.NewSupplierRepository(env.store).Create(ctx, &entity.Supplier{
		ID: uuid.New().String(), Name: "Aceros del Norte", CreatedAt: now, UpdatedAt: now,
	}))

	uc := manufacturing.NewPurgeUseCase(memory.NewManufacturingTxRunner(env.store), testLogger())
	res, err := uc.PurgeAll(ctx, dto.PurgeRequest{Confirm: true})
	require.NoError(t, err)

	// Fila del libro del recibo inicial; movimientos: recibo + reserva de la
	// orden; una orden, una BOM, dos ítems, una ubicación, un proveedor.
	assert.Equal(t, int64(1), res.LedgerRows)
	assert.Equal(t, int64(2), res.Movements)
	assert.Equal(t, int64(1), res.Orders)
	assert.Equal(t, int64(1), res.BOMs)
	assert.Equal(t, int64(2), res.CatalogItems)
	assert.Equal(t, int64(1), res.Locations)
	assert.Equal(t, int64(1), res.Suppliers)

	item, err := memory.NewCatalogItemRepository(env.store).GetBySKU(ctx, "SKU0001")
	require.NoError(t, err)
	assert.Nil(t, item)
	locs, err := memory.NewLocationRepository(env.store).List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, locs)
}
