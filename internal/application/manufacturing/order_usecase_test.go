package manufacturing_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/application/inventory"
	"github.com/jhoicas/manufactura-api/internal/application/manufacturing"
	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
	"github.com/jhoicas/manufactura-api/internal/infrastructure/memory"
	"github.com/jhoicas/manufactura-api/internal/infrastructure/pdf"
	"github.com/jhoicas/manufactura-api/pkg/logger"
)

func movementFilterSKU(sku, movType string) repository.MovementFilter {
	return repository.MovementFilter{SKU: sku, Type: movType}
}

func orderFilterAll() repository.OrderFilter { return repository.OrderFilter{} }

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

// orderEnv fija el escenario compartido: bodega principal, una materia prima
// con stock, un producto terminado y una BOM de 2 unidades de materia prima
// por unidad de producto.
type orderEnv struct {
	store *memory.Store
	uc    *manufacturing.OrderUseCase
	bom   *entity.BOM
	loc   *entity.StockLocation
}

func newOrderEnv(t *testing.T, rawStock string) *orderEnv {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Now()

	loc := &entity.StockLocation{
		ID:        uuid.New().String(),
		Code:      entity.MainLocationCode,
		Name:      "Bodega principal",
		Type:      entity.LocationTypeWarehouse,
		Status:    entity.LocationStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, memory.NewLocationRepository(store).Create(ctx, loc))

	catalog := memory.NewCatalogItemRepository(store)
	raw := &entity.CatalogItem{
		ID:        uuid.New().String(),
		SKU:       "SKU0001",
		Name:      "Perfil de acero",
		Type:      entity.ItemTypeRawMaterial,
		Unit:      "und",
		UnitCost:  d("3.50"),
		Status:    entity.StockStatusOutOfStock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, catalog.Create(ctx, raw))
	finished := &entity.CatalogItem{
		ID:        uuid.New().String(),
		SKU:       "SKU0100",
		Name:      "Mesa de acero",
		Type:      entity.ItemTypeFinishedGood,
		Status:    entity.StockStatusOutOfStock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, catalog.Create(ctx, finished))

	// Stock inicial de la materia prima vía recibo real, para que libro y
	// espejo queden consistentes desde el arranque.
	if rawStock != "" {
		txUC := inventory.NewStockTransactionUseCase(memory.NewTxRunner(store), testLogger())
		_, err := txUC.Register(ctx, inventory.TransactionInput{
			Type: entity.MovementTypeReceipt, SKU: "SKU0001",
			Quantity: d(rawStock), LocationID: loc.ID,
		})
		require.NoError(t, err)
	}

	bom := &entity.BOM{
		ID:              uuid.New().String(),
		ProductSKU:      "SKU0100",
		ProductName:     "Mesa de acero",
		InventoryItemID: finished.ID,
		Version:         "1.0",
		Status:          entity.BOMStatusActive,
		EffectiveDate:   now,
		Components: []entity.Component{
			{SKU: "SKU0001", Name: "Perfil de acero", Quantity: d("2"), Unit: "und", UnitCost: d("3.50"), TotalCost: d("7")},
		},
		LaborCost:         d("5"),
		OverheadCost:      d("2.50"),
		TotalMaterialCost: d("7"),
		TotalCost:         d("14.50"),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	require.NoError(t, memory.NewBOMRepository(store).Create(ctx, bom))

	uc := manufacturing.NewOrderUseCase(
		memory.NewManufacturingTxRunner(store),
		memory.NewProductionOrderRepository(store),
		memory.NewBOMRepository(store),
		pdf.NewWorkOrderPDFRenderer(),
		testLogger(),
		30*time.Second,
	)
	return &orderEnv{store: store, uc: uc, bom: bom, loc: loc}
}

func (e *orderEnv) item(t *testing.T, sku string) *entity.CatalogItem {
	t.Helper()
	item, err := memory.NewCatalogItemRepository(e.store).GetBySKU(context.Background(), sku)
	require.NoError(t, err)
	require.NotNil(t, item)
	return item
}

func (e *orderEnv) transition(t *testing.T, id, expected, to string) *dto.OrderResponse {
	t.Helper()
	out, err := e.uc.Transition(context.Background(), id, dto.TransitionOrderRequest{
		Status: to, ExpectedStatus: expected,
	}, "produccion-1")
	require.NoError(t, err)
	return out
}

func TestOrder_CicloCompleto(t *testing.T) {
	ctx := context.Background()
	env := newOrderEnv(t, "10")

	order, err := env.uc.Create(ctx, dto.CreateOrderRequest{
		BOMID: env.bom.ID, Quantity: d("3"),
	}, "produccion-1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusRequested, order.Status)
	assert.Equal(t, "WO-0001", order.WorkOrderNumber)
	assert.True(t, order.TotalCost.Equal(d("43.50")), "3 × costo total de la BOM")

	// Crear reserva los componentes: 2 por unidad × 3 unidades = 6.
	raw := env.item(t, "SKU0001")
	assert.True(t, raw.AllocatedQuantity.Equal(d("6")))
	assert.True(t, raw.Available().Equal(d("4")))
	assert.True(t, raw.Quantity.Equal(d("10")), "reservar no toca el stock en mano")

	env.transition(t, order.ID, entity.OrderStatusRequested, entity.OrderStatusReceived)

	// received → in_production no re-reserva componentes, solo marca el producto.
	out := env.transition(t, order.ID, entity.OrderStatusReceived, entity.OrderStatusInProduction)
	assert.NotNil(t, out.StartDate)
	raw = env.item(t, "SKU0001")
	assert.True(t, raw.AllocatedQuantity.Equal(d("6")), "la reserva de componentes es idempotente")
	product := env.item(t, "SKU0100")
	assert.True(t, product.AllocatedQuantity.Equal(d("3")))
	assert.True(t, product.InProductionQuantity.Equal(d("3")))
	assert.Equal(t, entity.StockStatusInProduction, product.Status)

	out = env.transition(t, order.ID, entity.OrderStatusInProduction, entity.OrderStatusCompleted)
	assert.Empty(t, out.Warnings)
	assert.True(t, out.QuantityProduced.Equal(d("3")))
	assert.NotNil(t, out.CompletedDate)

	// Componentes consumidos y reserva liberada.
	raw = env.item(t, "SKU0001")
	assert.True(t, raw.Quantity.Equal(d("4")), "10 − 6 consumidos")
	assert.True(t, raw.AllocatedQuantity.IsZero())

	// Producto terminado recibido al costo de materiales de la BOM.
	product = env.item(t, "SKU0100")
	assert.True(t, product.Quantity.Equal(d("3")))
	assert.True(t, product.UnitCost.Equal(d("7")))
	assert.True(t, product.AllocatedQuantity.IsZero())
	assert.True(t, product.InProductionQuantity.IsZero())
	assert.True(t, product.CompletedQuantity.Equal(d("3")))
	assert.Equal(t, entity.StockStatusInStock, product.Status)

	// La recepción del terminado queda en el registro con su nota.
	movs, err := memory.NewStockMovementRepository(env.store).List(ctx, movementFilterSKU("SKU0100", entity.MovementTypeReceipt))
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "producción terminada", movs[0].Notes)
	assert.Equal(t, order.WorkOrderNumber, movs[0].Reference)
}

func TestOrder_GuardiaOptimistaRechazaEstadoViejo(t *testing.T) {
	ctx := context.Background()
	env := newOrderEnv(t, "10")

	order, err := env.uc.Create(ctx, dto.CreateOrderRequest{BOMID: env.bom.ID, Quantity: d("1")}, "produccion-1")
	require.NoError(t, err)

	env.transition(t, order.ID, entity.OrderStatusRequested, entity.OrderStatusReceived)

	// Otro llamador observó requested antes de la transición anterior.
	_, err = env.uc.Transition(ctx, order.ID, dto.TransitionOrderRequest{
		Status: entity.OrderStatusInProduction, ExpectedStatus: entity.OrderStatusRequested,
	}, "produccion-2")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStaleOrderState)

	var stale *domain.StaleOrderError
	require.ErrorAs(t, err, &stale)
	assert.Equal(t, entity.OrderStatusRequested, stale.Expected)
	assert.Equal(t, entity.OrderStatusReceived, stale.Actual)
}

func TestOrder_TransicionIlegal(t *testing.T) {
	ctx := context.Background()
	env := newOrderEnv(t, "10")

	order, err := env.uc.Create(ctx, dto.CreateOrderRequest{BOMID: env.bom.ID, Quantity: d("1")}, "produccion-1")
	require.NoError(t, err)

	// requested no puede saltar directo a completed.
	_, err = env.uc.Transition(ctx, order.ID, dto.TransitionOrderRequest{
		Status: entity.OrderStatusCompleted, ExpectedStatus: entity.OrderStatusRequested,
	}, "produccion-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	var inv *domain.InvalidTransitionError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, entity.OrderStatusRequested, inv.From)
	assert.Equal(t, entity.OrderStatusCompleted, inv.To)
}

func TestOrder_CrearSinDisponibleNoCreaNada(t *testing.T) {
	ctx := context.Background()
	env := newOrderEnv(t, "4")

	// 3 unidades requieren 6 de materia prima; solo hay 4.
	_, err := env.uc.Create(ctx, dto.CreateOrderRequest{BOMID: env.bom.ID, Quantity: d("3")}, "produccion-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La reserva se evalúa sobre el agregado; el error lo dice en vez de
	// dejar el alcance vacío.
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, domain.LocationScopeAggregate, insufficient.LocationID)
	assert.Contains(t, err.Error(), "en "+domain.LocationScopeAggregate)

	raw := env.item(t, "SKU0001")
	assert.True(t, raw.AllocatedQuantity.IsZero(), "el rollback deshace reservas parciales")

	orders, err := memory.NewProductionOrderRepository(env.store).List(ctx, orderFilterAll())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrder_CrearExigeBOMYCantidadPositiva(t *testing.T) {
	ctx := context.Background()
	env := newOrderEnv(t, "10")

	// Sin BOM no hay costos ni componentes que reservar: la orden se rechaza
	// en vez de nacer sin reserva.
	_, err := env.uc.Create(ctx, dto.CreateOrderRequest{BOMID: "", Quantity: d("1")}, "produccion-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.uc.Create(ctx, dto.CreateOrderRequest{BOMID: env.bom.ID, Quantity: d("0")}, "produccion-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrder_CancelarDesdeProduccionDevuelveStock(t *testing.T) {
	ctx := context.Background()
	env := newOrderEnv(t, "10")

	order, err := env.uc.Create(ctx, dto.CreateOrderRequest{BOMID: env.bom.ID, Quantity: d("3")}, "produccion-1")
	require.NoError(t, err)
	env.transition(t, order.ID, entity.OrderStatusRequested, entity.OrderStatusInProduction)

	// Producción parcial de 2 unidades consume 4 de materia prima.
	_, err = env.uc.Consume(ctx, order.ID, dto.ConsumeRequest{Quantity: d("2")}, "produccion-1")
	require.NoError(t, err)
	raw := env.item(t, "SKU0001")
	assert.True(t, raw.Quantity.Equal(d("6")))
	assert.True(t, raw.AllocatedQuantity.Equal(d("2")), "reserva restante tras consumir 4 de 6")

	env.transition(t, order.ID, entity.OrderStatusInProduction, entity.OrderStatusCancelled)

	// Lo consumido vuelve a mano y la reserva queda libre.
	raw = env.item(t, "SKU0001")
	assert.True(t, raw.Quantity.Equal(d("10")))
	assert.True(t, raw.AllocatedQuantity.IsZero())

	product := env.item(t, "SKU0100")
	assert.True(t, product.AllocatedQuantity.IsZero())
	assert.True(t, product.InProductionQuantity.IsZero())

	// Terminal: no hay salida desde cancelled.
	_, err = env.uc.Transition(ctx, order.ID, dto.TransitionOrderRequest{
		Status: entity.OrderStatusRequested, ExpectedStatus: entity.OrderStatusCancelled,
	}, "produccion-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestOrder_RetrocesoDesdeProduccionRestaura(t *testing.T) {
	ctx := context.Background()
	env := newOrderEnv(t, "10")

	order, err := env.uc.Create(ctx, dto.CreateOrderRequest{BOMID: env.bom.ID, Quantity: d("2")}, "produccion-1")
	require.NoError(t, err)
	env.transition(t, order.ID, entity.OrderStatusRequested, entity.OrderStatusInProduction)
	_, err = env.uc.Consume(ctx, order.ID, dto.ConsumeRequest{Quantity: d("1")}, "produccion-1")
	require.NoError(t, err)

	out := env.transition(t, order.ID, entity.OrderStatusInProduction, entity.OrderStatusReceived)
	assert.True(t, out.QuantityProduced.IsZero(), "el retroceso reinicia lo producido")

	// Lo consumido volvió y quedó nuevamente reservado (received mantiene la reserva).
	raw := env.item(t, "SKU0001")
	assert.True(t, raw.Quantity.Equal(d("10")))
	assert.True(t, raw.AllocatedQuantity.Equal(d("4")))

	product := env.item(t, "SKU0100")
	assert.True(t, product.InProductionQuantity.IsZero())
}

func TestOrder_ConsumoSoloEnProduccion(t *testing.T) {
	ctx := context.Background()
	env := newOrderEnv(t, "10")

	order, err := env.uc.Create(ctx, dto.CreateOrderRequest{BOMID: env.bom.ID, Quantity: d("2")}, "produccion-1")
	require.NoError(t, err)

	_, err = env.uc.Consume(ctx, order.ID, dto.ConsumeRequest{Quantity: d("1")}, "produccion-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = env.uc.Consume(ctx, order.ID, dto.ConsumeRequest{Quantity: d("0")}, "produccion-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrder_CompletarConFaltanteAdvierteYNoBloquea(t *testing.T) {
	ctx := context.Background()
	env := newOrderEnv(t, "10")

	order, err := env.uc.Create(ctx, dto.CreateOrderRequest{BOMID: env.bom.ID, Quantity: d("3")}, "produccion-1")
	require.NoError(t, err)
	env.transition(t, order.ID, entity.OrderStatusRequested, entity.OrderStatusInProduction)

	// Una venta externa deja solo 2 en mano; completar necesita 6.
	txUC := inventory.NewStockTransactionUseCase(memory.NewTxRunner(env.store), testLogger())
	_, err = txUC.Register(ctx, inventory.TransactionInput{
		Type: entity.MovementTypeSale, SKU: "SKU0001",
		Quantity: d("8"), LocationID: env.loc.ID,
	})
	require.NoError(t, err)

	out := env.transition(t, order.ID, entity.OrderStatusInProduction, entity.OrderStatusCompleted)
	require.Len(t, out.Warnings, 1)
	w := out.Warnings[0]
	assert.Equal(t, "SKU0001", w.SKU)
	assert.True(t, w.Available.Equal(d("2")))
	assert.True(t, w.Required.Equal(d("6")))
	assert.True(t, w.Shortfall.Equal(d("4")))

	// Se consume lo que había; la cantidad nunca se fuerza a negativo.
	raw := env.item(t, "SKU0001")
	assert.True(t, raw.Quantity.IsZero())

	// La orden se completa igual y el terminado entra completo.
	product := env.item(t, "SKU0100")
	assert.True(t, product.Quantity.Equal(d("3")))
	assert.Equal(t, entity.OrderStatusCompleted, out.Status)
}

func TestOrder_CompletarConTimeoutNoDejaMitades(t *testing.T) {
	ctx := context.Background()
	env := newOrderEnv(t, "10")

	order, err := env.uc.Create(ctx, dto.CreateOrderRequest{BOMID: env.bom.ID, Quantity: d("3")}, "produccion-1")
	require.NoError(t, err)
	env.transition(t, order.ID, entity.OrderStatusRequested, entity.OrderStatusInProduction)

	// Mismo almacén, pero con presupuesto de terminación ya vencido al entrar.
	tight := manufacturing.NewOrderUseCase(
		memory.NewManufacturingTxRunner(env.store),
		memory.NewProductionOrderRepository(env.store),
		memory.NewBOMRepository(env.store),
		pdf.NewWorkOrderPDFRenderer(),
		testLogger(),
		time.Nanosecond,
	)
	_, err = tight.Transition(ctx, order.ID, dto.TransitionOrderRequest{
		Status: entity.OrderStatusCompleted, ExpectedStatus: entity.OrderStatusInProduction,
	}, "produccion-1")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// Ni el consumo de componentes ni el recibo del terminado sobreviven.
	raw := env.item(t, "SKU0001")
	assert.True(t, raw.Quantity.Equal(d("10")))
	assert.True(t, raw.AllocatedQuantity.Equal(d("6")))
	product := env.item(t, "SKU0100")
	assert.True(t, product.Quantity.IsZero())

	stored, err := env.uc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusInProduction, stored.Status)
}

func TestOrder_EliminarDevuelveReservas(t *testing.T) {
	ctx := context.Background()
	env := newOrderEnv(t, "10")

	order, err := env.uc.Create(ctx, dto.CreateOrderRequest{BOMID: env.bom.ID, Quantity: d("3")}, "produccion-1")
	require.NoError(t, err)

	require.NoError(t, env.uc.Delete(ctx, order.ID, "admin-1"))

	raw := env.item(t, "SKU0001")
	assert.True(t, raw.AllocatedQuantity.IsZero())

	_, err = env.uc.Get(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrder_PDFDeOrdenDeTrabajo(t *testing.T) {
	ctx := context.Background()
	env := newOrderEnv(t, "10")

	order, err := env.uc.Create(ctx, dto.CreateOrderRequest{BOMID: env.bom.ID, Quantity: d("2")}, "produccion-1")
	require.NoError(t, err)

	data, wo, err := env.uc.WorkOrderPDF(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.WorkOrderNumber, wo)
	assert.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}
