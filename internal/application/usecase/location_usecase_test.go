package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/application/inventory"
	"github.com/jhoicas/manufactura-api/internal/application/usecase"
	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/infrastructure/memory"
	"github.com/jhoicas/manufactura-api/pkg/logger"
)

func newLocationUC(store *memory.Store) *usecase.LocationUseCase {
	return usecase.NewLocationUseCase(memory.NewLocationRepository(store), memory.NewTxRunner(store))
}

func TestLocation_CrearGeneraCodigoSecuencial(t *testing.T) {
	ctx := context.Background()
	uc := newLocationUC(memory.NewStore())

	first, err := uc.Create(ctx, dto.CreateLocationRequest{Name: "Bodega principal"})
	require.NoError(t, err)
	assert.Equal(t, "LOC001", first.Code)
	assert.Equal(t, entity.LocationTypeWarehouse, first.Type)
	assert.Equal(t, entity.LocationStatusActive, first.Status)

	second, err := uc.Create(ctx, dto.CreateLocationRequest{Name: "Obra norte", Type: entity.LocationTypeSite})
	require.NoError(t, err)
	assert.Equal(t, "LOC002", second.Code)

	// Código explícito duplicado se rechaza.
	_, err = uc.Create(ctx, dto.CreateLocationRequest{Code: "LOC001", Name: "Clon"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLocation_EliminarBloqueadaConStock(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	locUC := newLocationUC(store)

	loc, err := locUC.Create(ctx, dto.CreateLocationRequest{Name: "Obra norte"})
	require.NoError(t, err)

	catUC := newCatalogUC(store)
	item, err := catUC.Create(ctx, dto.CreateItemRequest{Name: "Tornillo 3/8"}, "admin-1")
	require.NoError(t, err)

	txUC := inventory.NewStockTransactionUseCase(memory.NewTxRunner(store), logger.New(logger.Config{Env: "test", Level: "error"}))
	_, err = txUC.Register(ctx, inventory.TransactionInput{
		Type: entity.MovementTypeReceipt, SKU: item.SKU,
		Quantity: d("3"), LocationID: loc.ID,
	})
	require.NoError(t, err)

	err = locUC.Delete(ctx, loc.ID)
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)

	// Tras vaciar la ubicación se puede eliminar; la fila placeholder en cero
	// se va con ella.
	_, err = txUC.Register(ctx, inventory.TransactionInput{
		Type: entity.MovementTypeSale, SKU: item.SKU,
		Quantity: d("3"), LocationID: loc.ID,
	})
	require.NoError(t, err)

	require.NoError(t, locUC.Delete(ctx, loc.ID))
	_, err = locUC.Get(ctx, loc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	row, err := memory.NewLocationInventoryRepository(store).Get(ctx, loc.ID, item.SKU)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestLocation_EliminarInexistente(t *testing.T) {
	ctx := context.Background()
	uc := newLocationUC(memory.NewStore())
	assert.ErrorIs(t, uc.Delete(ctx, "no-existe"), domain.ErrNotFound)
}

func TestLocation_Actualizar(t *testing.T) {
	ctx := context.Background()
	uc := newLocationUC(memory.NewStore())

	loc, err := uc.Create(ctx, dto.CreateLocationRequest{Name: "Obra norte"})
	require.NoError(t, err)

	estado := entity.LocationStatusInactive
	out, err := uc.Update(ctx, loc.ID, dto.UpdateLocationRequest{Status: &estado})
	require.NoError(t, err)
	assert.Equal(t, entity.LocationStatusInactive, out.Status)
	assert.Equal(t, loc.Code, out.Code, "el código no cambia en la actualización")
}
