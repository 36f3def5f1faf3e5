package manufacturing

import (
	"context"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/pkg/logger"
)

// PurgeUseCase borrado manual de todos los datos de manufactura. Requiere
// confirmación explícita y corre como una sola transacción en orden de
// dependencia, reportando conteos por entidad.
type PurgeUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewPurgeUseCase construye el caso de uso.
func NewPurgeUseCase(txRunner TxRunner, log *logger.Logger) *PurgeUseCase {
	return &PurgeUseCase{txRunner: txRunner, log: log}
}

// PurgeAll elimina libro → movimientos → órdenes → BOMs → catálogo →
// ubicaciones → proveedores. Sin confirm en true no borra nada.
func (uc *PurgeUseCase) PurgeAll(ctx context.Context, in dto.PurgeRequest) (*dto.PurgeResponse, error) {
	if !in.Confirm {
		return nil, domain.ErrConfirmationNeeded
	}
	var out dto.PurgeResponse
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		var err error
		if out.LedgerRows, err = r.Ledger.DeleteAll(ctx); err != nil {
			return err
		}
		if out.Movements, err = r.Movements.DeleteAll(ctx); err != nil {
			return err
		}
		if out.Orders, err = r.Orders.DeleteAll(ctx); err != nil {
			return err
		}
		if out.BOMs, err = r.BOMs.DeleteAll(ctx); err != nil {
			return err
		}
		if out.CatalogItems, err = r.Catalog.DeleteAll(ctx); err != nil {
			return err
		}
		if out.Locations, err = r.Locations.DeleteAll(ctx); err != nil {
			return err
		}
		if out.Suppliers, err = r.Suppliers.DeleteAll(ctx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Warn().
		Int64("libro", out.LedgerRows).
		Int64("movimientos", out.Movements).
		Int64("ordenes", out.Orders).
		Int64("boms", out.BOMs).
		Int64("items", out.CatalogItems).
		Int64("ubicaciones", out.Locations).
		Int64("proveedores", out.Suppliers).
		Msg("purga completa de datos de manufactura")
	return &out, nil
}
