package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	domaininv "github.com/jhoicas/manufactura-api/internal/domain/inventory"
	"github.com/jhoicas/manufactura-api/pkg/logger"
)

// StockTransactionUseCase registra transacciones de stock de forma atómica
// (receipt, transfer, sale, adjustment): delta en el libro por ubicación,
// recálculo del espejo del catálogo y movimiento(s) en la misma transacción.
type StockTransactionUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewStockTransactionUseCase construye el caso de uso.
func NewStockTransactionUseCase(txRunner TxRunner, log *logger.Logger) *StockTransactionUseCase {
	return &StockTransactionUseCase{txRunner: txRunner, log: log}
}

// TransactionInput entrada para registrar una transacción de stock.
// Para receipt/sale/adjustment: SKU, Quantity, LocationID (vacío = bodega
// principal). Para transfer: FromLocationID y ToLocationID distintos.
type TransactionInput struct {
	Type           string
	SKU            string
	ItemName       string
	Quantity       decimal.Decimal
	LocationID     string
	FromLocationID string
	ToLocationID   string
	UnitCost       *decimal.Decimal
	Reference      string
	Notes          string
	PerformedBy    string
	Date           *time.Time
}

// Register valida la entrada sin tocar almacenamiento y luego ejecuta todo el
// efecto dentro de una transacción. Cantidad ≤ 0 se rechaza salvo adjustment,
// el único tipo que puede llevar el stock a negativo intencionalmente.
func (uc *StockTransactionUseCase) Register(ctx context.Context, in TransactionInput) (*entity.StockMovement, error) {
	switch in.Type {
	case entity.MovementTypeReceipt, entity.MovementTypeSale:
		if in.SKU == "" || !in.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeAdjustment:
		if in.SKU == "" {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeTransfer:
		if in.SKU == "" || !in.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if in.FromLocationID == "" || in.ToLocationID == "" || in.FromLocationID == in.ToLocationID {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	var out *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		item, err := r.Catalog.GetBySKU(ctx, in.SKU)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if in.ItemName == "" {
			in.ItemName = item.Name
		}

		var mov *entity.StockMovement
		switch in.Type {
		case entity.MovementTypeReceipt:
			mov, err = uc.doReceipt(ctx, r, item, in)
		case entity.MovementTypeSale:
			mov, err = uc.doSale(ctx, r, item, in)
		case entity.MovementTypeAdjustment:
			mov, err = uc.doAdjustment(ctx, r, item, in)
		case entity.MovementTypeTransfer:
			mov, err = uc.doTransfer(ctx, r, item, in)
		}
		if err != nil {
			return err
		}
		if _, err := RecomputeCatalogAggregate(ctx, r, in.SKU); err != nil {
			return err
		}
		out = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// doReceipt suma en la ubicación, actualiza el costo promedio del catálogo y
// registra un movimiento positivo.
func (uc *StockTransactionUseCase) doReceipt(ctx context.Context, r Repos, item *entity.CatalogItem, in TransactionInput) (*entity.StockMovement, error) {
	loc, err := ResolveLocation(ctx, r, in.LocationID)
	if err != nil {
		return nil, err
	}
	if _, err := ApplyLocationDelta(ctx, r, ApplyDeltaInput{
		LocationID:     loc.ID,
		SKU:            in.SKU,
		ItemName:       in.ItemName,
		Delta:          in.Quantity,
		UnitCost:       in.UnitCost,
		TouchRestocked: true,
	}); err != nil {
		return nil, err
	}
	if in.UnitCost != nil {
		newCost := domaininv.AverageCost(item.Quantity, item.UnitCost, in.Quantity, *in.UnitCost)
		if err := r.Catalog.UpdateUnitCost(ctx, in.SKU, newCost); err != nil {
			return nil, err
		}
	}
	return AppendMovement(ctx, r, MovementInput{
		Type:        entity.MovementTypeReceipt,
		SKU:         in.SKU,
		ItemName:    in.ItemName,
		Quantity:    in.Quantity,
		ToLocation:  loc.Code,
		Reference:   in.Reference,
		PerformedBy: in.PerformedBy,
		Notes:       in.Notes,
		Date:        in.Date,
	})
}

// doSale resta en la ubicación; si no alcanza el stock la transacción entera
// se aborta con el faltante identificado.
func (uc *StockTransactionUseCase) doSale(ctx context.Context, r Repos, item *entity.CatalogItem, in TransactionInput) (*entity.StockMovement, error) {
	loc, err := ResolveLocation(ctx, r, in.LocationID)
	if err != nil {
		return nil, err
	}
	if _, err := ApplyLocationDelta(ctx, r, ApplyDeltaInput{
		LocationID: loc.ID,
		SKU:        in.SKU,
		ItemName:   in.ItemName,
		Delta:      in.Quantity.Neg(),
	}); err != nil {
		return nil, err
	}
	return AppendMovement(ctx, r, MovementInput{
		Type:         entity.MovementTypeSale,
		SKU:          in.SKU,
		ItemName:     in.ItemName,
		Quantity:     in.Quantity,
		FromLocation: loc.Code,
		Reference:    in.Reference,
		PerformedBy:  in.PerformedBy,
		Notes:        in.Notes,
		Date:         in.Date,
	})
}

// doAdjustment aplica el delta con el signo del llamador; es el único tipo que
// puede dejar cantidades negativas (corrección manual) y no se bloquea.
func (uc *StockTransactionUseCase) doAdjustment(ctx context.Context, r Repos, item *entity.CatalogItem, in TransactionInput) (*entity.StockMovement, error) {
	loc, err := ResolveLocation(ctx, r, in.LocationID)
	if err != nil {
		return nil, err
	}
	if _, err := ApplyLocationDelta(ctx, r, ApplyDeltaInput{
		LocationID:    loc.ID,
		SKU:           in.SKU,
		ItemName:      in.ItemName,
		Delta:         in.Quantity,
		UnitCost:      in.UnitCost,
		AllowNegative: true,
	}); err != nil {
		return nil, err
	}
	return AppendMovement(ctx, r, MovementInput{
		Type:         entity.MovementTypeAdjustment,
		SKU:          in.SKU,
		ItemName:     in.ItemName,
		Quantity:     in.Quantity,
		FromLocation: loc.Code,
		Reference:    in.Reference,
		PerformedBy:  in.PerformedBy,
		Notes:        in.Notes,
		Date:         in.Date,
	})
}

// doTransfer resta en origen (con verificación) y suma en destino, dos patas
// con el mismo TransactionID: un traslado nunca cambia el agregado del SKU.
func (uc *StockTransactionUseCase) doTransfer(ctx context.Context, r Repos, item *entity.CatalogItem, in TransactionInput) (*entity.StockMovement, error) {
	from, err := ResolveLocation(ctx, r, in.FromLocationID)
	if err != nil {
		return nil, err
	}
	to, err := ResolveLocation(ctx, r, in.ToLocationID)
	if err != nil {
		return nil, err
	}
	origin, err := ApplyLocationDelta(ctx, r, ApplyDeltaInput{
		LocationID: from.ID,
		SKU:        in.SKU,
		ItemName:   in.ItemName,
		Delta:      in.Quantity.Neg(),
	})
	if err != nil {
		return nil, err
	}
	cost := origin.UnitCost
	if _, err := ApplyLocationDelta(ctx, r, ApplyDeltaInput{
		LocationID: to.ID,
		SKU:        in.SKU,
		ItemName:   in.ItemName,
		Delta:      in.Quantity,
		UnitCost:   &cost,
	}); err != nil {
		return nil, err
	}

	txID := uuid.New().String()
	outLeg, err := AppendMovement(ctx, r, MovementInput{
		TransactionID: txID,
		Type:          entity.MovementTypeTransfer,
		SKU:           in.SKU,
		ItemName:      in.ItemName,
		Quantity:      in.Quantity.Neg(),
		FromLocation:  from.Code,
		ToLocation:    to.Code,
		Reference:     in.Reference,
		PerformedBy:   in.PerformedBy,
		Notes:         in.Notes,
		Date:          in.Date,
	})
	if err != nil {
		return nil, err
	}
	if _, err := AppendMovement(ctx, r, MovementInput{
		TransactionID: txID,
		Type:          entity.MovementTypeTransfer,
		SKU:           in.SKU,
		ItemName:      in.ItemName,
		Quantity:      in.Quantity,
		FromLocation:  from.Code,
		ToLocation:    to.Code,
		Reference:     in.Reference,
		PerformedBy:   in.PerformedBy,
		Notes:         in.Notes,
		Date:          in.Date,
	}); err != nil {
		return nil, err
	}
	return outLeg, nil
}

// MovementInput entrada para anexar una entrada al registro de movimientos.
type MovementInput struct {
	TransactionID string
	Type          string
	SKU           string
	ItemName      string
	Quantity      decimal.Decimal
	FromLocation  string
	ToLocation    string
	Reference     string
	PerformedBy   string
	Notes         string
	Date          *time.Time
}

// AppendMovement normaliza el signo según el tipo, reserva el siguiente código
// MOV#### y persiste la entrada. Para transfer la cantidad ya viene firmada
// por pata y se conserva tal cual.
func AppendMovement(ctx context.Context, r Repos, in MovementInput) (*entity.StockMovement, error) {
	qty := in.Quantity
	if in.Type != entity.MovementTypeTransfer && in.Type != entity.MovementTypeAdjustment {
		qty = domaininv.NormalizeMovementQuantity(in.Type, in.Quantity)
	}
	code, err := r.Movements.NextMovementID(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	txID := in.TransactionID
	if txID == "" {
		txID = uuid.New().String()
	}
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		MovementID:    code,
		TransactionID: txID,
		Date:          date,
		Type:          in.Type,
		ItemName:      in.ItemName,
		SKU:           in.SKU,
		Quantity:      qty,
		FromLocation:  in.FromLocation,
		ToLocation:    in.ToLocation,
		Reference:     in.Reference,
		PerformedBy:   in.PerformedBy,
		Notes:         in.Notes,
		CreatedAt:     now,
	}
	if err := r.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}
