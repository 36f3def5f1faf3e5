package manufacturing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/application/inventory"
	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	domainmfg "github.com/jhoicas/manufactura-api/internal/domain/manufacturing"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
	"github.com/jhoicas/manufactura-api/pkg/logger"
)

// OrderUseCase orquesta el ciclo de vida de las órdenes de producción:
// reserva de componentes, consumo, recepción de producto terminado y
// liberaciones. Cada transición es una única transacción que relee el estado
// vigente de la orden (FOR UPDATE) antes de mutar nada.
type OrderUseCase struct {
	txRunner TxRunner
	orders   repository.ProductionOrderRepository
	boms     repository.BOMRepository
	renderer WorkOrderRenderer
	log      *logger.Logger

	// completionTimeout acota la transición a completed: consumir muchas
	// líneas de BOM no puede quedar colgado a medias, o se revierte entera.
	completionTimeout time.Duration
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner TxRunner, orders repository.ProductionOrderRepository, boms repository.BOMRepository, renderer WorkOrderRenderer, log *logger.Logger, completionTimeout time.Duration) *OrderUseCase {
	if completionTimeout <= 0 {
		completionTimeout = 30 * time.Second
	}
	return &OrderUseCase{
		txRunner:          txRunner,
		orders:            orders,
		boms:              boms,
		renderer:          renderer,
		log:               log,
		completionTimeout: completionTimeout,
	}
}

// Create crea una orden en requested reservando los componentes de la BOM en
// la misma transacción: si falta algún componente o no hay disponible
// suficiente, no se crea nada.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest, performedBy string) (*dto.OrderResponse, error) {
	if in.BOMID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.ProductionOrder
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		bom, err := r.BOMs.GetByID(ctx, in.BOMID)
		if err != nil {
			return err
		}
		if bom == nil {
			return domain.ErrNotFound
		}
		wo, err := r.Orders.NextWorkOrderNumber(ctx)
		if err != nil {
			return err
		}
		if err := uc.reserveComponents(ctx, r, bom, in.Quantity, wo, performedBy); err != nil {
			return err
		}

		now := time.Now()
		order := &entity.ProductionOrder{
			ID:               uuid.New().String(),
			BOMID:            bom.ID,
			ProductSKU:       bom.ProductSKU,
			ProductName:      bom.ProductName,
			Quantity:         in.Quantity,
			QuantityProduced: decimal.Zero,
			Status:           entity.OrderStatusRequested,
			Priority:         priorityOrDefault(in.Priority),
			WorkOrderNumber:  wo,
			AllocationType:   allocationOrDefault(in.AllocationType),
			ClientID:         in.ClientID,
			AssignedTo:       in.AssignedTo,
			TotalCost:        bom.TotalCost.Mul(in.Quantity),
			StartDate:        in.StartDate,
			TargetDate:       in.TargetDate,
			Notes:            in.Notes,
			CreatedBy:        performedBy,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := r.Orders.Create(ctx, order); err != nil {
			return err
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(out, nil), nil
}

// Get obtiene una orden por ID.
func (uc *OrderUseCase) Get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order, nil), nil
}

// List lista órdenes filtradas por estado y/o SKU de producto.
func (uc *OrderUseCase) List(ctx context.Context, filter repository.OrderFilter) (*dto.OrderListResponse, error) {
	list, err := uc.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o, nil))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// Update parcha campos sin efecto de stock (prioridad, fechas, notas).
func (uc *OrderUseCase) Update(ctx context.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if in.Priority != nil {
		order.Priority = *in.Priority
	}
	if in.AssignedTo != nil {
		order.AssignedTo = *in.AssignedTo
	}
	if in.StartDate != nil {
		order.StartDate = in.StartDate
	}
	if in.TargetDate != nil {
		order.TargetDate = in.TargetDate
	}
	if in.Notes != nil {
		order.Notes = *in.Notes
	}
	order.UpdatedAt = time.Now()
	if err := uc.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return toOrderResponse(order, nil), nil
}

// Transition aplica un cambio de estado como una única transacción: relee la
// orden bloqueando la fila, verifica la guardia optimista contra
// expected_status, valida la legalidad del cambio y recién entonces aplica los
// efectos de stock, los movimientos y por último el nuevo estado.
func (uc *OrderUseCase) Transition(ctx context.Context, id string, in dto.TransitionOrderRequest, performedBy string) (*dto.OrderResponse, error) {
	if in.Status == "" || in.ExpectedStatus == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Status == entity.OrderStatusCompleted {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.completionTimeout)
		defer cancel()
	}

	var (
		out      *entity.ProductionOrder
		warnings []dto.StockWarning
	)
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		order, err := r.Orders.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != in.ExpectedStatus {
			return &domain.StaleOrderError{OrderID: id, Expected: in.ExpectedStatus, Actual: order.Status}
		}
		if !domainmfg.CanTransition(order.Status, in.Status) {
			return &domain.InvalidTransitionError{OrderID: id, From: order.Status, To: in.Status}
		}

		bom, err := uc.resolveBOM(ctx, r, order)
		if err != nil {
			return err
		}

		from := order.Status
		switch in.Status {
		case entity.OrderStatusRequested:
			// Solo alcanzable como retroceso desde in_production.
			if err := uc.revertInProduction(ctx, r, order, bom, performedBy); err != nil {
				return err
			}

		case entity.OrderStatusReceived:
			// Desde requested no hay efecto: la reserva ya existe. Desde
			// in_production es un retroceso con devolución de stock.
			if from == entity.OrderStatusInProduction {
				if err := uc.revertInProduction(ctx, r, order, bom, performedBy); err != nil {
					return err
				}
			}

		case entity.OrderStatusInProduction:
			// La reserva de componentes es idempotente: requested/received ya
			// la hicieron. Solo se marca el producto terminado.
			if err := uc.markInProduction(ctx, r, order, performedBy); err != nil {
				return err
			}
			if order.StartDate == nil {
				now := time.Now()
				order.StartDate = &now
			}

		case entity.OrderStatusCompleted:
			qtyProduced := order.Quantity
			if in.QuantityProduced != nil {
				qtyProduced = *in.QuantityProduced
			}
			if !qtyProduced.GreaterThan(decimal.Zero) {
				return domain.ErrInvalidInput
			}
			warnings, err = uc.complete(ctx, r, order, bom, qtyProduced, performedBy)
			if err != nil {
				return err
			}
			order.QuantityProduced = qtyProduced
			now := time.Now()
			order.CompletedDate = &now

		case entity.OrderStatusCancelled:
			if err := uc.cancel(ctx, r, order, bom, from, performedBy); err != nil {
				return err
			}
		}

		order.Status = in.Status
		order.UpdatedAt = time.Now()
		if err := r.Orders.Update(ctx, order); err != nil {
			return err
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(out, warnings), nil
}

// Consume deduce componentes de la BOM para una cantidad producida parcial,
// sin transición de estado. Solo válido en in_production.
func (uc *OrderUseCase) Consume(ctx context.Context, id string, in dto.ConsumeRequest, performedBy string) (*dto.OrderResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var (
		out      *entity.ProductionOrder
		warnings []dto.StockWarning
	)
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		order, err := r.Orders.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusInProduction {
			return &domain.InvalidTransitionError{OrderID: id, From: order.Status, To: entity.OrderStatusInProduction}
		}
		bom, err := uc.resolveBOM(ctx, r, order)
		if err != nil {
			return err
		}
		warnings, err = uc.consumeComponents(ctx, r, bom, in.Quantity, order.WorkOrderNumber, performedBy)
		if err != nil {
			return err
		}
		order.QuantityProduced = order.QuantityProduced.Add(in.Quantity)
		order.UpdatedAt = time.Now()
		if err := r.Orders.Update(ctx, order); err != nil {
			return err
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(out, warnings), nil
}

// Delete elimina la orden devolviendo el stock según las mismas reglas que la
// cancelación correspondiente a su estado, en una sola transacción.
func (uc *OrderUseCase) Delete(ctx context.Context, id string, performedBy string) error {
	return uc.txRunner.Run(ctx, func(r Repos) error {
		order, err := r.Orders.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !domainmfg.IsTerminal(order.Status) {
			bom, err := uc.resolveBOM(ctx, r, order)
			if err != nil {
				return err
			}
			if err := uc.cancel(ctx, r, order, bom, order.Status, performedBy); err != nil {
				return err
			}
		}
		return r.Orders.Delete(ctx, id)
	})
}

// WorkOrderPDF genera el documento imprimible de la orden de trabajo.
func (uc *OrderUseCase) WorkOrderPDF(ctx context.Context, id string) ([]byte, string, error) {
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}
	bom, err := uc.boms.GetByID(ctx, order.BOMID)
	if err != nil {
		return nil, "", err
	}
	if bom == nil {
		return nil, "", domain.ErrNotFound
	}
	pdf, err := uc.renderer.RenderWorkOrder(order, bom)
	if err != nil {
		return nil, "", err
	}
	return pdf, order.WorkOrderNumber, nil
}

// ─── efectos de stock por transición ─────────────────────────────────────────

// reserveComponents incrementa allocatedQuantity de cada componente por la
// cantidad requerida (reserva pura, sin tocar on-hand) y anexa un movimiento
// de ajuste de cantidad cero por componente. Falla la transacción entera si
// algún componente no existe o su disponible no alcanza.
func (uc *OrderUseCase) reserveComponents(ctx context.Context, r Repos, bom *entity.BOM, orderQty decimal.Decimal, workOrder, performedBy string) error {
	for _, comp := range bom.Components {
		item, err := r.Catalog.GetBySKUForUpdate(ctx, comp.SKU)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		required := domainmfg.RequiredQuantity(comp.Quantity, orderQty)
		if item.Available().LessThan(required) {
			return &domain.InsufficientStockError{
				SKU:        comp.SKU,
				LocationID: domain.LocationScopeAggregate,
				Available:  item.Available(),
				Required:   required,
			}
		}
		if err := r.Catalog.ApplyAllocatedDelta(ctx, comp.SKU, required); err != nil {
			return err
		}
		if _, err := inventory.AppendMovement(ctx, r.Repos, inventory.MovementInput{
			Type:        entity.MovementTypeAdjustment,
			SKU:         comp.SKU,
			ItemName:    comp.Name,
			Quantity:    decimal.Zero,
			Reference:   workOrder,
			PerformedBy: performedBy,
			Notes:       "allocated",
		}); err != nil {
			return err
		}
	}
	return nil
}

// releaseComponents libera la reserva de cada componente, acotada a lo que
// realmente sigue reservado (nunca deja allocatedQuantity negativo por deriva
// de datos aguas arriba).
func (uc *OrderUseCase) releaseComponents(ctx context.Context, r Repos, bom *entity.BOM, orderQty decimal.Decimal, workOrder, performedBy string) error {
	for _, comp := range bom.Components {
		item, err := r.Catalog.GetBySKUForUpdate(ctx, comp.SKU)
		if err != nil {
			return err
		}
		if item == nil {
			uc.log.Warn().Str("sku", comp.SKU).Str("orden", workOrder).Msg("componente inexistente al liberar reserva, se omite")
			continue
		}
		required := domainmfg.RequiredQuantity(comp.Quantity, orderQty)
		release := decimal.Min(required, item.AllocatedQuantity)
		if release.IsPositive() {
			if err := r.Catalog.ApplyAllocatedDelta(ctx, comp.SKU, release.Neg()); err != nil {
				return err
			}
		}
		if _, err := inventory.AppendMovement(ctx, r.Repos, inventory.MovementInput{
			Type:        entity.MovementTypeAdjustment,
			SKU:         comp.SKU,
			ItemName:    comp.Name,
			Quantity:    decimal.Zero,
			Reference:   workOrder,
			PerformedBy: performedBy,
			Notes:       "released",
		}); err != nil {
			return err
		}
	}
	return nil
}

// consumeComponents descuenta on-hand de cada componente para qty unidades
// producidas y libera la reserva equivalente. Un faltante no bloquea: se
// descuenta lo que hay, se registra la advertencia y se continúa.
func (uc *OrderUseCase) consumeComponents(ctx context.Context, r Repos, bom *entity.BOM, qty decimal.Decimal, workOrder, performedBy string) ([]dto.StockWarning, error) {
	var warnings []dto.StockWarning
	for _, comp := range bom.Components {
		item, err := r.Catalog.GetBySKUForUpdate(ctx, comp.SKU)
		if err != nil {
			return nil, err
		}
		if item == nil {
			uc.log.Warn().Str("sku", comp.SKU).Str("orden", workOrder).Msg("componente inexistente durante el consumo, se omite")
			warnings = append(warnings, dto.StockWarning{SKU: comp.SKU, Name: comp.Name})
			continue
		}
		required := domainmfg.RequiredQuantity(comp.Quantity, qty)

		loc, err := uc.homeLocation(ctx, r, item)
		if err != nil {
			return nil, err
		}
		onHand := decimal.Zero
		if row, err := r.Ledger.Get(ctx, loc.ID, comp.SKU); err != nil {
			return nil, err
		} else if row != nil {
			onHand = row.Quantity
		}
		deduct := decimal.Min(required, decimal.Max(onHand, decimal.Zero))
		if deduct.LessThan(required) {
			uc.log.Warn().
				Str("sku", comp.SKU).
				Str("orden", workOrder).
				Str("disponible", onHand.String()).
				Str("requerido", required.String()).
				Msg("stock insuficiente al completar, se consume lo disponible")
			warnings = append(warnings, dto.StockWarning{
				SKU:       comp.SKU,
				Name:      comp.Name,
				Available: onHand,
				Required:  required,
				Shortfall: required.Sub(deduct),
			})
		}
		if deduct.IsPositive() {
			if _, err := inventory.ApplyLocationDelta(ctx, r.Repos, inventory.ApplyDeltaInput{
				LocationID: loc.ID,
				SKU:        comp.SKU,
				ItemName:   comp.Name,
				Delta:      deduct.Neg(),
			}); err != nil {
				return nil, err
			}
		}
		release := decimal.Min(required, item.AllocatedQuantity)
		if release.IsPositive() {
			if err := r.Catalog.ApplyAllocatedDelta(ctx, comp.SKU, release.Neg()); err != nil {
				return nil, err
			}
		}
		if _, err := inventory.RecomputeCatalogAggregate(ctx, r.Repos, comp.SKU); err != nil {
			return nil, err
		}
		if _, err := inventory.AppendMovement(ctx, r.Repos, inventory.MovementInput{
			Type:         entity.MovementTypeConsumption,
			SKU:          comp.SKU,
			ItemName:     comp.Name,
			Quantity:     deduct,
			FromLocation: loc.Code,
			Reference:    workOrder,
			PerformedBy:  performedBy,
		}); err != nil {
			return nil, err
		}
	}
	return warnings, nil
}

// returnComponents devuelve a on-hand lo consumido para qty unidades; con
// reAllocate vuelve a reservar esa misma cantidad (retroceso a un estado que
// mantiene la reserva).
func (uc *OrderUseCase) returnComponents(ctx context.Context, r Repos, bom *entity.BOM, qty decimal.Decimal, reAllocate bool, workOrder, performedBy string) error {
	if !qty.IsPositive() {
		return nil
	}
	for _, comp := range bom.Components {
		item, err := r.Catalog.GetBySKUForUpdate(ctx, comp.SKU)
		if err != nil {
			return err
		}
		if item == nil {
			uc.log.Warn().Str("sku", comp.SKU).Str("orden", workOrder).Msg("componente inexistente al devolver stock, se omite")
			continue
		}
		returned := domainmfg.RequiredQuantity(comp.Quantity, qty)
		loc, err := uc.homeLocation(ctx, r, item)
		if err != nil {
			return err
		}
		if _, err := inventory.ApplyLocationDelta(ctx, r.Repos, inventory.ApplyDeltaInput{
			LocationID: loc.ID,
			SKU:        comp.SKU,
			ItemName:   comp.Name,
			Delta:      returned,
		}); err != nil {
			return err
		}
		if reAllocate {
			if err := r.Catalog.ApplyAllocatedDelta(ctx, comp.SKU, returned); err != nil {
				return err
			}
		}
		if _, err := inventory.RecomputeCatalogAggregate(ctx, r.Repos, comp.SKU); err != nil {
			return err
		}
		if _, err := inventory.AppendMovement(ctx, r.Repos, inventory.MovementInput{
			Type:        entity.MovementTypeReturn,
			SKU:         comp.SKU,
			ItemName:    comp.Name,
			Quantity:    returned,
			ToLocation:  loc.Code,
			Reference:   workOrder,
			PerformedBy: performedBy,
		}); err != nil {
			return err
		}
	}
	return nil
}

// markInProduction reserva la cantidad ordenada del producto terminado y marca
// su estado de catálogo como en producción.
func (uc *OrderUseCase) markInProduction(ctx context.Context, r Repos, order *entity.ProductionOrder, performedBy string) error {
	if err := r.Catalog.ApplyAllocatedDelta(ctx, order.ProductSKU, order.Quantity); err != nil {
		return err
	}
	if err := r.Catalog.ApplyInProductionDelta(ctx, order.ProductSKU, order.Quantity); err != nil {
		return err
	}
	if err := r.Catalog.SetStatus(ctx, order.ProductSKU, entity.StockStatusInProduction); err != nil {
		return err
	}
	_, err := inventory.AppendMovement(ctx, r.Repos, inventory.MovementInput{
		Type:        entity.MovementTypeAdjustment,
		SKU:         order.ProductSKU,
		ItemName:    order.ProductName,
		Quantity:    decimal.Zero,
		Reference:   order.WorkOrderNumber,
		PerformedBy: performedBy,
		Notes:       "in production",
	})
	return err
}

// releaseFinished revierte la marca de producción del producto terminado,
// acotando la liberación a lo realmente reservado.
func (uc *OrderUseCase) releaseFinished(ctx context.Context, r Repos, order *entity.ProductionOrder) error {
	item, err := r.Catalog.GetBySKUForUpdate(ctx, order.ProductSKU)
	if err != nil {
		return err
	}
	if item == nil {
		uc.log.Warn().Str("sku", order.ProductSKU).Str("orden", order.WorkOrderNumber).Msg("producto terminado inexistente al liberar marca de producción")
		return nil
	}
	release := decimal.Min(order.Quantity, item.AllocatedQuantity)
	if release.IsPositive() {
		if err := r.Catalog.ApplyAllocatedDelta(ctx, order.ProductSKU, release.Neg()); err != nil {
			return err
		}
	}
	inProd := decimal.Min(order.Quantity, item.InProductionQuantity)
	if inProd.IsPositive() {
		if err := r.Catalog.ApplyInProductionDelta(ctx, order.ProductSKU, inProd.Neg()); err != nil {
			return err
		}
	}
	// Recalcular restaura el estado derivado de cantidad vs punto de reorden.
	_, err = inventory.RecomputeCatalogAggregate(ctx, r.Repos, order.ProductSKU)
	return err
}

// complete consume los componentes pendientes, recibe el producto terminado al
// costo de materiales de la BOM y libera la marca de producción.
func (uc *OrderUseCase) complete(ctx context.Context, r Repos, order *entity.ProductionOrder, bom *entity.BOM, qtyProduced decimal.Decimal, performedBy string) ([]dto.StockWarning, error) {
	// Lo ya consumido vía Consume no se vuelve a descontar.
	toConsume := decimal.Max(qtyProduced.Sub(order.QuantityProduced), decimal.Zero)
	warnings, err := uc.consumeComponents(ctx, r, bom, toConsume, order.WorkOrderNumber, performedBy)
	if err != nil {
		return nil, err
	}

	finished, err := uc.resolveFinishedItem(ctx, r, bom)
	if err != nil {
		return nil, err
	}
	loc, err := uc.homeLocation(ctx, r, finished)
	if err != nil {
		return nil, err
	}
	cost := bom.TotalMaterialCost
	if _, err := inventory.ApplyLocationDelta(ctx, r.Repos, inventory.ApplyDeltaInput{
		LocationID:     loc.ID,
		SKU:            finished.SKU,
		ItemName:       finished.Name,
		Delta:          qtyProduced,
		UnitCost:       &cost,
		TouchRestocked: true,
	}); err != nil {
		return nil, err
	}
	if err := r.Catalog.UpdateUnitCost(ctx, finished.SKU, cost); err != nil {
		return nil, err
	}
	if _, err := inventory.AppendMovement(ctx, r.Repos, inventory.MovementInput{
		Type:        entity.MovementTypeReceipt,
		SKU:         finished.SKU,
		ItemName:    finished.Name,
		Quantity:    qtyProduced,
		ToLocation:  loc.Code,
		Reference:   order.WorkOrderNumber,
		PerformedBy: performedBy,
		Notes:       "producción terminada",
	}); err != nil {
		return nil, err
	}
	if err := uc.releaseFinished(ctx, r, order); err != nil {
		return nil, err
	}
	if err := r.Catalog.ApplyCompletedDelta(ctx, finished.SKU, qtyProduced); err != nil {
		return nil, err
	}
	return warnings, nil
}

// revertInProduction deshace una producción en curso: devuelve lo consumido,
// vuelve a reservarlo y libera la marca del producto terminado.
func (uc *OrderUseCase) revertInProduction(ctx context.Context, r Repos, order *entity.ProductionOrder, bom *entity.BOM, performedBy string) error {
	if err := uc.returnComponents(ctx, r, bom, order.QuantityProduced, true, order.WorkOrderNumber, performedBy); err != nil {
		return err
	}
	if err := uc.releaseFinished(ctx, r, order); err != nil {
		return err
	}
	order.QuantityProduced = decimal.Zero
	return nil
}

// cancel libera las reservas; desde in_production además devuelve a on-hand lo
// ya consumido y desmarca el producto terminado.
func (uc *OrderUseCase) cancel(ctx context.Context, r Repos, order *entity.ProductionOrder, bom *entity.BOM, from, performedBy string) error {
	if from == entity.OrderStatusInProduction {
		if err := uc.returnComponents(ctx, r, bom, order.QuantityProduced, false, order.WorkOrderNumber, performedBy); err != nil {
			return err
		}
		if err := uc.releaseFinished(ctx, r, order); err != nil {
			return err
		}
	}
	return uc.releaseComponents(ctx, r, bom, order.Quantity, order.WorkOrderNumber, performedBy)
}

// resolveBOM obtiene la BOM de la orden; sin BOM no hay transición con efecto
// de stock posible.
func (uc *OrderUseCase) resolveBOM(ctx context.Context, r Repos, order *entity.ProductionOrder) (*entity.BOM, error) {
	bom, err := r.BOMs.GetByID(ctx, order.BOMID)
	if err != nil {
		return nil, err
	}
	if bom != nil {
		return bom, nil
	}
	bom, err = r.BOMs.GetByProductSKU(ctx, order.ProductSKU)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, domain.ErrNotFound
	}
	return bom, nil
}

// resolveFinishedItem resuelve el ítem del catálogo del producto terminado con
// una cadena ordenada y logueada: inventoryItemId, luego SKU + tipo terminado,
// luego SKU a secas. Si nada resuelve, la completación falla de forma ruidosa
// en vez de omitir la recepción en silencio.
func (uc *OrderUseCase) resolveFinishedItem(ctx context.Context, r Repos, bom *entity.BOM) (*entity.CatalogItem, error) {
	if bom.InventoryItemID != "" {
		item, err := r.Catalog.GetByID(ctx, bom.InventoryItemID)
		if err != nil {
			return nil, err
		}
		if item != nil {
			return item, nil
		}
		uc.log.Warn().Str("bom", bom.ID).Str("inventory_item_id", bom.InventoryItemID).Msg("inventoryItemId no resuelve, se intenta por SKU y tipo")
	}
	item, err := r.Catalog.GetBySKUAndType(ctx, bom.ProductSKU, entity.ItemTypeFinishedGood)
	if err != nil {
		return nil, err
	}
	if item != nil {
		return item, nil
	}
	uc.log.Warn().Str("bom", bom.ID).Str("sku", bom.ProductSKU).Msg("SKU + tipo no resuelve, se intenta por SKU a secas")
	item, err = r.Catalog.GetBySKU(ctx, bom.ProductSKU)
	if err != nil {
		return nil, err
	}
	if item == nil {
		uc.log.Error().Str("bom", bom.ID).Str("sku", bom.ProductSKU).Msg("producto terminado irresoluble, se aborta la completación")
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// homeLocation devuelve la ubicación por defecto del ítem o la bodega
// principal si no tiene una asignada.
func (uc *OrderUseCase) homeLocation(ctx context.Context, r Repos, item *entity.CatalogItem) (*entity.StockLocation, error) {
	locationID := ""
	if item.LocationID != nil {
		locationID = *item.LocationID
	}
	return inventory.ResolveLocation(ctx, r.Repos, locationID)
}

func priorityOrDefault(p string) string {
	switch p {
	case entity.OrderPriorityLow, entity.OrderPriorityNormal, entity.OrderPriorityHigh, entity.OrderPriorityUrgent:
		return p
	default:
		return entity.OrderPriorityNormal
	}
}

func allocationOrDefault(a string) string {
	switch a {
	case entity.AllocationTypeStock, entity.AllocationTypeClient:
		return a
	default:
		return entity.AllocationTypeStock
	}
}

func toOrderResponse(order *entity.ProductionOrder, warnings []dto.StockWarning) *dto.OrderResponse {
	if order == nil {
		return nil
	}
	return &dto.OrderResponse{
		ID:               order.ID,
		BOMID:            order.BOMID,
		ProductSKU:       order.ProductSKU,
		ProductName:      order.ProductName,
		Quantity:         order.Quantity,
		QuantityProduced: order.QuantityProduced,
		Status:           order.Status,
		Priority:         order.Priority,
		WorkOrderNumber:  order.WorkOrderNumber,
		AllocationType:   order.AllocationType,
		ClientID:         order.ClientID,
		AssignedTo:       order.AssignedTo,
		TotalCost:        order.TotalCost,
		StartDate:        order.StartDate,
		TargetDate:       order.TargetDate,
		CompletedDate:    order.CompletedDate,
		Notes:            order.Notes,
		CreatedBy:        order.CreatedBy,
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
		Warnings:         warnings,
	}
}
