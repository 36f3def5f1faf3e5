// Package pdf implementa la generación del documento viajero de una orden de
// trabajo: cabecera de la orden, tabla de componentes de la BOM con cantidades
// requeridas y bloque de costos.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: WO-#### + producto  │  Estado + Prioridad + Fechas │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Componente | Cant/u | Requerido | Costo        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COSTOS: Materiales / Mano de obra / Overhead / TOTAL        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FIRMAS: Producción / Calidad                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/manufactura-api/internal/application/manufacturing"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	domainmfg "github.com/jhoicas/manufactura-api/internal/domain/manufacturing"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ manufacturing.WorkOrderRenderer = (*WorkOrderPDFRenderer)(nil)

// WorkOrderPDFRenderer implementa manufacturing.WorkOrderRenderer usando Maroto v2.
type WorkOrderPDFRenderer struct{}

// NewWorkOrderPDFRenderer construye el generador.
func NewWorkOrderPDFRenderer() *WorkOrderPDFRenderer { return &WorkOrderPDFRenderer{} }

// RenderWorkOrder genera el PDF de la orden de trabajo y devuelve sus bytes.
func (g *WorkOrderPDFRenderer) RenderWorkOrder(order *entity.ProductionOrder, bom *entity.BOM) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de trabajo "+order.WorkOrderNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(orderDetailRow(order, bom))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range componentRows(order, bom) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(costsRow(order, bom))

	m.AddRows(line.NewRow(3))
	m.AddRows(signatureRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar orden de trabajo: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: número de orden + producto (izq), estado y prioridad (der).
func headerRow(order *entity.ProductionOrder) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(order.WorkOrderNumber, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s (%s)", order.ProductName, order.ProductSKU), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE TRABAJO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Estado: %s   Prioridad: %s", order.Status, order.Priority), props.Text{
				Size: 8, Align: align.Right, Top: 8,
			}),
			text.New("Emitida: "+order.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// orderDetailRow: cantidades, fechas y responsable.
func orderDetailRow(order *entity.ProductionOrder, bom *entity.BOM) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DETALLE DE LA ORDEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Cantidad: %s   |   Producida: %s   |   BOM v%s   |   Tiempo est.: %d min/u",
				order.Quantity.String(), order.QuantityProduced.String(),
				bom.Version, bom.EstimatedTime,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
			text.New(fmt.Sprintf("Inicio: %s   |   Objetivo: %s   |   Asignada a: %s",
				formatDate(order.StartDate), formatDate(order.TargetDate),
				nonEmpty(order.AssignedTo, "—"),
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de componentes.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Componente", 4, align.Left),
		h("Cant/u", 2, align.Right),
		h("Requerido", 2, align.Right),
		h("Costo total", 2, align.Right),
	)
}

// componentRows: una fila por componente de la BOM, con la cantidad total
// requerida para la cantidad ordenada.
func componentRows(order *entity.ProductionOrder, bom *entity.BOM) []core.Row {
	result := make([]core.Row, 0, len(bom.Components))
	for _, c := range bom.Components {
		required := domainmfg.RequiredQuantity(c.Quantity, order.Quantity)
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(c.SKU, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(4).Add(text.New(c.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(c.Quantity.String()+" "+c.Unit, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(required.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+c.TotalCost.Mul(order.Quantity).StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// costsRow: bloque de costos alineado a la derecha.
func costsRow(order *entity.ProductionOrder, bom *entity.BOM) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(28).Add(
		col.New(4),
		col.New(4).Add(
			label("Materiales (por unidad):"),
			label("Mano de obra:"),
			label("Overhead:"),
			text.New("TOTAL ORDEN:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2,
			}),
		),
		col.New(4).Add(
			value("$"+bom.TotalMaterialCost.StringFixed(2)),
			value("$"+bom.LaborCost.StringFixed(2)),
			value("$"+bom.OverheadCost.StringFixed(2)),
			text.New("$"+order.TotalCost.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
			}),
		),
	)
}

// signatureRow: espacios de firma para producción y calidad.
func signatureRow() core.Row {
	sig := func(title string) core.Col {
		return col.New(6).Add(
			text.New("_______________________________", props.Text{Size: 9, Align: align.Center, Top: 10}),
			text.New(title, props.Text{Size: 8, Align: align.Center, Top: 16, Color: colorGray}),
		)
	}
	return row.New(22).Add(
		sig("Responsable de producción"),
		sig("Control de calidad"),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format("02/01/2006")
}
