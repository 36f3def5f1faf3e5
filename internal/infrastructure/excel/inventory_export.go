// Package excel genera el export XLSX de la vista agregada de inventario.
package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
)

// BuildInventoryWorkbook arma un libro XLSX con una fila por SKU: cantidades
// agregadas, reservas, costo y estado, más el desglose por ubicación como
// columnas de texto.
func BuildInventoryWorkbook(rows []dto.AggregateInventoryRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"SKU", "Nombre", "Cantidad", "Reservado", "Disponible",
		"Punto de reorden", "Costo unitario", "Valor total", "Estado", "Ubicaciones",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("excel: cabecera: %w", err)
	}

	for i, r := range rows {
		locs := ""
		for _, l := range r.Locations {
			if locs != "" {
				locs += "; "
			}
			locs += fmt.Sprintf("%s: %s", l.LocationID, l.Quantity.String())
		}
		excelRow := []interface{}{
			r.SKU,
			r.Name,
			r.Quantity.InexactFloat64(),
			r.AllocatedQuantity.InexactFloat64(),
			r.Available.InexactFloat64(),
			r.ReorderPoint.InexactFloat64(),
			r.UnitCost.InexactFloat64(),
			r.TotalValue.InexactFloat64(),
			r.Status,
			locs,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("excel: celda: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("excel: fila: %w", err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
