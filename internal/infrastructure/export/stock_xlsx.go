// Package export genera planillas Excel con excelize.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/negocio-api/internal/application/dto"
)

const stockSheet = "Inventario"

var stockHeaders = []string{
	"Insumo", "Categoría", "Unidad", "Ubicación", "En mano", "Reservado",
	"Disponible", "Stock mínimo", "Precio compra", "Valor", "Stock bajo",
}

// StockReportXLSX planilla del reporte de inventario: una fila por insumo y una fila de totales.
func StockReportXLSX(report *dto.StockReportDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", stockSheet); err != nil {
		return nil, fmt.Errorf("export: hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("export: estilo: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("export: estilo: %w", err)
	}

	header := make([]any, len(stockHeaders))
	for i, h := range stockHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(stockSheet, "A1", &header); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(stockSheet, "A1", "K1", bold); err != nil {
		return nil, err
	}

	r := 2
	for _, it := range report.Items {
		low := "No"
		if it.LowStock {
			low = "Sí"
		}
		row := []any{
			it.SupplyName, it.Category, it.UnitMeasure, it.Location,
			it.OnHand, it.Reserved, it.Available, it.MinStock,
			it.PurchasePrice.InexactFloat64(), it.StockValue.InexactFloat64(), low,
		}
		if err := f.SetSheetRow(stockSheet, fmt.Sprintf("A%d", r), &row); err != nil {
			return nil, err
		}
		r++
	}

	totals := []any{
		"TOTAL", fmt.Sprintf("%d insumos", report.TotalItems), "", "",
		report.TotalUnits, report.TotalReserved, report.TotalUnits - report.TotalReserved, "",
		"", report.InventoryValue.InexactFloat64(), fmt.Sprintf("%d bajos", report.LowStockCount),
	}
	if err := f.SetSheetRow(stockSheet, fmt.Sprintf("A%d", r), &totals); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(stockSheet, fmt.Sprintf("A%d", r), fmt.Sprintf("K%d", r), bold); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(stockSheet, "I2", fmt.Sprintf("J%d", r), money); err != nil {
		return nil, err
	}
	_ = f.SetColWidth(stockSheet, "A", "A", 28)
	_ = f.SetColWidth(stockSheet, "B", "D", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: escribir planilla: %w", err)
	}
	return buf.Bytes(), nil
}
