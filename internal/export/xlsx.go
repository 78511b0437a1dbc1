// internal/export/xlsx.go
package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"
)

// Sheet names of the workbook
const (
	SheetEngines = "Motores"
	SheetBatches = "Lotes"
	SheetSummary = "Resumo"
)

const moneyFormat = "#,##0.00"

// WriteXLSX renders the engines, batches and summary sheets.
func WriteXLSX(w io.Writer, data Dataset) error {
	file := xlsx.NewFile()

	if err := addEngineSheet(file, data); err != nil {
		return err
	}
	if err := addBatchSheet(file, data); err != nil {
		return err
	}
	if err := addSummarySheet(file, data); err != nil {
		return err
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func addEngineSheet(file *xlsx.File, data Dataset) error {
	sheet, err := file.AddSheet(SheetEngines)
	if err != nil {
		return fmt.Errorf("failed to add worksheet: %w", err)
	}
	addHeaderRow(sheet, engineHeaders)

	names := data.batchNames()
	for _, e := range data.Engines {
		row := sheet.AddRow()
		addText(row, names[e.BatchID])
		addText(row, e.EngineNumber)
		addText(row, e.VehicleModel)
		addText(row, e.Operator)
		addText(row, serviceList(e.Services))
		addMoney(row, e.Total())
		addText(row, e.EntryDate.FormatBR())
		addText(row, e.Notes)
	}

	setWidths(sheet, len(engineHeaders))
	sheet.SetColWidth(5, 5, 40)
	return nil
}

func addBatchSheet(file *xlsx.File, data Dataset) error {
	sheet, err := file.AddSheet(SheetBatches)
	if err != nil {
		return fmt.Errorf("failed to add worksheet: %w", err)
	}
	addHeaderRow(sheet, batchHeaders)

	for _, s := range data.Summaries() {
		row := sheet.AddRow()
		addText(row, s.Name)
		addText(row, s.ClosureDate.FormatBR())
		row.AddCell().SetInt(s.EngineCount)
		addMoney(row, s.TotalCost)
		addMoney(row, s.AverageCost)
	}

	setWidths(sheet, len(batchHeaders))
	return nil
}

func addSummarySheet(file *xlsx.File, data Dataset) error {
	sheet, err := file.AddSheet(SheetSummary)
	if err != nil {
		return fmt.Errorf("failed to add worksheet: %w", err)
	}
	addHeaderRow(sheet, summaryHeaders)

	m := data.Metrics()

	row := sheet.AddRow()
	addText(row, "Total de Lotes")
	row.AddCell().SetInt(m.TotalBatches)

	row = sheet.AddRow()
	addText(row, "Total de Motores")
	row.AddCell().SetInt(m.TotalEngines)

	for _, line := range []struct {
		label string
		value decimal.Decimal
	}{
		{"Custo Total (R$)", m.TotalCost},
		{"Custo Médio por Motor (R$)", m.AveragePerEngine},
		{"Custo Médio por Lote (R$)", m.AveragePerBatch},
	} {
		row = sheet.AddRow()
		addText(row, line.label)
		addMoney(row, line.value)
	}

	row = sheet.AddRow()
	addText(row, "Lote Ativo")
	addText(row, m.ActiveBatch)

	sheet.SetColWidth(1, 1, 30)
	sheet.SetColWidth(2, 2, 20)
	return nil
}

func addHeaderRow(sheet *xlsx.Sheet, headers []string) {
	row := sheet.AddRow()
	for _, header := range headers {
		cell := row.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}
}

func addText(row *xlsx.Row, value string) {
	row.AddCell().SetString(value)
}

func addMoney(row *xlsx.Row, value decimal.Decimal) {
	row.AddCell().SetFloatWithFormat(value.Round(2).InexactFloat64(), moneyFormat)
}

// setWidths takes 1-based column numbers, like SetColWidth.
func setWidths(sheet *xlsx.Sheet, columns int) {
	for i := 1; i <= columns; i++ {
		sheet.SetColWidth(i, i, 18)
	}
}
