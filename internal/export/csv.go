// internal/export/csv.go
package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const utf8BOM = "\uFEFF"

var (
	engineHeaders = []string{
		"Lote", "Número do Motor", "Modelo do Veículo", "Operador",
		"Serviços", "Valor Total (R$)", "Data de Entrada", "Observações",
	}
	batchHeaders = []string{
		"Nome do Lote", "Data de Fechamento", "Total de Motores",
		"Custo Total (R$)", "Custo Médio (R$)",
	}
	summaryHeaders = []string{"Métrica", "Valor"}
)

// csvWriter quotes every field, which encoding/csv cannot be told to do.
type csvWriter struct {
	w   *bufio.Writer
	err error
}

func newCSVWriter(w io.Writer) *csvWriter {
	cw := &csvWriter{w: bufio.NewWriter(w)}
	_, cw.err = cw.w.WriteString(utf8BOM)
	return cw
}

func (c *csvWriter) row(fields ...string) {
	if c.err != nil {
		return
	}
	for i, f := range fields {
		if i > 0 {
			c.w.WriteByte(',')
		}
		c.w.WriteByte('"')
		c.w.WriteString(strings.ReplaceAll(f, `"`, `""`))
		c.w.WriteByte('"')
	}
	_, c.err = c.w.WriteString("\n")
}

func (c *csvWriter) flush() error {
	if c.err != nil {
		return fmt.Errorf("failed to write csv: %w", c.err)
	}
	if err := c.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// WriteCSV renders the report selected by kind.
func WriteCSV(w io.Writer, kind Kind, data Dataset) error {
	switch kind {
	case KindEngines:
		return WriteEnginesCSV(w, data)
	case KindBatches:
		return WriteBatchesCSV(w, data)
	case KindSummary:
		return WriteSummaryCSV(w, data)
	}
	return fmt.Errorf("unknown export kind %q", kind)
}

// WriteEnginesCSV writes one row per engine in store order.
func WriteEnginesCSV(w io.Writer, data Dataset) error {
	names := data.batchNames()

	cw := newCSVWriter(w)
	cw.row(engineHeaders...)
	for _, e := range data.Engines {
		cw.row(
			names[e.BatchID],
			e.EngineNumber,
			e.VehicleModel,
			e.Operator,
			serviceList(e.Services),
			FormatMoney(e.Total()),
			e.EntryDate.FormatBR(),
			e.Notes,
		)
	}
	return cw.flush()
}

// WriteBatchesCSV writes one row per batch with its aggregates.
func WriteBatchesCSV(w io.Writer, data Dataset) error {
	cw := newCSVWriter(w)
	cw.row(batchHeaders...)
	for _, s := range data.Summaries() {
		cw.row(
			s.Name,
			s.ClosureDate.FormatBR(),
			strconv.Itoa(s.EngineCount),
			FormatMoney(s.TotalCost),
			FormatMoney(s.AverageCost),
		)
	}
	return cw.flush()
}

// WriteSummaryCSV writes the global metrics as metric/value pairs.
func WriteSummaryCSV(w io.Writer, data Dataset) error {
	m := data.Metrics()

	cw := newCSVWriter(w)
	cw.row(summaryHeaders...)
	cw.row("Total de Lotes", strconv.Itoa(m.TotalBatches))
	cw.row("Total de Motores", strconv.Itoa(m.TotalEngines))
	cw.row("Custo Total (R$)", FormatMoney(m.TotalCost))
	cw.row("Custo Médio por Motor (R$)", FormatMoney(m.AveragePerEngine))
	cw.row("Custo Médio por Lote (R$)", FormatMoney(m.AveragePerBatch))
	return cw.flush()
}
