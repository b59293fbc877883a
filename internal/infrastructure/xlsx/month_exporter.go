// Package xlsx exporta el listado mensual de facturación a una planilla Excel (excelize).
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	appbilling "github.com/jhoicas/isp-ledger/internal/application/billing"
	domainbilling "github.com/jhoicas/isp-ledger/internal/domain/billing"
)

var _ appbilling.MonthListExporter = (*MonthExporter)(nil)

var headers = []string{"Name", "Connection", "Mobile", "Monthly bill", "Paid", "Due", "Status", "Method", "TrxID", "Payment date", "Remarks"}

// MonthExporter implementa billing.MonthListExporter.
type MonthExporter struct{}

// NewMonthExporter construye el exportador.
func NewMonthExporter() *MonthExporter { return &MonthExporter{} }

// ExportMonthXLSX genera una hoja con una fila por cliente y el bloque de totales al final.
func (e *MonthExporter) ExportMonthXLSX(_ context.Context, month domainbilling.MonthKey, rows []domainbilling.Row, stats domainbilling.Stats) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := month.String()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", last, bold)

	for i, r := range rows {
		n := i + 2
		c := r.Customer
		f.SetCellValue(sheet, fmt.Sprintf("A%d", n), c.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", n), c.ConnectionName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", n), c.Mobile)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", n), c.MonthlyBill.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("G%d", n), string(r.Status))
		if rec := r.Record; rec != nil {
			f.SetCellValue(sheet, fmt.Sprintf("E%d", n), rec.PaidAmount.InexactFloat64())
			f.SetCellValue(sheet, fmt.Sprintf("F%d", n), rec.Due.InexactFloat64())
			f.SetCellValue(sheet, fmt.Sprintf("H%d", n), string(rec.PaymentMethod))
			f.SetCellValue(sheet, fmt.Sprintf("I%d", n), rec.TrxID)
			f.SetCellValue(sheet, fmt.Sprintf("J%d", n), rec.PaymentDate)
			f.SetCellValue(sheet, fmt.Sprintf("K%d", n), rec.Remarks)
		} else {
			f.SetCellValue(sheet, fmt.Sprintf("E%d", n), 0)
			f.SetCellValue(sheet, fmt.Sprintf("F%d", n), c.MonthlyBill.InexactFloat64())
		}
	}

	// Totales dejando una fila en blanco.
	t := len(rows) + 3
	summary := []struct {
		label string
		value any
	}{
		{"Total collected", stats.TotalCollected.InexactFloat64()},
		{"Total due", stats.TotalDue.InexactFloat64()},
		{"Paid", stats.PaidCount},
		{"Partial", stats.PartialCount},
		{"Due", stats.DueCount},
	}
	for i, s := range summary {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", t+i), s.label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", t+i), s.value)
	}
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", t), fmt.Sprintf("A%d", t+len(summary)-1), bold)
	f.SetColWidth(sheet, "A", "C", 22)
	f.SetColWidth(sheet, "K", "K", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
