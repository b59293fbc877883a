package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/isp-ledger/internal/application/dto"
	"github.com/jhoicas/isp-ledger/internal/domain"
	domainbilling "github.com/jhoicas/isp-ledger/internal/domain/billing"
	"github.com/jhoicas/isp-ledger/internal/domain/entity"
	"github.com/jhoicas/isp-ledger/internal/domain/repository"
)

// StatementUseCase salidas imprimibles: estado de cuenta (PDF) y listado mensual (XLSX).
type StatementUseCase struct {
	repo     repository.CustomerRepository
	reports  *ReportUseCase
	pdf      StatementPDFGenerator
	exporter MonthListExporter
	now      Clock
}

// NewStatementUseCase construye el caso de uso inyectando los generadores.
func NewStatementUseCase(
	repo repository.CustomerRepository,
	reports *ReportUseCase,
	pdf StatementPDFGenerator,
	exporter MonthListExporter,
) *StatementUseCase {
	return &StatementUseCase{repo: repo, reports: reports, pdf: pdf, exporter: exporter, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *StatementUseCase) WithClock(now Clock) *StatementUseCase {
	uc.now = now
	return uc
}

// CustomerStatementPDF genera el estado de cuenta del cliente con todo su libro.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el cliente no existe.
func (uc *StatementUseCase) CustomerStatementPDF(ctx context.Context, customerID string) (pdfBytes []byte, filename string, err error) {
	c, err := uc.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if c == nil {
		return nil, "", domain.ErrNotFound
	}

	records := make([]*entity.MonthlyRecord, 0, len(c.Records))
	for _, key := range domainbilling.SortedRecordKeys(c) {
		if r := c.Records[key]; r != nil {
			records = append(records, r)
		}
	}

	pdfBytes, err = uc.pdf.GenerateStatementPDF(ctx, c, records, uc.now())
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("statement_%s.pdf", shortID(c.ID)), nil
}

// MonthListXLSX exporta el listado mensual con los mismos filtros que MonthView.
func (uc *StatementUseCase) MonthListXLSX(ctx context.Context, in dto.MonthViewRequest) (xlsxBytes []byte, filename string, err error) {
	f, rows, err := uc.reports.rows(ctx, in)
	if err != nil {
		return nil, "", err
	}
	xlsxBytes, err = uc.exporter.ExportMonthXLSX(ctx, f.Month, rows, domainbilling.Summarize(rows))
	if err != nil {
		return nil, "", fmt.Errorf("xlsx: exportación fallida: %w", err)
	}
	return xlsxBytes, fmt.Sprintf("billing_%s.xlsx", f.Month), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
