package billing

import (
	"context"
	"time"

	domainbilling "github.com/jhoicas/isp-ledger/internal/domain/billing"
	"github.com/jhoicas/isp-ledger/internal/domain/entity"
)

// Clock fuente de la fecha actual (inyectable en tests).
type Clock func() time.Time

// StatementPDFGenerator genera el estado de cuenta imprimible de un cliente.
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, customer *entity.Customer, records []*entity.MonthlyRecord, issuedAt time.Time) ([]byte, error)
}

// MonthListExporter exporta el listado mensual (con sus totales) a planilla.
type MonthListExporter interface {
	ExportMonthXLSX(ctx context.Context, month domainbilling.MonthKey, rows []domainbilling.Row, stats domainbilling.Stats) ([]byte, error)
}
