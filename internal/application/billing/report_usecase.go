package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/isp-ledger/internal/application/dto"
	"github.com/jhoicas/isp-ledger/internal/domain"
	domainbilling "github.com/jhoicas/isp-ledger/internal/domain/billing"
	"github.com/jhoicas/isp-ledger/internal/domain/repository"
)

// ReportUseCase listado mensual de facturación con sus estadísticas.
type ReportUseCase struct {
	repo repository.CustomerRepository
	now  Clock
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.CustomerRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportUseCase) WithClock(now Clock) *ReportUseCase {
	uc.now = now
	return uc
}

// filter traduce la petición a criterios de dominio. Year/Month en 0 toman el mes actual.
func (uc *ReportUseCase) filter(in dto.MonthViewRequest) (domainbilling.MonthFilter, error) {
	current := domainbilling.MonthKeyOf(uc.now())
	year, month := in.Year, time.Month(in.Month)
	if year == 0 {
		year = current.Year
	}
	if month == 0 {
		month = current.Month
	}
	key, err := domainbilling.NewMonthKey(year, month)
	if err != nil {
		return domainbilling.MonthFilter{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	status, ok := domainbilling.ParseStatusFilter(in.Status)
	if !ok {
		return domainbilling.MonthFilter{}, fmt.Errorf("%w: status %q (all, paid, partial, due, unpaid)", domain.ErrInvalidInput, in.Status)
	}
	return domainbilling.MonthFilter{Month: key, Query: in.Query, Status: status}, nil
}

// rows carga la cartera y aplica elegibilidad, búsqueda y filtro.
func (uc *ReportUseCase) rows(ctx context.Context, in dto.MonthViewRequest) (domainbilling.MonthFilter, []domainbilling.Row, error) {
	f, err := uc.filter(in)
	if err != nil {
		return f, nil, err
	}
	customers, err := uc.repo.List(ctx)
	if err != nil {
		return f, nil, err
	}
	return f, domainbilling.FilterMonth(customers, f), nil
}

// MonthView devuelve las filas del mes y los totales del conjunto filtrado.
func (uc *ReportUseCase) MonthView(ctx context.Context, in dto.MonthViewRequest) (*dto.MonthViewResponse, error) {
	f, rows, err := uc.rows(ctx, in)
	if err != nil {
		return nil, err
	}
	out := &dto.MonthViewResponse{
		Month: f.Month.String(),
		Label: f.Month.Label(),
		Rows:  make([]dto.BillingRowResponse, 0, len(rows)),
		Stats: toStatsResponse(domainbilling.Summarize(rows)),
	}
	for _, r := range rows {
		out.Rows = append(out.Rows, toRowResponse(r))
	}
	return out, nil
}
