package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/isp-ledger/internal/application/dto"
	"github.com/jhoicas/isp-ledger/internal/domain"
	domainbilling "github.com/jhoicas/isp-ledger/internal/domain/billing"
	"github.com/jhoicas/isp-ledger/internal/domain/entity"
	"github.com/jhoicas/isp-ledger/internal/domain/repository"
	"github.com/jhoicas/isp-ledger/pkg/logger"
)

// PaymentUseCase cobro rápido y edición manual del libro mensual.
type PaymentUseCase struct {
	repo repository.CustomerRepository
	log  *logger.Logger
	now  Clock
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(repo repository.CustomerRepository, log *logger.Logger) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *PaymentUseCase) WithClock(now Clock) *PaymentUseCase {
	uc.now = now
	return uc
}

// ParseMethod interpreta el medio de pago sin distinguir mayúsculas. Vacío = Other.
func ParseMethod(s string) (entity.PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "other":
		return entity.PaymentOther, nil
	case "cash":
		return entity.PaymentCash, nil
	case "bkash":
		return entity.PaymentBkash, nil
	case "free":
		return entity.PaymentFree, nil
	}
	return "", fmt.Errorf("%w: medio de pago %q (Cash, bKash, Free, Other)", domain.ErrInvalidInput, s)
}

func (uc *PaymentUseCase) monthOrCurrent(s string) (domainbilling.MonthKey, error) {
	if strings.TrimSpace(s) == "" {
		return domainbilling.MonthKeyOf(uc.now()), nil
	}
	k, err := domainbilling.ParseMonthKey(s)
	if err != nil {
		return domainbilling.MonthKey{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return k, nil
}

// RecordPayment registra un cobro (Cash, bKash, Free u Other) en el mes indicado.
// Devuelve el registro resultante; nil, nil si el cliente no existe.
func (uc *PaymentUseCase) RecordPayment(ctx context.Context, customerID string, in dto.PaymentRequest) (*dto.MonthlyRecordResponse, error) {
	month, err := uc.monthOrCurrent(in.Month)
	if err != nil {
		return nil, err
	}
	method, err := ParseMethod(in.Method)
	if err != nil {
		return nil, err
	}
	p := domainbilling.Payment{
		Method: method,
		Amount: in.Amount,
		TrxID:  strings.TrimSpace(in.TrxID),
		Date:   uc.now().Format("2006-01-02"),
	}

	rec, err := uc.repo.MutateMonthlyRecord(ctx, customerID, month.String(), func(cur entity.MonthlyRecord) (entity.RecordPatch, error) {
		return domainbilling.ApplyPayment(cur, p)
	})
	if err != nil || rec == nil {
		return nil, err
	}

	uc.log.Info().
		Str("customer_id", customerID).
		Str("month", month.String()).
		Str("method", string(rec.PaymentMethod)).
		Str("paid", rec.PaidAmount.String()).
		Str("due", rec.Due.String()).
		Msg("pago registrado")
	return toRecordResponse(rec), nil
}

// EditRecord edición manual de un mes (monto pagado, fecha, observaciones).
// nil, nil si el cliente no existe.
func (uc *PaymentUseCase) EditRecord(ctx context.Context, customerID, monthKey string, in dto.RecordEditRequest) (*dto.MonthlyRecordResponse, error) {
	month, err := domainbilling.ParseMonthKey(monthKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if in.PaymentDate != nil && *in.PaymentDate != "" {
		if _, err := time.Parse("2006-01-02", *in.PaymentDate); err != nil {
			return nil, fmt.Errorf("%w: paymentDate debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}
	edit := domainbilling.ManualEdit{
		PaidAmount:  in.PaidAmount,
		PaymentDate: in.PaymentDate,
		Remarks:     in.Remarks,
	}

	rec, err := uc.repo.MutateMonthlyRecord(ctx, customerID, month.String(), func(cur entity.MonthlyRecord) (entity.RecordPatch, error) {
		return domainbilling.ApplyManualEdit(cur, edit)
	})
	if err != nil || rec == nil {
		return nil, err
	}
	uc.log.Info().Str("customer_id", customerID).Str("month", month.String()).Msg("registro editado")
	return toRecordResponse(rec), nil
}
